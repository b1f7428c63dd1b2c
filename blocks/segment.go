package blocks

import (
	"regexp"
	"strings"
)

var (
	reHeading       = regexp.MustCompile(`^(#{1,6}) `)
	reRule          = regexp.MustCompile(`^(-{3,}|\*{3,}|_{3,})\s*$`)
	reListItem      = regexp.MustCompile(`^\s*(?:[-*+]|\d+\.)\s+`)
	reCalloutHeader = regexp.MustCompile(`^>\s*\[!\w+\]`)
	reEmbedLine     = regexp.MustCompile(`^!\[\[[^\]|]+(?:\|[^\]]*)?\]\]$`)
	reImageLine     = regexp.MustCompile(`^!\[[^\]]*\]\([^)]+\)$`)
)

// scanState is the segmenter's line-fed state. Code fences and callouts are
// the only constructs whose continuation rules override normal
// classification, so they get their own states.
type scanState int

const (
	stateDefault scanState = iota
	stateCode
	stateCallout
)

type segmenter struct {
	state  scanState
	cur    *Block
	blocks []Block
}

// Segment partitions body into an ordered sequence of typed blocks using a
// single left-to-right line scan. Classification precedence per line, first
// match wins: fence delimiter, callout header, callout continuation,
// heading, rule, list item, blockquote, standalone image, blank (flush),
// paragraph continuation. The order is the contract: a line readable as both
// a list item and a quote is resolved by rule order, not content heuristics.
// A callout continues through >-prefixed lines and lazy plain-text lines;
// a blank line or a line opening another construct ends it.
func Segment(body string) []Block {
	var s segmenter
	for _, raw := range strings.Split(body, "\n") {
		s.feed(strings.TrimRight(raw, "\r"))
	}
	s.flush()
	return s.blocks
}

// flush closes the accumulator, discarding whitespace-only blocks.
func (s *segmenter) flush() {
	if s.cur != nil && !s.cur.empty() {
		s.blocks = append(s.blocks, *s.cur)
	}
	s.cur = nil
}

// emit flushes and appends a complete single-line block.
func (s *segmenter) emit(b Block) {
	s.flush()
	s.blocks = append(s.blocks, b)
}

// open flushes the accumulator if it is not of kind k, then appends line to
// the (possibly fresh) accumulator.
func (s *segmenter) open(k Kind, line string) {
	if s.cur != nil && s.cur.Kind != k {
		s.flush()
	}
	if s.cur == nil {
		s.cur = &Block{Kind: k}
	}
	s.cur.Lines = append(s.cur.Lines, line)
}

func (s *segmenter) feed(line string) {
	// A fence delimiter toggles code state; everything between fences is
	// swallowed verbatim, blank lines included.
	if strings.HasPrefix(line, "```") {
		if s.state == stateCode {
			s.flush()
			s.state = stateDefault
			return
		}
		s.flush()
		s.cur = &Block{Kind: Code, Lang: strings.TrimSpace(line[3:])}
		s.state = stateCode
		return
	}
	if s.state == stateCode {
		s.cur.Lines = append(s.cur.Lines, line)
		return
	}

	if reCalloutHeader.MatchString(line) {
		s.flush()
		s.cur = &Block{Kind: Callout, Lines: []string{line}}
		s.state = stateCallout
		return
	}
	if s.state == stateCallout {
		switch {
		case strings.HasPrefix(line, ">"):
			s.cur.Lines = append(s.cur.Lines, line)
			return
		case strings.TrimSpace(line) == "" || startsNewBlock(line):
			// A blank line or a fresh construct closes the callout; the
			// line is reclassified below.
			s.flush()
			s.state = stateDefault
		default:
			// Lazy continuation: plain text directly under a callout
			// belongs to its body even without the > prefix.
			s.cur.Lines = append(s.cur.Lines, line)
			return
		}
	}

	trimmed := strings.TrimSpace(line)
	switch {
	case reHeading.MatchString(line):
		m := reHeading.FindStringSubmatch(line)
		s.emit(Block{Kind: Heading, Level: len(m[1]), Lines: []string{line}})
	case reRule.MatchString(line):
		s.emit(Block{Kind: Rule, Lines: []string{line}})
	case reListItem.MatchString(line):
		// Ordered and unordered markers may mix within one run without
		// splitting the block.
		s.open(List, line)
	case strings.HasPrefix(line, ">"):
		s.open(Quote, line)
	case reEmbedLine.MatchString(trimmed) || reImageLine.MatchString(trimmed):
		s.emit(Block{Kind: Image, Lines: []string{line}})
	case trimmed == "":
		s.flush()
	default:
		// Paragraph continuation: appends to whatever block is open, which
		// is how indented list continuations stay in their list.
		if s.cur == nil {
			s.cur = &Block{Kind: Paragraph}
		}
		s.cur.Lines = append(s.cur.Lines, line)
	}
}

// startsNewBlock reports whether line opens a construct that interrupts a
// callout's lazy continuation.
func startsNewBlock(line string) bool {
	trimmed := strings.TrimSpace(line)
	return reHeading.MatchString(line) || reRule.MatchString(line) ||
		reListItem.MatchString(line) ||
		reEmbedLine.MatchString(trimmed) || reImageLine.MatchString(trimmed)
}
