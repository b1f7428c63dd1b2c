// Package blocks converts Obsidian-flavored markdown into WordPress
// Gutenberg block markup. Conversion runs in two passes: Segment splits the
// body into typed blocks, Render maps each block to its block template and
// applies inline formatting.
package blocks

import "strings"

// Kind classifies a segmented block.
type Kind int

const (
	Paragraph Kind = iota
	Heading
	Code
	Callout
	Quote
	List
	Rule
	Image
)

func (k Kind) String() string {
	switch k {
	case Paragraph:
		return "paragraph"
	case Heading:
		return "heading"
	case Code:
		return "code"
	case Callout:
		return "callout"
	case Quote:
		return "quote"
	case List:
		return "list"
	case Rule:
		return "rule"
	case Image:
		return "image"
	}
	return "unknown"
}

// Block is a contiguous run of body lines classified as exactly one kind.
// Lines holds the raw lines as scanned; for Code they are the fence body
// without the delimiters. Blocks are produced by Segment and consumed once
// by Render.
type Block struct {
	Kind  Kind
	Level int    // heading level 1-6
	Lang  string // code fence language tag
	Lines []string
}

// empty reports whether the block holds nothing but whitespace. Code
// blocks are exempt: a deliberately blank fence still renders, keeping
// its language tag.
func (b Block) empty() bool {
	if b.Kind == Code {
		return false
	}
	for _, l := range b.Lines {
		if strings.TrimSpace(l) != "" {
			return false
		}
	}
	return true
}

// ImageMap maps a local image path to its uploaded remote URL. A missing
// entry degrades to the literal local path, never to an error.
type ImageMap map[string]string

// Convert runs both passes over body and returns the joined block markup.
func Convert(body string, images ImageMap) string {
	return Render(Segment(body), images)
}
