package blocks

import (
	"html"
	"regexp"
	"strconv"
	"strings"
)

// Inline substitution order matters: images go first so generic link
// patterns never re-match their bracket syntax, wikilinks before emphasis,
// and the bracket-paren anchor last. Each pattern tolerates zero matches.
var (
	reEmbedImage  = regexp.MustCompile(`!\[\[([^\]|]+?)(?:\|([^\]]*?))?\]\]`)
	reInlineImage = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)
	reWikiLabeled = regexp.MustCompile(`\[\[([^\]|]+)\|([^\]]+)\]\]`)
	reWikiPlain   = regexp.MustCompile(`\[\[([^\]]+)\]\]`)
	reBoldItalic  = regexp.MustCompile(`\*\*\*(.+?)\*\*\*`)
	reBoldItalicU = regexp.MustCompile(`___(.+?)___`)
	reBold        = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBoldU       = regexp.MustCompile(`__(.+?)__`)
	reItalic      = regexp.MustCompile(`\*([^*]+)\*`)
	reItalicU     = regexp.MustCompile(`(^|[^a-zA-Z])_([^_]+)_($|[^a-zA-Z])`)
	reStrike      = regexp.MustCompile(`~~(.+?)~~`)
	reInlineCode  = regexp.MustCompile("`([^`]+)`")
	reHighlight   = regexp.MustCompile(`==([^=]+)==`)
	reLink        = regexp.MustCompile(`\[([^\]]*)\]\(([^)]+)\)`)
)

// FormatInline applies the ordered emphasis/link/image substitutions to s.
// It is a pure function of s and images: identical inputs yield identical
// output. Code spans are lifted into placeholders before the emphasis pass
// and restored last, so no other pattern formats inside backticks; their
// content is not HTML-escaped.
func FormatInline(s string, images ImageMap) string {
	s = reEmbedImage.ReplaceAllStringFunc(s, func(m string) string {
		g := reEmbedImage.FindStringSubmatch(m)
		return imgTag(g[1], g[2], images)
	})
	s = reInlineImage.ReplaceAllStringFunc(s, func(m string) string {
		g := reInlineImage.FindStringSubmatch(m)
		return imgTag(g[2], g[1], images)
	})
	// Wikilinks degrade to their visible label; link resolution is out of
	// scope for the published copy.
	s = reWikiLabeled.ReplaceAllString(s, "$2")
	s = reWikiPlain.ReplaceAllString(s, "$1")
	// Code spans are extracted into placeholders so the emphasis and link
	// patterns never format content inside backticks; content is kept
	// verbatim, not escaped.
	var codeSpans []string
	s = reInlineCode.ReplaceAllStringFunc(s, func(m string) string {
		g := reInlineCode.FindStringSubmatch(m)
		placeholder := "\x00IC" + strconv.Itoa(len(codeSpans)) + "\x00"
		codeSpans = append(codeSpans, "<code>"+g[1]+"</code>")
		return placeholder
	})
	// Emphasis runs only outside tags so the patterns never corrupt
	// attribute values produced by earlier substitutions.
	s = applyOutsideTags(s, func(seg string) string {
		seg = reBoldItalic.ReplaceAllString(seg, "<strong><em>$1</em></strong>")
		seg = reBoldItalicU.ReplaceAllString(seg, "<strong><em>$1</em></strong>")
		seg = reBold.ReplaceAllString(seg, "<strong>$1</strong>")
		seg = reBoldU.ReplaceAllString(seg, "<strong>$1</strong>")
		seg = reItalic.ReplaceAllString(seg, "<em>$1</em>")
		// Underscore italics need non-alphabetic neighbors so they never
		// match inside_words.
		seg = reItalicU.ReplaceAllString(seg, "$1<em>$2</em>$3")
		seg = reStrike.ReplaceAllString(seg, "<del>$1</del>")
		seg = reHighlight.ReplaceAllString(seg, "<mark>$1</mark>")
		return seg
	})
	s = reLink.ReplaceAllStringFunc(s, func(m string) string {
		g := reLink.FindStringSubmatch(m)
		return `<a href="` + g[2] + `">` + g[1] + `</a>`
	})
	for i, code := range codeSpans {
		s = strings.Replace(s, "\x00IC"+strconv.Itoa(i)+"\x00", code, 1)
	}
	return s
}

// imgTag resolves path against the uploaded-image map and falls back to the
// literal local path when unresolved.
func imgTag(path, alt string, images ImageMap) string {
	src := path
	if u, ok := images[path]; ok {
		src = u
	}
	return `<img src="` + src + `" alt="` + html.EscapeString(alt) + `"/>`
}

// applyOutsideTags applies fn only to text segments outside HTML tags, so
// that formatting regexes never touch URLs inside src/href attributes.
func applyOutsideTags(s string, fn func(string) string) string {
	var buf strings.Builder
	for len(s) > 0 {
		lt := strings.Index(s, "<")
		if lt < 0 {
			buf.WriteString(fn(s))
			break
		}
		if lt > 0 {
			buf.WriteString(fn(s[:lt]))
		}
		gt := strings.Index(s[lt:], ">")
		if gt < 0 {
			buf.WriteString(s[lt:])
			break
		}
		buf.WriteString(s[lt : lt+gt+1])
		s = s[lt+gt+1:]
	}
	return buf.String()
}
