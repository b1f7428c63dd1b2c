package blocks

import (
	"html"
	"regexp"
	"strconv"
	"strings"
)

var (
	reCallout     = regexp.MustCompile(`^>\s*\[!(\w+)\]([+-]?)\s*(.*)$`)
	reOrderedItem = regexp.MustCompile(`^\s*\d+\.\s+`)
	reItemMarker  = regexp.MustCompile(`^\s*(?:[-*+]|\d+\.)\s+`)
)

// Render maps each block to its Gutenberg template and joins them with
// blank lines, the way the block editor serializes a post.
func Render(bs []Block, images ImageMap) string {
	out := make([]string, 0, len(bs))
	for _, b := range bs {
		out = append(out, renderBlock(b, images))
	}
	return strings.Join(out, "\n\n")
}

func renderBlock(b Block, images ImageMap) string {
	switch b.Kind {
	case Heading:
		return renderHeading(b, images)
	case Code:
		return renderCode(b)
	case Callout:
		return renderCallout(b, images)
	case Quote:
		return renderQuote(b, images)
	case List:
		return renderList(b, images)
	case Rule:
		return "<!-- wp:separator -->\n<hr class=\"wp-block-separator has-alpha-channel-opacity\"/>\n<!-- /wp:separator -->"
	case Image:
		return renderImage(b, images)
	default:
		return renderParagraph(b, images)
	}
}

func renderParagraph(b Block, images ImageMap) string {
	text := FormatInline(joinLines(b.Lines), images)
	return "<!-- wp:paragraph -->\n<p>" + text + "</p>\n<!-- /wp:paragraph -->"
}

func renderHeading(b Block, images ImageMap) string {
	text := strings.TrimSpace(strings.TrimLeft(b.Lines[0], "#"))
	tag := "h" + strconv.Itoa(b.Level)
	// The editor omits the level attribute for its h2 default.
	attrs := ""
	if b.Level != 2 {
		attrs = ` {"level":` + strconv.Itoa(b.Level) + `}`
	}
	return "<!-- wp:heading" + attrs + " -->\n<" + tag + " class=\"wp-block-heading\">" +
		FormatInline(text, images) + "</" + tag + ">\n<!-- /wp:heading -->"
}

// renderCode escapes the five HTML metacharacters; fence content is literal
// and never inline-formatted.
func renderCode(b Block) string {
	body := html.EscapeString(strings.Join(b.Lines, "\n"))
	open := "<code>"
	if b.Lang != "" {
		lang := html.EscapeString(b.Lang)
		open = `<code class="language-` + lang + `" lang="` + lang + `">`
	}
	return "<!-- wp:code -->\n<pre class=\"wp-block-code\">" + open + body + "</code></pre>\n<!-- /wp:code -->"
}

func renderQuote(b Block, images ImageMap) string {
	lines := make([]string, 0, len(b.Lines))
	for _, l := range b.Lines {
		lines = append(lines, stripQuotePrefix(l))
	}
	text := FormatInline(joinLines(lines), images)
	return "<!-- wp:quote -->\n<blockquote class=\"wp-block-quote\"><p>" + text + "</p></blockquote>\n<!-- /wp:quote -->"
}

// CalloutInfo is the parsed form of an Obsidian callout header
// `> [!kind]<fold>? <title>?`. Fold marker + means foldable and expanded,
// - foldable and collapsed, absent not foldable.
type CalloutInfo struct {
	Kind     string
	Title    string
	Foldable bool
	Folded   bool
}

// ParseCallout parses the header line of a callout block. A missing title
// defaults to the kind with its first letter capitalized.
func ParseCallout(header string) (CalloutInfo, bool) {
	m := reCallout.FindStringSubmatch(header)
	if m == nil {
		return CalloutInfo{}, false
	}
	info := CalloutInfo{
		Kind:     strings.ToLower(m[1]),
		Title:    strings.TrimSpace(m[3]),
		Foldable: m[2] != "",
		Folded:   m[2] == "-",
	}
	if info.Title == "" {
		info.Title = strings.ToUpper(info.Kind[:1]) + info.Kind[1:]
	}
	return info, true
}

func renderCallout(b Block, images ImageMap) string {
	info, ok := ParseCallout(b.Lines[0])
	if !ok {
		return renderQuote(b, images)
	}
	var body []string
	for _, l := range b.Lines[1:] {
		if s := stripQuotePrefix(l); strings.TrimSpace(s) != "" {
			body = append(body, s)
		}
	}
	class := "callout callout-" + info.Kind
	if info.Foldable {
		class += " is-foldable"
		if info.Folded {
			class += " is-folded"
		}
	}
	out := `<!-- wp:quote {"className":"` + class + `"} -->` + "\n" +
		`<blockquote class="wp-block-quote ` + class + `"><p><strong>` +
		FormatInline(info.Title, images) + "</strong></p>"
	if len(body) > 0 {
		out += "<p>" + FormatInline(joinLines(body), images) + "</p>"
	}
	return out + "</blockquote>\n<!-- /wp:quote -->"
}

func renderList(b Block, images ImageMap) string {
	ordered := reOrderedItem.MatchString(b.Lines[0])
	items := listItems(b.Lines)
	tag := "ul"
	attrs := ""
	if ordered {
		tag = "ol"
		attrs = ` {"ordered":true}`
	}
	var sb strings.Builder
	sb.WriteString("<!-- wp:list" + attrs + " -->\n<" + tag + ">")
	for _, it := range items {
		sb.WriteString("<li>" + FormatInline(it, images) + "</li>")
	}
	sb.WriteString("</" + tag + ">\n<!-- /wp:list -->")
	return sb.String()
}

// listItems joins runs of lines into items: a marker line starts a new item,
// an indented continuation appends to the previous item with a single space.
func listItems(lines []string) []string {
	var items []string
	for _, l := range lines {
		if reItemMarker.MatchString(l) {
			items = append(items, strings.TrimSpace(reItemMarker.ReplaceAllString(l, "")))
			continue
		}
		if len(items) > 0 {
			items[len(items)-1] += " " + strings.TrimSpace(l)
		}
	}
	return items
}

func renderImage(b Block, images ImageMap) string {
	line := strings.TrimSpace(b.Lines[0])
	var path, alt string
	if m := reEmbedImage.FindStringSubmatch(line); m != nil {
		path, alt = m[1], m[2]
	} else if m := reInlineImage.FindStringSubmatch(line); m != nil {
		path, alt = m[2], m[1]
	}
	src := path
	if u, ok := images[path]; ok {
		src = u
	}
	return "<!-- wp:image -->\n<figure class=\"wp-block-image\"><img src=\"" + src +
		"\" alt=\"" + html.EscapeString(alt) + "\"/></figure>\n<!-- /wp:image -->"
}

func stripQuotePrefix(l string) string {
	l = strings.TrimPrefix(l, ">")
	return strings.TrimPrefix(l, " ")
}

func joinLines(lines []string) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		if s := strings.TrimSpace(l); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}
