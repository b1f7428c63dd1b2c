package notepress

import (
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Status is a WordPress post status.
type Status string

const (
	StatusDraft   Status = "draft"
	StatusPublish Status = "publish"
	StatusPrivate Status = "private"
	StatusFuture  Status = "future"
)

func validStatus(s string) bool {
	switch Status(s) {
	case StatusDraft, StatusPublish, StatusPrivate, StatusFuture:
		return true
	}
	return false
}

// Frontmatter is the recognized metadata set of a note. Zero values mean
// "not set". Unrecognized keys in the source document are not modeled and
// therefore dropped on round-trip.
type Frontmatter struct {
	Title      string
	Slug       string
	Status     Status
	Excerpt    string
	Date       string // ISO-8601, not validated for calendar correctness
	Categories []string
	Tags       []string
	PostID     int    // wp_id, set after the first successful create
	PostURL    string // wp_url, refreshed on every publish
}

// frontmatter key order is fixed; Marshal always emits in this order.
var fmKeys = []string{"title", "slug", "status", "excerpt", "date", "categories", "tags", "wp_id", "wp_url"}

// SplitFrontmatter separates a document into its raw frontmatter YAML and
// body. The opening delimiter must be the very first line; without a
// well-formed block it returns ("", doc, false).
func SplitFrontmatter(doc string) (raw, body string, ok bool) {
	lines := strings.Split(doc, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], "\r") != "---" {
		return "", doc, false
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\r") == "---" {
			return strings.Join(lines[1:i], "\n"), strings.Join(lines[i+1:], "\n"), true
		}
	}
	return "", doc, false
}

// ParseFrontmatter decodes the leading metadata block of doc. Parsing is
// schema-directed: each recognized key is coerced to its declared type and
// a coercion failure drops that single field. Malformed or absent
// frontmatter yields an empty set, never an error.
func ParseFrontmatter(doc string) Frontmatter {
	raw, _, ok := SplitFrontmatter(doc)
	if !ok {
		return Frontmatter{}
	}
	var m map[string]any
	if err := yaml.Unmarshal([]byte(raw), &m); err != nil {
		return Frontmatter{}
	}
	var fm Frontmatter
	fm.Title = asString(m["title"])
	fm.Slug = asString(m["slug"])
	if s := asString(m["status"]); validStatus(s) {
		fm.Status = Status(s)
	}
	fm.Excerpt = asString(m["excerpt"])
	fm.Date = asString(m["date"])
	fm.Categories = asStringList(m["categories"])
	fm.Tags = asStringList(m["tags"])
	fm.PostID = asInt(m["wp_id"])
	fm.PostURL = asString(m["wp_url"])
	return fm
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case int:
		return strconv.Itoa(s)
	case time.Time:
		// yaml.v3 resolves unquoted ISO-8601 scalars into time.Time.
		if s.Hour() == 0 && s.Minute() == 0 && s.Second() == 0 {
			return s.Format("2006-01-02")
		}
		return s.Format("2006-01-02T15:04:05")
	}
	return ""
}

func asInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i
		}
	}
	return 0
}

// asStringList accepts either a scalar (normalized to a one-element list)
// or a sequence; non-string sequence elements are dropped.
func asStringList(v any) []string {
	switch l := v.(type) {
	case string:
		if strings.TrimSpace(l) == "" {
			return nil
		}
		return []string{l}
	case []any:
		var out []string
		for _, e := range l {
			if s := asString(e); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Marshal serializes the recognized, defined fields in the fixed key order,
// omitting empty lists and undefined scalars. The result is the YAML body
// without the --- delimiters.
func (fm Frontmatter) Marshal() (string, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	add := func(key, val string) {
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: val})
	}
	addList := func(key string, vals []string) {
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, v := range vals {
			seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v})
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: key}, seq)
	}
	for _, key := range fmKeys {
		switch key {
		case "title":
			if fm.Title != "" {
				add(key, fm.Title)
			}
		case "slug":
			if fm.Slug != "" {
				add(key, fm.Slug)
			}
		case "status":
			if fm.Status != "" {
				add(key, string(fm.Status))
			}
		case "excerpt":
			if fm.Excerpt != "" {
				add(key, fm.Excerpt)
			}
		case "date":
			if fm.Date != "" {
				add(key, fm.Date)
			}
		case "categories":
			if len(fm.Categories) > 0 {
				addList(key, fm.Categories)
			}
		case "tags":
			if len(fm.Tags) > 0 {
				addList(key, fm.Tags)
			}
		case "wp_id":
			if fm.PostID != 0 {
				root.Content = append(root.Content,
					&yaml.Node{Kind: yaml.ScalarNode, Value: key},
					&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(fm.PostID)})
			}
		case "wp_url":
			if fm.PostURL != "" {
				add(key, fm.PostURL)
			}
		}
	}
	out, err := yaml.Marshal(root)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// merge overlays over onto fm; set fields of over win on collision.
func (fm Frontmatter) merge(over Frontmatter) Frontmatter {
	if over.Title != "" {
		fm.Title = over.Title
	}
	if over.Slug != "" {
		fm.Slug = over.Slug
	}
	if over.Status != "" {
		fm.Status = over.Status
	}
	if over.Excerpt != "" {
		fm.Excerpt = over.Excerpt
	}
	if over.Date != "" {
		fm.Date = over.Date
	}
	if len(over.Categories) > 0 {
		fm.Categories = over.Categories
	}
	if len(over.Tags) > 0 {
		fm.Tags = over.Tags
	}
	if over.PostID != 0 {
		fm.PostID = over.PostID
	}
	if over.PostURL != "" {
		fm.PostURL = over.PostURL
	}
	return fm
}

// UpdateFrontmatter merges partial over the document's parsed metadata and
// replaces the whole frontmatter block with the freshly serialized result.
// If the document has no frontmatter, one is created and separated from the
// body by a blank line. Applying the same partial twice is byte-for-byte
// idempotent.
func UpdateFrontmatter(doc string, partial Frontmatter) (string, error) {
	merged := ParseFrontmatter(doc).merge(partial)
	block, err := merged.Marshal()
	if err != nil {
		return "", err
	}
	_, body, had := SplitFrontmatter(doc)
	if !had {
		body = doc
	}
	var sb strings.Builder
	sb.WriteString("---\n")
	sb.WriteString(block)
	sb.WriteString("---\n")
	if !had && body != "" {
		sb.WriteString("\n")
	}
	sb.WriteString(body)
	return sb.String(), nil
}
