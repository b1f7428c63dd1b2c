package blocks

import (
	"strings"
	"testing"
)

func TestConvertHeadingAndParagraph(t *testing.T) {
	got := Convert("# Title\n\nHello **world**.", nil)
	if !strings.Contains(got, `<!-- wp:heading {"level":1} -->`) {
		t.Errorf("missing heading delimiter: %q", got)
	}
	if !strings.Contains(got, `<h1 class="wp-block-heading">Title</h1>`) {
		t.Errorf("missing h1: %q", got)
	}
	if !strings.Contains(got, "<strong>world</strong>") {
		t.Errorf("paragraph should be inline-formatted: %q", got)
	}
	if !strings.Contains(got, "<!-- wp:paragraph -->") {
		t.Errorf("missing paragraph delimiter: %q", got)
	}
}

func TestRenderHeadingLevelTwoOmitsAttrs(t *testing.T) {
	got := Convert("## Sub", nil)
	if !strings.Contains(got, "<!-- wp:heading -->") {
		t.Errorf("h2 should omit the level attribute: %q", got)
	}
	if !strings.Contains(got, "<h2 ") {
		t.Errorf("missing h2 tag: %q", got)
	}
}

func TestRenderCodeEscapesContent(t *testing.T) {
	got := Convert("```go\nif a < b && c > \"d\" {\n```", nil)
	if !strings.Contains(got, "a &lt; b &amp;&amp; c &gt; &#34;d&#34;") {
		t.Errorf("code content must escape HTML metacharacters: %q", got)
	}
	if !strings.Contains(got, `class="language-go"`) {
		t.Errorf("language tag should become a class: %q", got)
	}
	if strings.Contains(got, "<strong>") {
		t.Errorf("code content must not be inline-formatted: %q", got)
	}
}

func TestRenderCodeWithoutLanguage(t *testing.T) {
	got := Convert("```\nx\n```", nil)
	if strings.Contains(got, "language-") {
		t.Errorf("no language class expected: %q", got)
	}
}

func TestRenderQuote(t *testing.T) {
	got := Convert("> line one\n> line *two*", nil)
	if !strings.Contains(got, `<blockquote class="wp-block-quote"><p>line one line <em>two</em></p></blockquote>`) {
		t.Errorf("quote render = %q", got)
	}
}

func TestParseCallout(t *testing.T) {
	tests := []struct {
		header string
		want   CalloutInfo
	}{
		{"> [!warning]- Careful", CalloutInfo{Kind: "warning", Title: "Careful", Foldable: true, Folded: true}},
		{"> [!tip]+ Open me", CalloutInfo{Kind: "tip", Title: "Open me", Foldable: true, Folded: false}},
		{"> [!note]", CalloutInfo{Kind: "note", Title: "Note"}},
		{"> [!INFO] Mixed", CalloutInfo{Kind: "info", Title: "Mixed"}},
	}
	for _, tt := range tests {
		got, ok := ParseCallout(tt.header)
		if !ok {
			t.Errorf("ParseCallout(%q) did not match", tt.header)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCallout(%q) = %+v, want %+v", tt.header, got, tt.want)
		}
	}
}

func TestRenderCallout(t *testing.T) {
	got := Convert("> [!warning]- Careful\n> Watch out", nil)
	if !strings.Contains(got, "callout callout-warning is-foldable is-folded") {
		t.Errorf("callout classes wrong: %q", got)
	}
	if !strings.Contains(got, "<p><strong>Careful</strong></p>") {
		t.Errorf("title should be bolded above the body: %q", got)
	}
	if !strings.Contains(got, "<p>Watch out</p>") {
		t.Errorf("body missing: %q", got)
	}
}

func TestRenderCalloutLazyBody(t *testing.T) {
	got := Convert("> [!warning]- Careful\nWatch out", nil)
	if !strings.Contains(got, "callout callout-warning is-foldable is-folded") {
		t.Errorf("callout classes wrong: %q", got)
	}
	if !strings.Contains(got, "<p>Watch out</p>") {
		t.Errorf("unprefixed body line must render inside the callout: %q", got)
	}
}

func TestRenderCalloutDefaultTitle(t *testing.T) {
	got := Convert("> [!tip]\n> body", nil)
	if !strings.Contains(got, "<strong>Tip</strong>") {
		t.Errorf("missing title should default to capitalized kind: %q", got)
	}
}

func TestRenderLists(t *testing.T) {
	got := Convert("1. first\n2. second", nil)
	if !strings.Contains(got, `<!-- wp:list {"ordered":true} -->`) || !strings.Contains(got, "<ol>") {
		t.Errorf("ordered list render = %q", got)
	}
	got = Convert("- a\n- b", nil)
	if !strings.Contains(got, "<!-- wp:list -->") || !strings.Contains(got, "<ul><li>a</li><li>b</li></ul>") {
		t.Errorf("unordered list render = %q", got)
	}
}

func TestRenderListContinuation(t *testing.T) {
	got := Convert("- first part\n  and more\n- second", nil)
	if !strings.Contains(got, "<li>first part and more</li>") {
		t.Errorf("continuation should join with a single space: %q", got)
	}
}

func TestRenderRule(t *testing.T) {
	got := Convert("---", nil)
	if !strings.Contains(got, "<!-- wp:separator -->") || !strings.Contains(got, "<hr") {
		t.Errorf("rule render = %q", got)
	}
}

func TestRenderImageFallback(t *testing.T) {
	got := Convert("![[photo.png]]", nil)
	if !strings.Contains(got, `<img src="photo.png"`) {
		t.Errorf("unresolved image must use the literal local path: %q", got)
	}
	if !strings.Contains(got, "<!-- wp:image -->") {
		t.Errorf("missing image block delimiter: %q", got)
	}
}

func TestRenderImageResolved(t *testing.T) {
	images := ImageMap{"img/shot.png": "https://site/wp-content/uploads/shot.png"}
	got := Convert("![screenshot](img/shot.png)", images)
	if !strings.Contains(got, `src="https://site/wp-content/uploads/shot.png"`) {
		t.Errorf("image should resolve through the map: %q", got)
	}
	if !strings.Contains(got, `alt="screenshot"`) {
		t.Errorf("alt text missing: %q", got)
	}
}

func TestRenderBlocksJoinedByBlankLine(t *testing.T) {
	got := Convert("one\n\ntwo", nil)
	if strings.Count(got, "\n\n") != 1 {
		t.Errorf("blocks should be separated by exactly one blank line: %q", got)
	}
}
