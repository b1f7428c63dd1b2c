package notepress

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseFrontmatterBasic(t *testing.T) {
	doc := strings.Join([]string{
		"---",
		"title: My Post",
		"slug: my-post",
		"status: publish",
		"excerpt: a short one",
		"date: \"2024-12-25T10:00:00\"",
		"categories:",
		"  - Go",
		"  - Programming",
		"tags: [cli, wordpress]",
		"wp_id: 42",
		"wp_url: https://example.com/?p=42",
		"---",
		"",
		"body",
	}, "\n")
	fm := ParseFrontmatter(doc)
	want := Frontmatter{
		Title:      "My Post",
		Slug:       "my-post",
		Status:     StatusPublish,
		Excerpt:    "a short one",
		Date:       "2024-12-25T10:00:00",
		Categories: []string{"Go", "Programming"},
		Tags:       []string{"cli", "wordpress"},
		PostID:     42,
		PostURL:    "https://example.com/?p=42",
	}
	if !reflect.DeepEqual(fm, want) {
		t.Errorf("ParseFrontmatter = %+v, want %+v", fm, want)
	}
}

func TestParseFrontmatterAbsent(t *testing.T) {
	for _, doc := range []string{
		"no frontmatter here",
		"",
		"---\nnever closed",
		"\n---\ntitle: late\n---\n", // delimiter must be the first line
	} {
		if fm := ParseFrontmatter(doc); !reflect.DeepEqual(fm, Frontmatter{}) {
			t.Errorf("ParseFrontmatter(%q) = %+v, want empty", doc, fm)
		}
	}
}

func TestParseFrontmatterScalarToList(t *testing.T) {
	fm := ParseFrontmatter("---\ncategories: Solo\n---\n")
	if !reflect.DeepEqual(fm.Categories, []string{"Solo"}) {
		t.Errorf("scalar category should normalize to one-element list: %v", fm.Categories)
	}
}

func TestParseFrontmatterDropsBadFields(t *testing.T) {
	doc := "---\ntitle: Ok\nwp_id: not-a-number\nstatus: bogus\n---\n"
	fm := ParseFrontmatter(doc)
	if fm.Title != "Ok" {
		t.Errorf("good fields must survive a sibling coercion failure: %+v", fm)
	}
	if fm.PostID != 0 {
		t.Errorf("non-numeric wp_id should be dropped, got %d", fm.PostID)
	}
	if fm.Status != "" {
		t.Errorf("unknown status should be dropped, got %q", fm.Status)
	}
}

func TestFrontmatterRoundTrip(t *testing.T) {
	want := Frontmatter{
		Title:      "Round: Trip",
		Slug:       "round-trip",
		Status:     StatusDraft,
		Date:       "2024-01-02",
		Categories: []string{"One"},
		Tags:       []string{"a", "b"},
		PostID:     7,
		PostURL:    "https://example.com/?p=7",
	}
	block, err := want.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got := ParseFrontmatter("---\n" + block + "---\n")
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip = %+v, want %+v\nyaml:\n%s", got, want, block)
	}
}

func TestMarshalOmitsEmptyAndKeepsOrder(t *testing.T) {
	fm := Frontmatter{Title: "T", Tags: []string{"x"}, PostID: 3}
	block, err := fm.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if strings.Contains(block, "categories") || strings.Contains(block, "slug") {
		t.Errorf("empty fields must be omitted:\n%s", block)
	}
	ti := strings.Index(block, "title:")
	tg := strings.Index(block, "tags:")
	id := strings.Index(block, "wp_id:")
	if !(ti < tg && tg < id) {
		t.Errorf("fixed key order violated:\n%s", block)
	}
}

func TestUpdateFrontmatterIdempotent(t *testing.T) {
	doc := "---\ntitle: Old\nstatus: draft\n---\n\nThe body.\n"
	partial := Frontmatter{PostID: 10, PostURL: "https://e.com/?p=10", Status: StatusPublish}
	once, err := UpdateFrontmatter(doc, partial)
	if err != nil {
		t.Fatalf("UpdateFrontmatter: %v", err)
	}
	twice, err := UpdateFrontmatter(once, partial)
	if err != nil {
		t.Fatalf("UpdateFrontmatter twice: %v", err)
	}
	if once != twice {
		t.Errorf("update must be idempotent:\nonce:\n%s\ntwice:\n%s", once, twice)
	}
	fm := ParseFrontmatter(once)
	if fm.Title != "Old" || fm.PostID != 10 || fm.Status != StatusPublish {
		t.Errorf("merge result wrong: %+v", fm)
	}
	if !strings.Contains(once, "The body.") {
		t.Errorf("body must be preserved:\n%s", once)
	}
}

func TestUpdateFrontmatterCreatesBlock(t *testing.T) {
	got, err := UpdateFrontmatter("Just a body.", Frontmatter{Title: "New"})
	if err != nil {
		t.Fatalf("UpdateFrontmatter: %v", err)
	}
	if !strings.HasPrefix(got, "---\ntitle: New\n---\n\nJust a body.") {
		t.Errorf("created block should be prepended with a blank separator line:\n%s", got)
	}
}

func TestUpdateFrontmatterDropsUnknownKeys(t *testing.T) {
	doc := "---\ntitle: T\ncustom_key: kept-by-nobody\n---\nbody"
	got, err := UpdateFrontmatter(doc, Frontmatter{Slug: "t"})
	if err != nil {
		t.Fatalf("UpdateFrontmatter: %v", err)
	}
	if strings.Contains(got, "custom_key") {
		t.Errorf("unrecognized keys are not preserved on rewrite:\n%s", got)
	}
}
