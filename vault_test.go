package notepress

import (
	"os"
	"path/filepath"
	"testing"
)

func setupTestVault(t *testing.T) DirVault {
	t.Helper()
	root := t.TempDir()
	mustWrite := func(rel string, data []byte) {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	mustWrite("posts/note.md", []byte("---\ntitle: T\n---\nbody"))
	mustWrite("assets/pic.png", []byte{1, 2})
	mustWrite("posts/local.png", []byte{3})
	return DirVault{Root: root}
}

func TestDirVaultReadWrite(t *testing.T) {
	v := setupTestVault(t)
	doc, err := v.ReadNote("posts/note.md")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if doc == "" {
		t.Fatal("empty note")
	}
	if err := v.WriteNote("posts/note.md", doc+"\nmore"); err != nil {
		t.Fatalf("write: %v", err)
	}
	doc2, err := v.ReadNote("posts/note.md")
	if err != nil || doc2 == doc {
		t.Errorf("write not visible: %v", err)
	}
}

func TestDirVaultResolve(t *testing.T) {
	v := setupTestVault(t)
	tests := []struct {
		link string
		want string
		ok   bool
	}{
		{"assets/pic.png", "assets/pic.png", true},                           // vault-absolute
		{"local.png", filepath.Join("posts", "local.png"), true},             // relative to the note
		{"deep/nested/local.png", filepath.Join("posts", "local.png"), true}, // sibling fallback
		{"missing.png", "", false},
	}
	for _, tt := range tests {
		got, ok := v.Resolve(tt.link, "posts/note.md")
		if ok != tt.ok || got != tt.want {
			t.Errorf("Resolve(%q) = %q,%v want %q,%v", tt.link, got, ok, tt.want, tt.ok)
		}
	}
}
