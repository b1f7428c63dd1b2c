package notepress

import (
	"os"
	"path/filepath"
)

// Vault is the host file access the publisher depends on: reading and
// writing note text, reading image bytes, and resolving a note-relative
// link to an actual file.
type Vault interface {
	ReadNote(path string) (string, error)
	WriteNote(path, text string) error
	ReadBinary(path string) ([]byte, error)
	// Resolve maps an image link found in notePath to a file path, trying
	// the vault root, the note's own folder, and finally the link's bare
	// filename next to the note. Returns false when nothing exists.
	Resolve(link, notePath string) (string, bool)
}

// DirVault is a Vault rooted in a plain directory. Note paths are given
// relative to Root.
type DirVault struct {
	Root string
}

func (v DirVault) abs(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(v.Root, path)
}

func (v DirVault) ReadNote(path string) (string, error) {
	data, err := os.ReadFile(v.abs(path))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (v DirVault) WriteNote(path, text string) error {
	return os.WriteFile(v.abs(path), []byte(text), 0o644)
}

func (v DirVault) ReadBinary(path string) ([]byte, error) {
	return os.ReadFile(v.abs(path))
}

func (v DirVault) Resolve(link, notePath string) (string, bool) {
	noteDir := filepath.Dir(notePath)
	candidates := []string{
		link,
		filepath.Join(noteDir, link),
		filepath.Join(noteDir, filepath.Base(link)),
	}
	for _, c := range candidates {
		if info, err := os.Stat(v.abs(c)); err == nil && !info.IsDir() {
			return c, true
		}
	}
	return "", false
}
