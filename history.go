package notepress

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// History journals successful publishes to a local SQLite database. It is
// advisory only: the frontmatter's wp_id stays the sole create-vs-update
// mechanism.
type History struct {
	db *sql.DB
}

// PublishRecord is one journaled publish.
type PublishRecord struct {
	Note        string
	PostID      int
	URL         string
	Status      string
	Created     bool
	PublishedAt string // RFC3339
}

// OpenHistory opens (or creates) the journal database at path, ensuring
// the data directory exists.
func OpenHistory(path string) (*History, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL so a concurrent preview or second publish never blocks on writes.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, err
	}
	h := &History{db: db}
	if err := h.ensureSchema(); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *History) ensureSchema() error {
	_, err := h.db.Exec(`
CREATE TABLE IF NOT EXISTS publishes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    note TEXT NOT NULL,
    post_id INTEGER NOT NULL,
    url TEXT NOT NULL,
    status TEXT NOT NULL,
    created INTEGER NOT NULL,
    published_at TEXT NOT NULL
);
`)
	return err
}

// Close closes the underlying database connection.
func (h *History) Close() error {
	return h.db.Close()
}

// Record appends one publish to the journal.
func (h *History) Record(r PublishRecord) error {
	created := 0
	if r.Created {
		created = 1
	}
	_, err := h.db.Exec(`INSERT INTO publishes (note, post_id, url, status, created, published_at) VALUES (?, ?, ?, ?, ?, ?)`,
		r.Note, r.PostID, r.URL, r.Status, created, r.PublishedAt)
	return err
}

// List returns the most recent publishes, newest first. limit <= 0 means
// no limit.
func (h *History) List(limit int) ([]PublishRecord, error) {
	q := `SELECT note, post_id, url, status, created, published_at FROM publishes ORDER BY id DESC`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = h.db.Query(q+` LIMIT ?`, limit)
	} else {
		rows, err = h.db.Query(q)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []PublishRecord
	for rows.Next() {
		var r PublishRecord
		var created int
		if err := rows.Scan(&r.Note, &r.PostID, &r.URL, &r.Status, &created, &r.PublishedAt); err != nil {
			return nil, err
		}
		r.Created = created == 1
		recs = append(recs, r)
	}
	return recs, rows.Err()
}
