// Package notepress publishes Obsidian-flavored markdown notes to a
// WordPress site. A publish run parses the note's frontmatter, uploads
// referenced local images, converts the body to Gutenberg block markup,
// resolves category and tag names to term ids, creates or updates the
// remote post, and writes the server-assigned id and URL back into the
// note's frontmatter so the next publish updates the same post.
package notepress

import (
	"context"
	"log/slog"

	"github.com/eviken/notepress/wordpress"
)

// API is the remote capability a publish run needs. *wordpress.Client
// implements it; tests substitute fakes.
type API interface {
	Me(ctx context.Context) (wordpress.User, error)
	CreatePost(ctx context.Context, p wordpress.Payload) (wordpress.Post, error)
	UpdatePost(ctx context.Context, id int, p wordpress.Payload) (wordpress.Post, error)
	UploadMedia(ctx context.Context, filename, mimeType string, data []byte) (wordpress.Media, error)
	FindTerm(ctx context.Context, taxonomy, name string) (*wordpress.Term, error)
	CreateTerm(ctx context.Context, taxonomy, name string) (wordpress.Term, error)
}

// Publisher runs publish operations against one site. It holds no mutable
// state across runs besides the read-only configuration; concurrent
// publishes of different notes are safe, concurrent publishes of the same
// note are unguarded.
type Publisher struct {
	cfg     Config
	api     API
	vault   Vault
	history *History
	log     *slog.Logger
}

// Option configures additional Publisher behavior.
type Option func(*Publisher)

// WithHistory journals successful publishes to h.
func WithHistory(h *History) Option {
	return func(p *Publisher) { p.history = h }
}

// WithLogger replaces the default slog logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Publisher) { p.log = l }
}

// New creates a Publisher for the given site configuration, API and vault.
func New(cfg Config, api API, vault Vault, opts ...Option) *Publisher {
	cfg.setDefaults()
	p := &Publisher{
		cfg:   cfg,
		api:   api,
		vault: vault,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
