package notepress

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/eviken/notepress/blocks"
	"github.com/eviken/notepress/wordpress"
)

// Configuration and scope failures abort a publish before any network call.
var (
	ErrMissingCredentials = errors.New("notepress: site URL, username and application password are required")
	ErrOutsideScope       = errors.New("notepress: note is outside the publishable folder")
	ErrNotMarkdown        = errors.New("notepress: only .md notes can be published")
)

// PublishOptions tweak a single publish call. The status override takes
// precedence over frontmatter, which takes precedence over the configured
// default.
type PublishOptions struct {
	Status Status
}

// Diagnostic records one non-fatal, skipped item of a publish run. Skipped
// images and unresolvable taxonomy names surface here instead of failing
// the publish.
type Diagnostic struct {
	Stage   string // "image", "category" or "tag"
	Item    string
	Message string
}

// PublishResult is the terminal outcome of a successful publish.
type PublishResult struct {
	Created     bool // false means an existing post was updated
	PostID      int
	URL         string
	Status      Status
	Diagnostics []Diagnostic
}

// Publish runs the whole pipeline for one note. notePath is relative to the
// vault root. Fatal errors are returned; per-image and per-term failures
// are skipped and reported in the result's Diagnostics.
func (p *Publisher) Publish(ctx context.Context, notePath string, opts PublishOptions) (*PublishResult, error) {
	if err := p.validate(notePath); err != nil {
		return nil, err
	}

	doc, err := p.vault.ReadNote(notePath)
	if err != nil {
		return nil, fmt.Errorf("notepress: read note: %w", err)
	}
	fm := ParseFrontmatter(doc)
	_, body, _ := SplitFrontmatter(doc)

	result := &PublishResult{}
	images := blocks.ImageMap{}
	if p.cfg.UploadImages {
		images = p.uploadImages(ctx, notePath, body, result)
	}

	content := blocks.Convert(body, images)

	title := fm.Title
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(notePath), filepath.Ext(notePath))
	}
	slug := fm.Slug
	if slug == "" {
		slug = Slugify(title)
	}
	status := p.cfg.DefaultStatus
	if fm.Status != "" {
		status = fm.Status
	}
	if opts.Status != "" {
		status = opts.Status
	}

	payload := wordpress.Payload{
		Title:      title,
		Content:    content,
		Status:     string(status),
		Slug:       slug,
		Excerpt:    fm.Excerpt,
		Date:       fm.Date,
		Categories: p.resolveTerms(ctx, "categories", FilterEmpty(fm.Categories), result),
		Tags:       p.resolveTerms(ctx, "tags", FilterEmpty(fm.Tags), result),
	}

	var post wordpress.Post
	if fm.PostID > 0 {
		post, err = p.api.UpdatePost(ctx, fm.PostID, payload)
	} else {
		post, err = p.api.CreatePost(ctx, payload)
		result.Created = true
	}
	if err != nil {
		return nil, err
	}
	result.PostID = post.ID
	result.URL = post.Link
	result.Status = Status(post.Status)

	// Write-back makes the next publish an update of the same post. The
	// remote side may have normalized status, so persist its copy.
	writeBack := Frontmatter{PostID: post.ID, PostURL: post.Link, Status: Status(post.Status)}
	updated, err := UpdateFrontmatter(doc, writeBack)
	if err != nil {
		return nil, fmt.Errorf("notepress: serialize frontmatter: %w", err)
	}
	if err := p.vault.WriteNote(notePath, updated); err != nil {
		return nil, fmt.Errorf("notepress: write back post id %d: %w", post.ID, err)
	}

	if p.history != nil {
		rec := PublishRecord{
			Note:        notePath,
			PostID:      post.ID,
			URL:         post.Link,
			Status:      post.Status,
			Created:     result.Created,
			PublishedAt: time.Now().UTC().Format(time.RFC3339),
		}
		if err := p.history.Record(rec); err != nil {
			p.log.Warn("history record failed", "note", notePath, "err", err)
		}
	}
	return result, nil
}

// validate is the authoritative gatekeeping before any read or network
// call: connection settings must be present and the note must be inside
// the publishable scope.
func (p *Publisher) validate(notePath string) error {
	if p.cfg.SiteURL == "" || p.cfg.Username == "" || p.cfg.AppPassword == "" {
		return ErrMissingCredentials
	}
	if !strings.EqualFold(filepath.Ext(notePath), ".md") {
		return ErrNotMarkdown
	}
	if p.cfg.PublishDir != "" {
		rel, err := filepath.Rel(p.cfg.PublishDir, notePath)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return ErrOutsideScope
		}
	}
	return nil
}

// uploadImages resolves and uploads every local image referenced by body.
// External URLs are skipped outright; a single bad image never aborts the
// publish, it is recorded as a diagnostic and left to the literal-path
// fallback at render time.
func (p *Publisher) uploadImages(ctx context.Context, notePath, body string, result *PublishResult) blocks.ImageMap {
	images := blocks.ImageMap{}
	for _, ref := range DiscoverImages(body) {
		if isExternalURL(ref.Path) {
			continue
		}
		if _, done := images[ref.Path]; done {
			continue
		}
		url, err := p.uploadOne(ctx, notePath, ref.Path)
		if err != nil {
			p.log.Warn("image skipped", "note", notePath, "image", ref.Path, "err", err)
			result.Diagnostics = append(result.Diagnostics, Diagnostic{
				Stage: "image", Item: ref.Path, Message: err.Error(),
			})
			continue
		}
		images[ref.Path] = url
	}
	return images
}

func (p *Publisher) uploadOne(ctx context.Context, notePath, link string) (string, error) {
	path, ok := p.vault.Resolve(link, notePath)
	if !ok {
		return "", fmt.Errorf("file not found")
	}
	mimeType, ok := mimeForPath(path)
	if !ok {
		return "", fmt.Errorf("unsupported image type %q", filepath.Ext(path))
	}
	data, err := p.vault.ReadBinary(path)
	if err != nil {
		return "", err
	}
	filename := filepath.Base(path)
	if p.cfg.MaxImageWidth > 0 && (mimeType == "image/jpeg" || mimeType == "image/png") {
		resized, newName, err := downscale(data, filename, p.cfg.MaxImageWidth)
		if err != nil {
			p.log.Warn("downscale failed, uploading original", "image", path, "err", err)
		} else {
			if newName != filename {
				mimeType = "image/jpeg"
			}
			data, filename = resized, newName
		}
	}
	media, err := p.api.UploadMedia(ctx, filename, mimeType, data)
	if err != nil {
		return "", err
	}
	return media.SourceURL, nil
}

// resolveTerms maps taxonomy names to ids, creating missing terms. A
// single name's failure drops that name from the payload and records a
// diagnostic; it is never fatal.
func (p *Publisher) resolveTerms(ctx context.Context, taxonomy string, names []string, result *PublishResult) []int {
	stage := "tag"
	if taxonomy == "categories" {
		stage = "category"
	}
	var ids []int
	for _, name := range names {
		term, err := p.api.FindTerm(ctx, taxonomy, name)
		if err == nil && term == nil {
			var created wordpress.Term
			created, err = p.api.CreateTerm(ctx, taxonomy, name)
			term = &created
		}
		if err != nil {
			p.log.Warn("term skipped", "taxonomy", taxonomy, "name", name, "err", err)
			result.Diagnostics = append(result.Diagnostics, Diagnostic{
				Stage: stage, Item: name, Message: err.Error(),
			})
			continue
		}
		ids = append(ids, term.ID)
	}
	return ids
}

// TestConnection verifies the configured credentials against the site.
func (p *Publisher) TestConnection(ctx context.Context) (wordpress.User, error) {
	if p.cfg.SiteURL == "" || p.cfg.Username == "" || p.cfg.AppPassword == "" {
		return wordpress.User{}, ErrMissingCredentials
	}
	return p.api.Me(ctx)
}
