package notepress

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/image/draw"
)

const jpegQuality = 80

// ImageRef is one image reference found in a note body. Multiple references
// may target the same path; uploads are keyed by path, not occurrence.
type ImageRef struct {
	Path string
	Alt  string
	Wiki bool // ![[...]] embed syntax rather than ![alt](...)
}

var (
	reEmbedRef  = regexp.MustCompile(`!\[\[([^\]|]+?)(?:\|([^\]]*?))?\]\]`)
	reInlineRef = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)
)

// DiscoverImages extracts every image reference from body, wiki embeds
// first and then markdown-style images.
func DiscoverImages(body string) []ImageRef {
	var refs []ImageRef
	for _, m := range reEmbedRef.FindAllStringSubmatch(body, -1) {
		refs = append(refs, ImageRef{Path: m[1], Alt: m[2], Wiki: true})
	}
	for _, m := range reInlineRef.FindAllStringSubmatch(body, -1) {
		refs = append(refs, ImageRef{Path: m[2], Alt: m[1]})
	}
	return refs
}

func isExternalURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// mimeTypes is the upload allow-list; extensions outside it are skipped
// with a warning, never an error.
var mimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
}

func mimeForPath(path string) (string, bool) {
	m, ok := mimeTypes[strings.ToLower(filepath.Ext(path))]
	return m, ok
}

// downscale decodes a raster image and, when wider than maxWidth, resizes
// it and re-encodes as JPEG. It returns the new bytes and filename, or the
// input unchanged when no resize applies.
func downscale(data []byte, filename string, maxWidth int) ([]byte, string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxWidth {
		return data, filename, nil
	}
	newH := h * maxWidth / w
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, "", fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), slugifyFilename(filename) + ".jpg", nil
}

// slugifyFilename converts a filename (without extension) to a URL-safe slug.
func slugifyFilename(name string) string {
	ext := filepath.Ext(name)
	return Slugify(strings.TrimSuffix(filepath.Base(name), ext))
}
