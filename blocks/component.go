package blocks

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Component returns a templ.Component that renders body's converted block
// markup, for serving a local preview of a note before it is published.
func Component(body string, images ImageMap) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, Convert(body, images))
		return err
	})
}
