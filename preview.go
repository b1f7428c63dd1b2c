package notepress

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/eviken/notepress/blocks"
)

// Preview serves the converted block markup of one note on a local HTTP
// server, so a note can be inspected before it is published. Images are
// rendered with their literal local paths; no uploads happen.
func (p *Publisher) Preview(notePath string) error {
	if err := p.validate(notePath); err != nil && !errors.Is(err, ErrMissingCredentials) {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			p.log.Info("preview request", "uri", v.URI, "status", v.Status)
			return nil
		},
	}))

	e.GET("/", func(c echo.Context) error {
		doc, err := p.vault.ReadNote(notePath)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		fm := ParseFrontmatter(doc)
		_, body, _ := SplitFrontmatter(doc)
		title := fm.Title
		if title == "" {
			title = notePath
		}
		return render(c, http.StatusOK, previewPage(title, body))
	})

	p.log.Info("preview listening", "addr", p.cfg.PreviewAddr, "note", notePath)
	if err := e.Start(p.cfg.PreviewAddr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// render writes a templ component as an HTML response.
func render(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// previewPage wraps the converted body in a minimal HTML shell.
func previewPage(title, body string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, "<!DOCTYPE html><html><head><meta charset=\"utf-8\"><title>%s</title></head><body>", html.EscapeString(title)); err != nil {
			return err
		}
		if err := blocks.Component(body, nil).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</body></html>")
		return err
	})
}
