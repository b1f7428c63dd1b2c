package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const apiBase = "/wp-json/wp/v2"

// APIError is a decoded non-2xx response from the REST API.
type APIError struct {
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("wordpress: %s (%d %s)", e.Message, e.StatusCode, e.Code)
	}
	return fmt.Sprintf("wordpress: request failed with status %d", e.StatusCode)
}

// Client issues authenticated requests against a WordPress site using HTTP
// Basic auth with an application password.
type Client struct {
	baseURL     string
	username    string
	appPassword string
	httpClient  *http.Client
}

// NewClient creates a Client for the site at siteURL (the site root, not
// the API root).
func NewClient(siteURL, username, appPassword string) *Client {
	return &Client{
		baseURL:     strings.TrimSuffix(siteURL, "/") + apiBase,
		username:    username,
		appPassword: appPassword,
		httpClient:  http.DefaultClient,
	}
}

// do sends a request to the relative endpoint and decodes the JSON response
// into out. Responses with status >= 400 are decoded into an *APIError.
func (c *Client) do(ctx context.Context, method, endpoint string, contentType string, body io.Reader, extraHeader http.Header, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return fmt.Errorf("wordpress: build request: %w", err)
	}
	req.SetBasicAuth(c.username, c.appPassword)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, vs := range extraHeader {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("wordpress: %s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("wordpress: read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.Unmarshal(data, apiErr)
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("wordpress: decode %s %s: %w", method, endpoint, err)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, method, endpoint string, payload, out any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("wordpress: encode payload: %w", err)
	}
	return c.do(ctx, method, endpoint, "application/json", bytes.NewReader(data), nil, out)
}

// Me fetches the authenticated user; it doubles as the connection test.
func (c *Client) Me(ctx context.Context) (User, error) {
	var u User
	err := c.do(ctx, http.MethodGet, "/users/me", "", nil, nil, &u)
	return u, err
}

// CreatePost creates a new post and returns the server's copy of it.
func (c *Client) CreatePost(ctx context.Context, p Payload) (Post, error) {
	var post Post
	err := c.postJSON(ctx, http.MethodPost, "/posts", p, &post)
	return post, err
}

// UpdatePost overwrites the post with the given id. Last write wins; there
// is no conflict detection against concurrent remote edits.
func (c *Client) UpdatePost(ctx context.Context, id int, p Payload) (Post, error) {
	var post Post
	err := c.postJSON(ctx, http.MethodPut, "/posts/"+strconv.Itoa(id), p, &post)
	return post, err
}

// UploadMedia uploads an image as a binary body.
func (c *Client) UploadMedia(ctx context.Context, filename, mimeType string, data []byte) (Media, error) {
	h := http.Header{}
	h.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	var m Media
	err := c.do(ctx, http.MethodPost, "/media", mimeType, bytes.NewReader(data), h, &m)
	return m, err
}

// FindTerm searches taxonomy ("categories" or "tags") for a term whose name
// matches case-insensitively. Returns nil when no term matches.
func (c *Client) FindTerm(ctx context.Context, taxonomy, name string) (*Term, error) {
	var terms []Term
	endpoint := "/" + taxonomy + "?search=" + url.QueryEscape(name) + "&per_page=100"
	if err := c.do(ctx, http.MethodGet, endpoint, "", nil, nil, &terms); err != nil {
		return nil, err
	}
	for _, t := range terms {
		if strings.EqualFold(t.Name, name) {
			return &t, nil
		}
	}
	return nil, nil
}

// CreateTerm creates a new term in taxonomy.
func (c *Client) CreateTerm(ctx context.Context, taxonomy, name string) (Term, error) {
	var t Term
	err := c.postJSON(ctx, http.MethodPost, "/"+taxonomy, map[string]string{"name": name}, &t)
	return t, err
}
