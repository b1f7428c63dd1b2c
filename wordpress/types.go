// Package wordpress is a minimal client for the WordPress REST API v2,
// covering the handful of endpoints a publish run needs: the connection
// test, post create/update, media upload, and taxonomy get-or-create.
package wordpress

// User is the authenticated account returned by GET /users/me.
type User struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Payload is the request body for post create and update calls. Empty
// fields are left out so the server keeps its own values.
type Payload struct {
	Title      string `json:"title,omitempty"`
	Content    string `json:"content,omitempty"`
	Status     string `json:"status,omitempty"`
	Slug       string `json:"slug,omitempty"`
	Excerpt    string `json:"excerpt,omitempty"`
	Date       string `json:"date,omitempty"`
	Categories []int  `json:"categories,omitempty"`
	Tags       []int  `json:"tags,omitempty"`
}

// Post is the server's representation of a created or updated post.
type Post struct {
	ID     int    `json:"id"`
	Link   string `json:"link"`
	Status string `json:"status"`
	Slug   string `json:"slug"`
}

// Media is the result of an image upload.
type Media struct {
	ID        int    `json:"id"`
	SourceURL string `json:"source_url"`
}

// Term is a category or tag with its server-assigned identifier.
type Term struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
