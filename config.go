package notepress

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all settings for a publisher. It is read-only during a
// publish run.
type Config struct {
	SiteURL     string // WordPress site root, e.g. https://example.com
	Username    string
	AppPassword string // WordPress application password

	VaultDir   string // vault root directory (default ".")
	PublishDir string // vault-relative folder notes may be published from ("" = whole vault)

	DefaultStatus Status // status when neither override nor frontmatter sets one
	UploadImages  bool   // upload referenced local images before rendering
	MaxImageWidth int    // downscale raster images wider than this before upload (0 = off)

	HistoryPath string // SQLite publish journal (default "data/notepress.db")
	PreviewAddr string // preview server listen address (default ":8940")
}

func (c *Config) setDefaults() {
	if c.VaultDir == "" {
		c.VaultDir = "."
	}
	if c.DefaultStatus == "" {
		c.DefaultStatus = StatusDraft
	}
	if c.HistoryPath == "" {
		c.HistoryPath = "data/notepress.db"
	}
	if c.PreviewAddr == "" {
		c.PreviewAddr = ":8940"
	}
}

// LoadConfig builds a Config from environment variables, reading a .env
// file first when one exists.
func LoadConfig() Config {
	_ = godotenv.Load()
	cfg := Config{
		SiteURL:     strings.TrimSuffix(os.Getenv("NOTEPRESS_SITE_URL"), "/"),
		Username:    os.Getenv("NOTEPRESS_USERNAME"),
		AppPassword: os.Getenv("NOTEPRESS_APP_PASSWORD"),
		VaultDir:    os.Getenv("NOTEPRESS_VAULT_DIR"),
		PublishDir:  os.Getenv("NOTEPRESS_PUBLISH_DIR"),
		HistoryPath: os.Getenv("NOTEPRESS_HISTORY_PATH"),
		PreviewAddr: os.Getenv("NOTEPRESS_PREVIEW_ADDR"),
	}
	if s := os.Getenv("NOTEPRESS_DEFAULT_STATUS"); validStatus(s) {
		cfg.DefaultStatus = Status(s)
	}
	cfg.UploadImages = !strings.EqualFold(os.Getenv("NOTEPRESS_UPLOAD_IMAGES"), "false")
	if v := os.Getenv("NOTEPRESS_MAX_IMAGE_WIDTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxImageWidth = n
		}
	}
	cfg.setDefaults()
	return cfg
}
