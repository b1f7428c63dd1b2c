package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eviken/notepress"
	"github.com/eviken/notepress/wordpress"
)

// version is set at build time via ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:           "notepress",
	Short:         "Publish Obsidian notes to WordPress",
	Long:          "notepress converts Obsidian-flavored markdown to Gutenberg block markup and publishes it through the WordPress REST API.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the notepress version",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("notepress %s\n", version)
		},
	})
}

// newPublisher wires a Publisher from the environment config. withHistory
// controls whether the publish journal is opened (and must be closed by
// the returned func).
func newPublisher(withHistory bool) (*notepress.Publisher, func(), error) {
	cfg := notepress.LoadConfig()
	api := wordpress.NewClient(cfg.SiteURL, cfg.Username, cfg.AppPassword)
	vault := notepress.DirVault{Root: cfg.VaultDir}

	cleanup := func() {}
	var opts []notepress.Option
	if withHistory {
		h, err := notepress.OpenHistory(cfg.HistoryPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open history: %w", err)
		}
		opts = append(opts, notepress.WithHistory(h))
		cleanup = func() { h.Close() }
	}
	return notepress.New(cfg, api, vault, opts...), cleanup, nil
}
