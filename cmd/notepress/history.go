package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eviken/notepress"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past publishes from the local journal",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of entries")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := notepress.LoadConfig()
	h, err := notepress.OpenHistory(cfg.HistoryPath)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer h.Close()

	recs, err := h.List(historyLimit)
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}
	if len(recs) == 0 {
		cmd.Println("No publishes recorded.")
		return nil
	}
	for _, r := range recs {
		verb := "update"
		if r.Created {
			verb = "create"
		}
		cmd.Printf("%s  %-6s  post %-5d  %-8s  %s\n", r.PublishedAt, verb, r.PostID, r.Status, r.Note)
	}
	return nil
}
