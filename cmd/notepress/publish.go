package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eviken/notepress"
)

var publishStatus string

var publishCmd = &cobra.Command{
	Use:   "publish <note>",
	Short: "Publish a note, creating or updating its WordPress post",
	Args:  cobra.ExactArgs(1),
	RunE:  runPublish,
}

func init() {
	publishCmd.Flags().StringVar(&publishStatus, "status", "", "override the post status (draft|publish|private|future)")
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	p, cleanup, err := newPublisher(true)
	if err != nil {
		return err
	}
	defer cleanup()

	opts := notepress.PublishOptions{}
	if publishStatus != "" {
		opts.Status = notepress.Status(publishStatus)
	}

	res, err := p.Publish(context.Background(), args[0], opts)
	if err != nil {
		return fmt.Errorf("publish failed: %w", err)
	}

	verb := "Updated"
	if res.Created {
		verb = "Created"
	}
	cmd.Printf("%s post %d (%s): %s\n", verb, res.PostID, res.Status, res.URL)
	for _, d := range res.Diagnostics {
		cmd.Printf("  skipped %s %q: %s\n", d.Stage, d.Item, d.Message)
	}
	return nil
}
