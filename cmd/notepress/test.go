package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Verify the configured WordPress connection",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, cleanup, err := newPublisher(false)
		if err != nil {
			return err
		}
		defer cleanup()

		user, err := p.TestConnection(context.Background())
		if err != nil {
			return fmt.Errorf("connection failed: %w", err)
		}
		cmd.Printf("Connected as %s (id %d)\n", user.Name, user.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(testCmd)
}
