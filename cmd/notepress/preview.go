package main

import (
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview <note>",
	Short: "Serve a local HTML preview of a note's converted markup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, cleanup, err := newPublisher(false)
		if err != nil {
			return err
		}
		defer cleanup()
		return p.Preview(args[0])
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
}
