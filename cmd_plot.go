package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AnkushinDaniil/multiplane/app"
)

func newPlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Render the emitter layout on every plane as HTML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			s, err := loadSettings(cmd)
			if err != nil {
				return fmt.Errorf("failed to load settings: %w", err)
			}
			return app.New(output, s).Run(cmd.Context())
		},
	}

	cmd.Flags().StringP("output", "o", "layout.html", "Output HTML file")
	return cmd
}
