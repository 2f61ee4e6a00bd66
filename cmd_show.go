package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/AnkushinDaniil/multiplane/app"
	"github.com/AnkushinDaniil/multiplane/entity/format"
)

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the loaded settings",
		Long: `Print the loaded settings.

Examples:
  multiplane show                          # YAML, usable as --config
  multiplane show --format json
  multiplane show --variant x-flip
  multiplane show --format html > layout.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatName, _ := cmd.Flags().GetString("format")
			f, err := format.UnmarshalText(formatName)
			if err != nil {
				return err
			}

			s, err := loadSettings(cmd)
			if err != nil {
				return fmt.Errorf("failed to load settings: %w", err)
			}

			out := cmd.OutOrStdout()
			switch f {
			case format.YAML:
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(s.File()); err != nil {
					return fmt.Errorf("failed to encode settings: %w", err)
				}
				return enc.Close()
			case format.JSON:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(s.File()); err != nil {
					return fmt.Errorf("failed to encode settings: %w", err)
				}
				return nil
			case format.HTML:
				return app.New("", s).Render(cmd.Context(), out)
			default:
				return fmt.Errorf("unsupported format: %s", f)
			}
		},
	}

	cmd.Flags().String("format", "yaml", "Output format: yaml, json or html")
	return cmd
}
