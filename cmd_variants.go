package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AnkushinDaniil/multiplane/entity/variant"
)

func newVariantsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "variants",
		Short: "List the mapping variants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return fmt.Errorf("failed to load settings: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, v := range variant.All {
				marker := " "
				if v == s.Variant() {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %s\n", marker, v)
			}
			if s.Custom() {
				fmt.Fprintln(out, "(active table replaced by mappings from the settings file)")
			}
			return nil
		},
	}
}
