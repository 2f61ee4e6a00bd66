package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AnkushinDaniil/multiplane/entity/mapping"
)

func newMappingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mapping",
		Short: "Inspect the plane to plane mappings",
		Long: `Inspect the affine mappings between imaging planes.

Keys have the form <from>_<to>_<axis>; the coefficients [c0, c1, c2]
give coord = c0 + c1*x + c2*y.

Examples:
  multiplane mapping list
  multiplane mapping get 0_1_x
  multiplane mapping apply 0 1 150 100`,
	}

	cmd.AddCommand(
		newMappingGetCmd(),
		newMappingListCmd(),
		newMappingApplyCmd(),
	)
	return cmd
}

func newMappingGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print the coefficients of one mapping",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return fmt.Errorf("failed to load settings: %w", err)
			}
			c, err := s.MappingByName(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatCoefficients(c))
			return nil
		},
	}
}

func newMappingListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every mapping of the active table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return fmt.Errorf("failed to load settings: %w", err)
			}
			table := s.Mappings()
			for _, key := range table.Keys() {
				c, err := table.Lookup(key)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", key, formatCoefficients(c))
			}
			return nil
		},
	}
}

func newMappingApplyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply <from> <to> <x> <y>",
		Short: "Map a point from one plane to another",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid source plane %q: %w", args[0], err)
			}
			to, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid target plane %q: %w", args[1], err)
			}
			x, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid x %q: %w", args[2], err)
			}
			y, err := strconv.ParseFloat(args[3], 64)
			if err != nil {
				return fmt.Errorf("invalid y %q: %w", args[3], err)
			}

			s, err := loadSettings(cmd)
			if err != nil {
				return fmt.Errorf("failed to load settings: %w", err)
			}
			tr, err := s.Mappings().Transform(from, to)
			if err != nil {
				return err
			}
			mx, my := tr.Apply(x, y)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatFloat(mx), formatFloat(my))
			return nil
		},
	}
}

func formatCoefficients(c mapping.Coefficients) string {
	parts := make([]string, len(c))
	for i, v := range c {
		parts[i] = formatFloat(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
