package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AnkushinDaniil/multiplane/entity/psfmodel"
)

func newPSFCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "psf <psf-fft|pupil-fn|spline>",
		Short: "Print the z sampling used to build PSFs of a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := psfmodel.UnmarshalText(args[0])
			if err != nil {
				return err
			}
			s, err := loadSettings(cmd)
			if err != nil {
				return fmt.Errorf("failed to load settings: %w", err)
			}
			zRange, err := s.ZRange(model)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "z_range: %s\n", formatFloat(zRange))
			if model == psfmodel.PSFFFT {
				fmt.Fprintf(out, "z_step: %s\n", formatFloat(s.PSFZStep()))
			}
			fmt.Fprintf(out, "psf_size: %d\n", s.PSFSize())
			return nil
		},
	}
}
