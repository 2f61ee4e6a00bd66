package main

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/AnkushinDaniil/multiplane/entity/settings"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "multiplane",
		Short: "Settings for the multiplane simulations",
		Long: `multiplane loads the parameters shared by the multiplane simulation
and analysis scripts: camera noise model, imaging geometry, photon counts,
PSF sizes and the affine mappings between the imaging planes.

Settings are the built-in defaults, optionally overridden by a YAML file
(--config) and the ` + settings.VariantEnv + ` environment variable.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			levelName, _ := cmd.Flags().GetString("log-level")
			level, err := log.ParseLevel(levelName)
			if err != nil {
				return fmt.Errorf("failed to parse log level: %w", err)
			}
			log.SetLevel(level)
			log.SetOutput(cmd.ErrOrStderr())
			return nil
		},
	}

	rootCmd.PersistentFlags().String("config", "", "YAML settings file")
	rootCmd.PersistentFlags().String("variant", "", "Mapping variant (overrides config and environment)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level")

	rootCmd.AddCommand(
		newVersionCmd(),
		newShowCmd(),
		newVariantsCmd(),
		newMappingCmd(),
		newPlotCmd(),
		newPSFCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "multiplane version %s\n", version)
		},
	}
}

// loadSettings resolves the settings for a command: defaults, --config,
// then --variant or the environment.
func loadSettings(cmd *cobra.Command) (*settings.Settings, error) {
	path, _ := cmd.Flags().GetString("config")
	name, _ := cmd.Flags().GetString("variant")

	var (
		s   *settings.Settings
		err error
	)
	if name == "" {
		s, err = settings.LoadConfig(path)
	} else {
		f := &settings.File{}
		if path != "" {
			f, err = settings.ReadFile(path)
			if err != nil {
				return nil, err
			}
		}
		f.MappingVariant = name
		s, err = f.Settings()
	}
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"config":  path,
		"variant": s.Variant(),
		"custom":  s.Custom(),
	}).Debug("Settings loaded")
	return s, nil
}
