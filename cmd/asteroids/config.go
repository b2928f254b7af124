package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-asteroids/internal/config"
	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids"
)

var (
	flagConfigCheck  string
	flagConfigPreset string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print or check game configuration",
	Long: `Without flags, print the built-in default configuration. Save it to
~/.asteroids/configs/asteroids.yaml or ./configs/asteroids.yaml to
override values; fields left out keep their defaults.

With --check, load a file over the defaults, validate it, and print
the effective configuration.

Examples:
  asteroids config > ~/.asteroids/configs/asteroids.yaml
  asteroids config --check ./my-asteroids.yaml
  asteroids config --check ./my-asteroids.yaml --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagConfigCheck, "check", "", "Validate a config file and print the result")
	configCmd.Flags().StringVar(&flagConfigPreset, "difficulty", "", "Apply a difficulty preset to the printed result")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	if flagConfigCheck == "" && flagConfigPreset == "" {
		_, err := out.Write(config.GetDefaultYAML(asteroids.GameID))
		return err
	}

	cfg, err := config.LoadAsteroids(flagConfigCheck)
	if err != nil {
		return err
	}
	if flagConfigPreset != "" {
		preset, ok := config.ParsePreset(flagConfigPreset)
		if !ok {
			return fmt.Errorf("unknown difficulty %q", flagConfigPreset)
		}
		config.ApplyAsteroidsPreset(&cfg, preset)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
