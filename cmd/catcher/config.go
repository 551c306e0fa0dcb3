package main

import (
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/pose-catcher/internal/config"
)

var flagConfigResolved bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Print the embedded default configuration as YAML. Save it to
~/.catcher/configs/catcher.yaml or ./configs/catcher.yaml and edit it to
change labels, speeds or the level schedule.

With --resolved, prints the configuration after --config, --difficulty
and validation have been applied.

Examples:
  catcher config > ~/.catcher/configs/catcher.yaml
  catcher config --resolved --difficulty hard`,
	Run: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigResolved, "resolved", false, "Print the effective configuration")
}

func runConfig(_ *cobra.Command, _ []string) {
	if !flagConfigResolved {
		//nolint:errcheck // Nothing useful to do if stdout is gone
		os.Stdout.Write(config.GetDefaultYAML())
		return
	}

	cfg, err := loadConfig(newLogger("catcher"))
	if err != nil {
		fatal("%v", err)
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		fatal("cannot encode config: %v", err)
	}
	enc.Close()
}
