package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dossier"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	configPath string
	dbPath     string
}

var rootCmd = &cobra.Command{
	Use:   "dossier",
	Short: "Evidence-gated person intelligence",
	Long: "Dossier builds meeting briefs and deep-research dossiers from an evidence\ngraph, and refuses to emit prose the evidence cannot carry.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlags.configPath, "config", "", "Path to yaml config file")
	rootCmd.PersistentFlags().StringVar(&rootFlags.dbPath, "db", "", "SQLite database path (overrides config)")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(prepCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.Version = version
}

// loadConfig resolves the effective config from flags.
func loadConfig() (dossier.Config, error) {
	cfg := dossier.DefaultConfig()
	if rootFlags.configPath != "" {
		var err error
		cfg, err = dossier.LoadConfig(rootFlags.configPath)
		if err != nil {
			return cfg, err
		}
	}
	if rootFlags.dbPath != "" {
		cfg.DBPath = rootFlags.dbPath
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
