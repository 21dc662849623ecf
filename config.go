package dossier

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"dossier/retrieval"
	"dossier/synthesis"
)

// Config holds all configuration for the dossier engine.
type Config struct {
	// DBPath is the full path to the SQLite database file.
	// If empty, defaults to ~/.dossier/<DBName>.db
	DBPath string `json:"db_path" yaml:"db_path"`

	// DBName is the name for the database (used when DBPath is empty).
	// Defaults to "dossier".
	DBName string `json:"db_name" yaml:"db_name"`

	// StorageDir controls where the database is created when DBPath
	// is not explicitly set. Options: "home" (default) uses ~/.dossier/,
	// "local" uses the current working directory.
	StorageDir string `json:"storage_dir" yaml:"storage_dir"`

	// Synthesis configures the chat endpoint that writes dossier prose.
	Synthesis synthesis.Config `json:"synthesis" yaml:"synthesis"`

	// Search configures the web-search endpoint used by deep research.
	Search retrieval.HTTPConfig `json:"search" yaml:"search"`

	// QueryIntervalMS paces outbound search queries. Zero uses the
	// retrieval package default.
	QueryIntervalMS int `json:"query_interval_ms" yaml:"query_interval_ms"`

	// StrictQA raises the evidence-coverage threshold to 95% regardless
	// of how many web results the sweeps returned.
	StrictQA bool `json:"strict_qa" yaml:"strict_qa"`
}

// DefaultConfig returns a Config with sensible defaults for local inference.
// Database is stored in ~/.dossier/dossier.db by default.
func DefaultConfig() Config {
	return Config{
		DBName:     "dossier",
		StorageDir: "home",
		Synthesis: synthesis.Config{
			BaseURL: "http://localhost:11434",
			Model:   "llama3.1:8b",
		},
	}
}

// LoadConfig reads a yaml config file, layered over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// resolveDBPath computes the final database path from config fields.
func (c *Config) resolveDBPath() string {
	if c.DBPath != "" {
		return c.DBPath
	}

	name := c.DBName
	if name == "" {
		name = "dossier"
	}

	switch c.StorageDir {
	case "local", "cwd":
		return name + ".db"
	default: // "home" or empty
		home, err := os.UserHomeDir()
		if err != nil {
			return name + ".db" // fallback to cwd
		}
		dir := filepath.Join(home, ".dossier")
		return filepath.Join(dir, name+".db")
	}
}
