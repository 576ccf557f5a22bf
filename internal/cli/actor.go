// Package cli implements the labelhub command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/labelhub/internal/config"
	"github.com/example/labelhub/internal/db"
)

// actorID resolves who is acting: the --as flag wins, then the config
// file in the working directory.
func actorID(cmd *cobra.Command) (string, error) {
	if as, _ := cmd.Flags().GetString("as"); as != "" {
		return as, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	cfg, err := config.LoadConfig(cwd)
	if err == nil && cfg.ActorID != "" {
		return cfg.ActorID, nil
	}
	return "", fmt.Errorf("no actor identity configured\nHint: use --as <user-id> or run 'labelhub init --actor <user-id>'")
}

// ApplyConfig points the database at the configured location before any
// service is wired. Flag overrides beat the config file.
func ApplyConfig(cmd *cobra.Command) {
	if path, _ := cmd.Flags().GetString("db"); path != "" {
		db.SetPath(path)
		return
	}
	cwd, err := os.Getwd()
	if err != nil {
		return
	}
	if cfg, err := config.LoadConfig(cwd); err == nil && cfg.DBPath != "" {
		db.SetPath(cfg.DBPath)
	}
}
