package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/labelhub/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize labelhub configuration in the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, _ := cmd.Flags().GetString("actor")
		dbPath, _ := cmd.Flags().GetString("db-path")

		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}

		cfg := &config.Config{
			Version: "1",
			ActorID: actor,
			DBPath:  dbPath,
		}
		if err := config.SaveConfig(cwd, cfg); err != nil {
			return err
		}

		fmt.Println("✓ Wrote .labelhub/config.json")
		if actor != "" {
			fmt.Printf("  Acting as: %s\n", actor)
		}
		return nil
	},
}

func init() {
	initCmd.Flags().String("actor", "", "User ID to act as by default")
	initCmd.Flags().String("db-path", "", "Database file location (defaults to ~/.labelhub/labelhub.db)")
}

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	return initCmd
}
