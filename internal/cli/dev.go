package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/labelhub/internal/db"
)

// DevCmd returns the dev command group for development utilities.
func DevCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Development utilities",
		Long: `Development utilities for working with a throwaway labelhub database.

These commands require LABELHUB_DB_PATH to be set so they cannot touch the
default database under ~/.labelhub by accident.`,
	}

	cmd.AddCommand(devResetCmd())
	cmd.AddCommand(devDoctorCmd())
	return cmd
}

func devResetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset the dev database with fresh fixtures",
		Long: `Delete the dev database and recreate it with fixture data.

The fixtures cover every workflow state: an unassigned task, one in
annotation with an open time session, one awaiting QA, one under review,
and one fully approved, plus the users and rosters behind them.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath := os.Getenv("LABELHUB_DB_PATH")
			if dbPath == "" {
				return fmt.Errorf("LABELHUB_DB_PATH not set; refusing to reset the default database")
			}

			if !force {
				fmt.Printf("This will delete and recreate: %s\n", dbPath)
				fmt.Print("Continue? [y/N] ")
				var response string
				fmt.Scanln(&response)
				if response != "y" && response != "Y" {
					fmt.Println("Aborted.")
					return nil
				}
			}

			db.Close()

			if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to delete database: %w", err)
			}
			fmt.Printf("✓ Deleted %s\n", dbPath)

			database, err := db.GetDB()
			if err != nil {
				return fmt.Errorf("failed to create database: %w", err)
			}
			fmt.Println("✓ Created fresh database with schema")

			if err := db.SeedFixtures(database); err != nil {
				return fmt.Errorf("failed to seed fixtures: %w", err)
			}
			fmt.Println("✓ Seeded fixture data")

			fmt.Println("\nDev database reset complete!")
			fmt.Println("\nSeeded entities:")
			fmt.Println("  - 6 users (1 admin, 2 managers, 3 annotators)")
			fmt.Println("  - 2 projects with rosters")
			fmt.Println("  - 5 tasks across all workflow states")
			fmt.Println("  - 2 remarks, 3 notifications")
			fmt.Println("\nTry: labelhub task list --project PROJ-001 --as USR-MGR-1")

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")
	return cmd
}

func devDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check dev environment health",
		RunE: func(cmd *cobra.Command, args []string) error {
			issues := 0

			fmt.Println("=== labelhub dev environment ===")
			fmt.Println()

			dbPath := os.Getenv("LABELHUB_DB_PATH")
			if dbPath == "" {
				fmt.Println("✗ LABELHUB_DB_PATH is not set")
				issues++
			} else {
				fmt.Printf("✓ LABELHUB_DB_PATH = %s\n", dbPath)
				if _, err := os.Stat(dbPath); os.IsNotExist(err) {
					fmt.Println("✗ database file does not exist (run 'labelhub dev reset')")
					issues++
				} else {
					fmt.Println("✓ database file exists")
				}
			}

			if dbPath != "" && issues == 0 {
				database, err := db.GetDB()
				if err != nil {
					fmt.Printf("✗ cannot open database: %v\n", err)
					issues++
				} else {
					var n int
					if err := database.QueryRow("SELECT COUNT(*) FROM schema_version").Scan(&n); err != nil {
						fmt.Printf("✗ schema_version unreadable: %v\n", err)
						issues++
					} else {
						fmt.Printf("✓ schema initialized (%d migrations applied)\n", n)
					}
				}
			}

			fmt.Println()
			if issues > 0 {
				return fmt.Errorf("%d issue(s) found", issues)
			}
			fmt.Println("All checks passed.")
			return nil
		},
	}
	return cmd
}
