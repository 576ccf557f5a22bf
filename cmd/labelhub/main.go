package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/labelhub/internal/cli"
	"github.com/example/labelhub/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "labelhub",
		Short:   "labelhub - task assignment and QA workflow for data labeling",
		Version: version.String(),
		Long: `labelhub drives labeling tasks from creation through annotation,
QA review, return cycles, and completion, tracking who worked on what
and for how long.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cli.ApplyConfig(cmd)
		},
	}

	rootCmd.PersistentFlags().String("as", "", "Act as this user ID (overrides config)")
	rootCmd.PersistentFlags().String("db", "", "Database file location (overrides config)")

	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.UserCmd())
	rootCmd.AddCommand(cli.ProjectCmd())
	rootCmd.AddCommand(cli.RosterCmd())
	rootCmd.AddCommand(cli.TaskCmd())
	rootCmd.AddCommand(cli.NotifyCmd())
	rootCmd.AddCommand(cli.ExportCmd())
	rootCmd.AddCommand(cli.DevCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
