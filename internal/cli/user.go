package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/example/labelhub/internal/wire"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage the user directory",
}

var userCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Register a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		role, _ := cmd.Flags().GetString("role")
		id, _ := cmd.Flags().GetString("id")

		user, err := wire.DirectoryService().CreateUser(context.Background(), id, args[0], role)
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		fmt.Printf("✓ Created %s %s (%s)\n", user.Role, user.Name, user.ID)
		return nil
	},
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := wire.DirectoryService().ListUsers(context.Background())
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}
		if len(users) == 0 {
			fmt.Println("No users found.")
			return nil
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"ID", "Name", "Role"})
		for _, user := range users {
			t.AppendRow(table.Row{user.ID, user.Name, user.Role})
		}
		t.Render()
		return nil
	},
}

func init() {
	userCreateCmd.Flags().StringP("role", "r", "annotator", "Role: admin, manager, or annotator")
	userCreateCmd.Flags().String("id", "", "Explicit user ID (generated when omitted)")

	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userListCmd)
}

// UserCmd returns the user command
func UserCmd() *cobra.Command {
	return userCmd
}
