package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/example/labelhub/internal/category"
	"github.com/example/labelhub/internal/ports/primary"
	"github.com/example/labelhub/internal/wire"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage labeling projects",
}

var projectCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, err := actorID(cmd)
		if err != nil {
			return err
		}
		cat, _ := cmd.Flags().GetString("category")
		manager, _ := cmd.Flags().GetString("manager")

		project, err := wire.DirectoryService().CreateProject(context.Background(), primary.CreateProjectRequest{
			ActorID:   actor,
			Name:      args[0],
			Category:  cat,
			ManagerID: manager,
		})
		if err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}
		fmt.Printf("✓ Created project %s: %s (%s)\n", project.ID, project.Name, project.Category)
		return nil
	},
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		projects, err := wire.DirectoryService().ListProjects(context.Background())
		if err != nil {
			return fmt.Errorf("failed to list projects: %w", err)
		}
		if len(projects) == 0 {
			fmt.Println("No projects found.")
			return nil
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"ID", "Name", "Category", "Manager"})
		for _, project := range projects {
			t.AppendRow(table.Row{project.ID, project.Name, project.Category, project.ManagerID})
		}
		t.Render()
		return nil
	},
}

var projectCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List supported task categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, cat := range category.All() {
			fmt.Println(cat)
		}
		return nil
	},
}

func init() {
	projectCreateCmd.Flags().StringP("category", "c", "", "Project category (see 'project categories')")
	projectCreateCmd.Flags().String("manager", "", "Owning manager (admins only, defaults to you)")

	projectCmd.AddCommand(projectCreateCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectCategoriesCmd)
}

// ProjectCmd returns the project command
func ProjectCmd() *cobra.Command {
	return projectCmd
}
