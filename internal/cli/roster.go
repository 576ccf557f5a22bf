package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/example/labelhub/internal/wire"
)

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Manage project rosters",
	Long:  "Control who may be assigned to tasks and which members review QA",
}

var rosterAddCmd = &cobra.Command{
	Use:   "add [project-id] [annotator-id]",
	Short: "Add an annotator to a project roster",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, err := actorID(cmd)
		if err != nil {
			return err
		}
		if err := wire.RosterService().AddMember(context.Background(), actor, args[0], args[1]); err != nil {
			return fmt.Errorf("failed to add roster member: %w", err)
		}
		fmt.Printf("✓ Added %s to project %s\n", args[1], args[0])
		return nil
	},
}

var rosterSetQaCmd = &cobra.Command{
	Use:   "set-qa [project-id] [annotator-ids...]",
	Short: "Replace the project's QA reviewer subset",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, err := actorID(cmd)
		if err != nil {
			return err
		}
		reviewers := args[1:]
		if err := wire.RosterService().SetQaReviewers(context.Background(), actor, args[0], reviewers); err != nil {
			return fmt.Errorf("failed to set QA reviewers: %w", err)
		}
		if len(reviewers) == 0 {
			fmt.Printf("✓ Cleared QA reviewers for project %s\n", args[0])
		} else {
			fmt.Printf("✓ QA reviewers for project %s: %s\n", args[0], strings.Join(reviewers, ", "))
		}
		return nil
	},
}

var rosterShowCmd = &cobra.Command{
	Use:   "show [project-id]",
	Short: "Show a project roster with active task counts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, err := actorID(cmd)
		if err != nil {
			return err
		}
		members, err := wire.RosterService().Roster(context.Background(), actor, args[0])
		if err != nil {
			return fmt.Errorf("failed to load roster: %w", err)
		}
		if len(members) == 0 {
			fmt.Println("No roster members.")
			return nil
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Annotator", "Name", "QA", "Active tasks"})
		for _, member := range members {
			qa := ""
			if member.IsQaReviewer {
				qa = "✓"
			}
			t.AppendRow(table.Row{member.AnnotatorID, member.Name, qa, len(member.ActiveTaskIDs)})
		}
		t.Render()
		return nil
	},
}

func init() {
	rosterCmd.AddCommand(rosterAddCmd)
	rosterCmd.AddCommand(rosterSetQaCmd)
	rosterCmd.AddCommand(rosterShowCmd)
}

// RosterCmd returns the roster command
func RosterCmd() *cobra.Command {
	return rosterCmd
}
