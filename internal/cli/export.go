package cli

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/example/labelhub/internal/wire"
)

var exportCmd = &cobra.Command{
	Use:   "export [project-id]",
	Short: "Export completed tasks as JSON or CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, err := actorID(cmd)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")
		annotator, _ := cmd.Flags().GetString("annotator")

		tasks, err := wire.WorkflowService().ListCompletedTasks(context.Background(), actor, args[0], annotator)
		if err != nil {
			return fmt.Errorf("failed to list completed tasks: %w", err)
		}

		out := os.Stdout
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}
			defer f.Close()
			out = f
		}

		switch format {
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(tasks); err != nil {
				return fmt.Errorf("failed to encode tasks: %w", err)
			}
		case "csv":
			w := csv.NewWriter(out)
			header := []string{"task_id", "project_id", "category", "tag", "annotator", "qa_reviewer", "annotation", "qa_annotation", "qa_feedback", "annotator_seconds", "qa_seconds"}
			if err := w.Write(header); err != nil {
				return fmt.Errorf("failed to write csv header: %w", err)
			}
			for _, task := range tasks {
				qaSeconds := ""
				if task.QaAccumulatedSeconds != nil {
					qaSeconds = strconv.FormatInt(*task.QaAccumulatedSeconds, 10)
				}
				row := []string{
					task.ID, task.ProjectID, task.Category, task.Tag,
					task.AssignedAnnotatorID, task.AssignedQaID,
					string(task.Annotation), string(task.QaAnnotation), task.QaFeedback,
					strconv.FormatInt(task.AccumulatedSeconds, 10), qaSeconds,
				}
				if err := w.Write(row); err != nil {
					return fmt.Errorf("failed to write csv row: %w", err)
				}
			}
			w.Flush()
			if err := w.Error(); err != nil {
				return fmt.Errorf("failed to flush csv: %w", err)
			}
		default:
			return fmt.Errorf("unknown format %q, use json or csv", format)
		}

		if output != "" {
			fmt.Fprintf(os.Stderr, "✓ Exported %d task(s) to %s\n", len(tasks), output)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("format", "f", "json", "Output format: json or csv")
	exportCmd.Flags().StringP("output", "o", "", "Write to a file instead of stdout")
	exportCmd.Flags().String("annotator", "", "Filter by annotator")
}

// ExportCmd returns the export command
func ExportCmd() *cobra.Command {
	return exportCmd
}
