package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/example/labelhub/internal/ports/primary"
	"github.com/example/labelhub/internal/wire"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage labeling tasks",
	Long:  "Create, assign, submit, review, and inspect tasks in the labeling workflow",
}

var taskCreateCmd = &cobra.Command{
	Use:   "create [project-id]",
	Short: "Create a new task in a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		actor, err := actorID(cmd)
		if err != nil {
			return err
		}
		category, _ := cmd.Flags().GetString("category")
		tag, _ := cmd.Flags().GetString("tag")

		data, err := readPayload(cmd, "data", "data-file")
		if err != nil {
			return err
		}

		task, err := wire.WorkflowService().CreateTask(ctx, primary.CreateTaskRequest{
			ActorID:   actor,
			ProjectID: args[0],
			Category:  category,
			Tag:       tag,
			Data:      data,
		})
		if err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}

		fmt.Printf("✓ Created task %s (%s)\n", task.ID, task.Category)
		return nil
	},
}

var taskListCmd = &cobra.Command{
	Use:   "list [project-id]",
	Short: "List tasks in a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		actor, err := actorID(cmd)
		if err != nil {
			return err
		}
		mine, _ := cmd.Flags().GetBool("mine")
		completed, _ := cmd.Flags().GetBool("completed")
		annotator, _ := cmd.Flags().GetString("annotator")

		var tasks []*primary.Task
		switch {
		case mine:
			tasks, err = wire.WorkflowService().ListMyTasks(ctx, actor, args[0])
		case completed:
			tasks, err = wire.WorkflowService().ListCompletedTasks(ctx, actor, args[0], annotator)
		default:
			tasks, err = wire.WorkflowService().ListProjectTasks(ctx, actor, args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		if len(tasks) == 0 {
			fmt.Println("No tasks found.")
			return nil
		}
		printTaskTable(tasks)
		return nil
	},
}

var taskShowCmd = &cobra.Command{
	Use:   "show [task-id]",
	Short: "Show a task with its remarks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		actor, err := actorID(cmd)
		if err != nil {
			return err
		}

		task, err := wire.WorkflowService().GetTask(ctx, actor, args[0])
		if err != nil {
			return fmt.Errorf("failed to get task: %w", err)
		}

		fmt.Printf("Task:     %s\n", task.ID)
		fmt.Printf("Project:  %s\n", task.ProjectID)
		fmt.Printf("Category: %s\n", task.Category)
		if task.Tag != "" {
			fmt.Printf("Tag:      %s\n", task.Tag)
		}
		fmt.Printf("State:    %s\n", stateColor(task.State))
		if task.AssignedAnnotatorID != "" {
			fmt.Printf("Annotator: %s\n", task.AssignedAnnotatorID)
		}
		if task.AssignedQaID != "" {
			fmt.Printf("QA:        %s\n", task.AssignedQaID)
		}
		if task.IsReturned {
			fmt.Printf("%s returned by %s: %s\n", color.New(color.FgYellow).Sprint("↩"), task.ReturnedBy, task.ReturnReason)
		}
		fmt.Printf("Time:     %ds annotator", task.AccumulatedSeconds)
		if task.QaAccumulatedSeconds != nil {
			fmt.Printf(", %ds qa", *task.QaAccumulatedSeconds)
		}
		fmt.Println()
		if len(task.Data) > 0 {
			fmt.Printf("Data:       %s\n", task.Data)
		}
		if len(task.Annotation) > 0 {
			fmt.Printf("Annotation: %s\n", task.Annotation)
		}
		if len(task.QaAnnotation) > 0 {
			fmt.Printf("QA review:  %s\n", task.QaAnnotation)
		}
		if task.QaFeedback != "" {
			fmt.Printf("QA feedback: %s\n", task.QaFeedback)
		}

		if len(task.Remarks) > 0 {
			fmt.Printf("\nRemarks (%d):\n", len(task.Remarks))
			for _, remark := range task.Remarks {
				fmt.Printf("  [%s] %s (%s): %s\n",
					remark.CreatedAt.Format("2006-01-02 15:04"),
					remark.AuthorID, remark.Type, remark.Message)
			}
		}
		return nil
	},
}

var taskAssignCmd = &cobra.Command{
	Use:   "assign [task-id] [annotator-id]",
	Short: "Assign an annotator to a task",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, err := actorID(cmd)
		if err != nil {
			return err
		}
		task, err := wire.WorkflowService().AssignAnnotator(context.Background(), primary.AssignAnnotatorRequest{
			ActorID:     actor,
			TaskID:      args[0],
			AnnotatorID: args[1],
		})
		if err != nil {
			return fmt.Errorf("failed to assign annotator: %w", err)
		}
		fmt.Printf("✓ Assigned %s to task %s\n", task.AssignedAnnotatorID, task.ID)
		return nil
	},
}

var taskAssignQaCmd = &cobra.Command{
	Use:   "assign-qa [task-id] [reviewer-id]",
	Short: "Assign a QA reviewer to a task",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, err := actorID(cmd)
		if err != nil {
			return err
		}
		task, err := wire.WorkflowService().AssignQA(context.Background(), primary.AssignQARequest{
			ActorID: actor,
			TaskID:  args[0],
			QaID:    args[1],
		})
		if err != nil {
			return fmt.Errorf("failed to assign QA reviewer: %w", err)
		}
		fmt.Printf("✓ Assigned %s as QA reviewer on task %s\n", task.AssignedQaID, task.ID)
		return nil
	},
}

var taskSubmitCmd = &cobra.Command{
	Use:   "submit [task-id]",
	Short: "Submit an annotation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, err := actorID(cmd)
		if err != nil {
			return err
		}
		seconds, _ := cmd.Flags().GetInt64("seconds")
		annotation, err := readPayload(cmd, "annotation", "annotation-file")
		if err != nil {
			return err
		}

		task, err := wire.WorkflowService().SubmitAnnotation(context.Background(), primary.SubmitAnnotationRequest{
			ActorID:        actor,
			TaskID:         args[0],
			Annotation:     annotation,
			SessionSeconds: seconds,
		})
		if err != nil {
			return fmt.Errorf("failed to submit annotation: %w", err)
		}
		fmt.Printf("✓ Annotation submitted for task %s (%ds total)\n", task.ID, task.AccumulatedSeconds)
		return nil
	},
}

var taskQaSubmitCmd = &cobra.Command{
	Use:   "qa-submit [task-id]",
	Short: "Submit a QA review",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, err := actorID(cmd)
		if err != nil {
			return err
		}
		feedback, _ := cmd.Flags().GetString("feedback")
		annotation, err := readPayload(cmd, "annotation", "annotation-file")
		if err != nil {
			return err
		}

		req := primary.SubmitQARequest{
			ActorID:      actor,
			TaskID:       args[0],
			QaAnnotation: annotation,
			Feedback:     feedback,
		}
		if cmd.Flags().Changed("seconds") {
			seconds, _ := cmd.Flags().GetInt64("seconds")
			req.QaSessionSeconds = &seconds
		}

		task, err := wire.WorkflowService().SubmitQA(context.Background(), req)
		if err != nil {
			return fmt.Errorf("failed to submit QA review: %w", err)
		}
		if feedback == "" {
			fmt.Printf("✓ Task %s approved\n", task.ID)
		} else {
			fmt.Printf("✓ QA review recorded for task %s\n", task.ID)
		}
		return nil
	},
}

var taskReturnCmd = &cobra.Command{
	Use:   "return [task-id]",
	Short: "Return a task to its annotator for revision",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, err := actorID(cmd)
		if err != nil {
			return err
		}
		reason, _ := cmd.Flags().GetString("reason")

		task, err := wire.WorkflowService().ReturnToAnnotator(context.Background(), primary.ReturnRequest{
			ActorID: actor,
			TaskID:  args[0],
			Reason:  reason,
		})
		if err != nil {
			return fmt.Errorf("failed to return task: %w", err)
		}
		fmt.Printf("↩ Task %s returned to %s\n", task.ID, task.AssignedAnnotatorID)
		return nil
	},
}

var taskUnassignCmd = &cobra.Command{
	Use:   "unassign [task-id]",
	Short: "Fully unassign a task, clearing all work and time",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, err := actorID(cmd)
		if err != nil {
			return err
		}
		task, err := wire.WorkflowService().Unassign(context.Background(), actor, args[0])
		if err != nil {
			return fmt.Errorf("failed to unassign task: %w", err)
		}
		fmt.Printf("✓ Task %s reset to %s\n", task.ID, task.State)
		return nil
	},
}

var taskRemarkCmd = &cobra.Command{
	Use:   "remark [task-id] [message]",
	Short: "Append a remark to a task",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, err := actorID(cmd)
		if err != nil {
			return err
		}
		remarkType, _ := cmd.Flags().GetString("type")

		remark, err := wire.WorkflowService().AddRemark(context.Background(), primary.AddRemarkRequest{
			ActorID: actor,
			TaskID:  args[0],
			Message: args[1],
			Type:    remarkType,
		})
		if err != nil {
			return fmt.Errorf("failed to add remark: %w", err)
		}
		fmt.Printf("✓ Remark added (%s)\n", remark.Type)
		return nil
	},
}

var taskDeleteCmd = &cobra.Command{
	Use:   "delete [task-id]",
	Short: "Delete an unassigned task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, err := actorID(cmd)
		if err != nil {
			return err
		}
		if err := wire.WorkflowService().DeleteTask(context.Background(), actor, args[0]); err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}
		fmt.Printf("✓ Deleted task %s\n", args[0])
		return nil
	},
}

var taskQaTimeCmd = &cobra.Command{
	Use:   "qa-time [task-id] [seconds]",
	Short: "Autosave QA review time on a task",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, err := actorID(cmd)
		if err != nil {
			return err
		}
		seconds, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid seconds value %q", args[1])
		}
		if err := wire.WorkflowService().RecordQaTime(context.Background(), actor, args[0], seconds); err != nil {
			return fmt.Errorf("failed to record QA time: %w", err)
		}
		fmt.Printf("✓ QA time saved for task %s\n", args[0])
		return nil
	},
}

var taskHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show your per-task time history",
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, err := actorID(cmd)
		if err != nil {
			return err
		}
		projectID, _ := cmd.Flags().GetString("project")

		history, err := wire.WorkflowService().TaskHistory(context.Background(), actor, projectID)
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}

		fmt.Printf("%s: %d task(s), %d completed\n\n", history.AnnotatorName, history.TotalTasks, history.CompletedTasks)
		if len(history.Entries) == 0 {
			return nil
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Task", "Project", "Category", "Time (s)", "Done"})
		for _, entry := range history.Entries {
			done := ""
			if entry.Completed {
				done = "✓"
			}
			project := entry.ProjectName
			if project == "" {
				project = entry.ProjectID
			}
			t.AppendRow(table.Row{entry.TaskID, project, entry.Category, entry.FoldedSeconds, done})
		}
		t.Render()
		return nil
	},
}

// readPayload reads a JSON payload from an inline flag or a file flag.
func readPayload(cmd *cobra.Command, inlineFlag, fileFlag string) (json.RawMessage, error) {
	inline, _ := cmd.Flags().GetString(inlineFlag)
	file, _ := cmd.Flags().GetString(fileFlag)
	if inline != "" && file != "" {
		return nil, fmt.Errorf("--%s and --%s are mutually exclusive", inlineFlag, fileFlag)
	}
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}
		return data, nil
	}
	if inline == "" {
		return nil, nil
	}
	return json.RawMessage(inline), nil
}

func printTaskTable(tasks []*primary.Task) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"ID", "Tag", "State", "Annotator", "QA", "Time (s)"})
	for _, task := range tasks {
		t.AppendRow(table.Row{
			task.ID, task.Tag, task.State,
			task.AssignedAnnotatorID, task.AssignedQaID,
			task.AccumulatedSeconds,
		})
	}
	t.Render()
}

func stateColor(state string) string {
	switch state {
	case "created":
		return color.New(color.FgWhite).Sprint(state)
	case "annotator_assigned":
		return color.New(color.FgCyan).Sprint(state)
	case "annotator_submitted":
		return color.New(color.FgYellow).Sprint(state)
	case "qa_assigned":
		return color.New(color.FgMagenta).Sprint(state)
	case "qa_completed":
		return color.New(color.FgGreen).Sprint(state)
	}
	return state
}

func init() {
	taskCreateCmd.Flags().StringP("category", "c", "", "Task category (must match the project)")
	taskCreateCmd.Flags().String("tag", "", "Optional human label")
	taskCreateCmd.Flags().String("data", "", "Task data as inline JSON")
	taskCreateCmd.Flags().String("data-file", "", "Task data from a JSON file")

	taskListCmd.Flags().Bool("mine", false, "Only tasks assigned to you")
	taskListCmd.Flags().Bool("completed", false, "Only fully completed tasks")
	taskListCmd.Flags().String("annotator", "", "With --completed, filter by annotator")

	taskSubmitCmd.Flags().String("annotation", "", "Annotation as inline JSON")
	taskSubmitCmd.Flags().String("annotation-file", "", "Annotation from a JSON file")
	taskSubmitCmd.Flags().Int64("seconds", 0, "Seconds spent this session")

	taskQaSubmitCmd.Flags().String("annotation", "", "Corrected annotation as inline JSON")
	taskQaSubmitCmd.Flags().String("annotation-file", "", "Corrected annotation from a JSON file")
	taskQaSubmitCmd.Flags().StringP("feedback", "f", "", "Feedback for the annotator (empty means approved)")
	taskQaSubmitCmd.Flags().Int64("seconds", 0, "Seconds spent reviewing")

	taskReturnCmd.Flags().StringP("reason", "r", "", "Why the task is being returned")

	taskRemarkCmd.Flags().String("type", "", "Remark type (defaults from your role)")

	taskHistoryCmd.Flags().StringP("project", "p", "", "Limit to one project")

	taskCmd.AddCommand(taskCreateCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskShowCmd)
	taskCmd.AddCommand(taskAssignCmd)
	taskCmd.AddCommand(taskAssignQaCmd)
	taskCmd.AddCommand(taskSubmitCmd)
	taskCmd.AddCommand(taskQaSubmitCmd)
	taskCmd.AddCommand(taskReturnCmd)
	taskCmd.AddCommand(taskUnassignCmd)
	taskCmd.AddCommand(taskRemarkCmd)
	taskCmd.AddCommand(taskDeleteCmd)
	taskCmd.AddCommand(taskQaTimeCmd)
	taskCmd.AddCommand(taskHistoryCmd)
}

// TaskCmd returns the task command
func TaskCmd() *cobra.Command {
	return taskCmd
}
