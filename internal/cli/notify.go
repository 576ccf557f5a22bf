package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/labelhub/internal/wire"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "View workflow notifications",
}

var notifyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, err := actorID(cmd)
		if err != nil {
			return err
		}
		unreadOnly, _ := cmd.Flags().GetBool("unread")

		notifications, err := wire.NotificationService().List(context.Background(), actor, unreadOnly)
		if err != nil {
			return fmt.Errorf("failed to list notifications: %w", err)
		}
		if len(notifications) == 0 {
			fmt.Println("No notifications.")
			return nil
		}

		unreadMark := color.New(color.FgHiYellow).Sprint("●")
		for _, n := range notifications {
			mark := " "
			if !n.IsRead {
				mark = unreadMark
			}
			fmt.Printf("%s [%s] %s: %s (%s)\n",
				mark, n.CreatedAt.Format("2006-01-02 15:04"), n.Title, n.Message, n.ID)
		}
		return nil
	},
}

var notifyReadCmd = &cobra.Command{
	Use:   "read [notification-id]",
	Short: "Mark a notification as read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := wire.NotificationService().MarkRead(context.Background(), args[0]); err != nil {
			return fmt.Errorf("failed to mark notification read: %w", err)
		}
		fmt.Println("✓ Marked as read")
		return nil
	},
}

func init() {
	notifyListCmd.Flags().BoolP("unread", "u", false, "Only unread notifications")

	notifyCmd.AddCommand(notifyListCmd)
	notifyCmd.AddCommand(notifyReadCmd)
}

// NotifyCmd returns the notify command
func NotifyCmd() *cobra.Command {
	return notifyCmd
}
