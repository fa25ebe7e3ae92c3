package command

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "Review reply notifications",
}

var notificationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List unread notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient := GetClient()

		notifications, err := httpClient.ListNotifications(context.Background())
		if err != nil {
			return fmt.Errorf("failed to list notifications: %w", err)
		}

		if len(notifications) == 0 {
			fmt.Println("No unread notifications")
			return nil
		}

		fmt.Printf("Unread notifications (%d):\n\n", len(notifications))
		for _, n := range notifications {
			fmt.Printf("  #%d  %s  %s\n", n.ID, n.CreatedAt.Format("2006-01-02 15:04"), n.Message)
		}
		return nil
	},
}

var notificationsReadCmd = &cobra.Command{
	Use:   "read [notification-id]",
	Short: "Mark a notification as read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid notification id: %s", args[0])
		}

		httpClient := GetClient()
		if err := httpClient.MarkNotificationRead(context.Background(), id); err != nil {
			return fmt.Errorf("failed to mark notification read: %w", err)
		}

		fmt.Printf("Notification #%d marked as read\n", id)
		return nil
	},
}

var notificationsReadAllCmd = &cobra.Command{
	Use:   "read-all",
	Short: "Mark every notification as read",
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient := GetClient()

		if err := httpClient.MarkAllNotificationsRead(context.Background()); err != nil {
			return fmt.Errorf("failed to mark notifications read: %w", err)
		}

		fmt.Println("All notifications marked as read")
		return nil
	},
}

func init() {
	notificationsCmd.AddCommand(notificationsListCmd)
	notificationsCmd.AddCommand(notificationsReadCmd)
	notificationsCmd.AddCommand(notificationsReadAllCmd)
}
