package command

import (
	"context"
	"fmt"
	"strings"

	"bloghub/internal/thread"

	"github.com/spf13/cobra"
)

var collapseIDs []string

var threadCmd = &cobra.Command{
	Use:   "thread",
	Short: "Read and take part in a post's comment thread",
	Long: `Work with the threaded comments of a post. Comments arrive from the
API as a flat list; the tree is assembled locally, siblings ordered
oldest-first at every level.`,
}

var threadShowCmd = &cobra.Command{
	Use:   "show [post-id]",
	Short: "Render the comment tree of a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		th, err := thread.Open(ctx, GetClient(), args[0], nil)
		if err != nil {
			return err
		}
		defer th.Close()

		for _, id := range collapseIDs {
			th.ToggleCollapse(id)
		}

		entries := th.Visible()
		if len(entries) == 0 {
			fmt.Println("No comments yet")
			return nil
		}

		fmt.Printf("%d comments on post %s:\n\n", th.Len(), th.PostID())
		for _, e := range entries {
			printEntry(e)
		}
		return nil
	},
}

// printEntry renders one visible thread line with two spaces of indentation
// per nesting level.
func printEntry(e thread.Entry) {
	indent := strings.Repeat("  ", e.Depth)
	fmt.Printf("%s%s  %s  (%s)\n", indent, e.Node.ID, e.Node.Username, e.Node.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Printf("%s%s\n", indent, e.Node.Text)
	if e.Collapsed {
		word := "replies"
		if e.Replies == 1 {
			word = "reply"
		}
		fmt.Printf("%s[%d %s hidden]\n", indent, e.Replies, word)
	}
}

var threadCommentCmd = &cobra.Command{
	Use:   "comment [post-id] [text]",
	Short: "Post a top-level comment",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		th, err := thread.Open(ctx, GetClient(), args[0], nil)
		if err != nil {
			return err
		}
		defer th.Close()

		if err := th.Submit(ctx, currentSession(), args[1]); err != nil {
			return commentError(err)
		}

		fmt.Printf("Comment posted, thread now has %d comments\n", th.Len())
		return nil
	},
}

var threadReplyCmd = &cobra.Command{
	Use:   "reply [post-id] [parent-comment-id] [text]",
	Short: "Reply to an existing comment",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		th, err := thread.Open(ctx, GetClient(), args[0], nil)
		if err != nil {
			return err
		}
		defer th.Close()

		if err := th.Reply(ctx, currentSession(), args[1], args[2]); err != nil {
			return commentError(err)
		}

		fmt.Println("Reply posted")
		return nil
	},
}

var threadDeleteCmd = &cobra.Command{
	Use:   "delete [post-id] [comment-id]",
	Short: "Delete a comment and its replies (admin only)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		th, err := thread.Open(ctx, GetClient(), args[0], nil)
		if err != nil {
			return err
		}
		defer th.Close()

		before := th.Len()
		if err := th.Delete(ctx, currentSession(), args[1]); err != nil {
			return commentError(err)
		}

		fmt.Printf("Removed %d comment(s), %d remaining\n", before-th.Len(), th.Len())
		return nil
	},
}

// commentError turns the thread package's sentinel errors into messages
// that tell the user what to do instead of what went wrong internally.
func commentError(err error) error {
	switch err {
	case thread.ErrNotAuthenticated:
		return fmt.Errorf("sign in first with 'bloghub auth login'")
	case thread.ErrNotAllowed:
		return fmt.Errorf("only an admin can delete comments")
	case thread.ErrEmptyText:
		return fmt.Errorf("comment text must not be empty")
	default:
		return err
	}
}

func init() {
	threadShowCmd.Flags().StringSliceVar(&collapseIDs, "collapse", nil, "comment ids whose replies to hide")

	threadCmd.AddCommand(threadShowCmd)
	threadCmd.AddCommand(threadCommentCmd)
	threadCmd.AddCommand(threadReplyCmd)
	threadCmd.AddCommand(threadDeleteCmd)
}
