package command

import (
	"context"
	"fmt"
	"os"

	"bloghub/internal/http-api/dto"

	"github.com/spf13/cobra"
)

var (
	postCategory string
	postPage     int
	postPageSize int

	postTitle    string
	postSlug     string
	postSummary  string
	postContent  string
	postFile     string
	postCoverURL string
)

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Manage blog posts",
}

var postListCmd = &cobra.Command{
	Use:   "list",
	Short: "List blog posts",
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient := GetClient()

		resp, err := httpClient.ListPosts(context.Background(), postCategory, postPage, postPageSize)
		if err != nil {
			return fmt.Errorf("failed to list posts: %w", err)
		}

		if len(resp.Data) == 0 {
			fmt.Println("No posts found")
			return nil
		}

		fmt.Printf("Posts (page %d/%d, %d total):\n\n", resp.Page, resp.TotalPages, resp.Total)
		for _, p := range resp.Data {
			fmt.Printf("  %s  [%s] %s\n", p.ID, p.Category, p.Title)
			fmt.Printf("      slug: %s  published: %s\n", p.Slug, p.CreatedAt.Format("2006-01-02"))
		}
		return nil
	},
}

var postGetCmd = &cobra.Command{
	Use:   "get [post-id]",
	Short: "Show a single post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient := GetClient()

		p, err := httpClient.GetPost(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("failed to fetch post: %w", err)
		}

		fmt.Printf("%s\n", p.Title)
		fmt.Printf("Category: %s  Slug: %s\n", p.Category, p.Slug)
		fmt.Printf("Published: %s  Updated: %s\n\n", p.CreatedAt.Format("2006-01-02 15:04"), p.UpdatedAt.Format("2006-01-02 15:04"))
		if p.Summary != "" {
			fmt.Printf("%s\n\n", p.Summary)
		}
		fmt.Println(p.Content)
		return nil
	},
}

var postCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Publish a new post",
	RunE: func(cmd *cobra.Command, args []string) error {
		content := postContent
		if postFile != "" {
			raw, err := os.ReadFile(postFile)
			if err != nil {
				return fmt.Errorf("failed to read content file: %w", err)
			}
			content = string(raw)
		}

		httpClient := GetClient()
		p, err := httpClient.CreatePost(context.Background(), dto.CreatePostDTO{
			Title:    postTitle,
			Slug:     postSlug,
			Category: postCategory,
			Summary:  postSummary,
			Content:  content,
			CoverURL: postCoverURL,
		})
		if err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}

		fmt.Printf("Post created: %s (%s)\n", p.Title, p.ID)
		return nil
	},
}

var postUpdateCmd = &cobra.Command{
	Use:   "update [post-id]",
	Short: "Update an existing post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		update := dto.UpdatePostDTO{}
		if cmd.Flags().Changed("title") {
			update.Title = &postTitle
		}
		if cmd.Flags().Changed("category") {
			update.Category = &postCategory
		}
		if cmd.Flags().Changed("summary") {
			update.Summary = &postSummary
		}
		if cmd.Flags().Changed("cover") {
			update.CoverURL = &postCoverURL
		}
		if cmd.Flags().Changed("content") {
			update.Content = &postContent
		}
		if postFile != "" {
			raw, err := os.ReadFile(postFile)
			if err != nil {
				return fmt.Errorf("failed to read content file: %w", err)
			}
			content := string(raw)
			update.Content = &content
		}

		httpClient := GetClient()
		p, err := httpClient.UpdatePost(context.Background(), args[0], update)
		if err != nil {
			return fmt.Errorf("failed to update post: %w", err)
		}

		fmt.Printf("Post updated: %s (%s)\n", p.Title, p.ID)
		return nil
	},
}

var postDeleteCmd = &cobra.Command{
	Use:   "delete [post-id]",
	Short: "Delete a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient := GetClient()

		if err := httpClient.DeletePost(context.Background(), args[0]); err != nil {
			return fmt.Errorf("failed to delete post: %w", err)
		}

		fmt.Printf("Post %s deleted\n", args[0])
		return nil
	},
}

func init() {
	postListCmd.Flags().StringVar(&postCategory, "category", "", "filter by category")
	postListCmd.Flags().IntVar(&postPage, "page", 1, "page number")
	postListCmd.Flags().IntVar(&postPageSize, "page-size", 20, "posts per page")

	postCreateCmd.Flags().StringVar(&postTitle, "title", "", "post title")
	postCreateCmd.Flags().StringVar(&postSlug, "slug", "", "URL slug")
	postCreateCmd.Flags().StringVar(&postCategory, "category", "", "post category")
	postCreateCmd.Flags().StringVar(&postSummary, "summary", "", "short summary")
	postCreateCmd.Flags().StringVar(&postContent, "content", "", "post body")
	postCreateCmd.Flags().StringVar(&postFile, "file", "", "read post body from file")
	postCreateCmd.Flags().StringVar(&postCoverURL, "cover", "", "cover image URL")
	postCreateCmd.MarkFlagRequired("title")
	postCreateCmd.MarkFlagRequired("slug")
	postCreateCmd.MarkFlagRequired("category")

	postUpdateCmd.Flags().StringVar(&postTitle, "title", "", "post title")
	postUpdateCmd.Flags().StringVar(&postCategory, "category", "", "post category")
	postUpdateCmd.Flags().StringVar(&postSummary, "summary", "", "short summary")
	postUpdateCmd.Flags().StringVar(&postContent, "content", "", "post body")
	postUpdateCmd.Flags().StringVar(&postFile, "file", "", "read post body from file")
	postUpdateCmd.Flags().StringVar(&postCoverURL, "cover", "", "cover image URL")

	postCmd.AddCommand(postListCmd)
	postCmd.AddCommand(postGetCmd)
	postCmd.AddCommand(postCreateCmd)
	postCmd.AddCommand(postUpdateCmd)
	postCmd.AddCommand(postDeleteCmd)
}
