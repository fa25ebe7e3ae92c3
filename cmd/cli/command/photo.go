package command

import (
	"context"
	"fmt"

	"bloghub/internal/http-api/dto"

	"github.com/spf13/cobra"
)

var (
	photoPage     int
	photoPageSize int
	photoTitle    string
	photoURL      string
	photoCaption  string
)

var photoCmd = &cobra.Command{
	Use:   "photo",
	Short: "Manage portfolio photos",
}

var photoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List portfolio photos",
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient := GetClient()

		resp, err := httpClient.ListPhotos(context.Background(), photoPage, photoPageSize)
		if err != nil {
			return fmt.Errorf("failed to list photos: %w", err)
		}

		if len(resp.Data) == 0 {
			fmt.Println("No photos found")
			return nil
		}

		fmt.Printf("Photos (page %d/%d, %d total):\n\n", resp.Page, resp.TotalPages, resp.Total)
		for _, p := range resp.Data {
			fmt.Printf("  %s  %s\n", p.ID, p.Title)
			fmt.Printf("      %s\n", p.ImageURL)
			if p.Caption != "" {
				fmt.Printf("      %s\n", p.Caption)
			}
		}
		return nil
	},
}

var photoAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a photo to the portfolio",
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient := GetClient()

		p, err := httpClient.CreatePhoto(context.Background(), dto.CreatePhotoDTO{
			Title:    photoTitle,
			ImageURL: photoURL,
			Caption:  photoCaption,
		})
		if err != nil {
			return fmt.Errorf("failed to add photo: %w", err)
		}

		fmt.Printf("Photo added: %s (%s)\n", p.Title, p.ID)
		return nil
	},
}

var photoDeleteCmd = &cobra.Command{
	Use:   "delete [photo-id]",
	Short: "Remove a photo from the portfolio",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient := GetClient()

		if err := httpClient.DeletePhoto(context.Background(), args[0]); err != nil {
			return fmt.Errorf("failed to delete photo: %w", err)
		}

		fmt.Printf("Photo %s deleted\n", args[0])
		return nil
	},
}

func init() {
	photoListCmd.Flags().IntVar(&photoPage, "page", 1, "page number")
	photoListCmd.Flags().IntVar(&photoPageSize, "page-size", 20, "photos per page")

	photoAddCmd.Flags().StringVar(&photoTitle, "title", "", "photo title")
	photoAddCmd.Flags().StringVar(&photoURL, "url", "", "image URL")
	photoAddCmd.Flags().StringVar(&photoCaption, "caption", "", "caption text")
	photoAddCmd.MarkFlagRequired("title")
	photoAddCmd.MarkFlagRequired("url")

	photoCmd.AddCommand(photoListCmd)
	photoCmd.AddCommand(photoAddCmd)
	photoCmd.AddCommand(photoDeleteCmd)
}
