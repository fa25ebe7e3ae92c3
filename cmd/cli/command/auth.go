package command

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  `Sign in, register, refresh tokens and sign out`,
}

var loginCmd = &cobra.Command{
	Use:   "login [username] [password]",
	Short: "Sign in and store the session token",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient := GetClient()

		resp, err := httpClient.Login(context.Background(), args[0], args[1])
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		cfg.AccessToken = resp.AccessToken
		cfg.RefreshToken = resp.RefreshToken
		cfg.UserID = resp.UserID
		cfg.Username = resp.Username
		cfg.Role = resp.Role
		if err := saveConfig(); err != nil {
			return fmt.Errorf("failed to store credentials: %w", err)
		}

		fmt.Printf("Signed in as %s (%s)\n", resp.Username, resp.Role)
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register [username] [password] [email]",
	Short: "Create a new account",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient := GetClient()

		if err := httpClient.Register(context.Background(), args[0], args[1], args[2]); err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}

		fmt.Printf("Account %s created, you can now sign in with 'bloghub auth login'\n", args[0])
		return nil
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Rotate the stored tokens",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.RefreshToken == "" {
			return fmt.Errorf("no stored session, sign in first")
		}

		httpClient := GetClient()
		resp, err := httpClient.Refresh(context.Background(), cfg.RefreshToken)
		if err != nil {
			return fmt.Errorf("refresh failed: %w", err)
		}

		cfg.AccessToken = resp.AccessToken
		cfg.RefreshToken = resp.RefreshToken
		if err := saveConfig(); err != nil {
			return fmt.Errorf("failed to store credentials: %w", err)
		}

		fmt.Println("Session refreshed")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg = cliConfig{}
		if err := saveConfig(); err != nil {
			return fmt.Errorf("failed to clear credentials: %w", err)
		}
		fmt.Println("Signed out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the stored identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.AccessToken == "" {
			fmt.Println("Not signed in")
			return nil
		}
		fmt.Printf("User: %s\nID: %s\nRole: %s\n", cfg.Username, cfg.UserID, cfg.Role)
		return nil
	},
}

func init() {
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(registerCmd)
	authCmd.AddCommand(refreshCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(whoamiCmd)
}
