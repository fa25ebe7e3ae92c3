package command

// root.go defines the root command for the bloghub CLI.
// Global flags and the persisted credentials live here.

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"bloghub/cmd/cli/client"
	"bloghub/internal/thread"

	"github.com/spf13/cobra"
)

var (
	apiURL  string // global flag for API server URL
	cfgFile string // credentials file path
)

// cliConfig is what `bloghub auth login` persists between invocations.
type cliConfig struct {
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	UserID       string `json:"user_id,omitempty"`
	Username     string `json:"username,omitempty"`
	Role         string `json:"role,omitempty"`
}

var cfg cliConfig

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bloghub",
	Short: "bloghub - personal blog and portfolio CLI",
	Long: `bloghub is a tool to manage a personal blog/portfolio site from the
terminal. You can:
- Write, edit and delete blog posts
- Manage portfolio photos
- Read and take part in threaded comment discussions
- Review reply notifications

Use "bloghub [command] --help" to see all available commands.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	defaultCfg := "$HOME/.bloghub/config.json"
	if home, err := os.UserHomeDir(); err == nil {
		defaultCfg = filepath.Join(home, ".bloghub", "config.json")
	}

	// Global persistent flags, available to all subcommands
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "http://localhost:8080", "API server URL")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", defaultCfg, "credentials file path")

	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(postCmd)
	rootCmd.AddCommand(photoCmd)
	rootCmd.AddCommand(threadCmd)
	rootCmd.AddCommand(notificationsCmd)

	cobra.OnInitialize(loadConfig)
}

// loadConfig reads the persisted credentials; a missing file just means the
// user is not signed in yet.
func loadConfig() {
	raw, err := os.ReadFile(cfgFile)
	if err != nil {
		return
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: ignoring unreadable config %s: %v\n", cfgFile, err)
	}
}

func saveConfig() error {
	if err := os.MkdirAll(filepath.Dir(cfgFile), 0o700); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(cfgFile, raw, 0o600)
}

// GetClient returns an API client with the stored token (if any) attached.
func GetClient() *client.HTTPClient {
	httpClient := client.NewHTTPClient(apiURL)
	if cfg.AccessToken != "" {
		httpClient.SetToken(cfg.AccessToken)
	}
	return httpClient
}

// currentSession builds the viewer session the thread operations check
// their preconditions against.
func currentSession() thread.Session {
	return thread.Session{
		UserID:        cfg.UserID,
		Username:      cfg.Username,
		Authenticated: cfg.AccessToken != "",
		SuperUser:     cfg.Role == "admin",
	}
}
