package cmd

import (
	"os"

	"TUI_motivation_player/infrastructure/config"
	"TUI_motivation_player/infrastructure/logger"

	"github.com/spf13/cobra"
)

// Configuration flags
var (
	apiKey       string
	channelID    string
	playerAddr   string
	callbackAddr string
	sessionFile  string
	logDir       string
)

// NewRootCmd creates and returns the root command. Without a subcommand it
// starts the player.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "motivation-player",
		Short: "Motivation Player plays a random video from a YouTube channel",
		Long: `Motivation Player is a terminal application that signs you in, picks a random
video from a YouTube channel and plays it in a local browser page. When the
video ends another one is picked automatically.`,
		SilenceUsage: true,
		RunE:         runPlay,
	}

	// Define persistent flags that will be available for all commands
	rootCmd.PersistentFlags().StringVarP(&apiKey, "api-key", "k", "", "Set the YOUTUBE_API_KEY (overrides environment variable)")
	rootCmd.PersistentFlags().StringVarP(&channelID, "channel", "c", "", "Set the CHANNEL_ID (overrides environment variable)")
	rootCmd.PersistentFlags().StringVar(&playerAddr, "player-addr", "", "Set the PLAYER_ADDR (overrides environment variable)")
	rootCmd.PersistentFlags().StringVar(&callbackAddr, "callback-addr", "", "Set the CALLBACK_ADDR (overrides environment variable)")
	rootCmd.PersistentFlags().StringVar(&sessionFile, "session-file", "", "Set the SESSION_FILE (overrides environment variable)")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Set the LOG_DIR (overrides environment variable)")

	// Add commands to root
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newCatalogCmd())
	rootCmd.AddCommand(newLogoutCmd())

	return rootCmd
}

func applyFlags() {
	overrides := map[string]string{
		"YOUTUBE_API_KEY": apiKey,
		"CHANNEL_ID":      channelID,
		"PLAYER_ADDR":     playerAddr,
		"CALLBACK_ADDR":   callbackAddr,
		"SESSION_FILE":    sessionFile,
		"LOG_DIR":         logDir,
	}
	for key, value := range overrides {
		if value != "" {
			os.Setenv(key, value)
		}
	}
}

// LoadConfig loads configuration with respect to command line flags
func LoadConfig() (*config.Config, error) {
	applyFlags()
	return config.Load()
}

// loadLocalConfig is LoadConfig for commands that do not talk to YouTube.
func loadLocalConfig() (*config.Config, error) {
	applyFlags()
	return config.LoadLocal()
}

func newLogger(cfg *config.Config, prefix string) (logger.Logger, error) {
	return logger.NewFileLogger(cfg.LogDir, prefix)
}
