package cmd

import (
	"context"
	"fmt"
	"time"

	"TUI_motivation_player/infrastructure/auth"
	"TUI_motivation_player/infrastructure/config"
	"TUI_motivation_player/infrastructure/provider"
	"TUI_motivation_player/infrastructure/token_manager"
	"TUI_motivation_player/internal/core/usecases"
	"TUI_motivation_player/internal/handler/server"
	"TUI_motivation_player/internal/handler/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Sign in and play random videos",
		Long:  `Open the sign-in screen, then play random videos from the configured channel in the local player page.`,
		RunE:  runPlay,
	}
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := newLogger(cfg, "motivation_player")
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer appLogger.Close()
	appLogger.Info("Application starting...")

	youtubeProvider := provider.NewYoutubeProvider(cfg.YoutubeAPIKey, cfg.CatalogCacheTTL, appLogger.Named("youtube"))
	playback := usecases.NewPlaybackUseCase(
		youtubeProvider,
		usecases.NewSelector(nil),
		appLogger.Named("playback"),
		cfg.ChannelID,
		config.PageSize,
	)

	sessions := auth.NewSessionWatcher(token_manager.NewSessionStore(cfg.SessionFile), appLogger.Named("session"))

	hub := server.NewPlayerHub(appLogger.Named("hub"))
	playerServer, err := server.NewPlayerServer(hub, appLogger.Named("player"))
	if err != nil {
		appLogger.Error("Failed to build player page", err)
		return err
	}
	if err := playerServer.Start(cfg.PlayerAddr); err != nil {
		appLogger.Error("Failed to start player page", err)
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := playerServer.Shutdown(ctx); err != nil {
			appLogger.Error("Player page shutdown failed", err)
		}
	}()

	deps := tui.Dependencies{
		CallbackHandler: server.NewCallbackHandler(appLogger.Named("callback")),
		PlaybackUseCase: playback,
		Sessions:        sessions,
		Selection:       playerServer,
		PlayerEvents:    hub,
		Logger:          appLogger,
		PlayerURL:       cfg.PlayerURL(),
		CallbackAddr:    cfg.CallbackAddr,
	}

	if cfg.PasswordSignInEnabled() {
		deps.PasswordService = auth.NewPasswordService(cfg.IdentityAPIKey, appLogger.Named("identity"))
	} else {
		appLogger.Warning("FIREBASE_API_KEY not set, password sign-in disabled")
	}

	authService, err := auth.NewAuthenticationService(auth.GoogleScopes, cfg.ClientSecretFile, cfg.CallbackURL())
	if err != nil {
		appLogger.Warning("Google sign-in disabled: " + err.Error())
	} else {
		deps.AuthService = authService
	}

	if deps.PasswordService == nil && deps.AuthService == nil {
		return fmt.Errorf("no sign-in method configured: set FIREBASE_API_KEY or provide %s", cfg.ClientSecretFile)
	}

	p := tea.NewProgram(tui.NewAppModel(deps), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		appLogger.Error("Error running TUI program", err)
		return fmt.Errorf("alas, there's been an error: %w", err)
	}

	appLogger.Info("Application finished.")
	return nil
}
