package cmd

import (
	"errors"
	"fmt"

	"TUI_motivation_player/infrastructure/auth"
	"TUI_motivation_player/infrastructure/token_manager"
	"TUI_motivation_player/internal/core/domain"

	"github.com/spf13/cobra"
)

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		Long:  `Delete the saved session so the next start asks for sign-in again. Google sessions are revoked first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadLocalConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			appLogger, err := newLogger(cfg, "motivation_logout")
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer appLogger.Close()

			store := token_manager.NewSessionStore(cfg.SessionFile)
			session, err := store.LoadSession()
			if errors.Is(err, token_manager.ErrNoSession) {
				fmt.Fprintln(cmd.OutOrStdout(), "Not signed in.")
				return nil
			}
			if err != nil {
				appLogger.Error("Saved session unreadable", err)
			}

			if err == nil && session.Provider == domain.ProviderGoogle && session.RefreshToken != "" {
				authService, authErr := auth.NewAuthenticationService(auth.GoogleScopes, cfg.ClientSecretFile, cfg.CallbackURL())
				if authErr != nil {
					appLogger.Warning("Cannot revoke Google token: " + authErr.Error())
				} else if revokeErr := authService.RevokeToken(cmd.Context(), session.RefreshToken); revokeErr != nil {
					appLogger.Error("Token revocation failed", revokeErr)
				}
			}

			if err := auth.NewSessionWatcher(store, appLogger.Named("session")).SignOut(); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}
