package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"TUI_motivation_player/infrastructure/config"
	"TUI_motivation_player/infrastructure/provider"
	"TUI_motivation_player/internal/core/domain"
	"TUI_motivation_player/internal/core/usecases"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

const catalogTimeout = 30 * time.Second

// newCatalogCmd creates a command that prints the channel catalog
func newCatalogCmd() *cobra.Command {
	var details bool

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the videos of the channel",
		Long:  `List the videos the player picks from. With --details every video also shows its duration.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			appLogger, err := newLogger(cfg, "motivation_catalog")
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer appLogger.Close()

			playback := usecases.NewPlaybackUseCase(
				provider.NewYoutubeProvider(cfg.YoutubeAPIKey, 0, appLogger.Named("youtube")),
				usecases.NewSelector(nil),
				appLogger.Named("playback"),
				cfg.ChannelID,
				config.PageSize,
			)

			ctx, cancel := context.WithTimeout(cmd.Context(), catalogTimeout)
			defer cancel()

			var catalog domain.Catalog
			if details {
				catalog, err = playback.CatalogWithDurations(ctx)
				if err != nil {
					return fmt.Errorf("failed to load catalog: %w", err)
				}
			} else {
				catalog = playback.LoadCatalog(ctx)
			}

			printCatalog(cmd.OutOrStdout(), catalog, details)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&details, "details", "d", false, "Show the duration of every video")
	return cmd
}

// printCatalog writes one block per catalog entry followed by a summary
func printCatalog(w io.Writer, catalog domain.Catalog, details bool) {
	fmt.Fprintln(w, "Channel Videos:")
	fmt.Fprintln(w, "===============")

	var total time.Duration
	for _, v := range catalog {
		fmt.Fprintf(w, "%s\n", v.Title)
		if v.Playable() {
			fmt.Fprintf(w, "  URL: %s\n", v.WatchURL())
		} else {
			fmt.Fprintf(w, "  Kind: %s (not playable)\n", v.Kind)
		}
		if !v.PublishedAt.IsZero() {
			fmt.Fprintf(w, "  Published: %s\n", humanize.Time(v.PublishedAt))
		}
		if details && v.Duration > 0 {
			fmt.Fprintf(w, "  Duration: %s\n", v.Duration)
			total += v.Duration
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total: %d items, %d playable\n", len(catalog), len(catalog.Playable()))
	if details {
		fmt.Fprintf(w, "Total duration: %s\n", total)
	}
}
