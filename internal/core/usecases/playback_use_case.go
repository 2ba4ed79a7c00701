package usecases

import (
	"TUI_motivation_player/internal/core/domain"
	"TUI_motivation_player/internal/core/ports"
	"context"
)

type playbackUseCase struct {
	service   ports.YoutubePort
	selector  *Selector
	log       ports.LoggerPort
	channelID string
	pageSize  int64
}

type PlaybackUseCase interface {
	LoadCatalog(ctx context.Context) domain.Catalog
	InitialSelection(catalog domain.Catalog) domain.SelectionState
	Reselect(catalog domain.Catalog, state domain.SelectionState) (domain.SelectionState, bool)
	HandlePlayerState(catalog domain.Catalog, state domain.SelectionState, ps domain.PlayerState) (domain.SelectionState, bool)
	CatalogWithDurations(ctx context.Context) (domain.Catalog, error)
}

func NewPlaybackUseCase(service ports.YoutubePort, selector *Selector, logger ports.LoggerPort, channelID string, pageSize int64) PlaybackUseCase {
	return &playbackUseCase{
		service:   service,
		selector:  selector,
		log:       logger,
		channelID: channelID,
		pageSize:  pageSize,
	}
}

// CatalogWithDurations loads the catalog and fills Duration for playable items.
// Unlike LoadCatalog it reports errors, since it backs a one-shot command.
func (uc *playbackUseCase) CatalogWithDurations(ctx context.Context) (domain.Catalog, error) {
	videos, err := uc.service.SearchChannelVideos(ctx, uc.channelID, uc.pageSize)
	if err != nil {
		return nil, err
	}
	catalog := domain.Catalog(videos)

	ids := make([]string, 0, len(catalog))
	for _, v := range catalog.Playable() {
		ids = append(ids, v.ID)
	}

	durations, err := uc.service.GetVideoDurations(ctx, ids)
	if err != nil {
		return nil, err
	}

	enriched := make(domain.Catalog, len(catalog))
	for i, v := range catalog {
		if d, ok := durations[v.ID]; ok {
			v.Duration = d
		}
		enriched[i] = v
	}

	return enriched, nil
}
