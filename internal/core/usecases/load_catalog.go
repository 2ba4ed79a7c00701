package usecases

import (
	"TUI_motivation_player/internal/core/domain"
	"context"
	"fmt"
)

// LoadCatalog fetches the channel catalog once. A failed fetch is logged and
// yields an empty catalog; there is no retry.
func (uc *playbackUseCase) LoadCatalog(ctx context.Context) domain.Catalog {
	uc.log.Info("Init Load Catalog for channel " + uc.channelID)

	videos, err := uc.service.SearchChannelVideos(ctx, uc.channelID, uc.pageSize)
	if err != nil {
		uc.log.Error("Error fetching YouTube data", err)
		return domain.Catalog{}
	}

	catalog := domain.Catalog(videos)
	uc.log.Info(fmt.Sprintf("Load Catalog completed: %d items, %d playable", len(catalog), len(catalog.Playable())))

	return catalog
}
