package ports

import (
	"TUI_motivation_player/internal/core/domain"
	"context"
	"time"
)

type YoutubePort interface {
	SearchChannelVideos(ctx context.Context, channelID string, pageSize int64) ([]domain.Video, error)
	GetVideoDurations(ctx context.Context, videoIDs []string) (map[string]time.Duration, error)
}
