package provider

import (
	"TUI_motivation_player/internal/core/domain"
	"TUI_motivation_player/internal/core/ports"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sosodev/duration"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

type youtubeProvider struct {
	apiKey  string
	options []option.ClientOption
	log     ports.LoggerPort
	service *youtube.Service
	cache   *cache.Cache
	mu      sync.Mutex
}

// NewYoutubeProvider builds a search client authenticated with an API key.
// A positive cacheTTL keeps successful search responses per channel for that
// long; failures are never cached.
func NewYoutubeProvider(apiKey string, cacheTTL time.Duration, logger ports.LoggerPort, opts ...option.ClientOption) ports.YoutubePort {
	p := &youtubeProvider{
		apiKey:  apiKey,
		options: opts,
		log:     logger,
	}
	if cacheTTL > 0 {
		p.cache = cache.New(cacheTTL, 2*cacheTTL)
	}
	return p
}

func (s *youtubeProvider) getYoutubeService(ctx context.Context) (*youtube.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.service != nil {
		return s.service, nil
	}

	opts := append([]option.ClientOption{option.WithAPIKey(s.apiKey)}, s.options...)
	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		s.log.Error("error while create youtube service", err)
		return nil, fmt.Errorf("error while create youtube service: %w", err)
	}

	s.service = service
	s.log.Info("Create youtube service completed")

	return service, nil
}

func (s *youtubeProvider) SearchChannelVideos(ctx context.Context, channelID string, pageSize int64) ([]domain.Video, error) {
	cacheKey := fmt.Sprintf("%s/%d", channelID, pageSize)
	if s.cache != nil {
		if cached, found := s.cache.Get(cacheKey); found {
			s.log.Info("Channel search served from cache: " + channelID)
			return cached.([]domain.Video), nil
		}
	}

	service, err := s.getYoutubeService(ctx)
	if err != nil {
		return nil, err
	}

	//uma unica chamada de busca, sem paginação
	call := service.Search.List([]string{"snippet"}).
		ChannelId(channelID).
		MaxResults(pageSize).
		Context(ctx)

	response, err := call.Do()
	if err != nil {
		s.log.Error("error while call youtube search", err)
		return nil, fmt.Errorf("error in call youtube api: %w", err)
	}

	if len(response.Items) == 0 {
		s.log.Warning("No youtube videos found for channel " + channelID)
		return []domain.Video{}, nil
	}

	videos := make([]domain.Video, 0, len(response.Items))
	for _, item := range response.Items {
		videos = append(videos, toDomainVideo(item))
	}

	if s.cache != nil {
		s.cache.Set(cacheKey, videos, cache.DefaultExpiration)
	}

	s.log.Info(fmt.Sprintf("Channel search completed: %d items", len(videos)))

	return videos, nil
}

func toDomainVideo(item *youtube.SearchResult) domain.Video {
	var video domain.Video

	if item.Id != nil {
		video.Kind = strings.TrimPrefix(item.Id.Kind, "youtube#")
		if video.Kind == domain.KindVideo {
			video.ID = item.Id.VideoId
		}
	}

	if sn := item.Snippet; sn != nil {
		video.Title = sn.Title
		video.Description = sn.Description
		video.ChannelID = sn.ChannelId
		video.ChannelTitle = sn.ChannelTitle
		// publishedAt inválido não invalida o item
		if published, err := time.Parse(time.RFC3339, sn.PublishedAt); err == nil {
			video.PublishedAt = published
		}
		video.Thumbnails = toDomainThumbnails(sn.Thumbnails)
	}

	return video
}

func toDomainThumbnails(details *youtube.ThumbnailDetails) map[string]domain.Thumbnail {
	if details == nil {
		return nil
	}

	thumbs := make(map[string]domain.Thumbnail)
	add := func(name string, t *youtube.Thumbnail) {
		if t != nil && t.Url != "" {
			thumbs[name] = domain.Thumbnail{URL: t.Url, Width: t.Width, Height: t.Height}
		}
	}
	add("default", details.Default)
	add("medium", details.Medium)
	add("high", details.High)
	add("standard", details.Standard)
	add("maxres", details.Maxres)

	return thumbs
}

// GetVideoDurations looks up durations for up to 50 ids in one videos.list call.
func (s *youtubeProvider) GetVideoDurations(ctx context.Context, videoIDs []string) (map[string]time.Duration, error) {
	durations := make(map[string]time.Duration, len(videoIDs))
	if len(videoIDs) == 0 {
		return durations, nil
	}

	service, err := s.getYoutubeService(ctx)
	if err != nil {
		return nil, err
	}

	response, err := service.Videos.List([]string{"contentDetails"}).Id(videoIDs...).Context(ctx).Do()
	if err != nil {
		s.log.Error("error while call youtube videos", err)
		return nil, fmt.Errorf("error while getting video details: %w", err)
	}

	for _, item := range response.Items {
		if item.ContentDetails == nil || item.ContentDetails.Duration == "" {
			continue
		}

		parsed, err := duration.Parse(item.ContentDetails.Duration)
		if err != nil {
			s.log.Warning(fmt.Sprintf("Skipping unparsable duration %q for %s", item.ContentDetails.Duration, item.Id))
			continue
		}

		durations[item.Id] = parsed.ToTimeDuration()
	}

	return durations, nil
}
