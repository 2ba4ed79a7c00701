package provider

import (
	"TUI_motivation_player/infrastructure/logger"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"google.golang.org/api/option"
)

const searchFixture = `{
  "kind": "youtube#searchListResponse",
  "items": [
    {
      "kind": "youtube#searchResult",
      "id": {"kind": "youtube#video", "videoId": "vid-1"},
      "snippet": {
        "publishedAt": "2024-03-01T10:00:00Z",
        "channelId": "UC1",
        "title": "Leg day",
        "description": "no excuses",
        "channelTitle": "Gym",
        "thumbnails": {"default": {"url": "https://i.ytimg.com/vi/vid-1/default.jpg", "width": 120, "height": 90}}
      }
    },
    {
      "kind": "youtube#searchResult",
      "id": {"kind": "youtube#channel", "channelId": "UC1"},
      "snippet": {"publishedAt": "not a date", "channelId": "UC1", "title": "Gym", "channelTitle": "Gym"}
    }
  ]
}`

func newTestServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		q := r.URL.Query()
		if q.Get("channelId") != "UC1" || q.Get("maxResults") != "50" || q.Get("part") != "snippet" || q.Get("key") != "test-key" {
			http.Error(w, "unexpected query "+r.URL.RawQuery, http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(searchFixture))
	})
	mux.HandleFunc("/videos", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[
			{"id":"vid-1","contentDetails":{"duration":"PT4M13S"}},
			{"id":"vid-2","contentDetails":{"duration":"garbage"}}
		]}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestSearchChannelVideosMapsResults(t *testing.T) {
	var hits int32
	srv := newTestServer(t, &hits)
	p := NewYoutubeProvider("test-key", 0, logger.Discard(), option.WithEndpoint(srv.URL+"/"))

	videos, err := p.SearchChannelVideos(context.Background(), "UC1", 50)
	if err != nil {
		t.Fatalf("SearchChannelVideos: %v", err)
	}
	if len(videos) != 2 {
		t.Fatalf("expected 2 items, got %d", len(videos))
	}

	v := videos[0]
	if v.ID != "vid-1" || v.Kind != "video" || v.Title != "Leg day" || v.ChannelTitle != "Gym" {
		t.Fatalf("unexpected video mapping: %+v", v)
	}
	if !v.PublishedAt.Equal(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected publish time %v", v.PublishedAt)
	}
	if v.Thumbnails["default"].Width != 120 {
		t.Fatalf("unexpected thumbnails %+v", v.Thumbnails)
	}

	ch := videos[1]
	if ch.Playable() || ch.Kind != "channel" {
		t.Fatalf("channel result must not be playable: %+v", ch)
	}
	if !ch.PublishedAt.IsZero() {
		t.Fatalf("invalid publish time must stay zero, got %v", ch.PublishedAt)
	}
}

func TestSearchChannelVideosPropagatesErrors(t *testing.T) {
	var hits int32
	srv := newTestServer(t, &hits)
	p := NewYoutubeProvider("wrong-key", 0, logger.Discard(), option.WithEndpoint(srv.URL+"/"))

	if _, err := p.SearchChannelVideos(context.Background(), "UC1", 50); err == nil {
		t.Fatal("expected error for rejected request")
	}
}

func TestSearchChannelVideosUsesCache(t *testing.T) {
	var hits int32
	srv := newTestServer(t, &hits)
	p := NewYoutubeProvider("test-key", time.Minute, logger.Discard(), option.WithEndpoint(srv.URL+"/"))

	for i := 0; i < 3; i++ {
		if _, err := p.SearchChannelVideos(context.Background(), "UC1", 50); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Fatalf("expected 1 upstream request, got %d", got)
	}
}

func TestGetVideoDurations(t *testing.T) {
	var hits int32
	srv := newTestServer(t, &hits)
	p := NewYoutubeProvider("test-key", 0, logger.Discard(), option.WithEndpoint(srv.URL+"/"))

	durations, err := p.GetVideoDurations(context.Background(), []string{"vid-1", "vid-2"})
	if err != nil {
		t.Fatalf("GetVideoDurations: %v", err)
	}
	if durations["vid-1"] != 4*time.Minute+13*time.Second {
		t.Fatalf("unexpected duration %v", durations["vid-1"])
	}
	if _, ok := durations["vid-2"]; ok {
		t.Fatal("unparsable duration must be skipped")
	}

	empty, err := p.GetVideoDurations(context.Background(), nil)
	if err != nil || len(empty) != 0 {
		t.Fatalf("expected empty result without request, got %v %v", empty, err)
	}
}
