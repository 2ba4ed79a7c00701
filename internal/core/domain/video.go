package domain

import "time"

// Kinds of resources returned by a channel search.
const (
	KindVideo    = "video"
	KindChannel  = "channel"
	KindPlaylist = "playlist"
)

type Thumbnail struct {
	URL    string
	Width  int64
	Height int64
}

// Video is one search result. Only results of kind video carry an ID.
type Video struct {
	ID           string
	Kind         string
	Title        string
	Description  string
	ChannelID    string
	ChannelTitle string
	PublishedAt  time.Time
	Thumbnails   map[string]Thumbnail
	Duration     time.Duration
}

func (v Video) Playable() bool {
	return v.ID != ""
}

func (v Video) WatchURL() string {
	if !v.Playable() {
		return ""
	}
	return "https://www.youtube.com/watch?v=" + v.ID
}
