package domain

import "fmt"

// PlayerState mirrors the IFrame player state codes.
type PlayerState int

const (
	PlayerUnstarted PlayerState = -1
	PlayerEnded     PlayerState = 0
	PlayerPlaying   PlayerState = 1
	PlayerPaused    PlayerState = 2
	PlayerBuffering PlayerState = 3
	PlayerCued      PlayerState = 5
)

func ParsePlayerState(code int) (PlayerState, error) {
	switch s := PlayerState(code); s {
	case PlayerUnstarted, PlayerEnded, PlayerPlaying, PlayerPaused, PlayerBuffering, PlayerCued:
		return s, nil
	default:
		return 0, fmt.Errorf("unknown player state %d", code)
	}
}

func (s PlayerState) String() string {
	switch s {
	case PlayerUnstarted:
		return "unstarted"
	case PlayerEnded:
		return "ended"
	case PlayerPlaying:
		return "playing"
	case PlayerPaused:
		return "paused"
	case PlayerBuffering:
		return "buffering"
	case PlayerCued:
		return "cued"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}
