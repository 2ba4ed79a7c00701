package usecases

import (
	"TUI_motivation_player/internal/core/domain"
	"fmt"
)

func (uc *playbackUseCase) InitialSelection(catalog domain.Catalog) domain.SelectionState {
	picked, ok := uc.selector.Select(catalog, "")
	if !ok {
		uc.log.Warning("Catalog has no playable videos, nothing selected")
		return domain.SelectionState{}
	}

	uc.log.Info("Selected video ID: " + picked.ID)
	return domain.SelectionState{Current: picked.ID}
}

// Reselect treats the current video as just played and moves to another one.
// The replay key always grows so the player reloads even when the pick is the
// same video.
func (uc *playbackUseCase) Reselect(catalog domain.Catalog, state domain.SelectionState) (domain.SelectionState, bool) {
	previous := state.Current
	if previous == "" {
		previous = state.Previous
	}

	picked, ok := uc.selector.Select(catalog, previous)
	if !ok {
		uc.log.Info("Could not find a different video")
		return state, false
	}

	next := domain.SelectionState{
		Current:   picked.ID,
		Previous:  previous,
		ReplayKey: state.ReplayKey + 1,
	}
	uc.log.Info(fmt.Sprintf("Random new video %s (previous %s, replay key %d)", next.Current, next.Previous, next.ReplayKey))

	return next, true
}

// HandlePlayerState advances the selection when playback ended and ignores
// every other player state.
func (uc *playbackUseCase) HandlePlayerState(catalog domain.Catalog, state domain.SelectionState, ps domain.PlayerState) (domain.SelectionState, bool) {
	if ps != domain.PlayerEnded {
		return state, false
	}

	uc.log.Info("Video ended: " + state.Current)
	return uc.Reselect(catalog, state)
}
