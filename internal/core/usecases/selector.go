package usecases

import (
	"TUI_motivation_player/internal/core/domain"
	"math/rand/v2"
)

// Selector picks the next video at random, avoiding an immediate repeat.
type Selector struct {
	rng *rand.Rand
}

func NewSelector(rng *rand.Rand) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Selector{rng: rng}
}

// Select returns a playable video whose ID differs from previous when more than
// one playable video exists. A lone playable video is returned even if it is
// previous. If the filter leaves nothing the unfiltered list is used.
func (s *Selector) Select(catalog []domain.Video, previous string) (domain.Video, bool) {
	eligible := domain.Catalog(catalog).Playable()

	switch len(eligible) {
	case 0:
		return domain.Video{}, false
	case 1:
		return eligible[0], true
	}

	candidates := eligible
	if previous != "" {
		filtered := make([]domain.Video, 0, len(eligible))
		for _, v := range eligible {
			if v.ID != previous {
				filtered = append(filtered, v)
			}
		}
		if len(filtered) > 0 {
			candidates = filtered
		}
	}

	return candidates[s.rng.IntN(len(candidates))], true
}
