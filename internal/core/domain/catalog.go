package domain

// Catalog holds the videos of one channel in upstream order. It is built once
// per player activation and never mutated afterwards.
type Catalog []Video

// Playable returns the items that can actually be handed to the player.
func (c Catalog) Playable() []Video {
	playable := make([]Video, 0, len(c))
	for _, v := range c {
		if v.Playable() {
			playable = append(playable, v)
		}
	}
	return playable
}

func (c Catalog) Find(id string) (Video, bool) {
	if id == "" {
		return Video{}, false
	}
	for _, v := range c {
		if v.ID == id {
			return v, true
		}
	}
	return Video{}, false
}
