package models

// Player represents one connected participant in a room
type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Ready  bool   `json:"ready"`
	Alive  bool   `json:"alive"`

	// Response for the current round; a zero RespondedAt means no answer yet
	Choice      string `json:"choice,omitempty"`
	RespondedAt int64  `json:"respondedAt,omitempty"`

	// Frozen once set: the prompt and answer that eliminated the player
	FailedAtWord string `json:"failedAtWord,omitempty"`
	FailedChoice string `json:"failedChoice,omitempty"`
}

// HasAnswered reports whether the player already responded this round
func (p *Player) HasAnswered() bool {
	return p.RespondedAt != 0
}
