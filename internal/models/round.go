package models

// Round is one timed prompt-and-answer cycle within a playing room.
// It is replaced, never mutated in place, each cycle; player responses
// for the current round live on the Player records and are cleared by
// the coordinator when a new round begins.
type Round struct {
	ItemID       string `json:"itemId"`
	ItemText     string `json:"itemText"`
	ItemImage    string `json:"itemImage,omitempty"`
	Flies        bool   `json:"flies"`
	RoundStartTs int64  `json:"roundStartTs"`
	DeadlineTs   int64  `json:"deadlineTs"`
}

// PlayerResult is one player's line in a round results summary
type PlayerResult struct {
	Choice  string `json:"choice,omitempty"`
	Correct bool   `json:"correct"`
	InTime  bool   `json:"inTime"`
}

// RoundSummary is the derived per-round breakdown broadcast at settlement.
// It is computed once and never stored on the room.
type RoundSummary struct {
	Word    string                  `json:"word"`
	Flies   bool                    `json:"flies"`
	Players map[string]PlayerResult `json:"players"`
}

// RoundResults is the outcome of settling one round
type RoundResults struct {
	Eliminated []string     `json:"eliminated"`
	Survivors  []string     `json:"survivors"`
	Summary    RoundSummary `json:"summary"`
}
