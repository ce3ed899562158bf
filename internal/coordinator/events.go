package coordinator

// Outbound event type constants
const (
	EventRoomState     = "room:state"
	EventPlayerJoined  = "player:joined"
	EventPlayerLeft    = "player:left"
	EventRoomError     = "room:error"
	EventGameStarted   = "game:started"
	EventRoundTick     = "round:tick"
	EventRoundStarted  = "round:started"
	EventRoundResults  = "round:results"
	EventGameOver      = "game:over"
	EventYouEliminated = "you:eliminated"
)

// Emitter delivers outbound events to room members. The websocket hub
// implements it; tests substitute a recorder.
type Emitter interface {
	Broadcast(code, event string, data any)
	SendTo(code, playerID, event string, data any)
}

// TickPayload is the countdown notification sent while a round is live
type TickPayload struct {
	ServerTs   int64 `json:"serverTs"`
	DeadlineTs int64 `json:"deadlineTs"`
}

// PlayerLeftPayload announces a departed member
type PlayerLeftPayload struct {
	PlayerID string `json:"playerId"`
}

// ErrorPayload carries a user-visible failure to the requester only
type ErrorPayload struct {
	Message string `json:"message"`
}

// GameOverPayload ends a game; WinnerID is empty when everyone fell together
type GameOverPayload struct {
	WinnerID string `json:"winnerId"`
}

// EliminatedPayload tells a player which word knocked them out
type EliminatedPayload struct {
	Word string `json:"word"`
}
