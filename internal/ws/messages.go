package ws

import "encoding/json"

// Envelope frames every message in both directions
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Inbound event type constants
const (
	EventRoomCreate   = "room:create"
	EventRoomJoin     = "room:join"
	EventRoomReady    = "room:ready"
	EventRoomLeave    = "room:leave"
	EventGameStart    = "game:start"
	EventRoundAnswer  = "round:answer"
	EventRoomSettings = "room:settings"
	EventRoomReset    = "room:reset"
)

type CreatePayload struct {
	Name string `json:"name"`
}

type JoinPayload struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type ReadyPayload struct {
	Ready bool `json:"ready"`
}

type AnswerPayload struct {
	Choice string `json:"choice"`
}

// SettingsPayload carries partial overrides; nil fields are left untouched
type SettingsPayload struct {
	RoundMs        *int `json:"roundMs,omitempty"`
	IntermissionMs *int `json:"intermissionMs,omitempty"`
}
