package models

// RoomStatus represents the current state of a room
type RoomStatus string

const (
	StatusLobby    RoomStatus = "lobby"
	StatusPlaying  RoomStatus = "playing"
	StatusGameOver RoomStatus = "game_over"
)
