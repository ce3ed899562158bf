package store

import "errors"

var (
	ErrRoomNotFound    = errors.New("room-not-found")
	ErrRoomNotJoinable = errors.New("room-not-joinable")
)
