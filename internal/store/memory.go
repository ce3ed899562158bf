package store

import (
	"fmt"
	"sync"

	"uctuuctu/internal/game"
	"uctuuctu/internal/models"
)

// Rand is the random source used for room codes and avatars.
// *math/rand.Rand satisfies it; tests supply deterministic sequences.
type Rand interface {
	Intn(n int) int
}

// lockedRand serializes draws from a shared source. math/rand sources
// are not safe for concurrent use and draws happen outside the write
// lock (concurrent joins, per-room timer callbacks).
type lockedRand struct {
	mu  sync.Mutex
	rng Rand
}

func (r *lockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}

// NewLockedRand wraps a random source so concurrent callers serialize
func NewLockedRand(rng Rand) Rand {
	return &lockedRand{rng: rng}
}

var avatars = []string{"🐦", "🦉", "🦜", "🐝", "🦋", "🎈", "🪁", "🐘", "🐢", "🐸", "🦩", "🐌"}

// RoomStore manages all live rooms in memory. It owns room creation,
// destruction and membership; it runs no timers of its own.
type RoomStore struct {
	rooms    map[string]*models.Room
	mu       sync.RWMutex
	rng      Rand
	defaults models.RoomSettings
}

// NewRoomStore creates an empty store with the given random source and
// process-wide default settings
func NewRoomStore(rng Rand, defaults models.RoomSettings) *RoomStore {
	return &RoomStore{
		rooms:    make(map[string]*models.Room),
		rng:      NewLockedRand(rng),
		defaults: game.ClampSettings(defaults),
	}
}

// CreateRoom opens a new room with the given player as host
func (s *RoomStore) CreateRoom(hostID, hostName string) *models.Room {
	s.mu.Lock()
	defer s.mu.Unlock()

	code := s.uniqueCode()
	room := &models.Room{
		Code:     code,
		HostID:   hostID,
		Status:   models.StatusLobby,
		Players:  make(map[string]*models.Player),
		Settings: s.defaults,
	}
	room.Players[hostID] = &models.Player{
		ID:     hostID,
		Name:   hostName,
		Avatar: avatars[s.rng.Intn(len(avatars))],
		Alive:  true,
	}
	s.rooms[code] = room
	return room
}

// uniqueCode draws 5-digit codes until one misses the live set.
// Codes are recycled once their room is destroyed. Must be called with
// the store lock held.
func (s *RoomStore) uniqueCode() string {
	for {
		code := fmt.Sprintf("%d", 10000+s.rng.Intn(90000))
		if _, exists := s.rooms[code]; !exists {
			return code
		}
	}
}

// GetRoom looks up a room by code, nil if absent
func (s *RoomStore) GetRoom(code string) *models.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rooms[code]
}

// JoinRoom inserts a new player into a lobby-state room
func (s *RoomStore) JoinRoom(code, id, name string) (*models.Room, error) {
	s.mu.RLock()
	room := s.rooms[code]
	avatar := avatars[s.rng.Intn(len(avatars))]
	s.mu.RUnlock()

	if room == nil {
		return nil, ErrRoomNotFound
	}

	room.Lock()
	defer room.Unlock()
	if room.Status != models.StatusLobby {
		return nil, ErrRoomNotJoinable
	}
	room.Players[id] = &models.Player{
		ID:     id,
		Name:   name,
		Avatar: avatar,
		Alive:  true,
	}
	return room, nil
}

// LeaveRoom removes a player. An emptied room is destroyed and nil is
// returned; if the departing player was host, the role transfers to an
// arbitrary remaining member.
func (s *RoomStore) LeaveRoom(code, id string) *models.Room {
	s.mu.Lock()
	defer s.mu.Unlock()

	room := s.rooms[code]
	if room == nil {
		return nil
	}

	room.Lock()
	defer room.Unlock()
	if _, ok := room.Players[id]; !ok {
		return room
	}
	delete(room.Players, id)

	if len(room.Players) == 0 {
		delete(s.rooms, code)
		return nil
	}

	if room.HostID == id {
		for pid := range room.Players {
			room.HostID = pid
			break
		}
	}
	return room
}

// SetReady updates a player's lobby ready flag; a no-op once the game started
func (s *RoomStore) SetReady(code, id string, ready bool) *models.Room {
	room := s.GetRoom(code)
	if room == nil {
		return nil
	}

	room.Lock()
	defer room.Unlock()
	if room.Status != models.StatusLobby {
		return room
	}
	if p, ok := room.Players[id]; ok {
		p.Ready = ready
	}
	return room
}

// SetSettings merges the given overrides into the room settings, clamping
// both knobs; a no-op once the game started
func (s *RoomStore) SetSettings(code string, roundMs, intermissionMs *int) *models.Room {
	room := s.GetRoom(code)
	if room == nil {
		return nil
	}

	room.Lock()
	defer room.Unlock()
	if room.Status != models.StatusLobby {
		return room
	}
	next := room.Settings
	if roundMs != nil {
		next.RoundMs = *roundMs
	}
	if intermissionMs != nil {
		next.IntermissionMs = *intermissionMs
	}
	room.Settings = game.ClampSettings(next)
	return room
}

// ResetToLobby returns a room to the lobby state: round and winner are
// cleared and every player comes back alive and un-ready. Allowed from
// any status so a finished game can be restarted.
func (s *RoomStore) ResetToLobby(code string) *models.Room {
	room := s.GetRoom(code)
	if room == nil {
		return nil
	}

	room.Lock()
	defer room.Unlock()
	room.Status = models.StatusLobby
	room.Round = nil
	room.WinnerID = ""
	for _, p := range room.Players {
		p.Ready = false
		p.Alive = true
		p.Choice = ""
		p.RespondedAt = 0
		p.FailedAtWord = ""
		p.FailedChoice = ""
	}
	return room
}
