package models

import "sync"

// RoomSettings holds the host-tunable timing knobs, clamped on every write
type RoomSettings struct {
	RoundMs        int `json:"roundMs"`
	IntermissionMs int `json:"intermissionMs"`
}

// Room represents one isolated game session identified by a short code
type Room struct {
	Code     string             `json:"code"`
	HostID   string             `json:"hostId"`
	Status   RoomStatus         `json:"status"`
	Players  map[string]*Player `json:"players"`
	Round    *Round             `json:"round,omitempty"`
	WinnerID string             `json:"winnerId,omitempty"`
	Settings RoomSettings       `json:"settings"`

	mu sync.RWMutex
}

// Lock acquires the room's write lock
func (r *Room) Lock() {
	r.mu.Lock()
}

// Unlock releases the room's write lock
func (r *Room) Unlock() {
	r.mu.Unlock()
}

// RLock acquires the room's read lock
func (r *Room) RLock() {
	r.mu.RLock()
}

// RUnlock releases the room's read lock
func (r *Room) RUnlock() {
	r.mu.RUnlock()
}

// AliveCount returns the number of players still in the game (must be called with lock held)
func (r *Room) AliveCount() int {
	count := 0
	for _, p := range r.Players {
		if p.Alive {
			count++
		}
	}
	return count
}

// AllReady reports whether every player has readied up (must be called with lock held)
func (r *Room) AllReady() bool {
	for _, p := range r.Players {
		if !p.Ready {
			return false
		}
	}
	return true
}

// Snapshot returns a copy safe to marshal after the lock is released
// (must be called with at least the read lock held)
func (r *Room) Snapshot() *Room {
	players := make(map[string]*Player, len(r.Players))
	for id, p := range r.Players {
		cp := *p
		players[id] = &cp
	}
	snap := &Room{
		Code:     r.Code,
		HostID:   r.HostID,
		Status:   r.Status,
		Players:  players,
		WinnerID: r.WinnerID,
		Settings: r.Settings,
	}
	if r.Round != nil {
		round := *r.Round
		snap.Round = &round
	}
	return snap
}
