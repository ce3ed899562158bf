package coordinator

import (
	"log"
	"os"
	"sync"
	"time"

	"uctuuctu/internal/game"
	"uctuuctu/internal/models"
	"uctuuctu/internal/store"
)

var debug bool

func init() {
	debug = os.Getenv("DEBUG") != ""
}

const (
	// TickIntervalMs is the cadence of round:tick notifications
	TickIntervalMs = 200

	// PrestartGraceMs delays each round's start so clients can render a countdown
	PrestartGraceMs = 1000
)

// roomTimers holds the scheduled-action handles for one playing room
type roomTimers struct {
	tick         Timer
	deadline     Timer
	intermission Timer
}

// Coordinator drives the per-room round life cycle: it starts games,
// validates answers against the server clock, settles rounds at the
// deadline and schedules the next one. Every scheduled action re-fetches
// the room from the store and no-ops silently when the room or round is
// gone, since timers cannot be synchronously cancelled.
type Coordinator struct {
	store   *store.RoomStore
	emitter Emitter
	sched   Scheduler
	rng     store.Rand
	prompts []game.Prompt

	mu     sync.Mutex
	timers map[string]*roomTimers
}

// New wires a coordinator to its store, outbound emitter, scheduler,
// random source and prompt catalog. The source is wrapped so timer
// callbacks for different rooms can draw prompts concurrently.
func New(st *store.RoomStore, emitter Emitter, sched Scheduler, rng store.Rand, prompts []game.Prompt) *Coordinator {
	return &Coordinator{
		store:   st,
		emitter: emitter,
		sched:   sched,
		rng:     store.NewLockedRand(rng),
		prompts: prompts,
		timers:  make(map[string]*roomTimers),
	}
}

// CreateRoom opens a room with the given player as host and returns a
// snapshot for the creator
func (c *Coordinator) CreateRoom(hostID, name string) *models.Room {
	room := c.store.CreateRoom(hostID, name)
	room.RLock()
	snap := room.Snapshot()
	room.RUnlock()
	log.Printf("Created room: code=%s host=%s", snap.Code, hostID)
	return snap
}

// JoinRoom adds a player to a lobby-state room and announces the arrival
func (c *Coordinator) JoinRoom(code, id, name string) error {
	room, err := c.store.JoinRoom(code, id, name)
	if err != nil {
		return err
	}
	room.RLock()
	joined := *room.Players[id]
	snap := room.Snapshot()
	room.RUnlock()

	log.Printf("Player joined room: code=%s playerID=%s name=%s", code, id, name)
	c.emitter.Broadcast(code, EventPlayerJoined, joined)
	c.emitter.Broadcast(code, EventRoomState, snap)
	return nil
}

// Leave removes a player (or a dropped connection) from their room
func (c *Coordinator) Leave(code, id string) {
	room := c.store.LeaveRoom(code, id)
	if room == nil {
		// last player out destroys the room; clear its timers too
		c.cancelTimers(code)
		log.Printf("Room destroyed or absent after leave: code=%s playerID=%s", code, id)
		return
	}
	room.RLock()
	snap := room.Snapshot()
	room.RUnlock()

	log.Printf("Player left room: code=%s playerID=%s", code, id)
	c.emitter.Broadcast(code, EventPlayerLeft, PlayerLeftPayload{PlayerID: id})
	c.emitter.Broadcast(code, EventRoomState, snap)
}

// SetReady flips a player's lobby ready flag
func (c *Coordinator) SetReady(code, id string, ready bool) {
	room := c.store.SetReady(code, id, ready)
	if room == nil {
		return
	}
	room.RLock()
	snap := room.Snapshot()
	room.RUnlock()
	c.emitter.Broadcast(code, EventRoomState, snap)
}

// SetSettings applies host settings changes while the room is in lobby.
// Non-host requests are silently declined.
func (c *Coordinator) SetSettings(code, requesterID string, roundMs, intermissionMs *int) {
	room := c.store.GetRoom(code)
	if room == nil {
		return
	}
	room.RLock()
	isHost := room.HostID == requesterID
	room.RUnlock()
	if !isHost {
		if debug {
			log.Printf("SetSettings declined: code=%s playerID=%s is not host", code, requesterID)
		}
		return
	}

	room = c.store.SetSettings(code, roundMs, intermissionMs)
	if room == nil {
		return
	}
	room.RLock()
	snap := room.Snapshot()
	room.RUnlock()
	c.emitter.Broadcast(code, EventRoomState, snap)
}

// Reset returns a finished (or in-progress) room to the lobby. Host only.
func (c *Coordinator) Reset(code, requesterID string) {
	room := c.store.GetRoom(code)
	if room == nil {
		return
	}
	room.RLock()
	isHost := room.HostID == requesterID
	room.RUnlock()
	if !isHost {
		return
	}

	c.cancelTimers(code)
	room = c.store.ResetToLobby(code)
	if room == nil {
		return
	}
	room.RLock()
	snap := room.Snapshot()
	room.RUnlock()
	log.Printf("Room reset to lobby: code=%s", code)
	c.emitter.Broadcast(code, EventRoomState, snap)
}

// StartGame flips a fully-ready lobby into the playing state and kicks off
// the first round after the pre-start grace
func (c *Coordinator) StartGame(code string) error {
	room := c.store.GetRoom(code)
	if room == nil {
		return ErrNotReady
	}

	room.Lock()
	if room.Status != models.StatusLobby || len(room.Players) == 0 || !room.AllReady() {
		room.Unlock()
		return ErrNotReady
	}
	room.Status = models.StatusPlaying
	startTs := c.sched.Now().UnixMilli() + PrestartGraceMs
	round := *game.NextRound(room, c.pickPrompt(), startTs, room.Settings.RoundMs)
	snap := room.Snapshot()
	room.Unlock()

	log.Printf("Game started: code=%s players=%d roundMs=%d", code, len(snap.Players), snap.Settings.RoundMs)
	c.emitter.Broadcast(code, EventGameStarted, struct{}{})
	c.emitter.Broadcast(code, EventRoundStarted, round)
	c.emitter.Broadcast(code, EventRoomState, snap)

	c.scheduleDeadline(code, round.DeadlineTs)
	c.startTick(code)
	return nil
}

// SubmitAnswer validates a player's answer against the server clock and
// records it. A wrong answer eliminates the player on the spot; a correct
// but late answer is only punished at settlement.
func (c *Coordinator) SubmitAnswer(code, playerID, choice string) {
	room := c.store.GetRoom(code)
	if room == nil {
		return
	}
	now := c.sched.Now().UnixMilli()

	room.Lock()
	if !game.SubmitAnswer(room, playerID, choice, now) {
		room.Unlock()
		return
	}
	round := room.Round
	var eliminatedWord string
	if choice != game.CorrectChoice(round.Flies) {
		p := room.Players[playerID]
		p.Alive = false
		if p.FailedAtWord == "" {
			p.FailedAtWord = round.ItemText
			p.FailedChoice = choice
		}
		eliminatedWord = round.ItemText
	}
	snap := room.Snapshot()
	room.Unlock()

	if eliminatedWord != "" {
		log.Printf("Player eliminated on answer: code=%s playerID=%s word=%s", code, playerID, eliminatedWord)
		c.emitter.SendTo(code, playerID, EventYouEliminated, EliminatedPayload{Word: eliminatedWord})
	}
	c.emitter.Broadcast(code, EventRoomState, snap)
}

// pickPrompt selects uniformly from the catalog; prompts may repeat
func (c *Coordinator) pickPrompt() game.Prompt {
	return c.prompts[c.rng.Intn(len(c.prompts))]
}

// scheduleDeadline arms the one-shot settlement action for the round
// identified by its deadline timestamp
func (c *Coordinator) scheduleDeadline(code string, deadlineTs int64) {
	delay := time.Duration(deadlineTs-c.sched.Now().UnixMilli()) * time.Millisecond
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.ensureTimers(code)
	t.deadline = c.sched.AfterFunc(delay, func() {
		c.onDeadline(code, deadlineTs)
	})
}

// onDeadline settles the round that was live when the timer was armed.
// Fires against a reset, superseded or destroyed room are stale and do
// nothing.
func (c *Coordinator) onDeadline(code string, deadlineTs int64) {
	room := c.store.GetRoom(code)
	if room == nil {
		return
	}

	room.Lock()
	if room.Status != models.StatusPlaying || room.Round == nil || room.Round.DeadlineTs != deadlineTs {
		room.Unlock()
		if debug {
			log.Printf("Stale deadline fire ignored: code=%s deadlineTs=%d", code, deadlineTs)
		}
		return
	}
	results := game.SettleRound(room)
	status := room.Status
	winnerID := room.WinnerID
	intermissionMs := room.Settings.IntermissionMs
	snap := room.Snapshot()
	room.Unlock()

	log.Printf("Round settled: code=%s eliminated=%d survivors=%d", code, len(results.Eliminated), len(results.Survivors))
	c.emitter.Broadcast(code, EventRoundResults, results)

	if status == models.StatusGameOver {
		log.Printf("Game over: code=%s winnerID=%s", code, winnerID)
		c.emitter.Broadcast(code, EventGameOver, GameOverPayload{WinnerID: winnerID})
		c.emitter.Broadcast(code, EventRoomState, snap)
		c.cancelTimers(code)
		return
	}
	c.emitter.Broadcast(code, EventRoomState, snap)

	c.mu.Lock()
	t := c.ensureTimers(code)
	t.intermission = c.sched.AfterFunc(time.Duration(intermissionMs)*time.Millisecond, func() {
		c.onIntermission(code)
	})
	c.mu.Unlock()
}

// onIntermission begins the next round once the pause between rounds ends
func (c *Coordinator) onIntermission(code string) {
	room := c.store.GetRoom(code)
	if room == nil {
		return
	}

	room.Lock()
	if room.Status != models.StatusPlaying {
		room.Unlock()
		return
	}
	startTs := c.sched.Now().UnixMilli() + PrestartGraceMs
	round := *game.NextRound(room, c.pickPrompt(), startTs, room.Settings.RoundMs)
	snap := room.Snapshot()
	room.Unlock()

	c.emitter.Broadcast(code, EventRoundStarted, round)
	c.emitter.Broadcast(code, EventRoomState, snap)
	c.scheduleDeadline(code, round.DeadlineTs)
}

// startTick arms the recurring countdown notification for a room
func (c *Coordinator) startTick(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.ensureTimers(code)
	if t.tick != nil {
		return
	}
	t.tick = c.sched.AfterFunc(TickIntervalMs*time.Millisecond, func() {
		c.onTick(code)
	})
}

// onTick emits a countdown notification and re-arms itself. The tick
// outlives individual rounds, so it re-checks room, round and status on
// every fire and stops once they are gone.
func (c *Coordinator) onTick(code string) {
	room := c.store.GetRoom(code)
	if room == nil {
		c.stopTick(code)
		return
	}
	room.RLock()
	live := room.Status == models.StatusPlaying && room.Round != nil
	var deadlineTs int64
	if live {
		deadlineTs = room.Round.DeadlineTs
	}
	room.RUnlock()
	if !live {
		c.stopTick(code)
		return
	}

	c.emitter.Broadcast(code, EventRoundTick, TickPayload{
		ServerTs:   c.sched.Now().UnixMilli(),
		DeadlineTs: deadlineTs,
	})

	c.mu.Lock()
	if t, ok := c.timers[code]; ok && t.tick != nil {
		t.tick = c.sched.AfterFunc(TickIntervalMs*time.Millisecond, func() {
			c.onTick(code)
		})
	}
	c.mu.Unlock()
}

// ensureTimers returns the handle set for a room, creating it if needed.
// Must be called with the coordinator lock held.
func (c *Coordinator) ensureTimers(code string) *roomTimers {
	t, ok := c.timers[code]
	if !ok {
		t = &roomTimers{}
		c.timers[code] = t
	}
	return t
}

// stopTick clears only the recurring tick handle
func (c *Coordinator) stopTick(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.timers[code]; ok {
		if t.tick != nil {
			t.tick.Stop()
			t.tick = nil
		}
	}
}

// cancelTimers stops and discards every handle for a room; called on
// game over, reset and room destruction
func (c *Coordinator) cancelTimers(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.timers[code]
	if !ok {
		return
	}
	for _, tm := range []Timer{t.tick, t.deadline, t.intermission} {
		if tm != nil {
			tm.Stop()
		}
	}
	delete(c.timers, code)
}
