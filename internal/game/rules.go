package game

import (
	"uctuuctu/internal/models"
)

const (
	// MinRoundMs and MaxRoundMs bound the answer window
	MinRoundMs = 500
	MaxRoundMs = 8000

	// MinIntermissionMs and MaxIntermissionMs bound the pause between rounds
	MinIntermissionMs = 500
	MaxIntermissionMs = 5000

	// DefaultRoundMs and DefaultIntermissionMs apply when a room has not overridden them
	DefaultRoundMs        = 4000
	DefaultIntermissionMs = 1000
)

// ClampSettings forces both timing knobs into their allowed ranges
func ClampSettings(s models.RoomSettings) models.RoomSettings {
	s.RoundMs = clamp(s.RoundMs, MinRoundMs, MaxRoundMs)
	s.IntermissionMs = clamp(s.IntermissionMs, MinIntermissionMs, MaxIntermissionMs)
	return s
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NextRound replaces the room's round with a fresh one for the given prompt
// and clears every alive player's response. Eliminated players keep their
// frozen failure record. Must be called with the room lock held.
func NextRound(room *models.Room, prompt Prompt, startTs int64, roundMs int) *models.Round {
	round := &models.Round{
		ItemID:       prompt.ID,
		ItemText:     prompt.Text,
		ItemImage:    prompt.Image,
		Flies:        prompt.Flies,
		RoundStartTs: startTs,
		DeadlineTs:   startTs + int64(roundMs),
	}
	for _, p := range room.Players {
		if !p.Alive {
			continue
		}
		p.Choice = ""
		p.RespondedAt = 0
	}
	room.Round = round
	return round
}

// SubmitAnswer records a player's choice for the current round. It reports
// whether the answer was accepted; rejected answers change no state.
// First answer wins, late duplicates are dropped. Must be called with the
// room lock held.
func SubmitAnswer(room *models.Room, playerID, choice string, serverTs int64) bool {
	round := room.Round
	if round == nil {
		return false
	}
	if choice != ChoiceFlies && choice != ChoiceNotFlies {
		return false
	}
	p, ok := room.Players[playerID]
	if !ok || !p.Alive {
		return false
	}
	if serverTs < round.RoundStartTs || serverTs > round.DeadlineTs {
		return false
	}
	if p.HasAnswered() {
		return false
	}
	p.Choice = choice
	p.RespondedAt = serverTs
	return true
}

// SettleRound evaluates every player against the current round: no answer,
// a wrong answer, or a late answer eliminates. Players already dead (for
// example via the immediate-elimination path) appear in the summary but are
// not re-processed, so their failure record is never overwritten. If at
// most one player survives, the room ends with that survivor as winner
// (or no winner at all when everyone fell together). Must be called with
// the room lock held.
func SettleRound(room *models.Room) models.RoundResults {
	round := room.Round
	if round == nil {
		return models.RoundResults{Eliminated: []string{}, Survivors: []string{}}
	}
	correct := CorrectChoice(round.Flies)
	results := models.RoundResults{
		Eliminated: []string{},
		Survivors:  []string{},
		Summary: models.RoundSummary{
			Word:    round.ItemText,
			Flies:   round.Flies,
			Players: make(map[string]models.PlayerResult, len(room.Players)),
		},
	}

	for id, p := range room.Players {
		if !p.Alive {
			results.Summary.Players[id] = models.PlayerResult{Choice: p.Choice, Correct: false, InTime: true}
			continue
		}

		inTime := p.HasAnswered() && p.RespondedAt <= round.DeadlineTs
		isCorrect := p.HasAnswered() && p.Choice == correct

		if isCorrect && inTime {
			results.Survivors = append(results.Survivors, id)
		} else {
			p.Alive = false
			if p.FailedAtWord == "" {
				p.FailedAtWord = round.ItemText
				p.FailedChoice = p.Choice
			}
			results.Eliminated = append(results.Eliminated, id)
		}
		results.Summary.Players[id] = models.PlayerResult{Choice: p.Choice, Correct: isCorrect, InTime: inTime}
	}

	if room.AliveCount() <= 1 {
		room.Status = models.StatusGameOver
		// round present iff status is playing
		room.Round = nil
		for id, p := range room.Players {
			if p.Alive {
				room.WinnerID = id
			}
		}
	}
	return results
}
