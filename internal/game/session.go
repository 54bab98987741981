package game

import (
	"sort"
	"sync"

	"github.com/cmaddox5/holderbot/internal/models"
)

// Session holds the cross-round state the caller owns: the cumulative score
// ledger and the set of round IDs already executed. Rounds mutate it one at
// a time; the lock exists so readers (leaderboard command, gateway) can look
// in while a round is running.
type Session struct {
	mu     sync.RWMutex
	scores map[string]int
	used   map[string]struct{}
}

func NewSession() *Session {
	return &Session{
		scores: make(map[string]int),
		used:   make(map[string]struct{}),
	}
}

// RoundUsed reports whether roundID has already executed in this session.
func (s *Session) RoundUsed(roundID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.used[roundID]
	return ok
}

// MarkRoundUsed records roundID as executed.
func (s *Session) MarkRoundUsed(roundID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.used[roundID] = struct{}{}
}

// AddPoints increments each listed participant's ledger entry by points.
// Entries only ever grow; participants not listed are untouched. Calling
// this twice applies twice; single-use per round is the round guard's job,
// not this one's.
func (s *Session) AddPoints(ids []string, points int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		s.scores[id] += points
	}
}

// Score returns the participant's accumulated points, zero if absent.
func (s *Session) Score(id string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scores[id]
}

// Standings returns the ledger sorted by points descending, ties broken by
// participant ID.
func (s *Session) Standings() []models.Standing {
	s.mu.RLock()
	defer s.mu.RUnlock()

	standings := make([]models.Standing, 0, len(s.scores))
	for id, points := range s.scores {
		standings = append(standings, models.Standing{ParticipantID: id, Points: points})
	}
	sort.Slice(standings, func(i, j int) bool {
		if standings[i].Points != standings[j].Points {
			return standings[i].Points > standings[j].Points
		}
		return standings[i].ParticipantID < standings[j].ParticipantID
	})
	return standings
}
