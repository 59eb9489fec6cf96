package domain

import (
	"sync"
	"time"
)

// VideoEvent marks one successfully delivered note. Immutable.
type VideoEvent struct {
	Timestamp time.Time
	UserID    int64
}

// StatsWindow is a sliding event log used for read-only reporting.
// Events are appended in arrival order, so the log stays time-ordered
// and pruning only ever drops from the front.
type StatsWindow struct {
	mu     sync.Mutex
	window time.Duration
	events []VideoEvent
	now    func() time.Time
}

// NewStatsWindow creates a window of the given width (24h in production).
func NewStatsWindow(window time.Duration) *StatsWindow {
	return &StatsWindow{
		window: window,
		now:    time.Now,
	}
}

// Record appends an event for the user.
func (s *StatsWindow) Record(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune()
	s.events = append(s.events, VideoEvent{Timestamp: s.now(), UserID: userID})
}

// Counts returns distinct users and total events within the window.
func (s *StatsWindow) Counts() (uniqueUsers, totalVideos int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune()

	users := make(map[int64]struct{}, len(s.events))
	for _, e := range s.events {
		users[e.UserID] = struct{}{}
	}
	return len(users), len(s.events)
}

// prune drops events older than the window. Caller holds the lock.
func (s *StatsWindow) prune() {
	cutoff := s.now().Add(-s.window)
	i := 0
	for i < len(s.events) && s.events[i].Timestamp.Before(cutoff) {
		i++
	}
	if i > 0 {
		s.events = s.events[i:]
	}
}
