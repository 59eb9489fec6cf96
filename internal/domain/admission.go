package domain

import "sync"

// AdmissionSet is the single-flight guard: at most one in-flight job per
// user. Check and insert happen under one lock so two concurrent
// submissions from the same user cannot both pass.
type AdmissionSet struct {
	mu     sync.Mutex
	active map[int64]struct{}
}

// NewAdmissionSet creates an empty admission set.
func NewAdmissionSet() *AdmissionSet {
	return &AdmissionSet{
		active: make(map[int64]struct{}),
	}
}

// TryAdmit records the user as active iff they have no active job.
func (a *AdmissionSet) TryAdmit(userID int64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.active[userID]; ok {
		return false
	}
	a.active[userID] = struct{}{}
	return true
}

// Release frees the user's slot. Idempotent.
func (a *AdmissionSet) Release(userID int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.active, userID)
}

// ActiveCount returns the number of held slots.
func (a *AdmissionSet) ActiveCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.active)
}
