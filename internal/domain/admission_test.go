package domain

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdmissionSingleWinner(t *testing.T) {
	a := NewAdmissionSet()

	const attempts = 100
	var admitted atomic.Int32
	var wg sync.WaitGroup
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			defer wg.Done()
			if a.TryAdmit(7) {
				admitted.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), admitted.Load(), "exactly one concurrent submission must be admitted")
	assert.Equal(t, 1, a.ActiveCount())
}

func TestAdmissionIndependentUsers(t *testing.T) {
	a := NewAdmissionSet()

	assert.True(t, a.TryAdmit(1))
	assert.True(t, a.TryAdmit(2))
	assert.False(t, a.TryAdmit(1))
	assert.Equal(t, 2, a.ActiveCount())
}

func TestAdmissionReleaseIdempotent(t *testing.T) {
	a := NewAdmissionSet()

	assert.True(t, a.TryAdmit(1))
	a.Release(1)
	a.Release(1)
	assert.Equal(t, 0, a.ActiveCount())
	assert.True(t, a.TryAdmit(1), "slot must be free after release")
}
