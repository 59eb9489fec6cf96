package usecase

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/zaironnya/KrugoBot/internal/domain"
)

// StatusReporter builds the operator status message: uptime, the 24h
// stats window, active jobs and temp-storage usage. Purely
// observational, never part of the job lifecycle.
type StatusReporter struct {
	startedAt time.Time
	stats     *domain.StatsWindow
	admission *domain.AdmissionSet
	store     FileStore
	msgs      *domain.Messages
}

// NewStatusReporter creates a reporter anchored at process start.
func NewStatusReporter(stats *domain.StatsWindow, admission *domain.AdmissionSet, store FileStore, msgs *domain.Messages) *StatusReporter {
	return &StatusReporter{
		startedAt: time.Now(),
		stats:     stats,
		admission: admission,
		store:     store,
		msgs:      msgs,
	}
}

// Report renders the status text.
func (r *StatusReporter) Report() string {
	uptime := time.Since(r.startedAt).Round(time.Second)
	users, videos := r.stats.Counts()
	usageText := "?"
	if usage, err := r.store.Usage(); err == nil {
		usageText = humanize.IBytes(uint64(usage))
	}
	return fmt.Sprintf(r.msgs.StatusReport, uptime, videos, users, r.admission.ActiveCount(), usageText)
}
