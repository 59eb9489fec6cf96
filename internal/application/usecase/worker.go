package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/zaironnya/KrugoBot/internal/domain"
	"github.com/zaironnya/KrugoBot/internal/retry"
)

const (
	deliveryAttempts     = 3
	deliveryInitialDelay = 2 * time.Second

	artifactPollAttempts = 5
	artifactPollDelay    = 200 * time.Millisecond
)

// Worker is the single consumer of the job queue. It processes one job
// fully before taking the next: the transcoder is CPU-bound, so a
// second concurrent transcode would slow both down.
type Worker struct {
	queue      *domain.JobQueue
	transport  Transport
	transcoder Transcoder
	store      FileStore
	admission  *domain.AdmissionSet
	stats      *domain.StatsWindow
	narrator   *Narrator
	msgs       *domain.Messages
	log        *zap.Logger

	deliveryDelay time.Duration
	artifactDelay time.Duration
}

// NewWorker wires the single consumer.
func NewWorker(
	queue *domain.JobQueue,
	transport Transport,
	transcoder Transcoder,
	store FileStore,
	admission *domain.AdmissionSet,
	stats *domain.StatsWindow,
	narrator *Narrator,
	msgs *domain.Messages,
	log *zap.Logger,
) *Worker {
	return &Worker{
		queue:         queue,
		transport:     transport,
		transcoder:    transcoder,
		store:         store,
		admission:     admission,
		stats:         stats,
		narrator:      narrator,
		msgs:          msgs,
		log:           log,
		deliveryDelay: deliveryInitialDelay,
		artifactDelay: artifactPollDelay,
	}
}

// Run consumes jobs until the context is cancelled and the queue closed.
func (w *Worker) Run(ctx context.Context) {
	for {
		job, ok := w.queue.Dequeue(ctx)
		if !ok {
			return
		}
		w.process(ctx, job)
	}
}

// process drives one job through the state machine. Admission release
// and temp-file removal run on every exit path.
func (w *Worker) process(ctx context.Context, job *domain.Job) {
	log := w.log.With(zap.String("job", job.ID.String()), zap.Int64("user", job.UserID))
	defer w.admission.Release(job.UserID)
	defer func() {
		_ = w.store.RemoveIfExists(job.SourcePath)
		_ = w.store.RemoveIfExists(job.OutputPath)
	}()

	// The narration runs before the transcode on purpose: it gives the
	// transport time to settle and the user a perceived-progress signal
	// while the short real transcode has not started yet.
	job.Status = domain.StatusNarrating
	if job.StatusMessageID != 0 {
		w.narrator.Run(ctx, job.ChatID, job.StatusMessageID)
	}

	job.Status = domain.StatusTranscoding
	job.OutputPath = w.store.NotePath(job.ID.String())
	if err := w.transcoder.Transcode(ctx, job.SourcePath, job.OutputPath); err != nil {
		w.fail(job, log, w.msgs.TranscodeFailed, err)
		return
	}
	if size, err := w.store.Size(job.OutputPath); err != nil || size == 0 {
		// An empty output is a crashed transcode, never a success.
		w.fail(job, log, w.msgs.TranscodeFailed, domain.ErrEmptyOutput)
		return
	}

	job.Status = domain.StatusDelivering
	if err := w.deliver(ctx, job); err != nil {
		w.fail(job, log, w.msgs.DeliveryFailed, err)
		return
	}

	job.Status = domain.StatusCompleted
	w.stats.Record(job.UserID)

	// The inbound message and its temp copy go away only after the
	// delivery is confirmed; deletes are best-effort.
	_ = w.transport.DeleteMessage(job.ChatID, job.SourceMessageID)
	_ = w.transport.DeleteMessage(job.ChatID, job.StatusMessageID)

	log.Info("note delivered")
}

// deliver sends the artifact with bounded retries. Before the first
// attempt it polls briefly for the file to appear non-empty, guarding
// against a filesystem that has not flushed the transcoder's output.
func (w *Worker) deliver(ctx context.Context, job *domain.Job) error {
	if err := w.waitForArtifact(ctx, job.OutputPath); err != nil {
		return err
	}
	err := retry.Do(ctx, deliveryAttempts, retry.Exponential(w.deliveryDelay), func() error {
		return w.transport.SendVideoNote(job.ChatID, job.OutputPath)
	})
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDeliveryExhausted, err)
	}
	return nil
}

func (w *Worker) waitForArtifact(ctx context.Context, path string) error {
	for i := 0; ; i++ {
		if size, err := w.store.Size(path); err == nil && size > 0 {
			return nil
		}
		if i == artifactPollAttempts-1 {
			return domain.ErrEmptyOutput
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(w.artifactDelay):
		}
	}
}

func (w *Worker) fail(job *domain.Job, log *zap.Logger, userMsg string, err error) {
	from := job.Status
	job.Status = domain.StatusFailed
	log.Warn("job failed", zap.String("state", string(from)), zap.Error(err))
	if job.StatusMessageID != 0 {
		_ = w.transport.EditMessageText(job.ChatID, job.StatusMessageID, userMsg)
		return
	}
	// No status message to edit, so the diagnostic goes out as a fresh
	// message rather than leaving the user without feedback.
	_, _ = w.transport.SendMessage(job.ChatID, userMsg)
}
