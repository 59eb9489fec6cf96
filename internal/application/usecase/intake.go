package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/zaironnya/KrugoBot/internal/domain"
)

// Request carries what the handler knows about an inbound video message.
type Request struct {
	UserID    int64
	ChatID    int64
	MessageID int
	FileID    string
}

// Intake runs the submission pipeline: admission, access gate, size
// check, download, duration probe, enqueue. Each step short-circuits
// with a typed error; any failure releases the admission slot and
// removes whatever was downloaded.
type Intake struct {
	admission  *domain.AdmissionSet
	gate       Gate
	transport  Transport
	store      FileStore
	transcoder Transcoder
	queue      *domain.JobQueue
	config     *domain.Config
	msgs       *domain.Messages
	log        *zap.Logger
}

// NewIntake wires the submission pipeline.
func NewIntake(
	admission *domain.AdmissionSet,
	gate Gate,
	transport Transport,
	store FileStore,
	transcoder Transcoder,
	queue *domain.JobQueue,
	config *domain.Config,
	msgs *domain.Messages,
	log *zap.Logger,
) *Intake {
	return &Intake{
		admission:  admission,
		gate:       gate,
		transport:  transport,
		store:      store,
		transcoder: transcoder,
		queue:      queue,
		config:     config,
		msgs:       msgs,
		log:        log,
	}
}

// Submit validates the request and enqueues a job. On success the
// admission slot stays held until the worker releases it. Errors after
// the status message exists are surfaced to the user by editing it;
// ErrAlreadyActive and ErrNotSubscribed are left to the caller, which
// owns the pre-job responses.
func (in *Intake) Submit(ctx context.Context, req Request) (*domain.Job, error) {
	if !in.admission.TryAdmit(req.UserID) {
		return nil, domain.ErrAlreadyActive
	}
	accepted := false
	defer func() {
		if !accepted {
			in.admission.Release(req.UserID)
		}
	}()

	if !in.gate.IsAuthorized(ctx, req.UserID, false) {
		return nil, domain.ErrNotSubscribed
	}

	statusMsgID, err := in.transport.SendMessage(req.ChatID, in.msgs.ProgressPhrases[0])
	if err != nil {
		// Cosmetic only: the job can proceed without a status message.
		in.log.Warn("failed to send status message", zap.Int64("user", req.UserID), zap.Error(err))
	}

	size, fileURL, err := in.transport.FileInfo(req.FileID)
	if err != nil {
		in.editStatus(req.ChatID, statusMsgID, in.msgs.DownloadFailed)
		return nil, fmt.Errorf("%w: resolve file: %v", domain.ErrDownloadFailed, err)
	}
	// Declared size is checked before downloading to avoid the transfer.
	if size > in.config.MaxFileSizeBytes() {
		in.editStatus(req.ChatID, statusMsgID, fmt.Sprintf(in.msgs.TooLarge, in.config.Limits.MaxFileSizeMB))
		return nil, fmt.Errorf("%w: %d bytes", domain.ErrTooLarge, size)
	}

	sourcePath := in.store.SourcePath(req.UserID, req.MessageID)
	if err := in.store.Download(fileURL, sourcePath); err != nil {
		in.editStatus(req.ChatID, statusMsgID, in.msgs.DownloadFailed)
		return nil, fmt.Errorf("%w: %v", domain.ErrDownloadFailed, err)
	}
	defer func() {
		if !accepted {
			_ = in.store.RemoveIfExists(sourcePath)
		}
	}()

	duration, err := in.transcoder.Probe(ctx, sourcePath)
	if err != nil {
		// An unparsable duration is a rejection, never "0 seconds, allow".
		in.editStatus(req.ChatID, statusMsgID, in.msgs.InvalidDuration)
		return nil, fmt.Errorf("%w: probe: %v", domain.ErrTooLong, err)
	}
	if duration > in.config.MaxDuration().Seconds() {
		in.editStatus(req.ChatID, statusMsgID, fmt.Sprintf(in.msgs.TooLong, in.config.Limits.MaxDurationSec))
		return nil, fmt.Errorf("%w: %.1fs", domain.ErrTooLong, duration)
	}

	job := domain.NewJob(req.UserID, req.ChatID, req.MessageID, statusMsgID, sourcePath)
	in.queue.Enqueue(job)
	accepted = true

	in.log.Info("job queued",
		zap.String("job", job.ID.String()),
		zap.Int64("user", req.UserID),
		zap.Float64("duration_sec", duration),
		zap.Int64("size_bytes", size))
	return job, nil
}

func (in *Intake) editStatus(chatID int64, messageID int, text string) {
	if messageID == 0 {
		return
	}
	_ = in.transport.EditMessageText(chatID, messageID, text)
}
