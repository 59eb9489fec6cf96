package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/zaironnya/KrugoBot/internal/domain"
)

func testConfig() *domain.Config {
	config := &domain.Config{}
	config.Limits.MaxDurationSec = 60
	config.Limits.MaxFileSizeMB = 20
	return config
}

type intakeFixture struct {
	intake     *Intake
	admission  *domain.AdmissionSet
	queue      *domain.JobQueue
	transport  *MockTransport
	store      *MockFileStore
	transcoder *MockTranscoder
}

func newIntakeFixture(t *testing.T, authorized bool) *intakeFixture {
	t.Helper()
	f := &intakeFixture{
		admission:  domain.NewAdmissionSet(),
		queue:      domain.NewJobQueue(),
		transport:  new(MockTransport),
		store:      new(MockFileStore),
		transcoder: new(MockTranscoder),
	}
	f.intake = NewIntake(
		f.admission,
		stubGate{authorized: authorized},
		f.transport,
		f.store,
		f.transcoder,
		f.queue,
		testConfig(),
		domain.DefaultMessages(),
		zap.NewNop(),
	)
	return f
}

func request() Request {
	return Request{UserID: 1, ChatID: 100, MessageID: 7, FileID: "file-1"}
}

func TestSubmitRejectsSecondActiveJob(t *testing.T) {
	f := newIntakeFixture(t, true)
	require.True(t, f.admission.TryAdmit(1))

	_, err := f.intake.Submit(context.Background(), request())
	assert.ErrorIs(t, err, domain.ErrAlreadyActive)

	// The rejected attempt must not release the original slot.
	assert.Equal(t, 1, f.admission.ActiveCount())
}

func TestSubmitRejectsUnsubscribed(t *testing.T) {
	f := newIntakeFixture(t, false)

	_, err := f.intake.Submit(context.Background(), request())
	assert.ErrorIs(t, err, domain.ErrNotSubscribed)

	// No metadata lookup and no download for an unauthorized user.
	f.transport.AssertNotCalled(t, "FileInfo", mock.Anything)
	f.store.AssertNotCalled(t, "Download", mock.Anything, mock.Anything)
	assert.Equal(t, 0, f.admission.ActiveCount(), "slot must be released")
}

func TestSubmitRejectsOversizedBeforeDownload(t *testing.T) {
	f := newIntakeFixture(t, true)
	f.transport.On("SendMessage", int64(100), mock.Anything).Return(55, nil)
	f.transport.On("FileInfo", "file-1").Return(int64(30*1024*1024), "http://files/x", nil)
	f.transport.On("EditMessageText", int64(100), 55, mock.Anything).Return(nil)

	_, err := f.intake.Submit(context.Background(), request())
	assert.ErrorIs(t, err, domain.ErrTooLarge)

	f.store.AssertNotCalled(t, "Download", mock.Anything, mock.Anything)
	f.transport.AssertCalled(t, "EditMessageText", int64(100), 55,
		fmt.Sprintf(domain.DefaultMessages().TooLarge, int64(20)))
	assert.Equal(t, 0, f.admission.ActiveCount())
	assert.Equal(t, 0, f.queue.Len())
}

func TestSubmitRejectsTooLongAndRemovesSource(t *testing.T) {
	f := newIntakeFixture(t, true)
	f.transport.On("SendMessage", int64(100), mock.Anything).Return(55, nil)
	f.transport.On("FileInfo", "file-1").Return(int64(5*1024*1024), "http://files/x", nil)
	f.transport.On("EditMessageText", int64(100), 55, mock.Anything).Return(nil)
	f.store.On("SourcePath", int64(1), 7).Return("/tmp/src.mp4")
	f.store.On("Download", "http://files/x", "/tmp/src.mp4").Return(nil)
	f.store.On("RemoveIfExists", "/tmp/src.mp4").Return(nil)
	f.transcoder.On("Probe", mock.Anything, "/tmp/src.mp4").Return(90.0, nil)

	_, err := f.intake.Submit(context.Background(), request())
	assert.ErrorIs(t, err, domain.ErrTooLong)

	f.store.AssertCalled(t, "RemoveIfExists", "/tmp/src.mp4")
	assert.Equal(t, 0, f.admission.ActiveCount())
	assert.Equal(t, 0, f.queue.Len())
}

func TestSubmitRejectsUnparsableDuration(t *testing.T) {
	f := newIntakeFixture(t, true)
	f.transport.On("SendMessage", int64(100), mock.Anything).Return(55, nil)
	f.transport.On("FileInfo", "file-1").Return(int64(1024), "http://files/x", nil)
	f.transport.On("EditMessageText", int64(100), 55, mock.Anything).Return(nil)
	f.store.On("SourcePath", int64(1), 7).Return("/tmp/src.mp4")
	f.store.On("Download", "http://files/x", "/tmp/src.mp4").Return(nil)
	f.store.On("RemoveIfExists", "/tmp/src.mp4").Return(nil)
	f.transcoder.On("Probe", mock.Anything, "/tmp/src.mp4").Return(0.0, errors.New("no duration"))

	_, err := f.intake.Submit(context.Background(), request())

	// An ambiguous duration must never silently pass as "0 seconds".
	assert.Error(t, err)
	assert.Equal(t, 0, f.queue.Len())
	f.store.AssertCalled(t, "RemoveIfExists", "/tmp/src.mp4")
}

func TestSubmitRejectsFailedDownload(t *testing.T) {
	f := newIntakeFixture(t, true)
	f.transport.On("SendMessage", int64(100), mock.Anything).Return(55, nil)
	f.transport.On("FileInfo", "file-1").Return(int64(1024), "http://files/x", nil)
	f.transport.On("EditMessageText", int64(100), 55, mock.Anything).Return(nil)
	f.store.On("SourcePath", int64(1), 7).Return("/tmp/src.mp4")
	f.store.On("Download", "http://files/x", "/tmp/src.mp4").Return(errors.New("connection reset"))
	f.store.On("RemoveIfExists", "/tmp/src.mp4").Return(nil)

	_, err := f.intake.Submit(context.Background(), request())
	assert.ErrorIs(t, err, domain.ErrDownloadFailed)
	assert.Equal(t, 0, f.admission.ActiveCount())
}

func TestSubmitAcceptsValidClip(t *testing.T) {
	f := newIntakeFixture(t, true)
	f.transport.On("SendMessage", int64(100), mock.Anything).Return(55, nil)
	f.transport.On("FileInfo", "file-1").Return(int64(5*1024*1024), "http://files/x", nil)
	f.store.On("SourcePath", int64(1), 7).Return("/tmp/src.mp4")
	f.store.On("Download", "http://files/x", "/tmp/src.mp4").Return(nil)
	f.transcoder.On("Probe", mock.Anything, "/tmp/src.mp4").Return(45.0, nil)

	job, err := f.intake.Submit(context.Background(), request())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusQueued, job.Status)
	assert.Equal(t, int64(1), job.UserID)
	assert.Equal(t, 55, job.StatusMessageID)
	assert.Equal(t, "/tmp/src.mp4", job.SourcePath)
	assert.Equal(t, 1, f.queue.Len())

	// The slot stays held until the worker finishes the job.
	assert.Equal(t, 1, f.admission.ActiveCount())
	f.store.AssertNotCalled(t, "RemoveIfExists", mock.Anything)
}
