package domain

import "errors"

// Intake errors resolve at submission time: the user gets an immediate
// response and no job is created.
var (
	ErrAlreadyActive  = errors.New("user already has an active job")
	ErrNotSubscribed  = errors.New("user is not subscribed to the channel")
	ErrTooLarge       = errors.New("source file exceeds size limit")
	ErrTooLong        = errors.New("source video exceeds duration limit")
	ErrDownloadFailed = errors.New("failed to download source video")
)

// Transcode errors terminate a job in the failed state.
var (
	ErrTranscodeFailed  = errors.New("transcoder exited with error")
	ErrEmptyOutput      = errors.New("transcoder produced no output")
	ErrTranscodeTimeout = errors.New("transcoder timed out")
)

// ErrDeliveryExhausted means all delivery attempts were spent.
var ErrDeliveryExhausted = errors.New("delivery attempts exhausted")
