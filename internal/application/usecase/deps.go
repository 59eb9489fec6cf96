package usecase

import "context"

// Transport is the slice of the chat API the pipeline consumes. Edits
// and deletes are best-effort for cosmetic updates; download metadata
// and the final note send are failure-producing.
type Transport interface {
	SendMessage(chatID int64, text string) (int, error)
	EditMessageText(chatID int64, messageID int, text string) error
	DeleteMessage(chatID int64, messageID int) error
	SendVideoNote(chatID int64, path string) error
	FileInfo(fileID string) (size int64, url string, err error)
}

// Transcoder is the external media tool boundary.
type Transcoder interface {
	// Probe returns the media duration in seconds. An output it cannot
	// parse is an error, never a zero duration.
	Probe(ctx context.Context, path string) (float64, error)
	// Transcode produces the square note file or fails.
	Transcode(ctx context.Context, inputPath, outputPath string) error
}

// FileStore owns the temp workspace for job artifacts.
type FileStore interface {
	SourcePath(userID int64, messageID int) string
	NotePath(jobID string) string
	Download(url, path string) error
	Size(path string) (int64, error)
	RemoveIfExists(path string) error
	Usage() (int64, error)
}

// Gate decides whether a user may submit.
type Gate interface {
	IsAuthorized(ctx context.Context, userID int64, forceRefresh bool) bool
}
