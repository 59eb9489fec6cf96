package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) SendMessage(chatID int64, text string) (int, error) {
	args := m.Called(chatID, text)
	return args.Int(0), args.Error(1)
}

func (m *MockTransport) EditMessageText(chatID int64, messageID int, text string) error {
	args := m.Called(chatID, messageID, text)
	return args.Error(0)
}

func (m *MockTransport) DeleteMessage(chatID int64, messageID int) error {
	args := m.Called(chatID, messageID)
	return args.Error(0)
}

func (m *MockTransport) SendVideoNote(chatID int64, path string) error {
	args := m.Called(chatID, path)
	return args.Error(0)
}

func (m *MockTransport) FileInfo(fileID string) (int64, string, error) {
	args := m.Called(fileID)
	return args.Get(0).(int64), args.String(1), args.Error(2)
}

type MockTranscoder struct {
	mock.Mock
}

func (m *MockTranscoder) Probe(ctx context.Context, path string) (float64, error) {
	args := m.Called(ctx, path)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockTranscoder) Transcode(ctx context.Context, inputPath, outputPath string) error {
	args := m.Called(ctx, inputPath, outputPath)
	return args.Error(0)
}

type MockFileStore struct {
	mock.Mock
}

func (m *MockFileStore) SourcePath(userID int64, messageID int) string {
	args := m.Called(userID, messageID)
	return args.String(0)
}

func (m *MockFileStore) NotePath(jobID string) string {
	args := m.Called(jobID)
	return args.String(0)
}

func (m *MockFileStore) Download(url, path string) error {
	args := m.Called(url, path)
	return args.Error(0)
}

func (m *MockFileStore) Size(path string) (int64, error) {
	args := m.Called(path)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFileStore) RemoveIfExists(path string) error {
	args := m.Called(path)
	return args.Error(0)
}

func (m *MockFileStore) Usage() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

// stubGate avoids dragging the real access gate into pipeline tests.
type stubGate struct {
	authorized bool
}

func (g stubGate) IsAuthorized(ctx context.Context, userID int64, forceRefresh bool) bool {
	return g.authorized
}
