package telegram

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/zaironnya/KrugoBot/internal/application/usecase"
	"github.com/zaironnya/KrugoBot/internal/domain"
)

// ChatAPI is the slice of the bot surface the handler drives.
type ChatAPI interface {
	SendMessage(chatID int64, text string) (int, error)
	SendReply(chatID int64, replyTo int, text string, replyMarkup interface{}) (int, error)
	DeleteMessage(chatID int64, messageID int) error
	AnswerCallback(callbackID, text string, alert bool) error
}

// Submitter accepts inbound video submissions.
type Submitter interface {
	Submit(ctx context.Context, req usecase.Request) (*domain.Job, error)
}

// Gate re-verifies channel membership on demand.
type Gate interface {
	IsAuthorized(ctx context.Context, userID int64, forceRefresh bool) bool
}

// Reporter renders the operator status text.
type Reporter interface {
	Report() string
}

// Handler routes Telegram updates into the pipeline.
type Handler struct {
	bot      ChatAPI
	intake   Submitter
	gate     Gate
	reporter Reporter
	msgs     *domain.Messages
	config   *domain.Config
	log      *zap.Logger

	// Pending "subscription confirmed" messages, deleted when the user
	// next submits a video.
	confirmMu   sync.Mutex
	confirmMsgs map[int64]int
}

// NewHandler creates an update handler.
func NewHandler(
	bot ChatAPI,
	intake Submitter,
	gate Gate,
	reporter Reporter,
	msgs *domain.Messages,
	config *domain.Config,
	log *zap.Logger,
) *Handler {
	return &Handler{
		bot:         bot,
		intake:      intake,
		gate:        gate,
		reporter:    reporter,
		msgs:        msgs,
		config:      config,
		log:         log,
		confirmMsgs: make(map[int64]int),
	}
}

// HandleUpdate handles one Telegram update.
func (h *Handler) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.handleCallbackQuery(ctx, update.CallbackQuery)
		return
	}

	message := update.Message
	if message == nil || message.From == nil {
		return
	}

	if message.Text != "" {
		h.handleTextMessage(message)
		return
	}

	if fileID, ok := videoFileID(message); ok {
		h.handleVideoMessage(ctx, message, fileID)
	}
}

func (h *Handler) handleCallbackQuery(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	if callback.Data != CallbackRecheck || callback.Message == nil {
		return
	}
	userID := callback.From.ID
	chatID := callback.Message.Chat.ID

	// Explicit recheck: the user just pressed "I subscribed", so force a
	// fresh verification instead of trusting the cache.
	if !h.gate.IsAuthorized(ctx, userID, true) {
		_ = h.bot.AnswerCallback(callback.ID, h.msgs.NotSubscribedAlert, true)
		return
	}

	_ = h.bot.AnswerCallback(callback.ID, "", false)
	_ = h.bot.DeleteMessage(chatID, callback.Message.MessageID)

	confirmID, err := h.bot.SendMessage(chatID, h.msgs.SubscriptionConfirmed)
	if err != nil {
		h.log.Warn("failed to send confirmation", zap.Int64("user", userID), zap.Error(err))
		return
	}
	h.confirmMu.Lock()
	h.confirmMsgs[userID] = confirmID
	h.confirmMu.Unlock()
}

func (h *Handler) handleTextMessage(message *tgbotapi.Message) {
	switch commandName(message.Text) {
	case "/start":
		_, _ = h.bot.SendReply(message.Chat.ID, message.MessageID, h.msgs.Start, nil)

	case "/status":
		// Operator command surface, gated to the fixed operator identity.
		if message.From.ID != h.config.Bot.OperatorID {
			return
		}
		_, _ = h.bot.SendMessage(message.Chat.ID, h.reporter.Report())
	}
}

// commandName strips the bot-mention suffix and arguments, so that
// "/start@SomeBot" and "/start foo" both resolve to "/start".
func commandName(text string) string {
	if i := strings.IndexAny(text, "@ "); i != -1 {
		return text[:i]
	}
	return text
}

func (h *Handler) handleVideoMessage(ctx context.Context, message *tgbotapi.Message, fileID string) {
	userID := message.From.ID
	chatID := message.Chat.ID

	h.dropConfirmMessage(userID, chatID)

	_, err := h.intake.Submit(ctx, usecase.Request{
		UserID:    userID,
		ChatID:    chatID,
		MessageID: message.MessageID,
		FileID:    fileID,
	})
	switch {
	case err == nil:

	case errors.Is(err, domain.ErrAlreadyActive):
		_, _ = h.bot.SendReply(chatID, message.MessageID, h.msgs.AlreadyActive, nil)

	case errors.Is(err, domain.ErrNotSubscribed):
		keyboard := CreateSubscribeKeyboard(h.config.Bot.ChannelURL, h.msgs)
		_, _ = h.bot.SendReply(chatID, message.MessageID, h.msgs.AccessDenied, keyboard)
		_ = h.bot.DeleteMessage(chatID, message.MessageID)

	default:
		// Intake already surfaced the rejection on the status message.
		h.log.Info("submission rejected", zap.Int64("user", userID), zap.Error(err))
	}
}

func (h *Handler) dropConfirmMessage(userID, chatID int64) {
	h.confirmMu.Lock()
	confirmID, ok := h.confirmMsgs[userID]
	if ok {
		delete(h.confirmMsgs, userID)
	}
	h.confirmMu.Unlock()
	if ok {
		_ = h.bot.DeleteMessage(chatID, confirmID)
	}
}

// videoFileID extracts the file id of a video message, accepting video
// documents by mime type or extension.
func videoFileID(message *tgbotapi.Message) (string, bool) {
	if message.Video != nil {
		return message.Video.FileID, true
	}
	doc := message.Document
	if doc == nil {
		return "", false
	}

	isVideo := false
	switch doc.MimeType {
	case "video/mp4", "video/quicktime", "video/x-msvideo",
		"video/webm", "video/x-matroska", "video/x-ms-wmv":
		isVideo = true
	}
	if !isVideo && doc.FileName != "" {
		switch strings.ToLower(filepath.Ext(doc.FileName)) {
		case ".mp4", ".mov", ".avi", ".webm", ".mkv", ".wmv", ".flv":
			isVideo = true
		}
	}
	if !isVideo {
		return "", false
	}
	return doc.FileID, true
}
