package telegram

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const (
	pollTimeoutSec   = 60
	pollRetryMinWait = 3 * time.Second
	pollRetryMaxWait = time.Minute
)

// Bot wraps the Telegram Bot API.
type Bot struct {
	api *tgbotapi.BotAPI
	log *zap.Logger
}

// NewBot creates a new Telegram bot instance.
func NewBot(token string, log *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	return &Bot{api: api, log: log}, nil
}

// Self returns the bot's own identity.
func (b *Bot) Self() tgbotapi.User {
	return b.api.Self
}

// SendMessage sends a plain text message and returns its id.
func (b *Bot) SendMessage(chatID int64, text string) (int, error) {
	sent, err := b.api.Send(tgbotapi.NewMessage(chatID, text))
	if err != nil {
		return 0, err
	}
	return sent.MessageID, nil
}

// SendReply sends a message replying to another, with an optional
// keyboard.
func (b *Bot) SendReply(chatID int64, replyTo int, text string, replyMarkup interface{}) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	if replyTo != 0 {
		msg.ReplyToMessageID = replyTo
	}
	if replyMarkup != nil {
		msg.ReplyMarkup = replyMarkup
	}
	sent, err := b.api.Send(msg)
	if err != nil {
		return 0, err
	}
	return sent.MessageID, nil
}

// EditMessageText edits a message text.
func (b *Bot) EditMessageText(chatID int64, messageID int, text string) error {
	_, err := b.api.Send(tgbotapi.NewEditMessageText(chatID, messageID, text))
	return err
}

// DeleteMessage deletes a message.
func (b *Bot) DeleteMessage(chatID int64, messageID int) error {
	_, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID))
	return err
}

// SendVideoNote sends the circular video from a local file.
func (b *Bot) SendVideoNote(chatID int64, path string) error {
	note := tgbotapi.NewVideoNote(chatID, 512, tgbotapi.FilePath(path))
	_, err := b.api.Send(note)
	return err
}

// FileInfo resolves remote file metadata: the declared size and a
// download URL. No bytes are transferred.
func (b *Bot) FileInfo(fileID string) (int64, string, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return 0, "", fmt.Errorf("failed to get file: %w", err)
	}
	return int64(file.FileSize), file.Link(b.api.Token), nil
}

// MemberStatus returns the user's membership status in a chat.
func (b *Bot) MemberStatus(ctx context.Context, chatID, userID int64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	member, err := b.api.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
			ChatID: chatID,
			UserID: userID,
		},
	})
	if err != nil {
		return "", err
	}
	return member.Status, nil
}

// AnswerCallback answers a callback query, optionally as an alert.
func (b *Bot) AnswerCallback(callbackID, text string, alert bool) error {
	cb := tgbotapi.NewCallback(callbackID, text)
	cb.ShowAlert = alert
	_, err := b.api.Request(cb)
	return err
}

// Updates polls for updates with a long-poll loop. Poll failures —
// including the 409 conflict raised when a second instance polls the
// same token — are retried with capped exponential backoff instead of
// killing the loop. The channel closes when ctx is done.
func (b *Bot) Updates(ctx context.Context) <-chan tgbotapi.Update {
	ch := make(chan tgbotapi.Update, 16)
	go func() {
		defer close(ch)
		offset := 0
		wait := pollRetryMinWait
		for ctx.Err() == nil {
			cfg := tgbotapi.NewUpdate(offset)
			cfg.Timeout = pollTimeoutSec

			updates, err := b.api.GetUpdates(cfg)
			if err != nil {
				b.log.Warn("update poll failed", zap.Duration("retry_in", wait), zap.Error(err))
				select {
				case <-ctx.Done():
					return
				case <-time.After(wait):
				}
				if wait *= 2; wait > pollRetryMaxWait {
					wait = pollRetryMaxWait
				}
				continue
			}
			wait = pollRetryMinWait

			for _, update := range updates {
				if update.UpdateID >= offset {
					offset = update.UpdateID + 1
				}
				select {
				case ch <- update:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return ch
}
