package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/zaironnya/KrugoBot/internal/domain"
)

// CallbackRecheck identifies the "verify subscription" button press.
const CallbackRecheck = "check_sub"

// CreateSubscribeKeyboard builds the subscribe affordance: a link to the
// channel plus a recheck button.
func CreateSubscribeKeyboard(channelURL string, msgs *domain.Messages) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL(msgs.SubscribeButton, channelURL),
			tgbotapi.NewInlineKeyboardButtonData(msgs.RecheckButton, CallbackRecheck),
		),
	)
}
