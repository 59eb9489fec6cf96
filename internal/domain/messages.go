package domain

// Messages holds the user-facing strings of the bot.
type Messages struct {
	Start                 string
	AccessDenied          string
	SubscribeButton       string
	RecheckButton         string
	SubscriptionConfirmed string
	NotSubscribedAlert    string
	AlreadyActive         string
	TooLarge              string
	TooLong               string
	InvalidDuration       string
	DownloadFailed        string
	TranscodeFailed       string
	DeliveryFailed        string
	StatusReport          string
	ProgressPhrases       [5]string
}

// DefaultMessages returns the bot's message catalog.
func DefaultMessages() *Messages {
	return &Messages{
		Start: "⚡ Привет!\n" +
			"Скинь видео до 1 минуты — я сделаю из него стильный кружок ⭕\n\n" +
			"Проект создан в стиле Video Reactor 💠",
		AccessDenied:          "🚫 Доступ ограничен!\n\nПодпишись на канал, чтобы использовать бота 👇",
		SubscribeButton:       "🔗 Подписаться",
		RecheckButton:         "✅ Проверить подписку",
		SubscriptionConfirmed: "✅ Подписка подтверждена! Можешь отправить видео 🎥",
		NotSubscribedAlert:    "Ты ещё не подписался!",
		AlreadyActive:         "⏳ Сначала дождись, пока я закончу твоё предыдущее видео 🎬",
		TooLarge:              "⚠️ Ошибка: файл больше %d МБ.",
		TooLong:               "⚠️ Ошибка: видео длиннее %d секунд.",
		InvalidDuration:       "❌ Ошибка: пожалуйста, отправь видео до 1 минуты 🎬",
		DownloadFailed:        "❌ Не удалось скачать видео, попробуй ещё раз",
		TranscodeFailed:       "❌ Не удалось обработать видео, попробуй другое",
		DeliveryFailed:        "❌ Не удалось отправить кружок, попробуй ещё раз",
		StatusReport:          "💠 Video Reactor\nАптайм: %s\nЗа 24 часа: %d кружков от %d пользователей\nАктивных задач: %d\nВременные файлы: %s",
		ProgressPhrases: [5]string{
			"⚙️ Запуск реактора...",
			"⚡ Стабилизация потока энергии...",
			"🔥 Волновое расширение...",
			"💥 Критическая энергия достигнута...",
			"✨ Рендер завершён!",
		},
	}
}
