package bot

import (
	"RecoViewer/internal/lib/sl"
	"fmt"
	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"log/slog"
	"strings"
	"unicode/utf8"
)

const (
	maxMessageLength = 4000
	queueSize        = 32
)

type sender interface {
	SendMessage(chatId int64, text string, opts *tgbotapi.SendMessageOpts) (*tgbotapi.Message, error)
}

// TgBot delivers service alerts to the admin chat.
type TgBot struct {
	log         *slog.Logger
	api         sender
	botUsername string
	adminId     int64
	queue       chan string
}

func NewTgBot(botName, apiKey string, adminId int64, log *slog.Logger) (*TgBot, error) {
	tgBot := &TgBot{
		log:         log.With(sl.Module("tgbot")),
		adminId:     adminId,
		botUsername: botName,
		queue:       make(chan string, queueSize),
	}

	api, err := tgbotapi.NewBot(apiKey, nil)
	if err != nil {
		return nil, fmt.Errorf("creating api instance: %v", err)
	}
	tgBot.api = api
	go tgBot.run()

	return tgBot, nil
}

// SendMessage queues msg for the admin chat without blocking the caller.
// Messages are dropped while the queue is full.
func (t *TgBot) SendMessage(msg string) {
	if t.adminId == 0 {
		return
	}
	select {
	case t.queue <- msg:
	default:
		t.log.Debug("alert queue full, message dropped")
	}
}

// run delivers queued messages one at a time.
func (t *TgBot) run() {
	for msg := range t.queue {
		t.plainResponse(t.adminId, msg)
	}
}

func (t *TgBot) plainResponse(chatId int64, text string) {
	text = truncate(text, maxMessageLength)

	sanitized := sanitize(text)
	if sanitized == "" {
		t.log.With(
			slog.Int64("id", chatId),
		).Debug("empty message")
		return
	}

	_, err := t.api.SendMessage(chatId, sanitized, &tgbotapi.SendMessageOpts{
		ParseMode: "MarkdownV2",
	})
	if err != nil {
		t.log.With(
			slog.Int64("id", chatId),
		).Warn("sending message", sl.Err(err))
		_, err = t.api.SendMessage(chatId, text, &tgbotapi.SendMessageOpts{})
		if err != nil {
			t.log.With(
				slog.Int64("id", chatId),
			).Error("sending safe message", sl.Err(err))
		}
	}
}

// truncate cuts text to at most limit bytes without splitting a rune.
func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

// sanitize escapes the characters MarkdownV2 reserves.
func sanitize(input string) string {
	const reservedChars = "\\`_*{}#+-=.!|()[]<>~"

	var b strings.Builder
	b.Grow(len(input))
	for _, char := range input {
		if strings.ContainsRune(reservedChars, char) {
			b.WriteRune('\\')
		}
		b.WriteRune(char)
	}
	return b.String()
}
