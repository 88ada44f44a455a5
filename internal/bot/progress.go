package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/inikonoff/fridgechef/internal/domain"
)

// chatProgress shows a "please wait" message in the chat while a slow
// backend call runs, and deletes it when the call finishes. Send and
// delete failures are logged and otherwise ignored.
type chatProgress struct {
	bot    *Bot
	chatID int64
}

var _ domain.Progress = (*chatProgress)(nil)

func (b *Bot) progress(chatID int64) domain.Progress {
	return &chatProgress{bot: b, chatID: chatID}
}

func (p *chatProgress) Begin(ctx context.Context, text string) func() {
	msg := tgbotapi.NewMessage(p.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML

	sent, err := p.bot.api.Send(msg)
	if err != nil {
		p.bot.log.Debugf("send wait message: %v", err)
		return func() {}
	}
	return func() {
		p.bot.deleteMessage(p.chatID, sent.MessageID)
	}
}
