// Package bot wires the Telegram transport to the conversation engine:
// the long-polling update loop, command handling, callback dispatch, and
// rendering of replies into messages with inline keyboards. All transport
// failures here are best-effort and never surface to the user as errors.
package bot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/inikonoff/fridgechef/internal/display"
	"github.com/inikonoff/fridgechef/internal/domain"
	"github.com/inikonoff/fridgechef/internal/engine"
)

// directRecipePrefix routes "дай рецепт X" messages straight to
// free-form recipe generation.
const directRecipePrefix = "дай рецепт"

const textAuthor = "👨‍💻 Автор бота: @inikonoff"
const textNameTheDish = "Напишите название блюда."

// Bot runs the Telegram side of the assistant.
type Bot struct {
	api    *tgbotapi.BotAPI
	engine *engine.Engine
	log    *zap.SugaredLogger
}

// New authorizes against the Bot API.
func New(token string, eng *engine.Engine, log *zap.SugaredLogger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("bot: authorize: %w", err)
	}
	log.Infof("authorized as @%s", api.Self.UserName)

	return &Bot{api: api, engine: eng, log: log}, nil
}

// Run registers the command menu and processes updates until the context
// is canceled. Each update is handled on its own goroutine; per-user
// ordering is enforced inside the engine.
func (b *Bot) Run(ctx context.Context) error {
	b.setupCommands()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	b.log.Info("bot started polling")
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update := <-updates:
			go b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) setupCommands() {
	cfg := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "start", Description: "🔄 Рестарт / Новые продукты"},
		tgbotapi.BotCommand{Command: "author", Description: "👨‍💻 Автор бота"},
	)
	if _, err := b.api.Request(cfg); err != nil {
		b.log.Warnf("set commands: %v", err)
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			b.sendAll(chatID, b.engine.Start(userID))
		case "author":
			b.sendAll(chatID, []domain.Reply{domain.Message(textAuthor)})
		}
		return
	}

	if msg.Voice != nil {
		b.handleVoice(ctx, msg)
		return
	}
	if msg.Text == "" {
		return
	}

	p := b.progress(chatID)

	// Direct named-dish request bypasses the whole pipeline.
	if strings.HasPrefix(strings.ToLower(msg.Text), directRecipePrefix) {
		dishName := strings.TrimSpace(msg.Text[len(directRecipePrefix):])
		if utf8.RuneCountInString(dishName) < 3 {
			b.sendAll(chatID, []domain.Reply{domain.Message(textNameTheDish)})
			return
		}
		b.sendAll(chatID, b.engine.HandleDirectRecipe(ctx, userID, dishName, p))
		return
	}

	b.sendAll(chatID, b.engine.HandleText(ctx, userID, msg.Text, p))
}

func (b *Bot) handleVoice(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	audio, err := b.downloadFile(ctx, msg.Voice.FileID)
	if err != nil {
		b.log.Warnf("download voice from %d: %v", userID, err)
		return
	}

	replies := b.engine.HandleVoice(ctx, userID, audio, b.progress(chatID))

	// The voice bubble has served its purpose; removal is best-effort.
	b.deleteMessage(chatID, msg.MessageID)

	b.sendAll(chatID, replies)
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		return
	}
	userID := cb.From.ID
	chatID := cb.Message.Chat.ID

	// Answer first so the client drops its spinner.
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		b.log.Debugf("answer callback: %v", err)
	}

	tok, err := display.ParseToken(cb.Data)
	if err != nil {
		b.log.Warnf("callback from %d: %v", userID, err)
		return
	}

	p := b.progress(chatID)
	var replies []domain.Reply

	switch tok.Kind {
	case display.TokenDelete:
		b.deleteMessage(chatID, cb.Message.MessageID)
		return
	case display.TokenRestart:
		replies = b.engine.Reset(userID)
	case display.TokenStyle:
		b.deleteMessage(chatID, cb.Message.MessageID)
		replies = b.engine.HandleStyle(ctx, userID, tok.Style, p)
	case display.TokenCategory:
		b.deleteMessage(chatID, cb.Message.MessageID)
		replies = b.engine.HandleCategory(ctx, userID, tok.Category, p)
	case display.TokenBack:
		b.deleteMessage(chatID, cb.Message.MessageID)
		replies = b.engine.HandleBack(userID)
	case display.TokenDish:
		replies = b.engine.HandleDish(ctx, userID, tok.DishIndex, p)
	}

	b.sendAll(chatID, replies)
}

// sendAll renders engine replies into Telegram messages.
func (b *Bot) sendAll(chatID int64, replies []domain.Reply) {
	for _, r := range replies {
		msg := tgbotapi.NewMessage(chatID, r.Text)
		msg.ParseMode = tgbotapi.ModeHTML
		if menu, ok := display.ForReply(r); ok {
			msg.ReplyMarkup = toKeyboard(menu)
		}
		if _, err := b.api.Send(msg); err != nil {
			b.log.Warnf("send to %d: %v", chatID, err)
		}
	}
}

// deleteMessage removes a message, swallowing failures (it may already
// be gone).
func (b *Bot) deleteMessage(chatID int64, messageID int) {
	if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		b.log.Debugf("delete message %d in %d: %v", messageID, chatID, err)
	}
}

// downloadFile fetches a Telegram file's bytes by its file ID.
func (b *Bot) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("resolve file url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create download request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download: %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func toKeyboard(m display.Menu) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(m.Rows))
	for _, row := range m.Rows {
		btns := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			btns = append(btns, tgbotapi.NewInlineKeyboardButtonData(btn.Label, btn.Token))
		}
		rows = append(rows, btns)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
