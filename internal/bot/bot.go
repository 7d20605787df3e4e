package bot

import (
	"context"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"taskbot/internal/command"
)

const msgFailure = "Something went wrong, please try again later."

// Bot polls Telegram for commands and routes them to the handlers.
type Bot struct {
	api *tgbotapi.BotAPI
	h   *command.Handlers
}

func New(token string, h *command.Handlers) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Bot{api: api, h: h}, nil
}

// Run long-polls until ctx is cancelled. A storage fault in a handler is
// logged and answered with a generic notice; the loop keeps going.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	log.Printf("bot authorized as @%s", b.api.Self.UserName)
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || !msg.IsCommand() || msg.From == nil {
		return
	}
	userID := msg.From.ID
	args := strings.Fields(msg.CommandArguments())

	reply, err := b.dispatch(ctx, msg.Command(), userID, args)
	if err != nil {
		log.Printf("command /%s for user %d: %v", msg.Command(), userID, err)
		reply = msgFailure
	}
	if reply == "" {
		return
	}
	if _, err := b.api.Send(tgbotapi.NewMessage(msg.Chat.ID, reply)); err != nil {
		log.Printf("send reply to chat %d: %v", msg.Chat.ID, err)
	}
}

func (b *Bot) dispatch(ctx context.Context, cmd string, userID int64, args []string) (string, error) {
	now := time.Now()
	switch cmd {
	case "start", "help":
		return b.h.Start(ctx, userID, args, now)
	case "add":
		return b.h.Add(ctx, userID, args, now)
	case "list":
		return b.h.List(ctx, userID, args, now)
	case "delete":
		return b.h.Delete(ctx, userID, args, now)
	case "overdue":
		return b.h.Overdue(ctx, userID, args, now)
	case "today":
		return b.h.Today(ctx, userID, args, now)
	case "week":
		return b.h.Week(ctx, userID, args, now)
	case "month":
		return b.h.Month(ctx, userID, args, now)
	default:
		// unknown commands are ignored, same as plain chatter
		return "", nil
	}
}
