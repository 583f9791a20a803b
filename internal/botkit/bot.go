package botkit

import (
	"context"
	"fmt"
	"runtime/debug"
	"sort"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const updateTimeout = 10 * time.Second

// ViewFunc handles one command update.
type ViewFunc func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error

type Bot struct {
	api      *tgbotapi.BotAPI
	cmdViews map[string]ViewFunc
	help     map[string]string
	log      *zap.Logger
}

func New(api *tgbotapi.BotAPI, log *zap.Logger) *Bot {
	return &Bot{
		api:      api,
		cmdViews: make(map[string]ViewFunc),
		help:     make(map[string]string),
		log:      log.Named("bot"),
	}
}

// RegisterCmdView binds cmd to view. A non-empty description lists the
// command in Commands.
func (b *Bot) RegisterCmdView(cmd, description string, view ViewFunc) {
	b.cmdViews[cmd] = view
	if description != "" {
		b.help[cmd] = description
	}
}

// Commands lists the described commands, sorted by name.
func (b *Bot) Commands() []tgbotapi.BotCommand {
	cmds := make([]tgbotapi.BotCommand, 0, len(b.help))
	for cmd, desc := range b.help {
		cmds = append(cmds, tgbotapi.BotCommand{Command: cmd, Description: desc})
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Command < cmds[j].Command })
	return cmds
}

// HelpText renders Commands as a plain text list.
func (b *Bot) HelpText() string {
	var sb strings.Builder
	for _, c := range b.Commands() {
		fmt.Fprintf(&sb, "/%s - %s\n", c.Command, c.Description)
	}
	return sb.String()
}

func (b *Bot) Run(ctx context.Context) error {
	if _, err := b.api.Request(tgbotapi.NewSetMyCommands(b.Commands()...)); err != nil {
		b.log.Warn("failed to publish command list", zap.Error(err))
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case update := <-updates:
			updateCtx, updateCancel := context.WithTimeout(ctx, updateTimeout)
			b.handleUpdate(updateCtx, update)
			updateCancel()
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if p := recover(); p != nil {
			b.log.Error("panic recovered", zap.Any("panic", p), zap.String("stack", string(debug.Stack())))
		}
	}()

	if update.Message == nil || !update.Message.IsCommand() {
		return
	}

	cmd := update.Message.Command()

	view, ok := b.cmdViews[cmd]
	if !ok {
		return
	}

	if err := view(ctx, b.api, update); err != nil {
		b.log.Error("failed to handle update", zap.String("cmd", cmd), zap.Error(err))

		if _, err := b.api.Send(
			tgbotapi.NewMessage(update.Message.Chat.ID, "Something went wrong, please try again later."),
		); err != nil {
			b.log.Error("failed to send message", zap.Error(err))
		}
	}
}
