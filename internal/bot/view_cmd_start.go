package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/footyhub/uganda-footy-hub/internal/botkit"
)

const greeting = "Welcome to Uganda Footy Hub! History, clubs, news and match-day weather of Ugandan football.\n\n"

// ViewCmdStart greets the user and lists the commands. help is called on
// every request so it sees commands registered after the view.
func ViewCmdStart(help func() string) botkit.ViewFunc {
	return func(_ context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		return replyText(bot, update.Message.Chat.ID, greeting+help())
	}
}

func ViewCmdHelp(help func() string) botkit.ViewFunc {
	return func(_ context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		return replyText(bot, update.Message.Chat.ID, help())
	}
}
