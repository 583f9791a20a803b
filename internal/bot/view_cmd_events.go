package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/footyhub/uganda-footy-hub/internal/botkit"
	"github.com/footyhub/uganda-footy-hub/internal/botkit/markup"
	"github.com/footyhub/uganda-footy-hub/internal/catalog"
	"github.com/footyhub/uganda-footy-hub/internal/model"
)

// ViewCmdEvents lists timeline events. The argument is a decade ("1970" or
// "1970s"), an event type, or empty.
func ViewCmdEvents(content Content) botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		events, err := content.Events(ctx)
		if err != nil {
			return err
		}

		filtered := catalog.FilterEvents(events, parseEventFilter(update.Message.CommandArguments()))

		return replyMarkdown(bot, update.Message.Chat.ID, formatEvents(filtered))
	}
}

func parseEventFilter(args string) catalog.EventFilter {
	args = strings.TrimSpace(args)
	if args == "" {
		return catalog.EventFilter{}
	}

	if decade, err := strconv.Atoi(strings.TrimSuffix(args, "s")); err == nil {
		return catalog.EventFilter{Decades: []int{decade / 10 * 10}}
	}

	return catalog.EventFilter{Types: []string{strings.ToLower(args)}}
}

func formatEvents(events []model.Event) string {
	if len(events) == 0 {
		return markup.EscapeForMarkdown("No events match.")
	}

	var sb strings.Builder
	sb.WriteString(markup.Bold(fmt.Sprintf("Uganda football history (%d events)", len(events))))
	sb.WriteString("\n")

	for i, e := range events {
		if i == maxListItems {
			sb.WriteString("\n" + markup.Italic(fmt.Sprintf("...and %d more", len(events)-maxListItems)))
			break
		}
		fmt.Fprintf(&sb, "\n📅 %s %s\n%s\n",
			markup.Bold(strconv.Itoa(e.Year)),
			markup.EscapeForMarkdown(e.Title),
			markup.EscapeForMarkdown(e.Description),
		)
	}

	return sb.String()
}
