package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/footyhub/uganda-footy-hub/internal/botkit"
	"github.com/footyhub/uganda-footy-hub/internal/botkit/markup"
	"github.com/footyhub/uganda-footy-hub/internal/gateway"
)

func ViewCmdStatus(cache CacheController) botkit.ViewFunc {
	return func(_ context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		return replyMarkdown(bot, update.Message.Chat.ID, formatStats(cache.Stats()))
	}
}

// ViewCmdRefresh drops the cached value of one resource, or of all of them
// when no resource is given.
func ViewCmdRefresh(cache CacheController) botkit.ViewFunc {
	return func(_ context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		args := strings.TrimSpace(update.Message.CommandArguments())
		if args == "" || args == "all" {
			cache.InvalidateAll()
			return replyText(bot, update.Message.Chat.ID, "All caches cleared.")
		}

		r, err := gateway.ParseResource(args)
		if err != nil {
			return replyText(bot, update.Message.Chat.ID, "Usage: /refresh [events|teams|news|weather|all]")
		}

		cache.Invalidate(r)
		return replyText(bot, update.Message.Chat.ID, fmt.Sprintf("Cache for %s cleared.", r))
	}
}

func formatStats(stats []gateway.ResourceStats) string {
	var sb strings.Builder
	sb.WriteString(markup.Bold("Gateway status") + "\n")

	for _, s := range stats {
		fmt.Fprintf(&sb, "\n%s %s\n", markup.Bold(string(s.Resource)), markup.Code(string(s.State)))
		sb.WriteString(markup.EscapeForMarkdown(fmt.Sprintf(
			"hits %d · misses %d · attempts %d · failures %d · fallbacks %d",
			s.Hits, s.Misses, s.SourceAttempts, s.SourceFailures, s.FallbacksServed,
		)) + "\n")
		if s.LastSource != "" {
			sb.WriteString(markup.EscapeForMarkdown("last source: "+s.LastSource) + "\n")
		}
		if s.LastError != "" {
			sb.WriteString(markup.Italic("last error: "+s.LastError) + "\n")
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}
