package bot

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/footyhub/uganda-footy-hub/internal/botkit"
	"github.com/footyhub/uganda-footy-hub/internal/botkit/markup"
	"github.com/footyhub/uganda-footy-hub/internal/model"
	"github.com/footyhub/uganda-footy-hub/internal/search"
	"github.com/footyhub/uganda-footy-hub/internal/source"
)

func ViewCmdSearch(searcher Searcher) botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		query := strings.TrimSpace(update.Message.CommandArguments())
		if utf8.RuneCountInString(query) < search.MinQueryLength {
			return replyText(bot, update.Message.Chat.ID,
				fmt.Sprintf("Usage: /search <query>, at least %d characters", search.MinQueryLength))
		}

		results, err := searcher.Search(ctx, query)
		if err != nil {
			return err
		}

		return replyMarkdown(bot, update.Message.Chat.ID, formatSearchResults(query, results))
	}
}

func formatSearchResults(query string, results []model.SearchResult) string {
	if len(results) == 0 {
		return markup.EscapeForMarkdown(fmt.Sprintf("Nothing found for %q.", query))
	}

	var sb strings.Builder
	sb.WriteString(markup.Bold(fmt.Sprintf("Results for %q (%d)", query, len(results))))
	sb.WriteString("\n")

	for i, r := range results {
		if i == maxListItems {
			break
		}
		icon := "📅"
		if r.Type == model.SearchResultTeam {
			icon = "⚽"
		}
		fmt.Fprintf(&sb, "\n%s %s\n%s\n%s\n",
			icon,
			markup.Bold(r.Title),
			markup.Italic(r.Subtitle),
			markup.EscapeForMarkdown(r.Description),
		)
	}

	return strings.TrimRight(sb.String(), "\n")
}

// ViewCmdWiki searches the encyclopedia, or shows a page extract when the
// argument is a page id.
func ViewCmdWiki(wiki Encyclopedia) botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		query := strings.TrimSpace(update.Message.CommandArguments())
		if query == "" {
			return replyText(bot, update.Message.Chat.ID, "Usage: /wiki <query> or /wiki <page id>")
		}

		if pageID, err := source.ParsePageID(query); err == nil {
			return replyMarkdown(bot, update.Message.Chat.ID, formatWikiPage(wiki.Page(ctx, pageID)))
		}

		return replyMarkdown(bot, update.Message.Chat.ID, formatWikiHits(wiki.Search(ctx, query)))
	}
}

const maxExtractLength = 900

func wikiURL(pageID int64) string {
	return fmt.Sprintf("https://en.wikipedia.org/?curid=%d", pageID)
}

func formatWikiHits(hits []model.WikiHit) string {
	if len(hits) == 0 {
		return markup.EscapeForMarkdown("No encyclopedia articles found.")
	}

	var sb strings.Builder
	for i, h := range hits {
		if i == maxListItems {
			break
		}
		fmt.Fprintf(&sb, "📖 %s %s\n%s\n\n",
			markup.Link(h.Title, wikiURL(h.PageID)),
			markup.Code(fmt.Sprint(h.PageID)),
			markup.EscapeForMarkdown(h.Snippet),
		)
	}

	return strings.TrimRight(sb.String(), "\n")
}

func formatWikiPage(p *model.WikiPage) string {
	if p == nil {
		return markup.EscapeForMarkdown("Page not found.")
	}

	return fmt.Sprintf("📖 %s\n\n%s\n\n%s",
		markup.Bold(p.Title),
		markup.EscapeForMarkdown(search.Truncate(p.Extract, maxExtractLength)),
		markup.Link("Read on Wikipedia", wikiURL(p.PageID)),
	)
}
