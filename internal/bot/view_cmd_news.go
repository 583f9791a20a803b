package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/footyhub/uganda-footy-hub/internal/botkit"
	"github.com/footyhub/uganda-footy-hub/internal/botkit/markup"
	"github.com/footyhub/uganda-footy-hub/internal/catalog"
	"github.com/footyhub/uganda-footy-hub/internal/model"
)

const newsPerMessage = 5

// ViewCmdNews pages through the news: /news [category] [page].
func ViewCmdNews(content Content) botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		category, page, err := parseNewsArgs(update.Message.CommandArguments())
		if err != nil {
			return replyText(bot, update.Message.Chat.ID, "Usage: /news [all|teams|players|matches|transfers|international] [page]")
		}

		news, err := content.News(ctx)
		if err != nil {
			return err
		}

		p := catalog.PaginateNews(catalog.FilterNews(news, category), page, newsPerMessage)

		return replyMarkdown(bot, update.Message.Chat.ID, formatNewsPage(p, time.Now()))
	}
}

func parseNewsArgs(args string) (catalog.NewsCategory, int, error) {
	category, page := catalog.CategoryAll, 1

	for _, f := range strings.Fields(args) {
		if n, err := strconv.Atoi(f); err == nil {
			if n < 1 {
				return "", 0, fmt.Errorf("invalid page %d", n)
			}
			page = n
			continue
		}

		c, err := catalog.ParseNewsCategory(f)
		if err != nil {
			return "", 0, err
		}
		category = c
	}

	return category, page, nil
}

func formatNewsPage(p catalog.NewsPage, now time.Time) string {
	if p.Featured == nil {
		return markup.EscapeForMarkdown("No news right now.")
	}

	var sb strings.Builder

	if p.Page == 1 {
		sb.WriteString("🔥 " + formatArticle(*p.Featured, now) + "\n")
	}
	for _, a := range p.Articles {
		sb.WriteString("\n📰 " + formatArticle(a, now) + "\n")
	}
	if len(p.Articles) == 0 && p.Page > 1 {
		sb.WriteString(markup.EscapeForMarkdown("Nothing on this page.") + "\n")
	}

	if p.HasMore {
		sb.WriteString("\n" + markup.Italic(fmt.Sprintf("More: /news %d", p.Page+1)))
	}

	return strings.TrimRight(sb.String(), "\n")
}

func formatArticle(a model.NewsArticle, now time.Time) string {
	title := markup.Bold(a.Title)
	if strings.HasPrefix(a.URL, "http") {
		title = markup.Link(a.Title, a.URL)
	}

	return fmt.Sprintf("%s\n%s",
		title,
		markup.Italic(fmt.Sprintf("%s · %s · %s", catalog.Label(a), a.Source.Name, catalog.TimeAgo(a.PublishedAt, now))),
	)
}
