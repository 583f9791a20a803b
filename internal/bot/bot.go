// Package bot holds the Telegram command views of the hub.
package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/footyhub/uganda-footy-hub/internal/gateway"
	"github.com/footyhub/uganda-footy-hub/internal/model"
)

// Lists longer than this are cut in chat replies.
const maxListItems = 10

type Content interface {
	Events(ctx context.Context) ([]model.Event, error)
	Teams(ctx context.Context) ([]model.Team, error)
	News(ctx context.Context) ([]model.NewsArticle, error)
	Weather(ctx context.Context, city string) (model.WeatherSnapshot, error)
}

type CacheController interface {
	Stats() []gateway.ResourceStats
	Invalidate(r gateway.Resource)
	InvalidateAll()
}

type Searcher interface {
	Search(ctx context.Context, query string) ([]model.SearchResult, error)
}

type Encyclopedia interface {
	Search(ctx context.Context, query string) []model.WikiHit
	Page(ctx context.Context, pageID int64) *model.WikiPage
}

type FavoriteStorage interface {
	Add(ctx context.Context, fav model.Favorite) (bool, error)
	Remove(ctx context.Context, kind model.FavoriteKind, itemID model.ID) (bool, error)
	List(ctx context.Context) (map[model.FavoriteKind][]model.Favorite, error)
}

type CommentStorage interface {
	Add(ctx context.Context, entityID, author, text string) (model.Comment, error)
	List(ctx context.Context, entityID string) ([]model.Comment, error)
}

func replyMarkdown(bot *tgbotapi.BotAPI, chatID int64, text string) error {
	reply := tgbotapi.NewMessage(chatID, text)
	reply.ParseMode = "MarkdownV2"
	reply.DisableWebPagePreview = true

	if _, err := bot.Send(reply); err != nil {
		return err
	}
	return nil
}

func replyText(bot *tgbotapi.BotAPI, chatID int64, text string) error {
	if _, err := bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		return err
	}
	return nil
}
