package bot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/footyhub/uganda-footy-hub/internal/botkit"
	"github.com/footyhub/uganda-footy-hub/internal/botkit/markup"
	"github.com/footyhub/uganda-footy-hub/internal/catalog"
	"github.com/footyhub/uganda-footy-hub/internal/model"
)

const favUsage = "Usage: /fav <teams|events|players> <id or player name>"

var errItemNotFound = errors.New("item not found")

var favoriteLabels = map[model.FavoriteKind]string{
	model.FavoriteTeams:   "Teams",
	model.FavoritePlayers: "Players",
	model.FavoriteEvents:  "Events",
}

func ViewCmdFav(content Content, favorites FavoriteStorage) botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		kind, itemID, ok := parseFavArgs(update.Message.CommandArguments())
		if !ok {
			return replyText(bot, update.Message.Chat.ID, favUsage)
		}

		fav, err := resolveFavorite(ctx, content, kind, itemID)
		if errors.Is(err, errItemNotFound) {
			return replyText(bot, update.Message.Chat.ID, fmt.Sprintf("No %s with id %s.", kind, itemID))
		}
		if err != nil {
			return err
		}

		added, err := favorites.Add(ctx, fav)
		if err != nil {
			return err
		}

		msg := fmt.Sprintf("⭐ %s added to favorites.", fav.Title)
		if !added {
			msg = fmt.Sprintf("%s is already a favorite.", fav.Title)
		}
		return replyText(bot, update.Message.Chat.ID, msg)
	}
}

func ViewCmdUnfav(favorites FavoriteStorage) botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		kind, itemID, ok := parseFavArgs(update.Message.CommandArguments())
		if !ok {
			return replyText(bot, update.Message.Chat.ID, strings.Replace(favUsage, "/fav", "/unfav", 1))
		}

		removed, err := favorites.Remove(ctx, kind, itemID)
		if err != nil {
			return err
		}

		msg := "Removed from favorites."
		if !removed {
			msg = "That item is not a favorite."
		}
		return replyText(bot, update.Message.Chat.ID, msg)
	}
}

func ViewCmdFavorites(favorites FavoriteStorage) botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		byKind, err := favorites.List(ctx)
		if err != nil {
			return err
		}

		return replyMarkdown(bot, update.Message.Chat.ID, formatFavorites(byKind))
	}
}

func parseFavArgs(args string) (model.FavoriteKind, model.ID, bool) {
	parts := botkit.SplitArgs(args, 2)
	if len(parts) != 2 {
		return "", "", false
	}

	kind := model.FavoriteKind(strings.ToLower(parts[0]))
	if !kind.Valid() {
		return "", "", false
	}

	return kind, model.ID(parts[1]), true
}

// resolveFavorite snapshots the item so the favorite survives the item
// disappearing from its source. Players have no catalog; the id is the name.
func resolveFavorite(ctx context.Context, content Content, kind model.FavoriteKind, itemID model.ID) (model.Favorite, error) {
	var (
		title string
		item  any
	)

	switch kind {
	case model.FavoriteTeams:
		teams, err := content.Teams(ctx)
		if err != nil {
			return model.Favorite{}, err
		}
		team, ok := catalog.TeamByID(teams, itemID)
		if !ok {
			return model.Favorite{}, errItemNotFound
		}
		title, item = team.Name, team
	case model.FavoriteEvents:
		events, err := content.Events(ctx)
		if err != nil {
			return model.Favorite{}, err
		}
		event, ok := catalog.EventByID(events, itemID)
		if !ok {
			return model.Favorite{}, errItemNotFound
		}
		title, item = event.Title, event
	case model.FavoritePlayers:
		title, item = itemID.String(), model.Player{Name: itemID.String()}
	}

	payload, err := json.Marshal(item)
	if err != nil {
		return model.Favorite{}, err
	}

	return model.Favorite{Kind: kind, ItemID: itemID, Title: title, Payload: payload}, nil
}

func formatFavorites(byKind map[model.FavoriteKind][]model.Favorite) string {
	var sb strings.Builder

	for _, kind := range []model.FavoriteKind{model.FavoriteTeams, model.FavoritePlayers, model.FavoriteEvents} {
		favs := byKind[kind]
		if len(favs) == 0 {
			continue
		}

		sb.WriteString(markup.Bold(fmt.Sprintf("%s (%d)", favoriteLabels[kind], len(favs))) + "\n")
		for _, f := range favs {
			sb.WriteString(markup.EscapeForMarkdown("⭐ "+f.Title) + " " + markup.Code(f.ItemID.String()) + "\n")
		}
		sb.WriteString("\n")
	}

	if sb.Len() == 0 {
		return markup.EscapeForMarkdown("No favorites yet. Add one with /fav.")
	}

	return strings.TrimRight(sb.String(), "\n")
}
