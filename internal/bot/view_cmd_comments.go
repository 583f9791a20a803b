package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/footyhub/uganda-footy-hub/internal/botkit"
	"github.com/footyhub/uganda-footy-hub/internal/botkit/markup"
	"github.com/footyhub/uganda-footy-hub/internal/catalog"
	"github.com/footyhub/uganda-footy-hub/internal/model"
	"github.com/footyhub/uganda-footy-hub/internal/storage"
)

// ViewCmdComment posts a comment: /comment <entity id> <text>.
// The author is the sender's Telegram name.
func ViewCmdComment(comments CommentStorage) botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		parts := botkit.SplitArgs(update.Message.CommandArguments(), 2)
		if len(parts) != 2 {
			return replyText(bot, update.Message.Chat.ID, "Usage: /comment <entity id> <text>")
		}

		c, err := comments.Add(ctx, parts[0], authorName(update.Message.From), parts[1])
		if storage.ValidationError(err) {
			return replyText(bot, update.Message.Chat.ID, commentErrorText(err))
		}
		if err != nil {
			return err
		}

		return replyText(bot, update.Message.Chat.ID, fmt.Sprintf("Comment posted on %s.", c.EntityID))
	}
}

func ViewCmdComments(comments CommentStorage) botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		entityID := strings.TrimSpace(update.Message.CommandArguments())
		if entityID == "" {
			return replyText(bot, update.Message.Chat.ID, "Usage: /comments <entity id>")
		}

		list, err := comments.List(ctx, entityID)
		if err != nil {
			return err
		}

		return replyMarkdown(bot, update.Message.Chat.ID, formatComments(entityID, list, time.Now()))
	}
}

func authorName(u *tgbotapi.User) string {
	if u == nil {
		return ""
	}
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		name = u.UserName
	}
	return name
}

// Validation errors already read as user messages.
func commentErrorText(err error) string {
	msg := err.Error()
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}

func formatComments(entityID string, comments []model.Comment, now time.Time) string {
	if len(comments) == 0 {
		return markup.EscapeForMarkdown(fmt.Sprintf("No comments on %s yet. Be the first!", entityID))
	}

	var sb strings.Builder
	sb.WriteString(markup.Bold(fmt.Sprintf("Comments (%d)", len(comments))) + "\n")

	for i, c := range comments {
		if i == maxListItems {
			break
		}
		fmt.Fprintf(&sb, "\n%s %s\n%s\n",
			markup.Bold(c.Author),
			markup.Italic(fmt.Sprintf("%s · ❤ %d", catalog.TimeAgo(c.CreatedAt, now), c.Likes)),
			markup.EscapeForMarkdown(c.Text),
		)
	}

	return strings.TrimRight(sb.String(), "\n")
}
