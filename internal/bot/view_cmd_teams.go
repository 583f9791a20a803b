package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/footyhub/uganda-footy-hub/internal/botkit"
	"github.com/footyhub/uganda-footy-hub/internal/botkit/markup"
	"github.com/footyhub/uganda-footy-hub/internal/catalog"
	"github.com/footyhub/uganda-footy-hub/internal/model"
)

// ViewCmdTeams shows a team profile when the argument is a team id, and
// otherwise lists teams whose league matches the argument.
func ViewCmdTeams(content Content) botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		teams, err := content.Teams(ctx)
		if err != nil {
			return err
		}

		args := strings.TrimSpace(update.Message.CommandArguments())
		if team, ok := catalog.TeamByID(teams, model.ID(args)); ok && args != "" {
			return replyMarkdown(bot, update.Message.Chat.ID, formatTeamProfile(catalog.Profile(team)))
		}

		filtered := catalog.FilterTeams(teams, catalog.TeamQuery{League: args, Sort: catalog.SortByName})

		return replyMarkdown(bot, update.Message.Chat.ID, formatTeams(filtered))
	}
}

func formatTeams(teams []model.Team) string {
	if len(teams) == 0 {
		return markup.EscapeForMarkdown("No teams found.")
	}

	var sb strings.Builder
	sb.WriteString(markup.Bold(fmt.Sprintf("Ugandan teams (%d)", len(teams))))
	sb.WriteString("\n")

	for _, t := range teams {
		p := catalog.Profile(t)
		fmt.Fprintf(&sb, "\n⚽ %s %s\n%s\n",
			markup.Bold(t.Name),
			markup.Code(t.ID.String()),
			markup.EscapeForMarkdown(p.Stadium+" · "+p.League),
		)
	}

	sb.WriteString("\n" + markup.Italic("Send /teams <id> for a profile"))

	return sb.String()
}

func formatTeamProfile(p catalog.TeamProfile) string {
	var sb strings.Builder

	sb.WriteString(markup.Bold(p.Name) + "\n")
	sb.WriteString(markup.EscapeForMarkdown(fmt.Sprintf("%s · Founded %s · %s", p.League, p.Founded, p.Stadium)) + "\n\n")
	sb.WriteString(markup.EscapeForMarkdown(fmt.Sprintf("🏆 %d trophies · 👥 %d players · %d matches · %d goals",
		p.Trophies, p.Players, p.Matches, p.Goals)) + "\n\n")
	sb.WriteString(markup.EscapeForMarkdown(p.Description) + "\n\n")

	sb.WriteString(markup.Bold("Achievements") + "\n")
	for _, a := range p.Achievements {
		sb.WriteString(markup.EscapeForMarkdown("• "+a) + "\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}
