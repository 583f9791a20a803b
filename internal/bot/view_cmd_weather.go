package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/footyhub/uganda-footy-hub/internal/botkit"
	"github.com/footyhub/uganda-footy-hub/internal/botkit/markup"
	"github.com/footyhub/uganda-footy-hub/internal/model"
)

func ViewCmdWeather(content Content) botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		w, err := content.Weather(ctx, strings.TrimSpace(update.Message.CommandArguments()))
		if err != nil {
			return err
		}

		return replyMarkdown(bot, update.Message.Chat.ID, formatWeather(w))
	}
}

func formatWeather(w model.WeatherSnapshot) string {
	place := w.City
	if w.Country != "" {
		place += ", " + w.Country
	}

	return fmt.Sprintf("🌤 %s\n%s\n%s",
		markup.Bold(place),
		markup.EscapeForMarkdown(fmt.Sprintf("%d°C, %s", w.Temperature, w.Description)),
		markup.EscapeForMarkdown(fmt.Sprintf("Humidity %d%% · Wind %.1f m/s", w.Humidity, w.WindSpeed)),
	)
}
