package main

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/footyhub/uganda-footy-hub/internal/bot"
	"github.com/footyhub/uganda-footy-hub/internal/bot/middleware"
	"github.com/footyhub/uganda-footy-hub/internal/botkit"
	"github.com/footyhub/uganda-footy-hub/internal/config"
	"github.com/footyhub/uganda-footy-hub/internal/fetch"
	"github.com/footyhub/uganda-footy-hub/internal/gateway"
	"github.com/footyhub/uganda-footy-hub/internal/model"
	"github.com/footyhub/uganda-footy-hub/internal/search"
	"github.com/footyhub/uganda-footy-hub/internal/source"
	"github.com/footyhub/uganda-footy-hub/internal/storage"
)

func newFetchClient(cfg config.Config, log *zap.Logger) *fetch.Client {
	return fetch.NewClient(fetch.ClientOptions{
		Timeout:   cfg.HTTPTimeout,
		UserAgent: cfg.HTTPUserAgent,
		RetryMax:  cfg.HTTPRetryMax,
		Logger:    log.Named("http"),
	})
}

func newGateway(cfg config.Config, client *fetch.Client, log *zap.Logger) (*gateway.Gateway, error) {
	policy, err := gateway.ParsePolicy(cfg.FallbackMode, cfg.CacheFallback, cfg.ServeStale)
	if err != nil {
		return nil, err
	}

	news := []gateway.Source[[]model.NewsArticle]{
		source.NewNewsAPI(client, source.NewsAPIOptions{
			BaseURL:  cfg.NewsAPIURL,
			APIKey:   cfg.NewsAPIKey,
			Query:    cfg.NewsQuery,
			Language: cfg.NewsLanguage,
			PageSize: cfg.NewsPageSize,
		}),
	}
	if cfg.NewsFeedURL != "" {
		news = append(news, source.NewRSSSource(cfg.NewsFeedURL, "RSS", client.StandardClient(), cfg.NewsExcludeKeywords))
	}

	return gateway.New(gateway.Options{
		TTL:         cfg.CacheTTL,
		Policy:      policy,
		Coalesce:    cfg.CoalesceRequests,
		DefaultCity: cfg.WeatherCity,
		Logger:      log,
		Sources: gateway.Sources{
			Events: []gateway.Source[[]model.Event]{
				source.NewLocalEvents(cfg.DataDir),
			},
			Teams: []gateway.Source[[]model.Team]{
				source.NewLocalTeams(cfg.DataDir),
				source.NewSportsDB(client, cfg.SportsDBURL, cfg.SportsDBKey, cfg.SportsDBCountry),
			},
			News: news,
			Weather: []gateway.Source[model.WeatherSnapshot]{
				source.NewOpenWeatherMap(client, cfg.WeatherAPIURL, cfg.WeatherAPIKey, cfg.WeatherUnits),
			},
		},
	}), nil
}

func newBot(
	api *tgbotapi.BotAPI,
	cfg config.Config,
	gw *gateway.Gateway,
	index *search.Index,
	wiki *source.Wikipedia,
	favorites *storage.FavoriteSQLiteStorage,
	comments *storage.CommentSQLiteStorage,
	log *zap.Logger,
) *botkit.Bot {
	footyBot := botkit.New(api, log)

	footyBot.RegisterCmdView("start", "", bot.ViewCmdStart(footyBot.HelpText))
	footyBot.RegisterCmdView("help", "List commands", bot.ViewCmdHelp(footyBot.HelpText))
	footyBot.RegisterCmdView("events", "History timeline, optionally by decade or type", bot.ViewCmdEvents(gw))
	footyBot.RegisterCmdView("teams", "Clubs by league, or a profile by id", bot.ViewCmdTeams(gw))
	footyBot.RegisterCmdView("news", "Latest news: [category] [page]", bot.ViewCmdNews(gw))
	footyBot.RegisterCmdView("weather", "Match-day weather for a city", bot.ViewCmdWeather(gw))
	footyBot.RegisterCmdView("search", "Search events and teams", bot.ViewCmdSearch(index))
	footyBot.RegisterCmdView("wiki", "Search Wikipedia or open a page by id", bot.ViewCmdWiki(wiki))
	footyBot.RegisterCmdView("fav", "Add a favorite: <kind> <id>", bot.ViewCmdFav(gw, favorites))
	footyBot.RegisterCmdView("unfav", "Remove a favorite: <kind> <id>", bot.ViewCmdUnfav(favorites))
	footyBot.RegisterCmdView("favorites", "List favorites", bot.ViewCmdFavorites(favorites))
	footyBot.RegisterCmdView("comment", "Comment on an item: <entity id> <text>", bot.ViewCmdComment(comments))
	footyBot.RegisterCmdView("comments", "Read comments on an item", bot.ViewCmdComments(comments))
	footyBot.RegisterCmdView("status", "Content source status", bot.ViewCmdStatus(gw))
	footyBot.RegisterCmdView(
		"refresh",
		"",
		middleware.AdminOnly(cfg.TelegramChannelID, bot.ViewCmdRefresh(gw)),
	)

	return footyBot
}
