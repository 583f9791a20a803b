package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/footyhub/uganda-footy-hub/internal/api"
	"github.com/footyhub/uganda-footy-hub/internal/fetcher"
	"github.com/footyhub/uganda-footy-hub/internal/logger"
	"github.com/footyhub/uganda-footy-hub/internal/notifier"
	"github.com/footyhub/uganda-footy-hub/internal/search"
	"github.com/footyhub/uganda-footy-hub/internal/source"
	"github.com/footyhub/uganda-footy-hub/internal/storage"
	"github.com/footyhub/uganda-footy-hub/internal/summary"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API, plus the bot and workers when configured",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		return err
	}
	defer logger.Sync(log)

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	client := newFetchClient(cfg, log)

	gw, err := newGateway(cfg, client, log)
	if err != nil {
		return err
	}

	db, err := storage.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer db.Close()

	var (
		favorites = storage.NewFavoriteStorage(db)
		comments  = storage.NewCommentStorage(db)
		articles  = storage.NewArticleStorage(db)
		wiki      = source.NewWikipedia(client, cfg.WikipediaURL, log)
		index     = search.New(gw)
		server    = api.New(api.Options{
			Content:        gw,
			Cache:          gw,
			Search:         index,
			Wiki:           wiki,
			Favorites:      favorites,
			Comments:       comments,
			DB:             db,
			CORSOrigins:    cfg.CORSOrigins,
			RequestTimeout: cfg.HTTPTimeout * 3,
			Logger:         log,
		})
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return stopped(log, "api", server.ListenAndServe(ctx, cfg.ListenAddr))
	})

	notify := cfg.TelegramBotToken != "" && cfg.TelegramChannelID != 0

	if cfg.WarmInterval > 0 || notify {
		var feed fetcher.ArticleStorage
		if notify {
			feed = articles
		}

		interval := cfg.WarmInterval
		if interval <= 0 {
			interval = cfg.NotificationInterval
		}

		f := fetcher.New(gw, feed, interval, nil, log)
		g.Go(func() error {
			return stopped(log, "fetcher", f.Start(ctx))
		})
	}

	if cfg.TelegramBotToken != "" {
		botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
		if err != nil {
			return fmt.Errorf("creating bot: %w", err)
		}

		footyBot := newBot(botAPI, cfg, gw, index, wiki, favorites, comments, log)
		g.Go(func() error {
			return stopped(log, "bot", footyBot.Run(ctx))
		})

		if notify {
			n := notifier.New(
				articles,
				summary.NewOpenAISummarizer(summary.Options{
					APIKey: cfg.OpenAIKey,
					Prompt: cfg.OpenAIPrompt,
					Logger: log,
				}),
				client,
				botAPI,
				cfg.NotificationInterval,
				cfg.NotificationWindow,
				cfg.TelegramChannelID,
				log,
			)
			g.Go(func() error {
				return stopped(log, "notifier", n.Start(ctx))
			})
		}
	}

	return g.Wait()
}

// stopped turns a shutdown-caused error into a clean exit.
func stopped(log *zap.Logger, component string, err error) error {
	if err == nil || errors.Is(err, context.Canceled) {
		log.Info("stopped", zap.String("component", component))
		return nil
	}

	log.Error("failed", zap.String("component", component), zap.Error(err))
	return fmt.Errorf("%s: %w", component, err)
}
