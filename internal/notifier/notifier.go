package notifier

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/go-shiori/go-readability"
	"go.uber.org/zap"

	"github.com/footyhub/uganda-footy-hub/internal/botkit/markup"
	"github.com/footyhub/uganda-footy-hub/internal/model"
)

type ArticleProvider interface {
	AllNotPosted(ctx context.Context, since time.Time, limit uint64) ([]model.Article, error)
	MarkPosted(ctx context.Context, id int64) error
}

type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// PageFetcher downloads the article page when the feed carried no description.
type PageFetcher interface {
	Get(ctx context.Context, url string, headers map[string]string) (*http.Response, error)
}

// Sender is the part of the bot API the notifier needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier posts the newest unposted football story to the channel on every tick.
type Notifier struct {
	articles         ArticleProvider
	summarizer       Summarizer
	pages            PageFetcher
	bot              Sender
	sendInterval     time.Duration
	lookupTimeWindow time.Duration
	channelID        int64
	log              *zap.Logger
}

func New(
	articleProvider ArticleProvider,
	summarizer Summarizer,
	pages PageFetcher,
	bot Sender,
	sendInterval time.Duration,
	lookupTimeWindow time.Duration,
	channelID int64,
	log *zap.Logger,
) *Notifier {
	return &Notifier{
		articles:         articleProvider,
		summarizer:       summarizer,
		pages:            pages,
		bot:              bot,
		sendInterval:     sendInterval,
		lookupTimeWindow: lookupTimeWindow,
		channelID:        channelID,
		log:              log.Named("notifier"),
	}
}

// Start posts on every tick until ctx is done. A failed tick is logged and
// its article stays pending for the next one.
func (n *Notifier) Start(ctx context.Context) error {
	ticker := time.NewTicker(n.sendInterval)
	defer ticker.Stop()

	n.tick(ctx)

	for {
		select {
		case <-ticker.C:
			n.tick(ctx)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (n *Notifier) tick(ctx context.Context) {
	if err := n.SelectAndSendArticle(ctx); err != nil && ctx.Err() == nil {
		n.log.Error("failed to send article", zap.Error(err))
	}
}

func (n *Notifier) SelectAndSendArticle(ctx context.Context) error {
	topOneArticles, err := n.articles.AllNotPosted(ctx, time.Now().Add(-n.lookupTimeWindow), 1)
	if err != nil {
		return err
	}

	if len(topOneArticles) == 0 {
		return nil
	}

	article := topOneArticles[0]

	// a story without a summary is still worth posting
	summary, err := n.extractSummary(ctx, article)
	if err != nil {
		n.log.Warn("summary failed", zap.String("url", article.URL), zap.Error(err))
		summary = ""
	}

	if err := n.sendArticle(article, summary); err != nil {
		return err
	}

	n.log.Info("article posted", zap.Int64("id", article.ID), zap.String("title", article.Title))

	return n.articles.MarkPosted(ctx, article.ID)
}

func (n *Notifier) extractSummary(ctx context.Context, article model.Article) (string, error) {
	var r io.Reader

	if article.Description != "" {
		r = strings.NewReader(article.Description)
	} else {
		resp, err := n.pages.Get(ctx, article.URL, nil)
		if err != nil {
			if resp != nil {
				resp.Body.Close()
			}
			return "", err
		}
		defer resp.Body.Close()

		r = resp.Body
	}

	var text string
	doc, err := readability.FromReader(r, nil)
	switch {
	case err == nil:
		text = cleanText(doc.TextContent)
	case article.Description != "":
		text = article.Description
	default:
		return "", err
	}

	summary, err := n.summarizer.Summarize(ctx, text)
	if err != nil {
		return "", err
	}
	// without a summarizer a short feed description is posted as is
	if summary == "" && article.Description != "" {
		summary = strings.TrimSpace(text)
	}
	if summary == "" {
		return "", nil
	}

	return "\n\n" + summary, nil
}

func (n *Notifier) sendArticle(article model.Article, summary string) error {
	msg := tgbotapi.NewMessage(n.channelID, FormatPost(article, summary))
	msg.ParseMode = tgbotapi.ModeMarkdownV2

	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("sending article %d: %w", article.ID, err)
	}

	return nil
}

// FormatPost renders a channel post in MarkdownV2.
func FormatPost(article model.Article, summary string) string {
	const msgFormat = "⚽ *%s*%s\n\n%s"

	post := fmt.Sprintf(
		msgFormat,
		markup.EscapeForMarkdown(article.Title),
		markup.EscapeForMarkdown(summary),
		markup.EscapeForMarkdown(article.URL),
	)
	if article.SourceName != "" {
		post += "\n_" + markup.EscapeForMarkdown(article.SourceName) + "_"
	}

	return post
}

var redundantNewLines = regexp.MustCompile(`\n{3,}`)

func cleanText(text string) string {
	return redundantNewLines.ReplaceAllString(text, "\n")
}
