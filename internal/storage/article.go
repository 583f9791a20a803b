package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"

	"github.com/footyhub/uganda-footy-hub/internal/model"
)

type ArticleSQLiteStorage struct {
	db *sqlx.DB
}

func NewArticleStorage(db *sqlx.DB) *ArticleSQLiteStorage {
	return &ArticleSQLiteStorage{db: db}
}

// Store remembers a news article. Articles are keyed by URL, so storing the
// same article twice is a no-op.
func (s *ArticleSQLiteStorage) Store(ctx context.Context, article model.NewsArticle) error {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.ExecContext(
		ctx,
		`INSERT INTO articles (title, url, description, source_name, published_at, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (url) DO NOTHING`,
		article.Title,
		article.URL,
		article.Description,
		article.Source.Name,
		// whole seconds keep the stored text ordered like the times
		article.PublishedAt.UTC().Truncate(time.Second),
		time.Now().UTC().Truncate(time.Second),
	); err != nil {
		return err
	}

	return nil
}

// AllNotPosted returns unposted articles published after since, newest first.
func (s *ArticleSQLiteStorage) AllNotPosted(ctx context.Context, since time.Time, limit uint64) ([]model.Article, error) {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	var articles []dbArticle
	if err := conn.SelectContext(
		ctx,
		&articles,
		`SELECT id, title, url, description, source_name, published_at, posted_at
		 FROM articles
		 WHERE posted_at IS NULL AND published_at >= $1
		 ORDER BY published_at DESC
		 LIMIT $2`,
		since.UTC().Truncate(time.Second),
		limit,
	); err != nil {
		return nil, err
	}

	return lo.Map(articles, func(a dbArticle, _ int) model.Article {
		return a.toModel()
	}), nil
}

func (s *ArticleSQLiteStorage) MarkPosted(ctx context.Context, id int64) error {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.ExecContext(
		ctx,
		`UPDATE articles SET posted_at = $1 WHERE id = $2`,
		time.Now().UTC().Truncate(time.Second),
		id,
	); err != nil {
		return err
	}

	return nil
}

type dbArticle struct {
	ID          int64        `db:"id"`
	Title       string       `db:"title"`
	URL         string       `db:"url"`
	Description string       `db:"description"`
	SourceName  string       `db:"source_name"`
	PublishedAt time.Time    `db:"published_at"`
	PostedAt    sql.NullTime `db:"posted_at"`
}

func (a dbArticle) toModel() model.Article {
	m := model.Article{
		ID:          a.ID,
		Title:       a.Title,
		URL:         a.URL,
		Description: a.Description,
		SourceName:  a.SourceName,
		PublishedAt: a.PublishedAt,
	}
	if a.PostedAt.Valid {
		m.PostedAt = &a.PostedAt.Time
	}
	return m
}
