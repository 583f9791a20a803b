package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"

	"github.com/footyhub/uganda-footy-hub/internal/model"
)

const (
	DefaultAuthor       = "Anonymous Fan"
	MinCommentLength    = 10
	MaxCommentLength    = 500
	MaxAuthorNameLength = 50
)

var (
	ErrEmptyComment    = errors.New("please write a comment before submitting")
	ErrCommentTooShort = fmt.Errorf("comment must be at least %d characters long", MinCommentLength)
	ErrCommentTooLong  = fmt.Errorf("comment must be at most %d characters long", MaxCommentLength)
	ErrAuthorTooLong   = fmt.Errorf("name must be at most %d characters long", MaxAuthorNameLength)
	ErrCommentNotFound = errors.New("comment not found")
)

// ValidationError reports whether err came from comment validation
// rather than from the database.
func ValidationError(err error) bool {
	return errors.Is(err, ErrEmptyComment) ||
		errors.Is(err, ErrCommentTooShort) ||
		errors.Is(err, ErrCommentTooLong) ||
		errors.Is(err, ErrAuthorTooLong)
}

type CommentSQLiteStorage struct {
	db *sqlx.DB
}

func NewCommentStorage(db *sqlx.DB) *CommentSQLiteStorage {
	return &CommentSQLiteStorage{db: db}
}

// Add validates and stores a comment on entityID. Text and author are trimmed;
// an empty author becomes "Anonymous Fan".
func (s *CommentSQLiteStorage) Add(ctx context.Context, entityID, author, text string) (model.Comment, error) {
	text = strings.TrimSpace(text)
	author = strings.TrimSpace(author)

	switch n := utf8.RuneCountInString(text); {
	case n == 0:
		return model.Comment{}, ErrEmptyComment
	case n < MinCommentLength:
		return model.Comment{}, ErrCommentTooShort
	case n > MaxCommentLength:
		return model.Comment{}, ErrCommentTooLong
	}
	if utf8.RuneCountInString(author) > MaxAuthorNameLength {
		return model.Comment{}, ErrAuthorTooLong
	}
	if author == "" {
		author = DefaultAuthor
	}

	c := model.Comment{
		ID:        uuid.NewString(),
		EntityID:  entityID,
		Author:    author,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}

	conn, err := s.db.Connx(ctx)
	if err != nil {
		return model.Comment{}, err
	}
	defer conn.Close()

	if _, err := conn.ExecContext(
		ctx,
		`INSERT INTO comments (id, entity_id, author, body, likes, created_at) VALUES ($1, $2, $3, $4, 0, $5)`,
		c.ID,
		c.EntityID,
		c.Author,
		c.Text,
		c.CreatedAt,
	); err != nil {
		return model.Comment{}, fmt.Errorf("inserting comment: %w", err)
	}

	return c, nil
}

// List returns the comments on entityID, newest first.
func (s *CommentSQLiteStorage) List(ctx context.Context, entityID string) ([]model.Comment, error) {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	var rows []dbComment
	if err := conn.SelectContext(
		ctx,
		&rows,
		`SELECT id, entity_id, author, body, likes, created_at FROM comments WHERE entity_id = $1 ORDER BY seq DESC`,
		entityID,
	); err != nil {
		return nil, err
	}

	return lo.Map(rows, func(c dbComment, _ int) model.Comment {
		return model.Comment(c)
	}), nil
}

// Like increments the like counter and returns the new value.
func (s *CommentSQLiteStorage) Like(ctx context.Context, entityID, commentID string) (int, error) {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	var likes int
	err = conn.GetContext(
		ctx,
		&likes,
		`UPDATE comments SET likes = likes + 1 WHERE entity_id = $1 AND id = $2 RETURNING likes`,
		entityID,
		commentID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrCommentNotFound
	}
	if err != nil {
		return 0, err
	}

	return likes, nil
}

func (s *CommentSQLiteStorage) Delete(ctx context.Context, entityID, commentID string) error {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	res, err := conn.ExecContext(ctx, `DELETE FROM comments WHERE entity_id = $1 AND id = $2`, entityID, commentID)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCommentNotFound
	}

	return nil
}

func (s *CommentSQLiteStorage) Count(ctx context.Context, entityID string) (int, error) {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	var n int
	if err := conn.GetContext(ctx, &n, `SELECT COUNT(*) FROM comments WHERE entity_id = $1`, entityID); err != nil {
		return 0, err
	}

	return n, nil
}

type dbComment struct {
	ID        string    `db:"id"`
	EntityID  string    `db:"entity_id"`
	Author    string    `db:"author"`
	Text      string    `db:"body"`
	Likes     int       `db:"likes"`
	CreatedAt time.Time `db:"created_at"`
}
