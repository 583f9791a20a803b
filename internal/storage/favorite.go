package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"

	"github.com/footyhub/uganda-footy-hub/internal/model"
)

var ErrInvalidKind = errors.New("favorite kind must be one of teams, players, events")

type FavoriteSQLiteStorage struct {
	db *sqlx.DB
}

func NewFavoriteStorage(db *sqlx.DB) *FavoriteSQLiteStorage {
	return &FavoriteSQLiteStorage{db: db}
}

// Add stores a copy of the item. It reports false when the item is already a favorite.
func (s *FavoriteSQLiteStorage) Add(ctx context.Context, fav model.Favorite) (bool, error) {
	if !fav.Kind.Valid() {
		return false, ErrInvalidKind
	}

	conn, err := s.db.Connx(ctx)
	if err != nil {
		return false, err
	}
	defer conn.Close()

	if fav.AddedAt.IsZero() {
		fav.AddedAt = time.Now()
	}

	res, err := conn.ExecContext(
		ctx,
		`INSERT INTO favorites (kind, item_id, title, payload, added_at) VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (kind, item_id) DO NOTHING`,
		string(fav.Kind),
		string(fav.ItemID),
		fav.Title,
		[]byte(fav.Payload),
		fav.AddedAt.UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("inserting favorite: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return n == 1, nil
}

// Remove reports false when the item was not a favorite.
func (s *FavoriteSQLiteStorage) Remove(ctx context.Context, kind model.FavoriteKind, itemID model.ID) (bool, error) {
	if !kind.Valid() {
		return false, ErrInvalidKind
	}

	conn, err := s.db.Connx(ctx)
	if err != nil {
		return false, err
	}
	defer conn.Close()

	res, err := conn.ExecContext(ctx, `DELETE FROM favorites WHERE kind = $1 AND item_id = $2`, string(kind), string(itemID))
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

// Contains is false for unknown kinds rather than an error, like a lookup in an empty list.
func (s *FavoriteSQLiteStorage) Contains(ctx context.Context, kind model.FavoriteKind, itemID model.ID) (bool, error) {
	if !kind.Valid() {
		return false, nil
	}

	conn, err := s.db.Connx(ctx)
	if err != nil {
		return false, err
	}
	defer conn.Close()

	var n int
	if err := conn.GetContext(ctx, &n, `SELECT COUNT(*) FROM favorites WHERE kind = $1 AND item_id = $2`, string(kind), string(itemID)); err != nil {
		return false, err
	}

	return n > 0, nil
}

// List returns every favorite grouped by kind, each group in insertion order.
// All three kinds are always present.
func (s *FavoriteSQLiteStorage) List(ctx context.Context) (map[model.FavoriteKind][]model.Favorite, error) {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	var rows []dbFavorite
	if err := conn.SelectContext(ctx, &rows, `SELECT kind, item_id, title, payload, added_at FROM favorites ORDER BY rowid`); err != nil {
		return nil, err
	}

	grouped := lo.GroupBy(lo.Map(rows, func(f dbFavorite, _ int) model.Favorite {
		return f.toModel()
	}), func(f model.Favorite) model.FavoriteKind {
		return f.Kind
	})

	for _, k := range []model.FavoriteKind{model.FavoriteTeams, model.FavoritePlayers, model.FavoriteEvents} {
		if grouped[k] == nil {
			grouped[k] = []model.Favorite{}
		}
	}

	return grouped, nil
}

func (s *FavoriteSQLiteStorage) Count(ctx context.Context) (int, error) {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	var n int
	if err := conn.GetContext(ctx, &n, `SELECT COUNT(*) FROM favorites`); err != nil {
		return 0, err
	}

	return n, nil
}

func (s *FavoriteSQLiteStorage) Clear(ctx context.Context) error {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	_, err = conn.ExecContext(ctx, `DELETE FROM favorites`)
	return err
}

type dbFavorite struct {
	Kind    string    `db:"kind"`
	ItemID  string    `db:"item_id"`
	Title   string    `db:"title"`
	Payload []byte    `db:"payload"`
	AddedAt time.Time `db:"added_at"`
}

func (f dbFavorite) toModel() model.Favorite {
	return model.Favorite{
		Kind:    model.FavoriteKind(f.Kind),
		ItemID:  model.ID(f.ItemID),
		Title:   f.Title,
		Payload: f.Payload,
		AddedAt: f.AddedAt,
	}
}
