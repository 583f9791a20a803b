// Package storage keeps the user facing state (favorites, comments) and the
// notifier's posted-article log in SQLite. The default DSN is in-memory, so
// everything lives exactly as long as the process.
package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS favorites (
	kind       TEXT      NOT NULL,
	item_id    TEXT      NOT NULL,
	title      TEXT      NOT NULL DEFAULT '',
	payload    BLOB,
	added_at   TIMESTAMP NOT NULL,
	PRIMARY KEY (kind, item_id)
);

CREATE TABLE IF NOT EXISTS comments (
	seq        INTEGER   PRIMARY KEY AUTOINCREMENT,
	id         TEXT      NOT NULL UNIQUE,
	entity_id  TEXT      NOT NULL,
	author     TEXT      NOT NULL,
	body       TEXT      NOT NULL,
	likes      INTEGER   NOT NULL DEFAULT 0,
	created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS comments_entity_idx ON comments (entity_id);

CREATE TABLE IF NOT EXISTS articles (
	id           INTEGER   PRIMARY KEY AUTOINCREMENT,
	title        TEXT      NOT NULL,
	url          TEXT      NOT NULL UNIQUE,
	description  TEXT      NOT NULL DEFAULT '',
	source_name  TEXT      NOT NULL DEFAULT '',
	published_at TIMESTAMP NOT NULL,
	posted_at    TIMESTAMP,
	created_at   TIMESTAMP NOT NULL
);
`

// Open connects to SQLite and creates the schema.
func Open(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite %q: %w", dsn, err)
	}

	// an in-memory database exists per connection, so there must be exactly one
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	return db, nil
}
