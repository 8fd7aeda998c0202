package database

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

var PSQL = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	EventsTable   = "calendar_events"
	CountersTable = "calendar_counters"
)

const schema = `
CREATE TABLE IF NOT EXISTS calendar_events (
	user_id    TEXT    NOT NULL,
	id         BIGINT  NOT NULL,
	title      TEXT    NOT NULL,
	date       TEXT    NOT NULL,
	all_day    BOOLEAN NOT NULL DEFAULT FALSE,
	start_time TEXT    NOT NULL DEFAULT '',
	end_time   TEXT    NOT NULL DEFAULT '',
	notes      TEXT    NOT NULL DEFAULT '',
	color      TEXT    NOT NULL DEFAULT '',
	PRIMARY KEY (user_id, id)
);

CREATE TABLE IF NOT EXISTS calendar_counters (
	user_id TEXT   PRIMARY KEY,
	next_id BIGINT NOT NULL
);
`

// Migrate создает таблицы, если их нет.
func Migrate(ctx context.Context, q Queryable) error {
	if _, err := q.ExecRaw(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	return nil
}
