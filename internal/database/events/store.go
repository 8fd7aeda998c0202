package events

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/chat-calendar/internal/database"
	"github.com/SergeyKozhin/chat-calendar/internal/model"
)

// Store keeps calendars in Postgres. A calendar is rewritten as a whole on
// every save, inside one transaction.
type Store struct {
	db database.PGX
}

func NewStore(db database.PGX) *Store {
	return &Store{db: db}
}

func (s *Store) Load(ctx context.Context, userID string) (*model.Calendar, error) {
	var dtos []*eventDTO
	if err := s.db.Select(ctx, &dtos, selectEventsQuery(userID)); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	var counters []int64
	if err := s.db.Select(ctx, &counters, counterQuery.Where(sq.Eq{"user_id": userID})); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	cal := &model.Calendar{}
	if len(counters) != 0 {
		cal.NextID = counters[0]
	}

	cal.Events = make([]*model.Event, len(dtos))
	for i, d := range dtos {
		cal.Events[i] = mapToEvent(d)
	}

	return cal, nil
}

func (s *Store) Save(ctx context.Context, userID string, cal *model.Calendar) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, deleteEventsQuery(userID)); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	if len(cal.Events) != 0 {
		if _, err := tx.Exec(ctx, insertEventsQuery(userID, cal.Events)); err != nil {
			return fmt.Errorf("SQL request: %w", err)
		}
	}

	if _, err := tx.Exec(ctx, upsertCounterQuery(userID, cal.NextID)); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

func selectEventsQuery(userID string) sq.SelectBuilder {
	return baseQuery.
		Where(sq.Eq{"user_id": userID}).
		OrderBy("id")
}

func deleteEventsQuery(userID string) sq.DeleteBuilder {
	return database.PSQL.
		Delete(database.EventsTable).
		Where(sq.Eq{"user_id": userID})
}

func insertEventsQuery(userID string, events []*model.Event) sq.InsertBuilder {
	qb := database.PSQL.
		Insert(database.EventsTable).
		Columns(
			"user_id",
			"id",
			"title",
			"date",
			"all_day",
			"start_time",
			"end_time",
			"notes",
			"color",
		)

	for _, e := range events {
		qb = qb.Values(
			userID,
			e.ID,
			e.Title,
			e.Date,
			e.AllDay,
			e.StartTime,
			e.EndTime,
			e.Notes,
			e.Color,
		)
	}

	return qb
}

func upsertCounterQuery(userID string, nextID int64) sq.InsertBuilder {
	return database.PSQL.
		Insert(database.CountersTable).
		Columns("user_id", "next_id").
		Values(userID, nextID).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET next_id = EXCLUDED.next_id")
}
