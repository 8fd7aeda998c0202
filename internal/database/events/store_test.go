package events

import (
	"testing"

	"github.com/SergeyKozhin/chat-calendar/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectEventsQuery(t *testing.T) {
	query, args, err := selectEventsQuery("alice").ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT id, title, date, all_day, start_time, end_time, notes, color FROM calendar_events WHERE user_id = $1 ORDER BY id", query)
	assert.Equal(t, []interface{}{"alice"}, args)
}

func TestInsertEventsQuery(t *testing.T) {
	query, args, err := insertEventsQuery("alice", []*model.Event{
		{ID: 1, Title: "a", Date: "2026-11-01", AllDay: true, Color: model.DefaultColor},
		{ID: 2, Title: "b", Date: "2026-11-02", StartTime: "10:00", EndTime: "11:00", Notes: "n", Color: model.DefaultColor},
	}).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "INSERT INTO calendar_events (user_id,id,title,date,all_day,start_time,end_time,notes,color) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9),($10,$11,$12,$13,$14,$15,$16,$17,$18)", query)
	assert.Len(t, args, 18)
	assert.Equal(t, "alice", args[9])
	assert.Equal(t, int64(2), args[10])
}

func TestUpsertCounterQuery(t *testing.T) {
	query, args, err := upsertCounterQuery("alice", 7).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "INSERT INTO calendar_counters (user_id,next_id) VALUES ($1,$2) ON CONFLICT (user_id) DO UPDATE SET next_id = EXCLUDED.next_id", query)
	assert.Equal(t, []interface{}{"alice", int64(7)}, args)
}

func TestDeleteEventsQuery(t *testing.T) {
	query, args, err := deleteEventsQuery("alice").ToSql()
	require.NoError(t, err)

	assert.Equal(t, "DELETE FROM calendar_events WHERE user_id = $1", query)
	assert.Equal(t, []interface{}{"alice"}, args)
}
