package session

import (
	"context"
	"testing"
	"time"

	"github.com/SergeyKozhin/chat-calendar/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time { return c.t }

func newTestStore(ttl time.Duration, max int) (*Store, *clock) {
	c := &clock{t: time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)}
	s := NewStore(ttl, max, zap.NewNop().Sugar())
	s.now = c.now
	return s, c
}

func msg(role model.Role, content string) model.Message {
	return model.Message{Role: role, Content: content}
}

func TestStore_AppendAndHistory(t *testing.T) {
	s, _ := newTestStore(time.Hour, 0)
	ctx := context.Background()

	history, err := s.History(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, history)

	require.NoError(t, s.Append(ctx, "alice", msg(model.RoleUser, "hi"), msg(model.RoleAssistant, "hello")))
	require.NoError(t, s.Append(ctx, "bob", msg(model.RoleUser, "yo")))

	history, err = s.History(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []model.Message{msg(model.RoleUser, "hi"), msg(model.RoleAssistant, "hello")}, history)
	assert.Equal(t, 2, s.Len())
}

func TestStore_HistoryIsACopy(t *testing.T) {
	s, _ := newTestStore(time.Hour, 0)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, "alice", msg(model.RoleUser, "hi")))
	history, _ := s.History(ctx, "alice")
	history[0].Content = "changed"

	history, _ = s.History(ctx, "alice")
	assert.Equal(t, "hi", history[0].Content)
}

func TestStore_MaxMessages(t *testing.T) {
	s, _ := newTestStore(time.Hour, 3)
	ctx := context.Background()

	for _, c := range []string{"1", "2", "3", "4", "5"} {
		require.NoError(t, s.Append(ctx, "alice", msg(model.RoleUser, c)))
	}

	history, _ := s.History(ctx, "alice")
	require.Len(t, history, 3)
	assert.Equal(t, "3", history[0].Content)
	assert.Equal(t, "5", history[2].Content)
}

func TestStore_Expiry(t *testing.T) {
	s, c := newTestStore(time.Hour, 0)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, "alice", msg(model.RoleUser, "old")))
	require.NoError(t, s.Append(ctx, "bob", msg(model.RoleUser, "old")))

	c.t = c.t.Add(30 * time.Minute)
	require.NoError(t, s.Append(ctx, "bob", msg(model.RoleUser, "fresh")))

	c.t = c.t.Add(45 * time.Minute)
	history, _ := s.History(ctx, "alice")
	assert.Empty(t, history)

	assert.Equal(t, 0, s.Evict())
	assert.Equal(t, 1, s.Len())

	c.t = c.t.Add(time.Hour)
	assert.Equal(t, 1, s.Evict())
	assert.Equal(t, 0, s.Len())
}

func TestStore_AppendAfterExpiryStartsOver(t *testing.T) {
	s, c := newTestStore(time.Minute, 0)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, "alice", msg(model.RoleUser, "old")))
	c.t = c.t.Add(2 * time.Minute)
	require.NoError(t, s.Append(ctx, "alice", msg(model.RoleUser, "new")))

	history, _ := s.History(ctx, "alice")
	assert.Equal(t, []model.Message{msg(model.RoleUser, "new")}, history)
}

func TestStore_StartStopsOnCancel(t *testing.T) {
	s, _ := newTestStore(time.Minute, 0)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.Start(ctx, time.Millisecond)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}
