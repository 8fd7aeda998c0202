package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SergeyKozhin/chat-calendar/internal/model"
	"github.com/SergeyKozhin/chat-calendar/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockChat struct{ mock.Mock }

func (m *MockChat) HandleMessage(ctx context.Context, userID, message string, pending *model.EventCommand) (*model.ChatResult, error) {
	args := m.Called(ctx, userID, message, pending)
	res, _ := args.Get(0).(*model.ChatResult)
	return res, args.Error(1)
}

type MockEvents struct{ mock.Mock }

func (m *MockEvents) GetEvents(ctx context.Context, userID string) ([]*model.Event, error) {
	args := m.Called(ctx, userID)
	events, _ := args.Get(0).([]*model.Event)
	return events, args.Error(1)
}

func (m *MockEvents) GetEventByID(ctx context.Context, userID string, id int64) (*model.Event, error) {
	args := m.Called(ctx, userID, id)
	event, _ := args.Get(0).(*model.Event)
	return event, args.Error(1)
}

func (m *MockEvents) UpdateEvent(ctx context.Context, userID string, id int64, info *model.EventUpdate) (*model.Event, error) {
	args := m.Called(ctx, userID, id, info)
	event, _ := args.Get(0).(*model.Event)
	return event, args.Error(1)
}

func (m *MockEvents) DeleteEvent(ctx context.Context, userID string, id int64) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func newTestApi(t *testing.T, jwts jwtManager) (*Api, *MockChat, *MockEvents) {
	t.Helper()

	chat := &MockChat{}
	events := &MockEvents{}
	a, err := NewApi(zap.NewNop().Sugar(), []string{"*"}, jwts, chat, events)
	require.NoError(t, err)

	t.Cleanup(func() {
		chat.AssertExpectations(t)
		events.AssertExpectations(t)
	})

	return a, chat, events
}

func do(a *Api, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	a.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var res map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	return res
}

func TestHealthcheck(t *testing.T) {
	a, _, _ := newTestApi(t, nil)

	rec := do(a, http.MethodGet, "/healthcheck", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestChatHandler_Suggest(t *testing.T) {
	a, chat, _ := newTestApi(t, nil)
	notes := "bring x-rays"
	cmd := &model.EventCommand{Title: "Dentist", Date: "2026-11-20", StartTime: "14:00", EndTime: "15:00", Notes: &notes, Color: model.DefaultColor}

	chat.On("HandleMessage", mock.Anything, "default", "book the dentist", (*model.EventCommand)(nil)).
		Return(&model.ChatResult{Response: "Shall I add it?", EventSuggested: true, EventData: cmd}, nil).Once()

	rec := do(a, http.MethodPost, "/api/chat", `{"message":"book the dentist"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	res := decode(t, rec)
	assert.Equal(t, "Shall I add it?", res["response"])
	assert.Equal(t, true, res["event_suggested"])
	assert.Equal(t, false, res["event_added"])
	assert.Nil(t, res["add_result"])
	assert.Equal(t, map[string]interface{}{
		"title":      "Dentist",
		"date":       "2026-11-20",
		"is_all_day": false,
		"allDay":     false,
		"startTime":  "14:00",
		"endTime":    "15:00",
		"notes":      "bring x-rays",
		"color":      "#4285f4",
	}, res["event_data"])
}

func TestChatHandler_ConfirmPending(t *testing.T) {
	a, chat, _ := newTestApi(t, nil)

	pending := &model.EventCommand{Title: "Gym", Date: "2026-10-17", AllDay: true, Color: "#4285f4"}
	added := &model.Event{ID: 3, Title: "Gym", Date: "2026-10-17", AllDay: true, Color: "#4285f4"}
	chat.On("HandleMessage", mock.Anything, "alice", "yes", pending).
		Return(&model.ChatResult{Response: "Event added to calendar.", EventAdded: true, Added: []*model.Event{added}}, nil).Once()

	body := `{"user_id":"alice","message":"yes","pending_event":{"title":"Gym","date":"2026-10-17","allDay":true,"color":"#4285f4"}}`
	rec := do(a, http.MethodPost, "/api/chat", body, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	res := decode(t, rec)
	assert.Equal(t, true, res["event_added"])
	assert.Nil(t, res["event_data"])
	assert.Equal(t, map[string]interface{}{
		"id":         float64(3),
		"title":      "Gym",
		"date":       "2026-10-17",
		"is_all_day": true,
		"allDay":     true,
		"notes":      "",
		"color":      "#4285f4",
	}, res["add_result"])
}

func TestChatHandler_BatchResult(t *testing.T) {
	a, chat, _ := newTestApi(t, nil)

	chat.On("HandleMessage", mock.Anything, "default", "add my week", (*model.EventCommand)(nil)).
		Return(&model.ChatResult{
			EventAdded: true,
			Batch:      true,
			Added:      []*model.Event{{ID: 1, Title: "Work"}, {ID: 2, Title: "Work"}},
		}, nil).Once()

	rec := do(a, http.MethodPost, "/api/chat", `{"message":"add my week"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	added, ok := decode(t, rec)["add_result"].([]interface{})
	require.True(t, ok)
	assert.Len(t, added, 2)
}

func TestChatHandler_Errors(t *testing.T) {
	t.Run("empty message", func(t *testing.T) {
		a, chat, _ := newTestApi(t, nil)
		chat.On("HandleMessage", mock.Anything, "default", "", (*model.EventCommand)(nil)).
			Return(nil, model.ErrEmptyMessage).Once()

		rec := do(a, http.MethodPost, "/api/chat", `{"message":""}`, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "no message provided", decode(t, rec)["error"])
	})

	t.Run("model failure", func(t *testing.T) {
		a, chat, _ := newTestApi(t, nil)
		chat.On("HandleMessage", mock.Anything, "default", "hi", (*model.EventCommand)(nil)).
			Return(nil, errors.New("llm.Invoke: connection refused")).Once()

		rec := do(a, http.MethodPost, "/api/chat", `{"message":"hi"}`, nil)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)

		res := decode(t, rec)
		assert.Equal(t, "Error processing request. Try again.", res["response"])
		assert.Equal(t, "llm.Invoke: connection refused", res["error"])
	})

	t.Run("bad user id", func(t *testing.T) {
		a, _, _ := newTestApi(t, nil)

		rec := do(a, http.MethodPost, "/api/chat", `{"user_id":"../etc/passwd","message":"hi"}`, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("pending without date", func(t *testing.T) {
		a, _, _ := newTestApi(t, nil)

		rec := do(a, http.MethodPost, "/api/chat", `{"message":"yes","pending_event":{"title":"Gym"}}`, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("unknown field", func(t *testing.T) {
		a, _, _ := newTestApi(t, nil)

		rec := do(a, http.MethodPost, "/api/chat", `{"message":"hi","foo":1}`, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetEventsHandler(t *testing.T) {
	a, _, events := newTestApi(t, nil)

	events.On("GetEvents", mock.Anything, "bob").Return([]*model.Event{
		{ID: 1, Title: "Standup", Date: "2026-10-19", StartTime: "09:30", EndTime: "09:45", Color: "#4285f4"},
	}, nil).Once()

	rec := do(a, http.MethodGet, "/api/events?user_id=bob", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var res []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res, 1)
	assert.Equal(t, "09:30", res[0]["startTime"])
	assert.Equal(t, false, res[0]["allDay"])
}

func TestGetEventHandler(t *testing.T) {
	a, _, events := newTestApi(t, nil)

	events.On("GetEventByID", mock.Anything, "default", int64(5)).
		Return(&model.Event{ID: 5, Title: "Dentist", Date: "2026-11-20", StartTime: "14:00", EndTime: "15:00"}, nil).Once()
	events.On("GetEventByID", mock.Anything, "default", int64(6)).Return(nil, model.ErrNoRecord).Once()

	rec := do(a, http.MethodGet, "/api/events/5", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Dentist", decode(t, rec)["title"])

	rec = do(a, http.MethodGet, "/api/events/6", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEmailUserIDs(t *testing.T) {
	a, chat, events := newTestApi(t, nil)

	chat.On("HandleMessage", mock.Anything, "jane+cal@example.com", "hi", (*model.EventCommand)(nil)).
		Return(&model.ChatResult{Response: "hello"}, nil).Once()
	events.On("GetEvents", mock.Anything, "o'brien@example.com").Return([]*model.Event{}, nil).Once()

	rec := do(a, http.MethodPost, "/api/chat", `{"user_id":"jane+cal@example.com","message":"hi"}`, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(a, http.MethodGet, "/api/events?user_id=o%27brien%40example.com", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(a, http.MethodGet, "/api/events?user_id=a%5Cb", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateEventHandler(t *testing.T) {
	a, _, events := newTestApi(t, nil)

	title := "Dentist (moved)"
	allDay := true
	events.On("UpdateEvent", mock.Anything, "default", int64(4), &model.EventUpdate{Title: &title, AllDay: &allDay}).
		Return(&model.Event{ID: 4, Title: title, Date: "2026-11-20", AllDay: true}, nil).Once()

	rec := do(a, http.MethodPut, "/api/events/4", `{"title":"Dentist (moved)","is_all_day":true}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, title, decode(t, rec)["title"])
}

func TestUpdateEventHandler_Errors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		a, _, events := newTestApi(t, nil)
		events.On("UpdateEvent", mock.Anything, "default", int64(9), mock.Anything).Return(nil, model.ErrNoRecord).Once()

		rec := do(a, http.MethodPut, "/api/events/9", `{"notes":"x"}`, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "event not found", decode(t, rec)["error"])
	})

	t.Run("bad shapes", func(t *testing.T) {
		a, _, _ := newTestApi(t, nil)

		rec := do(a, http.MethodPut, "/api/events/9", `{"date":"tomorrow","startTime":"9am","color":"blue"}`, nil)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		errs, ok := decode(t, rec)["error"].(map[string]interface{})
		require.True(t, ok)
		assert.Contains(t, errs, "date")
		assert.Contains(t, errs, "startTime")
		assert.Contains(t, errs, "color")
	})

	t.Run("bad id", func(t *testing.T) {
		a, _, _ := newTestApi(t, nil)

		rec := do(a, http.MethodPut, "/api/events/abc", `{}`, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDeleteEventHandler(t *testing.T) {
	a, _, events := newTestApi(t, nil)

	events.On("DeleteEvent", mock.Anything, "default", int64(2)).Return(nil).Once()
	events.On("DeleteEvent", mock.Anything, "default", int64(3)).Return(model.ErrNoRecord).Once()

	rec := do(a, http.MethodDelete, "/api/events/2", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["success"])

	rec = do(a, http.MethodDelete, "/api/events/3", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuth(t *testing.T) {
	jwts := jwt.NewManager("secret", 0)
	a, _, events := newTestApi(t, jwts)

	rec := do(a, http.MethodGet, "/api/events", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(a, http.MethodGet, "/api/events", "", map[string]string{"Authorization": "Bearer nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, err := jwt.NewManager("secret", 1<<40).CreateToken("carol")
	require.NoError(t, err)

	// the query user id is ignored in favour of the token subject
	events.On("GetEvents", mock.Anything, "carol").Return([]*model.Event{}, nil).Once()
	rec = do(a, http.MethodGet, "/api/events?user_id=mallory", "", map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusOK, rec.Code)
}
