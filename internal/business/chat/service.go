// Package chat runs one conversation turn: it short-circuits confirmations of
// a pending event and otherwise asks the model and applies its commands.
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/SergeyKozhin/chat-calendar/internal/business/dates"
	"github.com/SergeyKozhin/chat-calendar/internal/model"
	"go.uber.org/zap"
)

const (
	responseAdded     = "Event added to calendar."
	responseCancelled = "Event cancelled."
	memoryCancelled   = "I've cancelled the event creation."
)

type Service struct {
	logger   *zap.SugaredLogger
	sessions sessionStore
	llm      modelClient
	parser   commandParser
	events   eventsService
	now      func() time.Time
}

type sessionStore interface {
	History(ctx context.Context, userID string) ([]model.Message, error)
	Append(ctx context.Context, userID string, msgs ...model.Message) error
}

type modelClient interface {
	Invoke(ctx context.Context, systemPrompt string, history []model.Message, input string) (string, error)
}

type commandParser interface {
	Extract(text string) (*model.EventCommand, string, model.CommandKind)
}

type eventsService interface {
	AddEvent(ctx context.Context, userID string, cmd *model.EventCommand) (*model.Event, error)
	Apply(ctx context.Context, userID string, cmd *model.EventCommand) ([]*model.Event, bool, error)
	GetEvents(ctx context.Context, userID string) ([]*model.Event, error)
}

func NewService(
	logger *zap.SugaredLogger,
	sessions sessionStore,
	llm modelClient,
	parser commandParser,
	events eventsService,
	now func() time.Time,
) *Service {
	if now == nil {
		now = time.Now
	}

	return &Service{
		logger:   logger,
		sessions: sessions,
		llm:      llm,
		parser:   parser,
		events:   events,
		now:      now,
	}
}

// HandleMessage processes one user message. pending is the event suggested on
// the previous turn, if the client still holds one.
func (s *Service) HandleMessage(ctx context.Context, userID, message string, pending *model.EventCommand) (*model.ChatResult, error) {
	if strings.TrimSpace(message) == "" {
		return nil, model.ErrEmptyMessage
	}

	switch Decide(pending, message) {
	case DecisionConfirm:
		return s.confirm(ctx, userID, message, pending)
	case DecisionDecline:
		s.remember(ctx, userID, message, memoryCancelled)
		return &model.ChatResult{Response: responseCancelled}, nil
	}

	return s.ask(ctx, userID, message)
}

func (s *Service) confirm(ctx context.Context, userID, message string, pending *model.EventCommand) (*model.ChatResult, error) {
	event, err := s.events.AddEvent(ctx, userID, pending)
	if err != nil {
		return nil, fmt.Errorf("events.AddEvent: %w", err)
	}

	s.remember(ctx, userID, message, fmt.Sprintf("I've added the event to your calendar: %s on %s.", event.Title, event.Date))

	return &model.ChatResult{
		Response:   responseAdded,
		EventAdded: true,
		Added:      []*model.Event{event},
	}, nil
}

func (s *Service) ask(ctx context.Context, userID, message string) (*model.ChatResult, error) {
	history, err := s.sessions.History(ctx, userID)
	if err != nil {
		s.logger.Errorw("failed to load conversation history", "user_id", userID, "err", err)
	}

	input, err := s.buildInput(ctx, userID, message)
	if err != nil {
		return nil, err
	}

	reply, err := s.llm.Invoke(ctx, systemPrompt, history, input)
	if err != nil {
		return nil, fmt.Errorf("llm.Invoke: %w", err)
	}

	cmd, cleaned, kind := s.parser.Extract(reply)
	res := &model.ChatResult{
		Response:       cleaned,
		EventAdded:     kind == model.CommandAdd && cmd != nil,
		EventSuggested: kind == model.CommandSuggest && cmd != nil,
		EventData:      cmd,
	}

	if res.EventAdded {
		res.Added, res.Batch, err = s.events.Apply(ctx, userID, cmd)
		if err != nil {
			return nil, fmt.Errorf("events.Apply: %w", err)
		}
		// a range ending before it starts expands to nothing
		res.EventAdded = len(res.Added) > 0
	}

	s.remember(ctx, userID, message, cleaned)
	return res, nil
}

// buildInput prefixes the message with today's date and the user's events.
func (s *Service) buildInput(ctx context.Context, userID, message string) (string, error) {
	events, err := s.events.GetEvents(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("events.GetEvents: %w", err)
	}

	now := s.now()
	var b strings.Builder
	fmt.Fprintf(&b, "Current date: %s (%s)\n", now.Format(dates.Layout), now.Weekday())

	if len(events) == 0 {
		b.WriteString("No events in calendar.\n")
	} else {
		ctxEvents := make([]contextEvent, len(events))
		for i, e := range events {
			ctxEvents[i] = mapToContextEvent(e)
		}
		js, err := json.Marshal(ctxEvents)
		if err != nil {
			return "", fmt.Errorf("marshal events: %w", err)
		}
		fmt.Fprintf(&b, "Current calendar events: %s\n", js)
	}

	b.WriteString("\n")
	b.WriteString(message)

	return b.String(), nil
}

func (s *Service) remember(ctx context.Context, userID, userMessage, assistantMessage string) {
	if err := s.sessions.Append(ctx, userID,
		model.Message{Role: model.RoleUser, Content: userMessage},
		model.Message{Role: model.RoleAssistant, Content: assistantMessage},
	); err != nil {
		s.logger.Errorw("failed to store conversation", "user_id", userID, "err", err)
	}
}

type contextEvent struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	AllDay    bool   `json:"allDay"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

func mapToContextEvent(e *model.Event) contextEvent {
	return contextEvent{
		ID:        e.ID,
		Title:     e.Title,
		Date:      e.Date,
		AllDay:    e.AllDay,
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
		Notes:     e.Notes,
	}
}
