package events

import (
	"context"

	"github.com/SergeyKozhin/chat-calendar/internal/model"
)

// UpdateEvent overwrites the supplied fields of the event with the given id.
func (s *Service) UpdateEvent(ctx context.Context, userID string, id int64, info *model.EventUpdate) (*model.Event, error) {
	cal, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	var event *model.Event
	for _, e := range cal.Events {
		if e.ID == id {
			event = e
			break
		}
	}
	if event == nil {
		return nil, model.ErrNoRecord
	}

	if info.Title != nil {
		event.Title = *info.Title
	}
	if info.Date != nil {
		event.Date = *info.Date
	}
	if info.AllDay != nil {
		event.AllDay = *info.AllDay
	}
	if info.StartTime != nil {
		event.StartTime = *info.StartTime
	}
	if info.EndTime != nil {
		event.EndTime = *info.EndTime
	}
	if info.Notes != nil {
		event.Notes = *info.Notes
	}
	if info.Color != nil {
		event.Color = *info.Color
	}

	if err := s.save(ctx, userID, cal); err != nil {
		return nil, err
	}

	return event, nil
}
