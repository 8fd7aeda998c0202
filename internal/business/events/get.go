package events

import (
	"context"

	"github.com/SergeyKozhin/chat-calendar/internal/model"
)

func (s *Service) GetEvents(ctx context.Context, userID string) ([]*model.Event, error) {
	cal, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	return cal.Events, nil
}

func (s *Service) GetEventByID(ctx context.Context, userID string, id int64) (*model.Event, error) {
	cal, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, e := range cal.Events {
		if e.ID == id {
			return e, nil
		}
	}

	return nil, model.ErrNoRecord
}
