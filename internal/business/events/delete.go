package events

import (
	"context"

	"github.com/SergeyKozhin/chat-calendar/internal/model"
)

func (s *Service) DeleteEvent(ctx context.Context, userID string, id int64) error {
	cal, err := s.load(ctx, userID)
	if err != nil {
		return err
	}

	kept := cal.Events[:0]
	for _, e := range cal.Events {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(cal.Events) {
		return model.ErrNoRecord
	}

	// NextID is kept as is so the deleted id is never handed out again
	cal.Events = kept
	return s.save(ctx, userID, cal)
}
