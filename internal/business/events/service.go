package events

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/chat-calendar/internal/model"
	"go.uber.org/zap"
)

type Service struct {
	store  calendarStore
	logger *zap.SugaredLogger
}

type calendarStore interface {
	Load(ctx context.Context, userID string) (*model.Calendar, error)
	Save(ctx context.Context, userID string, cal *model.Calendar) error
}

func NewService(store calendarStore, logger *zap.SugaredLogger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

func (s *Service) load(ctx context.Context, userID string) (*model.Calendar, error) {
	cal, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("store.Load: %w", err)
	}
	if cal == nil {
		cal = &model.Calendar{}
	}

	return cal, nil
}

func (s *Service) save(ctx context.Context, userID string, cal *model.Calendar) error {
	if err := s.store.Save(ctx, userID, cal); err != nil {
		return fmt.Errorf("store.Save: %w", err)
	}

	return nil
}
