// Package filestore keeps each user's calendar in its own JSON file.
package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/SergeyKozhin/chat-calendar/internal/model"
	"go.uber.org/zap"
)

type Store struct {
	dir    string
	suffix string
	logger *zap.SugaredLogger
}

func NewStore(dir, suffix string, logger *zap.SugaredLogger) *Store {
	return &Store{
		dir:    dir,
		suffix: suffix,
		logger: logger,
	}
}

// Path returns the file backing userID's calendar.
func (s *Store) Path(userID string) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s_%s", userID, s.suffix))
}

// Load never fails on missing or unreadable data: both yield an empty
// calendar, and the next Save replaces the file.
func (s *Store) Load(_ context.Context, userID string) (*model.Calendar, error) {
	path := s.Path(userID)

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Errorw("failed reading calendar file, starting empty", "user_id", userID, "path", path, "err", err)
		}
		return &model.Calendar{}, nil
	}

	cal, err := decode(data)
	if err != nil {
		s.logger.Errorw("corrupt calendar file, starting empty", "user_id", userID, "path", path, "err", err)
		return &model.Calendar{}, nil
	}

	return cal, nil
}

func (s *Store) Save(_ context.Context, userID string, cal *model.Calendar) error {
	dto := calendarDTO{
		NextID: cal.NextID,
		Events: make([]*eventDTO, len(cal.Events)),
	}
	for i, e := range cal.Events {
		dto.Events[i] = mapToEventDTO(e)
	}

	data, err := json.MarshalIndent(dto, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal calendar: %w", err)
	}

	if err := writeFile(s.Path(userID), data); err != nil {
		return fmt.Errorf("write calendar: %w", err)
	}

	return nil
}

// decode accepts the current document and the older bare event array.
func decode(data []byte) (*model.Calendar, error) {
	data = bytes.TrimSpace(data)

	var dto calendarDTO
	if len(data) > 0 && data[0] == '[' {
		if err := json.Unmarshal(data, &dto.Events); err != nil {
			return nil, err
		}
	} else if err := json.Unmarshal(data, &dto); err != nil {
		return nil, err
	}

	cal := &model.Calendar{NextID: dto.NextID}
	for _, d := range dto.Events {
		if d == nil {
			continue
		}
		cal.Events = append(cal.Events, mapToEvent(d))
	}

	// keep the counter ahead of every stored id
	for _, e := range cal.Events {
		if e.ID >= cal.NextID {
			cal.NextID = e.ID + 1
		}
	}

	return cal, nil
}

func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
