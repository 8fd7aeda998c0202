package events

import "github.com/SergeyKozhin/chat-calendar/internal/model"

type eventDTO struct {
	ID        int64
	Title     string
	Date      string
	AllDay    bool
	StartTime string
	EndTime   string
	Notes     string
	Color     string
}

func mapToEvent(dto *eventDTO) *model.Event {
	return &model.Event{
		ID:        dto.ID,
		Title:     dto.Title,
		Date:      dto.Date,
		AllDay:    dto.AllDay,
		StartTime: dto.StartTime,
		EndTime:   dto.EndTime,
		Notes:     dto.Notes,
		Color:     dto.Color,
	}
}
