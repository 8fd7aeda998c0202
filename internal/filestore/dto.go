package filestore

import "github.com/SergeyKozhin/chat-calendar/internal/model"

type calendarDTO struct {
	NextID int64       `json:"next_id"`
	Events []*eventDTO `json:"events"`
}

// eventDTO carries both all-day keys because existing clients read either.
type eventDTO struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	IsAllDay  bool   `json:"is_all_day"`
	AllDay    bool   `json:"allDay"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
	Notes     string `json:"notes"`
	Color     string `json:"color"`
}

func mapToEvent(d *eventDTO) *model.Event {
	return &model.Event{
		ID:        d.ID,
		Title:     d.Title,
		Date:      d.Date,
		AllDay:    d.IsAllDay || d.AllDay,
		StartTime: d.StartTime,
		EndTime:   d.EndTime,
		Notes:     d.Notes,
		Color:     d.Color,
	}
}

func mapToEventDTO(e *model.Event) *eventDTO {
	return &eventDTO{
		ID:        e.ID,
		Title:     e.Title,
		Date:      e.Date,
		IsAllDay:  e.AllDay,
		AllDay:    e.AllDay,
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
		Notes:     e.Notes,
		Color:     e.Color,
	}
}
