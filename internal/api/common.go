package api

import (
	"github.com/SergeyKozhin/chat-calendar/internal/model"
)

// eventResp carries both all-day keys, older clients read is_all_day.
type eventResp struct {
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

func mapToEventResp(e *model.Event) (*eventResp, error) {
	return &eventResp{
		ID:        e.ID,
		Title:     e.Title,
		Date:      e.Date,
		IsAllDay:  e.AllDay,
		AllDay:    e.AllDay,
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
		Notes:     e.Notes,
		Color:     e.Color,
	}, nil
}

// eventData is the wire shape of a parsed command. The client echoes it back
// as pending_event, so the same type decodes requests.
type eventData struct {
	Title      string  `json:"title"`
	Date       string  `json:"date"`
	IsAllDay   *bool   `json:"is_all_day,omitempty"`
	AllDay     *bool   `json:"allDay,omitempty"`
	StartTime  string  `json:"startTime,omitempty"`
	EndTime    string  `json:"endTime,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	Color      string  `json:"color,omitempty"`
	EndDate    string  `json:"end_date,omitempty"`
	Recurrence string  `json:"recurrence,omitempty"`
}

func mapToEventData(cmd *model.EventCommand) *eventData {
	allDay := cmd.AllDay
	return &eventData{
		Title:      cmd.Title,
		Date:       cmd.Date,
		IsAllDay:   &allDay,
		AllDay:     &allDay,
		StartTime:  cmd.StartTime,
		EndTime:    cmd.EndTime,
		Notes:      cmd.Notes,
		Color:      cmd.Color,
		EndDate:    cmd.EndDate,
		Recurrence: cmd.Recurrence,
	}
}

func (d *eventData) toCommand() *model.EventCommand {
	allDay := d.StartTime == ""
	switch {
	case d.IsAllDay != nil:
		allDay = *d.IsAllDay
	case d.AllDay != nil:
		allDay = *d.AllDay
	}

	return &model.EventCommand{
		Title:      d.Title,
		Date:       d.Date,
		AllDay:     allDay,
		StartTime:  d.StartTime,
		EndTime:    d.EndTime,
		Notes:      d.Notes,
		Color:      d.Color,
		EndDate:    d.EndDate,
		Recurrence: d.Recurrence,
	}
}
