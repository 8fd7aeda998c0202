package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/SergeyKozhin/chat-calendar/internal/model"
	"github.com/SergeyKozhin/chat-calendar/internal/pkg/validator"
)

func (a *Api) getEventsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := resolveUserID(r, r.URL.Query().Get("user_id"))
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	events, err := a.events.GetEvents(r.Context(), userID)
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("get events: %w", err))
		return
	}

	resp, _ := mapSlice(events, mapToEventResp)

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) getEventHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseEventID(r)
	if !ok {
		a.notFoundResponse(w, r)
		return
	}

	userID, err := resolveUserID(r, r.URL.Query().Get("user_id"))
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	event, err := a.events.GetEventByID(r.Context(), userID, id)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNoRecord):
			a.eventNotFoundResponse(w, r)
		default:
			a.serverErrorResponse(w, r, fmt.Errorf("get event: %w", err))
		}
		return
	}

	resp, _ := mapToEventResp(event)

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) updateEventHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseEventID(r)
	if !ok {
		a.notFoundResponse(w, r)
		return
	}

	userID, err := resolveUserID(r, r.URL.Query().Get("user_id"))
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	// id and color are accepted so clients can send back a whole event
	req := &struct {
		ID        *int64  `json:"id"`
		Title     *string `json:"title"`
		Date      *string `json:"date"`
		IsAllDay  *bool   `json:"is_all_day"`
		AllDay    *bool   `json:"allDay"`
		StartTime *string `json:"startTime"`
		EndTime   *string `json:"endTime"`
		Notes     *string `json:"notes"`
		Color     *string `json:"color"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()

	if req.Title != nil {
		v.Check(*req.Title != "", "title", "title must not be empty")
	}
	if req.Date != nil {
		v.Check(validator.Matches(*req.Date, validator.DateRX), "date", "date must be in YYYY-MM-DD format")
	}
	if req.StartTime != nil {
		v.Check(validator.OptionalMatches(*req.StartTime, validator.TimeRX), "startTime", "startTime must be in HH:MM format")
	}
	if req.EndTime != nil {
		v.Check(validator.OptionalMatches(*req.EndTime, validator.TimeRX), "endTime", "endTime must be in HH:MM format")
	}
	if req.Color != nil {
		v.Check(validator.Matches(*req.Color, validator.HexRX), "color", "color must be valid HEX color")
	}
	if req.IsAllDay != nil && req.AllDay != nil {
		v.Check(*req.IsAllDay == *req.AllDay, "allDay", "is_all_day and allDay must agree")
	}

	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	allDay := req.IsAllDay
	if allDay == nil {
		allDay = req.AllDay
	}

	event, err := a.events.UpdateEvent(r.Context(), userID, id, &model.EventUpdate{
		Title:     req.Title,
		Date:      req.Date,
		AllDay:    allDay,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Notes:     req.Notes,
		Color:     req.Color,
	})
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNoRecord):
			a.eventNotFoundResponse(w, r)
		default:
			a.serverErrorResponse(w, r, fmt.Errorf("update event: %w", err))
		}
		return
	}

	resp, _ := mapToEventResp(event)

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) deleteEventHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseEventID(r)
	if !ok {
		a.notFoundResponse(w, r)
		return
	}

	userID, err := resolveUserID(r, r.URL.Query().Get("user_id"))
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	if err := a.events.DeleteEvent(r.Context(), userID, id); err != nil {
		switch {
		case errors.Is(err, model.ErrNoRecord):
			a.eventNotFoundResponse(w, r)
		default:
			a.serverErrorResponse(w, r, fmt.Errorf("delete event: %w", err))
		}
		return
	}

	if err := a.writeJSON(w, http.StatusOK, map[string]bool{"success": true}, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}
