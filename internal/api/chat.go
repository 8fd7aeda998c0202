package api

import (
	"errors"
	"net/http"

	"github.com/SergeyKozhin/chat-calendar/internal/model"
	"github.com/SergeyKozhin/chat-calendar/internal/pkg/validator"
)

type chatResp struct {
	Response       string      `json:"response"`
	EventAdded     bool        `json:"event_added"`
	EventSuggested bool        `json:"event_suggested"`
	EventData      *eventData  `json:"event_data"`
	AddResult      interface{} `json:"add_result"`
}

func (a *Api) chatHandler(w http.ResponseWriter, r *http.Request) {
	req := &struct {
		UserID       string     `json:"user_id"`
		Message      string     `json:"message"`
		PendingEvent *eventData `json:"pending_event"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	userID, err := resolveUserID(r, req.UserID)
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	var pending *model.EventCommand
	if req.PendingEvent != nil {
		v := validator.New()
		v.Check(req.PendingEvent.Title != "", "pending_event.title", "title must be provided")
		v.Check(req.PendingEvent.Date != "", "pending_event.date", "date must be provided")
		v.Check(validator.OptionalMatches(req.PendingEvent.Color, validator.HexRX), "pending_event.color", "color must be valid HEX color")

		if !v.Valid() {
			a.failedValidationResponse(w, r, v.Errors)
			return
		}

		pending = req.PendingEvent.toCommand()
	}

	res, err := a.chat.HandleMessage(r.Context(), userID, req.Message, pending)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrEmptyMessage):
			a.badRequestResponse(w, r, err)
		default:
			a.chatErrorResponse(w, r, err)
		}
		return
	}

	if err := a.writeJSON(w, http.StatusOK, mapToChatResp(res), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

// mapToChatResp reports a single add as an object and an expansion as a list.
func mapToChatResp(res *model.ChatResult) *chatResp {
	resp := &chatResp{
		Response:       res.Response,
		EventAdded:     res.EventAdded,
		EventSuggested: res.EventSuggested,
	}

	if res.EventData != nil {
		resp.EventData = mapToEventData(res.EventData)
	}

	added, _ := mapSlice(res.Added, mapToEventResp)
	switch {
	case res.Batch:
		resp.AddResult = added
	case len(added) > 0:
		resp.AddResult = added[0]
	}

	return resp
}
