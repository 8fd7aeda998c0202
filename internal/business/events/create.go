package events

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/chat-calendar/internal/business/dates"
	"github.com/SergeyKozhin/chat-calendar/internal/model"
)

// Apply persists cmd. A command with an end date expands into one event per
// day, a command with a recurrence phrase into weekly copies, anything else
// into a single event. batch reports whether an expansion took place.
func (s *Service) Apply(ctx context.Context, userID string, cmd *model.EventCommand) (events []*model.Event, batch bool, err error) {
	switch {
	case cmd.EndDate != "":
		events, err = s.AddDateRange(ctx, userID, cmd)
		return events, true, err
	case cmd.Recurrence != "":
		events, err = s.AddRecurring(ctx, userID, cmd)
		return events, true, err
	default:
		event, err := s.AddEvent(ctx, userID, cmd)
		if err != nil {
			return nil, false, err
		}
		return []*model.Event{event}, false, nil
	}
}

func (s *Service) AddEvent(ctx context.Context, userID string, cmd *model.EventCommand) (*model.Event, error) {
	cal, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	event := eventFromCommand(cmd, cmd.Date)
	event.ID = cal.AllocateID()
	cal.Events = append(cal.Events, event)

	if err := s.save(ctx, userID, cal); err != nil {
		return nil, err
	}

	s.logger.Debugw("event added", "user_id", userID, "id", event.ID, "date", event.Date)
	return event, nil
}

// AddDateRange adds one event per day from cmd.Date to cmd.EndDate. Work
// events skip weekends and default to office hours.
func (s *Service) AddDateRange(ctx context.Context, userID string, cmd *model.EventCommand) ([]*model.Event, error) {
	start, err := parseDate("date", cmd.Date)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("end_date", cmd.EndDate)
	if err != nil {
		return nil, err
	}

	work := isWork(cmd.Title)
	days, err := rangeDays(start, end, work)
	if err != nil {
		return nil, err
	}

	startTime, endTime := cmd.StartTime, cmd.EndTime
	if work {
		if startTime == "" {
			startTime = model.DefaultWorkStart
		}
		if endTime == "" {
			endTime = model.DefaultWorkEnd
		}
	}
	allDay := startTime == "" || endTime == ""

	res := make([]*model.Event, len(days))
	for i, d := range days {
		res[i] = &model.Event{
			Title:     cmd.Title,
			Date:      d.Format(dates.Layout),
			AllDay:    allDay,
			StartTime: startTime,
			EndTime:   endTime,
			Notes:     cmd.NotesOrEmpty(),
			Color:     model.DefaultColor,
		}
	}

	if err := s.addBatch(ctx, userID, res); err != nil {
		return nil, err
	}

	return res, nil
}

// AddRecurring adds weekly copies of cmd. Only weekly phrases repeat; the
// count comes from "for N weeks" and defaults to one.
func (s *Service) AddRecurring(ctx context.Context, userID string, cmd *model.EventCommand) ([]*model.Event, error) {
	start, err := parseDate("date", cmd.Date)
	if err != nil {
		return nil, err
	}

	count := 1
	if isWeekly(cmd.Recurrence) {
		count = weekCount(cmd.Recurrence)
	}

	days, err := weeklyDays(start, count)
	if err != nil {
		return nil, err
	}

	res := make([]*model.Event, len(days))
	for i, d := range days {
		res[i] = eventFromCommand(cmd, d.Format(dates.Layout))
	}

	if err := s.addBatch(ctx, userID, res); err != nil {
		return nil, err
	}

	return res, nil
}

// addBatch assigns sequential ids and stores all events in one save.
func (s *Service) addBatch(ctx context.Context, userID string, events []*model.Event) error {
	if len(events) == 0 {
		return nil
	}

	cal, err := s.load(ctx, userID)
	if err != nil {
		return err
	}

	for _, e := range events {
		e.ID = cal.AllocateID()
	}
	cal.Events = append(cal.Events, events...)

	if err := s.save(ctx, userID, cal); err != nil {
		return fmt.Errorf("save batch of %d: %w", len(events), err)
	}

	s.logger.Debugw("events added", "user_id", userID, "count", len(events))
	return nil
}
