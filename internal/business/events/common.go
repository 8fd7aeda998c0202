package events

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/SergeyKozhin/chat-calendar/internal/business/dates"
	"github.com/SergeyKozhin/chat-calendar/internal/model"
	"github.com/teambition/rrule-go"
)

// maxOccurrences caps a single expansion.
const maxOccurrences = 366

var (
	weekCountRX  = regexp.MustCompile(`for\s+(\d+)\s*week`)
	everyRX      = regexp.MustCompile(`every\s+(week|monday|tuesday|wednesday|thursday|friday|saturday|sunday)`)
	workWeekdays = []rrule.Weekday{rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR}
)

func isWork(title string) bool {
	return strings.Contains(strings.ToLower(title), "work")
}

// isWeekly tells whether a recurrence phrase asks for a weekly cadence.
func isWeekly(phrase string) bool {
	lower := strings.ToLower(phrase)
	return strings.Contains(lower, "weekly") || everyRX.MatchString(lower)
}

// weekCount reads N from "for N weeks"; anything else means one week.
func weekCount(phrase string) int {
	m := weekCountRX.FindStringSubmatch(strings.ToLower(phrase))
	if m == nil {
		return 1
	}

	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return 1
	}

	return n
}

// rangeDays lists every day from start to end inclusive, weekdays only when
// weekdaysOnly is set.
func rangeDays(start, end time.Time, weekdaysOnly bool) ([]time.Time, error) {
	if end.Before(start) {
		return nil, nil
	}
	if int(end.Sub(start).Hours()/24)+1 > maxOccurrences {
		return nil, fmt.Errorf("%w: %s to %s", model.ErrRangeTooLarge, start.Format(dates.Layout), end.Format(dates.Layout))
	}

	opt := rrule.ROption{
		Freq:     rrule.DAILY,
		Interval: 1,
		Dtstart:  start,
		Until:    end,
	}
	if weekdaysOnly {
		opt.Byweekday = workWeekdays
	}

	rule, err := rrule.NewRRule(opt)
	if err != nil {
		return nil, fmt.Errorf("creating rule: %w", err)
	}

	return rule.All(), nil
}

// weeklyDays lists count days spaced one week apart starting at start.
func weeklyDays(start time.Time, count int) ([]time.Time, error) {
	if count > maxOccurrences {
		return nil, fmt.Errorf("%w: %d weeks", model.ErrRangeTooLarge, count)
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:     rrule.WEEKLY,
		Interval: 1,
		Count:    count,
		Dtstart:  start,
	})
	if err != nil {
		return nil, fmt.Errorf("creating rule: %w", err)
	}

	return rule.All(), nil
}

// eventFromCommand builds an unsaved event for date. Timed events without an
// end time end when they start.
func eventFromCommand(cmd *model.EventCommand, date string) *model.Event {
	event := &model.Event{
		Title:  cmd.Title,
		Date:   date,
		AllDay: cmd.AllDay,
		Notes:  cmd.NotesOrEmpty(),
		Color:  model.DefaultColor,
	}

	if !cmd.AllDay {
		event.StartTime = cmd.StartTime
		event.EndTime = cmd.EndTime
		if event.EndTime == "" {
			event.EndTime = cmd.StartTime
		}
	}

	return event
}

func parseDate(field, value string) (time.Time, error) {
	t, err := dates.Parse(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %s %q: %w", field, value, err)
	}
	return t, nil
}
