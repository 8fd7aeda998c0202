// Package dates turns date expressions produced by the model into absolute
// calendar dates that are never before the reference day.
package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Layout is the ISO calendar date format used everywhere in the service.
const Layout = "2006-01-02"

var isoRX = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)

type Normalizer struct {
	logger *zap.SugaredLogger
}

func NewNormalizer(logger *zap.SugaredLogger) *Normalizer {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Normalizer{logger: logger}
}

// Normalize resolves text against ref. "next week" becomes the Monday strictly
// after ref, YYYY-MM-DD dates in the past are rolled forward to this or next
// year, anything else is returned unchanged.
// Invalid month/day combinations fall back to ref itself.
func (n *Normalizer) Normalize(text string, ref time.Time) string {
	today := Day(ref)

	if strings.Contains(strings.ToLower(text), "next week") {
		return NextMonday(today).Format(Layout)
	}

	m := isoRX.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		n.logger.Warnw("non-standard date format", "date", text)
		return text
	}

	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])

	date, ok := makeDate(year, month, day)
	if !ok {
		n.logger.Errorw("failed to normalize date", "date", text, "err", fmt.Errorf("invalid date %d-%d-%d", year, month, day))
		return today.Format(Layout)
	}

	if !date.Before(today) {
		return date.Format(Layout)
	}

	adjusted, ok := makeDate(today.Year(), month, day)
	if ok && adjusted.Before(today) {
		adjusted, ok = makeDate(today.Year()+1, month, day)
	}
	if !ok {
		// e.g. Feb 29 outside a leap year
		return today.Format(Layout)
	}

	return adjusted.Format(Layout)
}

// Day truncates t to midnight UTC of its calendar day in t's own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NextMonday returns the first Monday strictly after day.
func NextMonday(day time.Time) time.Time {
	days := (7 - weekdayIndex(day)) % 7
	if days == 0 {
		days = 7
	}
	return day.AddDate(0, 0, days)
}

// FridayOnOrAfter returns day itself when it is a Friday, otherwise the next
// Friday.
func FridayOnOrAfter(day time.Time) time.Time {
	days := ((4-weekdayIndex(day))%7 + 7) % 7
	return day.AddDate(0, 0, days)
}

// Parse reads an ISO date.
func Parse(s string) (time.Time, error) {
	return time.Parse(Layout, s)
}

// weekdayIndex numbers days from Monday=0 to Sunday=6.
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func makeDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, false
	}

	return t, true
}
