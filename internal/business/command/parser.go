// Package command extracts event commands embedded in model replies.
package command

import (
	"errors"
	"strings"
	"time"

	"github.com/SergeyKozhin/chat-calendar/internal/business/dates"
	"github.com/SergeyKozhin/chat-calendar/internal/model"
	"go.uber.org/zap"
)

const rangeSeparator = " to "

var recurrenceWords = []string{"repeat", "every", "weekly"}

type normalizer interface {
	Normalize(text string, ref time.Time) string
}

type Parser struct {
	normalizer normalizer
	now        func() time.Time
	logger     *zap.SugaredLogger
}

func NewParser(normalizer normalizer, now func() time.Time, logger *zap.SugaredLogger) *Parser {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &Parser{
		normalizer: normalizer,
		now:        now,
		logger:     logger,
	}
}

// Parse returns the first command in text together with the text stripped of
// it. ErrNoCommand is returned when text has no command; malformed commands
// produce a *SyntaxError.
func (p *Parser) Parse(text string) (*model.EventCommand, model.CommandKind, string, error) {
	span, err := Scan(text)
	if err != nil {
		return nil, "", text, err
	}

	f, err := splitFields(span.Payload)
	if err != nil {
		return nil, "", text, err
	}

	cmd, err := p.build(f)
	if err != nil {
		return nil, "", text, err
	}

	return cmd, span.Kind, span.Strip(text), nil
}

// Extract is Parse with failures folded into "no command": the original text
// is returned untouched and the error is only logged.
func (p *Parser) Extract(text string) (*model.EventCommand, string, model.CommandKind) {
	cmd, kind, cleaned, err := p.Parse(text)
	if err != nil {
		if !errors.Is(err, ErrNoCommand) {
			p.logger.Debugw("ignoring malformed event command", "err", err)
		}
		return nil, text, ""
	}

	return cmd, cleaned, kind
}

func (p *Parser) build(f *fields) (*model.EventCommand, error) {
	ref := p.now()
	title := f.get(fieldTitle)
	dateExpr := f.get(fieldDate)
	isWork := strings.Contains(strings.ToLower(title), "work")

	cmd := &model.EventCommand{
		Title: title,
		Color: model.DefaultColor,
	}

	if startExpr, endExpr, ok := strings.Cut(dateExpr, rangeSeparator); ok {
		if strings.Contains(endExpr, rangeSeparator) {
			return nil, &SyntaxError{Field: fieldNames[fieldDate], Pos: len(title) + 1, Msg: "more than one range separator"}
		}
		cmd.Date = p.normalizer.Normalize(strings.TrimSpace(startExpr), ref)
		cmd.EndDate = p.normalizer.Normalize(strings.TrimSpace(endExpr), ref)
	} else {
		cmd.Date = p.normalizer.Normalize(dateExpr, ref)

		if isWork && strings.Contains(strings.ToLower(dateExpr), "next week") {
			start, err := dates.Parse(cmd.Date)
			if err != nil {
				return nil, &SyntaxError{Field: fieldNames[fieldDate], Pos: len(title) + 1, Msg: "work week start is not a date"}
			}
			cmd.EndDate = dates.FridayOnOrAfter(start).Format(dates.Layout)
		}
	}

	if f.has(fieldNotes) {
		notes := f.get(fieldNotes)
		cmd.Notes = &notes

		lower := strings.ToLower(notes)
		for _, w := range recurrenceWords {
			if strings.Contains(lower, w) {
				cmd.Recurrence = notes
				break
			}
		}
	}

	cmd.StartTime = f.get(fieldStartTime)
	cmd.EndTime = f.get(fieldEndTime)
	cmd.AllDay = !f.has(fieldStartTime) || cmd.StartTime == ""

	if isWork && cmd.AllDay {
		cmd.AllDay = false
		if cmd.StartTime == "" {
			cmd.StartTime = model.DefaultWorkStart
		}
		if cmd.EndTime == "" {
			cmd.EndTime = model.DefaultWorkEnd
		}
	}

	return cmd, nil
}
