package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SergeyKozhin/chat-calendar/internal/model"
)

// Marker is a pair of delimiters wrapping a command payload.
type Marker struct {
	Open  string
	Close string
	Kind  model.CommandKind
}

// Markers are tried in order; a suggestion wins over an add when a reply
// carries both.
var Markers = []Marker{
	{Open: "[SUGGEST_EVENT]", Close: "[/SUGGEST_EVENT]", Kind: model.CommandSuggest},
	{Open: "[ADD_EVENT]", Close: "[/ADD_EVENT]", Kind: model.CommandAdd},
}

var ErrNoCommand = errors.New("no event command")

// SyntaxError describes a malformed command. Pos is a byte offset into the
// scanned text for marker errors and into the payload for field errors.
type SyntaxError struct {
	Field string
	Pos   int
	Msg   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("command syntax error at %d (%s): %s", e.Pos, e.Field, e.Msg)
}

// Span is the first command found in a text. Start and End delimit the whole
// span including markers.
type Span struct {
	Kind    model.CommandKind
	Payload string
	Start   int
	End     int
}

// Scan returns the first span of the first marker kind present in text.
func Scan(text string) (*Span, error) {
	for _, m := range Markers {
		i := strings.Index(text, m.Open)
		if i < 0 {
			continue
		}

		bodyStart := i + len(m.Open)
		j := strings.Index(text[bodyStart:], m.Close)
		if j < 0 {
			return nil, &SyntaxError{Field: "marker", Pos: i, Msg: "unterminated " + m.Open}
		}

		return &Span{
			Kind:    m.Kind,
			Payload: text[bodyStart : bodyStart+j],
			Start:   i,
			End:     bodyStart + j + len(m.Close),
		}, nil
	}

	return nil, ErrNoCommand
}

// Strip removes the span from text and trims the result.
func (s *Span) Strip(text string) string {
	return strings.TrimSpace(text[:s.Start] + text[s.End:])
}

const (
	fieldTitle = iota
	fieldDate
	fieldStartTime
	fieldEndTime
	fieldNotes
	fieldCount
)

var fieldNames = [fieldCount]string{"title", "date", "start_time", "end_time", "notes"}

// fields is the positional payload title|date|start|end|notes. Trailing fields
// may be omitted; n counts the ones present. Notes run to the end of the
// payload, pipes included.
type fields struct {
	values [fieldCount]string
	n      int
}

func (f *fields) has(i int) bool {
	return i < f.n
}

func (f *fields) get(i int) string {
	return f.values[i]
}

func splitFields(payload string) (*fields, error) {
	if strings.TrimSpace(payload) == "" {
		return nil, &SyntaxError{Field: fieldNames[fieldTitle], Pos: 0, Msg: "empty payload"}
	}

	res := &fields{}
	for _, raw := range strings.SplitN(payload, "|", fieldCount) {
		res.values[res.n] = strings.TrimSpace(raw)
		res.n++
	}

	if res.get(fieldTitle) == "" {
		return nil, &SyntaxError{Field: fieldNames[fieldTitle], Pos: 0, Msg: "title must not be empty"}
	}
	if !res.has(fieldDate) || res.get(fieldDate) == "" {
		return nil, &SyntaxError{Field: fieldNames[fieldDate], Pos: len(payload), Msg: "date must be provided"}
	}

	return res, nil
}
