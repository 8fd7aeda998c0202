package chat

import (
	"strings"

	"github.com/SergeyKozhin/chat-calendar/internal/model"
)

// State of a conversation with respect to a suggested event. The client holds
// the pending event, so the state is derived per request, never stored.
type State int

const (
	StateNoPending State = iota
	StateAwaitingConfirmation
)

// Decision is what a message means for a pending event.
type Decision int

const (
	// DecisionFallThrough leaves the pending event alone and asks the model.
	DecisionFallThrough Decision = iota
	DecisionConfirm
	DecisionDecline
)

var affirmations = map[string]struct{}{
	"yes": {}, "y": {}, "sure": {}, "confirm": {}, "ok": {}, "okay": {},
	"yeah": {}, "yep": {}, "please do": {}, "go ahead": {},
}

var declines = map[string]struct{}{
	"no": {}, "n": {}, "nope": {}, "cancel": {}, "don't": {}, "do not": {},
}

func StateOf(pending *model.EventCommand) State {
	if pending == nil {
		return StateNoPending
	}
	return StateAwaitingConfirmation
}

// Decide matches the whole message, case-insensitively, against the
// confirmation and decline phrases.
func Decide(pending *model.EventCommand, message string) Decision {
	if StateOf(pending) == StateNoPending {
		return DecisionFallThrough
	}

	m := strings.ToLower(strings.TrimSpace(message))
	if _, ok := affirmations[m]; ok {
		return DecisionConfirm
	}
	if _, ok := declines[m]; ok {
		return DecisionDecline
	}

	return DecisionFallThrough
}
