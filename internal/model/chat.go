package model

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

// ChatResult is what one conversation turn produces.
type ChatResult struct {
	Response       string
	EventAdded     bool
	EventSuggested bool
	EventData      *EventCommand
	// Added holds the persisted events; Batch tells whether they came from a
	// range or recurrence expansion rather than a single add.
	Added []*Event
	Batch bool
}
