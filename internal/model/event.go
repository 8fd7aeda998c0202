package model

// DefaultColor is assigned to every event created by the assistant.
const DefaultColor = "#4285f4"

const (
	DefaultWorkStart = "09:00"
	DefaultWorkEnd   = "17:00"
)

type Event struct {
	ID        int64
	Title     string
	Date      string
	AllDay    bool
	StartTime string
	EndTime   string
	Notes     string
	Color     string
}

// Calendar is the per-user document kept by a store. NextID only grows, so ids
// are never reused after deletions.
type Calendar struct {
	NextID int64
	Events []*Event
}

func (c *Calendar) AllocateID() int64 {
	if c.NextID <= 0 {
		c.NextID = 1
		for _, e := range c.Events {
			if e.ID >= c.NextID {
				c.NextID = e.ID + 1
			}
		}
	}

	id := c.NextID
	c.NextID++
	return id
}

// EventUpdate carries the keys supplied by the caller; nil fields are left as
// they are.
type EventUpdate struct {
	Title     *string
	Date      *string
	AllDay    *bool
	StartTime *string
	EndTime   *string
	Notes     *string
	Color     *string
}

type CommandKind string

const (
	CommandSuggest CommandKind = "suggest"
	CommandAdd     CommandKind = "add"
)

// EventCommand is an event description extracted from a model reply, or
// round-tripped by the client as a pending event. It is never stored as is.
type EventCommand struct {
	Title     string
	Date      string
	AllDay    bool
	StartTime string
	EndTime   string
	// Notes is nil when the command had no notes field at all.
	Notes      *string
	Color      string
	EndDate    string
	Recurrence string
}

func (c *EventCommand) NotesOrEmpty() string {
	if c.Notes == nil {
		return ""
	}
	return *c.Notes
}
