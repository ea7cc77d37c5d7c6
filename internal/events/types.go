package events

import (
	"github.com/KirkDiggler/saves-helper/internal/chat"
	"github.com/KirkDiggler/saves-helper/internal/scene"
)

// EventType is the kind of host notification an event carries
type EventType string

const (
	// EventTypeMessageCreated fires after a message is persisted.
	EventTypeMessageCreated EventType = "message.created"
	// EventTypeMessageUpdating fires before an edit is persisted, with the changed flags.
	EventTypeMessageUpdating EventType = "message.updating"
	// EventTypeMessageUpdated fires after an edit is persisted.
	EventTypeMessageUpdated EventType = "message.updated"
	// EventTypeTemplateCreated fires once a placed area template has been drawn.
	EventTypeTemplateCreated EventType = "template.created"
	// EventTypeCheckRerolled fires when a check is rerolled outside the original roll call.
	EventTypeCheckRerolled EventType = "check.rerolled"
)

// Reroll describes a rerolled check.
type Reroll struct {
	// Type is the check type, e.g. "saving-throw".
	Type string
	// Identifier is whatever the original roll was tagged with; saves rolls use the saves message id.
	Identifier string
	Natural    int
	Total      int
	Degree     int
	// Message is the chat message the reroll produced, when it has one.
	Message *chat.Message
}

// Event is one host notification routed through the Dispatcher.
type Event struct {
	Type EventType
	// UserID is the user whose action caused the event.
	UserID  string
	Message *chat.Message
	// Changed holds the flags an edit is about to write, shaped like Message.Flags.
	Changed  map[string]any
	Template *scene.Template
	Reroll   *Reroll
}
