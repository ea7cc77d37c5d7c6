// Package chat is the persisted message store the saves records live on.
package chat

import (
	"time"

	"github.com/KirkDiggler/saves-helper/internal/dice"
	"github.com/KirkDiggler/saves-helper/internal/domain/saves"
	"github.com/KirkDiggler/saves-helper/internal/world"
)

// Speaker is who a message is posted as.
type Speaker struct {
	Actor string `json:"actor,omitempty"`
	Token string `json:"token,omitempty"`
	Alias string `json:"alias,omitempty"`
}

// AttackReference is the host's record of the last strike made from an action,
// present on area and auto-fire attacks.
type AttackReference struct {
	ItemUUID  string           `json:"itemUuid,omitempty"`
	Statistic *world.Statistic `json:"statistic,omitempty"`
	Traits    []string         `json:"traits,omitempty"`
}

// Message is one persisted chat message.
type Message struct {
	ID        string
	AuthorID  string
	Speaker   Speaker
	Content   string
	Flags     map[string]any
	Rolls     []*dice.DamageRoll
	Attack    *AttackReference
	Whisper   []string
	CreatedAt time.Time
}

// Host returns the host's own flags; malformed host flags read as empty.
func (m *Message) Host() *saves.HostFlags {
	if m == nil {
		return &saves.HostFlags{}
	}
	host, err := saves.DecodeHost(m.Flags)
	if err != nil {
		return &saves.HostFlags{}
	}
	return host
}

// ContextType returns the host context type, e.g. "spell-cast"
func (m *Message) ContextType() string {
	if ctx := m.Host().Context; ctx != nil {
		return ctx.Type
	}
	return ""
}

// Origin returns the item the message originates from, or nil
func (m *Message) Origin() *saves.Origin {
	return m.Host().Origin
}

// Roll returns the damage roll at index, or nil
func (m *Message) Roll(index int) *dice.DamageRoll {
	if m == nil || index < 0 || index >= len(m.Rolls) {
		return nil
	}
	return m.Rolls[index]
}

// Clone returns a deep copy
func (m *Message) Clone() *Message {
	if m == nil {
		return nil
	}

	clone := *m
	clone.Flags = copyMap(m.Flags)
	if m.Rolls != nil {
		clone.Rolls = make([]*dice.DamageRoll, len(m.Rolls))
		for i, roll := range m.Rolls {
			if roll == nil {
				continue
			}
			r := *roll
			r.Instances = append([]dice.DamageInstance(nil), roll.Instances...)
			r.Kinds = append([]dice.DamageKind(nil), roll.Kinds...)
			clone.Rolls[i] = &r
		}
	}
	if m.Attack != nil {
		attack := *m.Attack
		if m.Attack.Statistic != nil {
			stat := *m.Attack.Statistic
			attack.Statistic = &stat
		}
		attack.Traits = append([]string(nil), m.Attack.Traits...)
		clone.Attack = &attack
	}
	clone.Whisper = append([]string(nil), m.Whisper...)
	return &clone
}

func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return copyMap(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = copyValue(item)
		}
		return out
	default:
		return v
	}
}

func copyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = copyValue(v)
	}
	return out
}
