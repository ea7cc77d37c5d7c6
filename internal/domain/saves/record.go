package saves

import "strings"

// Namespace owns this module's flags on host messages.
const Namespace = "pf2e-saves-helper"

// NormalizeID turns a token UUID into a flag key; the store cannot hold "." inside keys.
func NormalizeID(uuid string) string {
	return strings.ReplaceAll(uuid, ".", "-")
}

// SaveInfo is what a defender must roll.
type SaveInfo struct {
	SaveType         string   `json:"saveType"`
	Basic            bool     `json:"basic"`
	DC               int      `json:"dc"`
	ExtraRollOptions []string `json:"extraRollOptions,omitempty"`
}

// SaveResult is one token's recorded roll.
type SaveResult struct {
	DegreeOfSuccess DegreeOfSuccess `json:"degreeOfSuccess"`
	RollValue       int             `json:"rollValue"`
}

// Variant identifies the chosen spell variant on an origin.
type Variant struct {
	Overlays []string `json:"overlays"`
}

// Origin references the item and actor an action came from.
type Origin struct {
	UUID        string   `json:"uuid"`
	Type        string   `json:"type,omitempty"`
	Actor       string   `json:"actor,omitempty"`
	RollOptions []string `json:"rollOptions,omitempty"`
	Variant     *Variant `json:"variant,omitempty"`
}

// HasRollOption reports whether the origin carries the option
func (o *Origin) HasRollOption(option string) bool {
	if o == nil {
		return false
	}
	for _, opt := range o.RollOptions {
		if opt == option {
			return true
		}
	}
	return false
}

// Label is an optional display name for a record.
type Label struct {
	Text   string `json:"text"`
	GMOnly bool   `json:"gmOnly"`
}

// Record is the typed view of one action's save obligation.
type Record struct {
	// ID is the saves message id.
	ID            string
	Targets       []string
	SaveInfo      *SaveInfo
	Origin        *Origin
	Results       map[string]SaveResult
	Applied       map[string]bool
	SourceMessage string
	DamageMessage string
	Label         *Label
}

// Result returns the recorded result for a token UUID
func (r *Record) Result(tokenUUID string) (SaveResult, bool) {
	if r == nil || r.Results == nil {
		return SaveResult{}, false
	}
	result, ok := r.Results[NormalizeID(tokenUUID)]
	return result, ok
}

// IsApplied reports whether damage was already applied to the token
func (r *Record) IsApplied(tokenUUID string) bool {
	if r == nil || r.Applied == nil {
		return false
	}
	return r.Applied[NormalizeID(tokenUUID)]
}
