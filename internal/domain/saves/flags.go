package saves

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// HostNamespace holds the host system's own flags (context, origin).
const HostNamespace = "pf2e"

// SavesFlags is stored on a saves message.
type SavesFlags struct {
	Targets          []string              `json:"targets"`
	SourceMessage    string                `json:"sourceMessage,omitempty"`
	SaveType         string                `json:"saveType,omitempty"`
	Basic            bool                  `json:"basic,omitempty"`
	DC               int                   `json:"dc,omitempty"`
	ExtraRollOptions []string              `json:"extraRollOptions,omitempty"`
	Origin           *Origin               `json:"origin,omitempty"`
	Results          map[string]SaveResult `json:"results"`
	DamageMessage    string                `json:"damageMessage,omitempty"`
	Label            *Label                `json:"label,omitempty"`
}

// DamageFlags is stored on a damage message. Applied is keyed by (damage message, token),
// so it lives here rather than on the saves message.
type DamageFlags struct {
	SavesMessage string          `json:"savesMessage,omitempty"`
	Targets      []string        `json:"targets,omitempty"`
	Applied      map[string]bool `json:"applied,omitempty"`
}

// SourceFlags is stored on the action message that triggered a saves message.
type SourceFlags struct {
	SavesMessage string `json:"savesMessage,omitempty"`
}

// ContextTarget is the target a host roll was made against.
type ContextTarget struct {
	Actor string `json:"actor,omitempty"`
	Token string `json:"token,omitempty"`
}

// HostContext is the host's description of what a message is.
type HostContext struct {
	Type       string         `json:"type"`
	Options    []string       `json:"options,omitempty"`
	Target     *ContextTarget `json:"target,omitempty"`
	Identifier string         `json:"identifier,omitempty"`
	Outcome    string         `json:"outcome,omitempty"`
	Domains    []string       `json:"domains,omitempty"`
}

// HostFlags is the part of the host namespace this module reads.
type HostFlags struct {
	Context *HostContext `json:"context,omitempty"`
	Origin  *Origin      `json:"origin,omitempty"`
}

// Context types observed on host messages.
const (
	ContextSpellCast   = "spell-cast"
	ContextDamageRoll  = "damage-roll"
	ContextSavingThrow = "saving-throw"
	ContextAttackRoll  = "attack-roll"
)

func decode(input any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

func namespaced(flags map[string]any, ns string) (map[string]any, bool) {
	raw, ok := flags[ns]
	if !ok || raw == nil {
		return nil, false
	}
	bag, ok := raw.(map[string]any)
	return bag, ok
}

// HasNamespace reports whether the module has written anything to the flags bag
func HasNamespace(flags map[string]any) bool {
	bag, ok := namespaced(flags, Namespace)
	return ok && len(bag) > 0
}

// DecodeSaves reads saves flags; ok is false when the message carries none.
func DecodeSaves(flags map[string]any) (*SavesFlags, bool, error) {
	bag, ok := namespaced(flags, Namespace)
	if !ok {
		return nil, false, nil
	}
	if _, isSaves := bag["sourceMessage"]; !isSaves {
		return nil, false, nil
	}

	out := &SavesFlags{}
	if err := decode(bag, out); err != nil {
		return nil, false, fmt.Errorf("failed to decode saves flags: %w", err)
	}
	if out.Results == nil {
		out.Results = make(map[string]SaveResult)
	}
	return out, true, nil
}

// DecodeDamage reads damage flags; ok is false when the message carries none.
func DecodeDamage(flags map[string]any) (*DamageFlags, bool, error) {
	bag, ok := namespaced(flags, Namespace)
	if !ok {
		return nil, false, nil
	}

	out := &DamageFlags{}
	if err := decode(bag, out); err != nil {
		return nil, false, fmt.Errorf("failed to decode damage flags: %w", err)
	}
	return out, true, nil
}

// DecodeSource reads the back reference from a source message.
func DecodeSource(flags map[string]any) (*SourceFlags, error) {
	out := &SourceFlags{}
	bag, ok := namespaced(flags, Namespace)
	if !ok {
		return out, nil
	}
	if err := decode(bag, out); err != nil {
		return nil, fmt.Errorf("failed to decode source flags: %w", err)
	}
	return out, nil
}

// DecodeHost reads the host namespace.
func DecodeHost(flags map[string]any) (*HostFlags, error) {
	out := &HostFlags{}
	bag, ok := namespaced(flags, HostNamespace)
	if !ok {
		return out, nil
	}
	if err := decode(bag, out); err != nil {
		return nil, fmt.Errorf("failed to decode host flags: %w", err)
	}
	return out, nil
}

// Encode turns a typed flag value into the weakly typed form the store keeps.
func Encode(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode flags: %w", err)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to encode flags: %w", err)
	}
	return out, nil
}

// FlagPath builds a dotted patch path under the module namespace.
func FlagPath(parts ...string) string {
	return "flags." + Namespace + "." + strings.Join(parts, ".")
}

// NamespacePath is the patch path that replaces the module namespace wholesale.
func NamespacePath() string {
	return "flags." + Namespace
}

// ResultPath is the patch path for one token's result
func ResultPath(tokenUUID string) string {
	return FlagPath("results", NormalizeID(tokenUUID))
}

// AppliedPath is the patch path for one token's applied marker
func AppliedPath(tokenUUID string) string {
	return FlagPath("applied", NormalizeID(tokenUUID))
}

// SaveInfo returns the save obligation or nil for a no-save record.
func (f *SavesFlags) SaveInfo() *SaveInfo {
	if f.SaveType == "" {
		return nil
	}
	return &SaveInfo{
		SaveType:         f.SaveType,
		Basic:            f.Basic,
		DC:               f.DC,
		ExtraRollOptions: f.ExtraRollOptions,
	}
}

// Record builds the typed view. applied comes from the linked damage message and may be nil.
func (f *SavesFlags) Record(id string, applied map[string]bool) *Record {
	return &Record{
		ID:            id,
		Targets:       f.Targets,
		SaveInfo:      f.SaveInfo(),
		Origin:        f.Origin,
		Results:       f.Results,
		Applied:       applied,
		SourceMessage: f.SourceMessage,
		DamageMessage: f.DamageMessage,
		Label:         f.Label,
	}
}

// FlagsFromRecord is the inverse of Record; Applied is not part of the saves message.
func FlagsFromRecord(r *Record) *SavesFlags {
	f := &SavesFlags{
		Targets:       r.Targets,
		SourceMessage: r.SourceMessage,
		Origin:        r.Origin,
		Results:       r.Results,
		DamageMessage: r.DamageMessage,
		Label:         r.Label,
	}
	if f.Targets == nil {
		f.Targets = []string{}
	}
	if f.Results == nil {
		f.Results = make(map[string]SaveResult)
	}
	if r.SaveInfo != nil {
		f.SaveType = r.SaveInfo.SaveType
		f.Basic = r.SaveInfo.Basic
		f.DC = r.SaveInfo.DC
		f.ExtraRollOptions = r.SaveInfo.ExtraRollOptions
	}
	return f
}
