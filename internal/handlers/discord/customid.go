package discord

import (
	"fmt"
	"strconv"
	"strings"
)

// CustomIDPrefix marks components that belong to the saves helper.
const CustomIDPrefix = "saves"

// Component actions
const (
	ActionRoll      = "roll"
	ActionRollAll   = "rollall"
	ActionRollNPCs  = "rollnpc"
	ActionTargets   = "targets"
	ActionApply     = "apply"
	ActionShield    = "shield"
	ActionApplyAll  = "applyall"
	ActionApplyNPCs = "applynpc"
	ActionSplash    = "splash"
	// ActionPick and ActionRollPick are select menus; the chosen token arrives
	// as the interaction's value.
	ActionPick     = "pick"
	ActionRollPick = "rollpick"
)

// ComponentID is a parsed component custom id:
// saves:<action>:<message>[:<token>[:<roll>[:<multiplier>|<page>]]]
type ComponentID struct {
	Action     string
	MessageID  string
	TokenUUID  string
	RollIndex  int
	Multiplier float64
	// Page keeps the ids of a roll's pickers distinct.
	Page int
}

// String encodes the id, leaving off trailing fields the action does not use.
func (c ComponentID) String() string {
	parts := []string{CustomIDPrefix, c.Action, c.MessageID}
	switch c.Action {
	case ActionRoll:
		parts = append(parts, c.TokenUUID)
	case ActionApply, ActionShield:
		parts = append(parts, c.TokenUUID, strconv.Itoa(c.RollIndex),
			strconv.FormatFloat(c.Multiplier, 'f', -1, 64))
	case ActionSplash:
		parts = append(parts, c.TokenUUID, strconv.Itoa(c.RollIndex))
	case ActionApplyAll, ActionApplyNPCs:
		parts = append(parts, "", strconv.Itoa(c.RollIndex))
	case ActionPick, ActionRollPick:
		parts = append(parts, "", strconv.Itoa(c.RollIndex), strconv.Itoa(c.Page))
	}
	return strings.Join(parts, ":")
}

// ParseComponentID decodes a custom id; ok is false for ids owned by something else.
func ParseComponentID(customID string) (ComponentID, bool, error) {
	parts := strings.Split(customID, ":")
	if len(parts) < 3 || parts[0] != CustomIDPrefix {
		return ComponentID{}, false, nil
	}

	id := ComponentID{Action: parts[1], MessageID: parts[2]}
	if id.MessageID == "" {
		return id, true, fmt.Errorf("custom id %q has no message", customID)
	}
	if len(parts) > 3 {
		id.TokenUUID = parts[3]
	}
	if len(parts) > 4 {
		n, err := strconv.Atoi(parts[4])
		if err != nil {
			return id, true, fmt.Errorf("invalid roll index in %q: %w", customID, err)
		}
		id.RollIndex = n
	}
	if len(parts) > 5 && (id.Action == ActionPick || id.Action == ActionRollPick) {
		n, err := strconv.Atoi(parts[5])
		if err != nil {
			return id, true, fmt.Errorf("invalid page in %q: %w", customID, err)
		}
		id.Page = n
	} else if len(parts) > 5 {
		m, err := strconv.ParseFloat(parts[5], 64)
		if err != nil {
			return id, true, fmt.Errorf("invalid multiplier in %q: %w", customID, err)
		}
		id.Multiplier = m
	}

	switch id.Action {
	case ActionRoll, ActionApply, ActionShield, ActionSplash:
		if id.TokenUUID == "" {
			return id, true, fmt.Errorf("custom id %q has no token", customID)
		}
	case ActionRollAll, ActionRollNPCs, ActionTargets, ActionApplyAll, ActionApplyNPCs, ActionPick, ActionRollPick:
	default:
		return id, true, fmt.Errorf("unknown saves action %q", id.Action)
	}
	return id, true, nil
}
