package relay

import (
	"encoding/json"
	"fmt"

	"github.com/KirkDiggler/saves-helper/internal/domain/saves"
)

// Topic is the channel every client of this module shares.
const Topic = "module." + saves.Namespace

// Message types on the wire.
const (
	TypeSaveRolled    = "save-rolled"
	TypeUpdateApplied = "update-applied"
)

// SaveRolled carries a roll result from a client that may not write the saves message.
type SaveRolled struct {
	// Message is the saves message id.
	Message         string                `json:"message"`
	Token           string                `json:"token"`
	DegreeOfSuccess saves.DegreeOfSuccess `json:"degreeOfSuccess"`
	RollValue       int                   `json:"rollValue"`
}

// UpdateApplied marks damage as applied to a token.
type UpdateApplied struct {
	// Message is the damage message id.
	Message string `json:"message"`
	Token   string `json:"token"`
}

type wireSaveRolled struct {
	Type string `json:"type"`
	SaveRolled
}

type wireUpdateApplied struct {
	Type string `json:"type"`
	UpdateApplied
}

// EncodeSaveRolled produces the wire form
func EncodeSaveRolled(msg *SaveRolled) ([]byte, error) {
	return json.Marshal(wireSaveRolled{Type: TypeSaveRolled, SaveRolled: *msg})
}

// EncodeUpdateApplied produces the wire form
func EncodeUpdateApplied(msg *UpdateApplied) ([]byte, error) {
	return json.Marshal(wireUpdateApplied{Type: TypeUpdateApplied, UpdateApplied: *msg})
}

// Decode reads a wire message. It returns *SaveRolled, *UpdateApplied, or nil for
// an unknown type.
func Decode(payload []byte) (any, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(payload, &head); err != nil {
		return nil, fmt.Errorf("failed to decode relay message: %w", err)
	}

	switch head.Type {
	case TypeSaveRolled:
		var msg wireSaveRolled
		if err := json.Unmarshal(payload, &msg); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", head.Type, err)
		}
		if !msg.DegreeOfSuccess.Valid() {
			return nil, fmt.Errorf("invalid degree of success %d", msg.DegreeOfSuccess)
		}
		return &msg.SaveRolled, nil
	case TypeUpdateApplied:
		var msg wireUpdateApplied
		if err := json.Unmarshal(payload, &msg); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", head.Type, err)
		}
		return &msg.UpdateApplied, nil
	}
	return nil, nil
}
