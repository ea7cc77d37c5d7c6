package world

import (
	"fmt"
	"slices"
)

// Token is a placed representation of an actor on a scene.
type Token struct {
	UUID        string
	SceneID     string
	Name        string
	Hidden      bool
	PlayerOwned bool
	Owners      []string
	ActorUUID   string
	Image       string
	Scale       float64
}

// TokenUUID builds the host's token reference for a scene and token id.
func TokenUUID(sceneID, tokenID string) string {
	return fmt.Sprintf("Scene.%s.Token.%s", sceneID, tokenID)
}

// IsOwner reports whether the user may act for the token.
func (t *Token) IsOwner(user *User) bool {
	if t == nil || user == nil {
		return false
	}
	return user.IsGM() || slices.Contains(t.Owners, user.ID)
}

// Item is an item or spell an action originates from.
type Item struct {
	UUID      string
	Name      string
	Type      string
	ActorUUID string
	Traits    []string
}

// IsOfType reports whether the item type is one of types
func (i *Item) IsOfType(types ...string) bool {
	return i != nil && slices.Contains(types, i.Type)
}

// RollOptions returns the item's options under prefix, e.g. "item:type:effect".
func (i *Item) RollOptions(prefix string) []string {
	if i == nil {
		return nil
	}
	options := []string{prefix, fmt.Sprintf("%s:type:%s", prefix, i.Type)}
	for _, trait := range i.Traits {
		options = append(options, fmt.Sprintf("%s:trait:%s", prefix, trait))
	}
	return options
}
