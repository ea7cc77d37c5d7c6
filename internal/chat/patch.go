package chat

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	dnderr "github.com/KirkDiggler/saves-helper/internal/errors"
)

type deletedValue struct{}

// Deleted unsets the path it is assigned to in a Patch.
var Deleted any = deletedValue{}

// Patch maps dotted paths ("content", "flags.ns.results.key") to new values.
// Setting a path replaces only that subtree.
type Patch map[string]any

// IsDeleted reports whether v is the Deleted sentinel
func IsDeleted(v any) bool {
	_, ok := v.(deletedValue)
	return ok
}

var topLevelPaths = map[string]bool{
	"content": true,
	"speaker": true,
	"whisper": true,
}

func splitPath(path string) ([]string, error) {
	parts := strings.Split(path, ".")
	for _, p := range parts {
		if p == "" {
			return nil, dnderr.InvalidArgumentf("invalid patch path %q", path)
		}
	}
	if parts[0] == "flags" {
		if len(parts) < 2 {
			return nil, dnderr.InvalidArgumentf("patch path %q must name a flag", path)
		}
		return parts, nil
	}
	if len(parts) != 1 || !topLevelPaths[parts[0]] {
		return nil, dnderr.InvalidArgumentf("unsupported patch path %q", path)
	}
	return parts, nil
}

// normalize returns v in the shape a round trip through storage produces.
func normalize(v any) (any, error) {
	switch v.(type) {
	case nil, string, bool, float64:
		return v, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode patch value: %w", err)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode patch value: %w", err)
	}
	return out, nil
}

func setPath(root map[string]any, parts []string, value any) {
	node := root
	for _, part := range parts[:len(parts)-1] {
		next, ok := node[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			node[part] = next
		}
		node = next
	}
	node[parts[len(parts)-1]] = value
}

func deletePath(root map[string]any, parts []string) {
	node := root
	for _, part := range parts[:len(parts)-1] {
		next, ok := node[part].(map[string]any)
		if !ok {
			return
		}
		node = next
	}
	delete(node, parts[len(parts)-1])
}

// Apply merges the patch into msg in place.
func (p Patch) Apply(msg *Message) error {
	for _, path := range p.sortedPaths() {
		parts, err := splitPath(path)
		if err != nil {
			return err
		}
		value := p[path]

		if parts[0] == "flags" {
			if msg.Flags == nil {
				msg.Flags = make(map[string]any)
			}
			if IsDeleted(value) {
				deletePath(msg.Flags, parts[1:])
				continue
			}
			normalized, err := normalize(value)
			if err != nil {
				return err
			}
			setPath(msg.Flags, parts[1:], normalized)
			continue
		}

		if err := applyTopLevel(msg, parts[0], value); err != nil {
			return err
		}
	}
	return nil
}

func applyTopLevel(msg *Message, field string, value any) error {
	deleted := IsDeleted(value)
	switch field {
	case "content":
		if deleted {
			msg.Content = ""
			return nil
		}
		s, ok := value.(string)
		if !ok {
			return dnderr.InvalidArgumentf("content must be a string, got %T", value)
		}
		msg.Content = s
	case "speaker":
		if deleted {
			msg.Speaker = Speaker{}
			return nil
		}
		s, ok := value.(Speaker)
		if !ok {
			return dnderr.InvalidArgumentf("speaker must be a Speaker, got %T", value)
		}
		msg.Speaker = s
	case "whisper":
		if deleted {
			msg.Whisper = nil
			return nil
		}
		w, ok := value.([]string)
		if !ok {
			return dnderr.InvalidArgumentf("whisper must be a []string, got %T", value)
		}
		msg.Whisper = append([]string(nil), w...)
	}
	return nil
}

// sortedPaths orders shallower paths first so a subtree replacement never clobbers
// a deeper path set in the same patch.
func (p Patch) sortedPaths() []string {
	paths := make([]string, 0, len(p))
	for path := range p {
		paths = append(paths, path)
	}
	sortPaths(paths)
	return paths
}

func sortPaths(paths []string) {
	slices.SortFunc(paths, func(a, b string) int {
		if c := cmp.Compare(strings.Count(a, "."), strings.Count(b, ".")); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
}
