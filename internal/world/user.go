package world

import (
	"slices"
	"sync"
)

// Role is a user's permission level in the session.
type Role int

const (
	RolePlayer Role = iota + 1
	RoleTrusted
	RoleAssistant
	RoleGamemaster
)

// User is a connected participant.
type User struct {
	ID   string
	Name string
	Role Role
}

// IsGM reports whether the user holds the elevated role that may write any record
// and arbitrates relayed updates.
func (u *User) IsGM() bool {
	return u != nil && u.Role >= RoleAssistant
}

// Session is the local user's view: who they are and which tokens they currently target.
type Session struct {
	user *User

	mu      sync.RWMutex
	targets []string
}

// NewSession creates a session for the user with an empty target set
func NewSession(user *User) *Session {
	if user == nil {
		panic("user is required")
	}
	return &Session{user: user}
}

// User returns the local user
func (s *Session) User() *User {
	return s.user
}

// Targets returns a snapshot of the targeted token UUIDs in selection order
func (s *Session) Targets() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.targets)
}

// SetTargets replaces the target set, dropping duplicates but keeping first-seen order
func (s *Session) SetTargets(tokenUUIDs []string) {
	seen := make(map[string]struct{}, len(tokenUUIDs))
	targets := make([]string, 0, len(tokenUUIDs))
	for _, id := range tokenUUIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		targets = append(targets, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.targets = targets
}
