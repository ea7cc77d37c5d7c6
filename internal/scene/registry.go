package scene

import (
	"sync"

	dnderr "github.com/KirkDiggler/saves-helper/internal/errors"
)

// Registry holds the scenes of a session by id.
type Registry struct {
	mu     sync.RWMutex
	scenes map[string]*Scene
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{scenes: make(map[string]*Scene)}
}

// Add registers a scene
func (r *Registry) Add(s *Scene) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scenes[s.ID()] = s
}

// Scene returns the scene with id
func (r *Registry) Scene(id string) (*Scene, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.scenes[id]
	if !ok {
		return nil, dnderr.NotFoundf("scene %s not found", id)
	}
	return s, nil
}
