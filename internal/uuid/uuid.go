// Package uuid generates message identifiers behind an interface so tests can pin them.
package uuid

//go:generate mockgen -destination=mocks/mock_generator.go -package=mockuuid -source=uuid.go

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator is an interface for generating identifiers
type Generator interface {
	New() string
}

// GoogleUUIDGenerator implements Generator with Google's UUID package.
// Dashes are stripped so identifiers are safe inside dotted flag paths and custom ids.
type GoogleUUIDGenerator struct{}

// New generates a new identifier
func (g *GoogleUUIDGenerator) New() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// NewGoogleUUIDGenerator creates a new GoogleUUIDGenerator
func NewGoogleUUIDGenerator() *GoogleUUIDGenerator {
	return &GoogleUUIDGenerator{}
}

// SequentialGenerator hands out prefix-1, prefix-2, ... and is safe for concurrent use.
type SequentialGenerator struct {
	prefix string
	next   atomic.Uint64
}

// NewSequentialGenerator creates a deterministic generator
func NewSequentialGenerator(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// New returns the next identifier in sequence
func (g *SequentialGenerator) New() string {
	return fmt.Sprintf("%s%d", g.prefix, g.next.Add(1))
}
