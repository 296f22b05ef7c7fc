// Package uuid issues roster record IDs behind an interface so tests
// can pin them to known values.
package uuid

import (
	"github.com/google/uuid"
)

// Generator issues unique record IDs
type Generator interface {
	New() string
}

// GoogleUUIDGenerator issues random v4 UUIDs
type GoogleUUIDGenerator struct{}

// New returns a fresh UUID string
func (g *GoogleUUIDGenerator) New() string {
	return uuid.New().String()
}

// NewGoogleUUIDGenerator creates the production generator
func NewGoogleUUIDGenerator() *GoogleUUIDGenerator {
	return &GoogleUUIDGenerator{}
}
