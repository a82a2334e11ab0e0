// Package identifier produces the opaque unique string ids assigned to new
// entities at creation time. The store never generates ids itself.
package identifier

import "github.com/google/uuid"

// Generator produces unique opaque string identifiers.
type Generator interface {
	NewID() string
}

// UUIDGenerator generates random UUID identifiers.
type UUIDGenerator struct{}

// New returns the default generator.
func New() UUIDGenerator {
	return UUIDGenerator{}
}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}
