package utils

import "github.com/google/uuid"

// UUIDGenerator issues note identifiers. Version 7 UUIDs sort by creation
// time, which keeps notes.json diffs readable.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate falls back to a random v4 UUID if the v7 clock source fails.
func (g *UUIDGenerator) Generate() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}
