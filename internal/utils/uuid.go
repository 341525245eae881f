package utils

import "github.com/google/uuid"

// UUIDGenerator produces trace identifiers for incoming requests. Version 7
// UUIDs sort by creation time, which keeps log searches by trace id cheap.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a new UUIDv7 string, falling back to a random v4 when v7
// generation fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
