// Package id generates record and comment identifiers.
package id

import (
	"fmt"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// ShortIDLength is the number of leading UUID characters exposed as the
// visible record ID. Collisions are possible and are caught by the store's
// uniqueness constraint.
const ShortIDLength = 6

// NewRecordID generates a full tracking UUID and its derived short ID.
// The short ID is a fixed-length prefix of the UUID and is what clients see.
func NewRecordID() (short, full string) {
	full = uuid.NewString()
	return full[:ShortIDLength], full
}

// Generate creates a prefixed unique ID using NanoID
// Format: prefix-nanoid (e.g., "cmt-V1StGXR8_Z5jdHi6B-myT")
//
// NanoIDs are URL-friendly, compact (21 characters vs UUID's 36),
// and use a larger alphabet for better entropy per character.
//
// Returns an error if the system has insufficient entropy for secure random generation.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// MustGenerate is like Generate but panics if ID generation fails.
// Use this only when you're certain the system entropy is available,
// or when failure should crash the program (e.g., during initialization).
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}
