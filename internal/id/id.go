// Package id generates identifiers for records created by the fixture backend
// and correlation ids for outbound requests.
package id

import (
	"fmt"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes for the records the data access layer can create.
const (
	PrefixBook   = "book"
	PrefixUser   = "user"
	PrefixLoan   = "loan"
	PrefixReview = "review"
	PrefixToken  = "token"
)

// Generate creates a prefixed unique ID using NanoID.
// Format: prefix-nanoid (e.g., "loan-V1StGXR8_Z5jdHi6B-myT").
//
// Returns an error if the system has insufficient entropy for secure random generation.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// RequestID returns a random UUID used to correlate one outbound call in logs.
func RequestID() string {
	return uuid.NewString()
}
