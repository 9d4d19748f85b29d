// Package id generates short opaque identifiers for requests and daemon runs.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// RequestPrefix prefixes ids assigned to inbound HTTP requests.
const RequestPrefix = "req"

// requestAlphabet avoids '-' and '_' so ids survive double-click selection in logs.
const requestAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

const requestLength = 12

// Generate creates a prefixed unique ID using NanoID.
// Format: prefix-nanoid (e.g., "run-V1StGXR8_Z5jdHi6B-myT").
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// MustGenerate is like Generate but panics if ID generation fails.
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}

// NewRequestID returns a compact alphanumeric id for correlating a request's log lines.
func NewRequestID() (string, error) {
	s, err := gonanoid.Generate(requestAlphabet, requestLength)
	if err != nil {
		return "", fmt.Errorf("generate request id: %w", err)
	}
	return RequestPrefix + "-" + s, nil
}
