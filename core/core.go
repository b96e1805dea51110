package core

import "github.com/google/uuid"

// NewID generates a unique identifier used to correlate a request's
// envelope with its trace events.
func NewID() string { return uuid.NewString() }
