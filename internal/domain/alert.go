package domain

import "errors"

// ErrNotFound signals a missing record to callers across repositories.
var ErrNotFound = errors.New("record not found")

// Alert is an outbound notification about a petition needing attention.
type Alert struct {
	PetitionID string
	Title      string
	Category   string
	Priority   Priority
	Urgency    UrgencyLevel
	Summary    string
	Reason     string
}
