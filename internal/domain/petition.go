package domain

import "time"

// Status enumerates the lifecycle milestones of a petition.
type Status string

const (
	StatusSubmitted  Status = "submitted"
	StatusInReview   Status = "in_review"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusRejected   Status = "rejected"
)

// Priority is the triage level derived from sentiment and urgency.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// UrgencyLevel is the public urgency classification of a petition.
type UrgencyLevel string

const (
	UrgencyNormal   UrgencyLevel = "normal"
	UrgencyUrgent   UrgencyLevel = "urgent"
	UrgencyCritical UrgencyLevel = "critical"
)

// Petition is a citizen-submitted grievance with routing metadata.
type Petition struct {
	ID           int64
	PublicID     string
	SubmitterID  string
	Title        string
	Description  string
	Category     string
	DepartmentID int64
	Priority     Priority
	Sentiment    float64
	Urgency      UrgencyLevel
	Status       Status
	Resolution   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	ResolvedAt   *time.Time
}

// Department handles petitions of one category; names match category labels exactly.
type Department struct {
	ID          int64
	Name        string
	Description string
	Email       string
	CreatedAt   time.Time
}

// StatusChange records a single transition in a petition's history.
type StatusChange struct {
	ID         int64
	PetitionID int64
	Status     Status
	Comment    string
	UpdatedBy  string
	Timestamp  time.Time
}

// Notification is an in-app message addressed to a submitter.
type Notification struct {
	ID          int64
	SubmitterID string
	PetitionID  int64
	Message     string
	Read        bool
	CreatedAt   time.Time
}
