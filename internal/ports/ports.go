package ports

import (
	"context"
	"time"

	"PetitionRouter/internal/analysis"
	"PetitionRouter/internal/domain"
)

// Analyzer turns raw petition text into the routing decision bundle.
type Analyzer interface {
	Analyze(title, description string) analysis.Bundle
}

// PetitionFilter narrows petition listings.
type PetitionFilter struct {
	Status       domain.Status
	DepartmentID int64
	Priority     domain.Priority
	SubmitterID  string
}

// PetitionRepository persists petitions and their status history.
type PetitionRepository interface {
	Save(ctx context.Context, petition *domain.Petition) error
	GetByPublicID(ctx context.Context, publicID string) (domain.Petition, error)
	List(ctx context.Context, filter PetitionFilter) ([]domain.Petition, error)
	UpdateStatus(ctx context.Context, id int64, status domain.Status, resolution string, resolvedAt *time.Time) error
	ListStale(ctx context.Context, status domain.Status, olderThan time.Time) ([]domain.Petition, error)
	AppendStatusChange(ctx context.Context, change domain.StatusChange) error
	History(ctx context.Context, petitionID int64) ([]domain.StatusChange, error)
}

// DepartmentRepository resolves category labels to handling departments.
type DepartmentRepository interface {
	GetByName(ctx context.Context, name string) (domain.Department, error)
	List(ctx context.Context) ([]domain.Department, error)
	Seed(ctx context.Context, departments []domain.Department) error
}

// NotificationRepository stores in-app messages for submitters.
type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.Notification) error
	ListBySubmitter(ctx context.Context, submitterID string, unreadOnly bool) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context, submitterID string) error
}

// AlertSink pushes high-priority petition alerts to an outbound channel.
type AlertSink interface {
	PublishAlert(ctx context.Context, alert domain.Alert) error
}

// Scheduler controls when recurring jobs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
