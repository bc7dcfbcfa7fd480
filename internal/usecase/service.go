package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"PetitionRouter/internal/analysis"
	"PetitionRouter/internal/domain"
	"PetitionRouter/internal/intake"
	"PetitionRouter/internal/ports"
)

// ErrInvalidInput is returned when a submission is missing its title or
// description. Empty-but-present text never reaches this path: sanitization
// collapses it and the check below catches the blank result.
var ErrInvalidInput = errors.New("title and description are required")

// ServiceDeps wires all driven adapters into the petition service.
type ServiceDeps struct {
	Analyzer      ports.Analyzer
	Petitions     ports.PetitionRepository
	Departments   ports.DepartmentRepository
	Notifications ports.NotificationRepository
	Alerts        ports.AlertSink
	Logger        *slog.Logger
}

// Service implements the petition submission and tracking workflows.
type Service struct {
	analyzer      ports.Analyzer
	petitions     ports.PetitionRepository
	departments   ports.DepartmentRepository
	notifications ports.NotificationRepository
	alerts        ports.AlertSink
	logger        *slog.Logger
	now           func() time.Time
}

// NewService constructs the workflow component.
func NewService(deps ServiceDeps) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		analyzer:      deps.Analyzer,
		petitions:     deps.Petitions,
		departments:   deps.Departments,
		notifications: deps.Notifications,
		alerts:        deps.Alerts,
		logger:        logger,
		now:           time.Now,
	}
}

// SubmitRequest carries a new grievance from a citizen.
type SubmitRequest struct {
	SubmitterID string
	Title       string
	Description string
}

// SubmitResult pairs the persisted petition with its analysis bundle.
type SubmitResult struct {
	Petition domain.Petition
	Analysis analysis.Bundle
}

// Submit sanitizes the input, runs the analysis pipeline, routes the
// petition to its department, persists it and notifies the submitter.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (SubmitResult, error) {
	title := intake.PlainText(req.Title)
	description := intake.PlainText(req.Description)
	if title == "" || description == "" {
		return SubmitResult{}, ErrInvalidInput
	}

	bundle := s.analyzer.Analyze(title, description)

	var departmentID int64
	department, err := s.departments.GetByName(ctx, bundle.Classification.Category.String())
	switch {
	case err == nil:
		departmentID = department.ID
	case errors.Is(err, domain.ErrNotFound):
		s.logger.Warn("no department for category", "category", bundle.Classification.Category.String())
	default:
		return SubmitResult{}, fmt.Errorf("resolve department: %w", err)
	}

	now := s.now().UTC()
	petition := domain.Petition{
		PublicID:     s.newPublicID(now),
		SubmitterID:  req.SubmitterID,
		Title:        title,
		Description:  description,
		Category:     bundle.Classification.Category.String(),
		DepartmentID: departmentID,
		Priority:     domain.Priority(bundle.Priority.Level),
		Sentiment:    bundle.Priority.Sentiment.Compound,
		Urgency:      domain.UrgencyLevel(bundle.Priority.Urgency.Level),
		Status:       domain.StatusSubmitted,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.petitions.Save(ctx, &petition); err != nil {
		return SubmitResult{}, fmt.Errorf("save petition: %w", err)
	}

	change := domain.StatusChange{
		PetitionID: petition.ID,
		Status:     domain.StatusSubmitted,
		Comment:    "Petition submitted and routed automatically",
		UpdatedBy:  req.SubmitterID,
		Timestamp:  now,
	}
	if err := s.petitions.AppendStatusChange(ctx, change); err != nil {
		return SubmitResult{}, fmt.Errorf("record status: %w", err)
	}

	s.notify(ctx, petition, fmt.Sprintf(
		"Your petition '%s' has been submitted. Petition ID: %s", petition.Title, petition.PublicID))

	if petition.Priority == domain.PriorityHigh {
		s.publishAlert(ctx, petition, bundle.Summary, "high priority at submission")
	}

	return SubmitResult{Petition: petition, Analysis: bundle}, nil
}

// Analyze runs the pipeline without persisting anything, for previews.
func (s *Service) Analyze(title, description string) analysis.Bundle {
	return s.analyzer.Analyze(intake.PlainText(title), intake.PlainText(description))
}

// UpdateStatus transitions a petition, records the change and notifies the
// submitter.
func (s *Service) UpdateStatus(ctx context.Context, publicID string, status domain.Status, comment, updatedBy string) (domain.Petition, error) {
	petition, err := s.petitions.GetByPublicID(ctx, publicID)
	if err != nil {
		return domain.Petition{}, fmt.Errorf("load petition %s: %w", publicID, err)
	}

	now := s.now().UTC()
	var resolvedAt *time.Time
	var resolution string
	if status == domain.StatusResolved {
		resolvedAt = &now
		resolution = comment
	}

	if err := s.petitions.UpdateStatus(ctx, petition.ID, status, resolution, resolvedAt); err != nil {
		return domain.Petition{}, fmt.Errorf("update status: %w", err)
	}

	change := domain.StatusChange{
		PetitionID: petition.ID,
		Status:     status,
		Comment:    comment,
		UpdatedBy:  updatedBy,
		Timestamp:  now,
	}
	if err := s.petitions.AppendStatusChange(ctx, change); err != nil {
		return domain.Petition{}, fmt.Errorf("record status: %w", err)
	}

	message := fmt.Sprintf("Your petition status has been updated to: %s", status)
	if comment != "" {
		message += ". Comment: " + comment
	}
	s.notify(ctx, petition, message)

	petition.Status = status
	petition.Resolution = resolution
	petition.UpdatedAt = now
	petition.ResolvedAt = resolvedAt
	return petition, nil
}

// Get returns a petition with its status history.
func (s *Service) Get(ctx context.Context, publicID string) (domain.Petition, []domain.StatusChange, error) {
	petition, err := s.petitions.GetByPublicID(ctx, publicID)
	if err != nil {
		return domain.Petition{}, nil, fmt.Errorf("load petition %s: %w", publicID, err)
	}

	history, err := s.petitions.History(ctx, petition.ID)
	if err != nil {
		return domain.Petition{}, nil, fmt.Errorf("load history: %w", err)
	}

	return petition, history, nil
}

// List returns petitions matching the filter.
func (s *Service) List(ctx context.Context, filter ports.PetitionFilter) ([]domain.Petition, error) {
	return s.petitions.List(ctx, filter)
}

// Departments lists the handling departments.
func (s *Service) Departments(ctx context.Context) ([]domain.Department, error) {
	return s.departments.List(ctx)
}

// Notifications returns the submitter's in-app messages.
func (s *Service) Notifications(ctx context.Context, submitterID string, unreadOnly bool) ([]domain.Notification, error) {
	return s.notifications.ListBySubmitter(ctx, submitterID, unreadOnly)
}

// MarkNotificationRead flags one notification as read.
func (s *Service) MarkNotificationRead(ctx context.Context, id int64) error {
	return s.notifications.MarkRead(ctx, id)
}

// MarkAllNotificationsRead flags all of a submitter's notifications as read.
func (s *Service) MarkAllNotificationsRead(ctx context.Context, submitterID string) error {
	return s.notifications.MarkAllRead(ctx, submitterID)
}

func (s *Service) notify(ctx context.Context, petition domain.Petition, message string) {
	if s.notifications == nil || petition.SubmitterID == "" {
		return
	}

	notification := domain.Notification{
		SubmitterID: petition.SubmitterID,
		PetitionID:  petition.ID,
		Message:     message,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.notifications.Create(ctx, &notification); err != nil {
		s.logger.Warn("create notification", "petition", petition.PublicID, "error", err)
	}
}

func (s *Service) publishAlert(ctx context.Context, petition domain.Petition, summary, reason string) {
	if s.alerts == nil {
		return
	}

	alert := domain.Alert{
		PetitionID: petition.PublicID,
		Title:      petition.Title,
		Category:   petition.Category,
		Priority:   petition.Priority,
		Urgency:    petition.Urgency,
		Summary:    summary,
		Reason:     reason,
	}
	if err := s.alerts.PublishAlert(ctx, alert); err != nil {
		// Alert delivery must never fail the submission itself.
		s.logger.Warn("publish alert", "petition", petition.PublicID, "error", err)
	}
}

func (s *Service) newPublicID(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return "PET-" + now.Format("20060102150405") + "-" + suffix
}
