package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"PetitionRouter/internal/domain"
	"PetitionRouter/internal/ports"
)

// Escalator flags petitions that sat in the submitted state beyond the
// configured age, nudging the submitter and the alert channel.
type Escalator struct {
	petitions     ports.PetitionRepository
	notifications ports.NotificationRepository
	alerts        ports.AlertSink
	maxAge        time.Duration
	logger        *slog.Logger
}

// NewEscalator builds the sweep component.
func NewEscalator(petitions ports.PetitionRepository, notifications ports.NotificationRepository, alerts ports.AlertSink, maxAge time.Duration, logger *slog.Logger) *Escalator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Escalator{
		petitions:     petitions,
		notifications: notifications,
		alerts:        alerts,
		maxAge:        maxAge,
		logger:        logger,
	}
}

// Sweep escalates every petition still submitted before now-maxAge.
func (e *Escalator) Sweep(ctx context.Context, now time.Time) error {
	if e.petitions == nil {
		return nil
	}

	cutoff := now.UTC().Add(-e.maxAge)
	stale, err := e.petitions.ListStale(ctx, domain.StatusSubmitted, cutoff)
	if err != nil {
		return fmt.Errorf("list stale petitions: %w", err)
	}

	for _, petition := range stale {
		e.logger.Info("escalating stale petition",
			"petition", petition.PublicID, "age", now.Sub(petition.CreatedAt).String())

		if e.notifications != nil && petition.SubmitterID != "" {
			notification := domain.Notification{
				SubmitterID: petition.SubmitterID,
				PetitionID:  petition.ID,
				Message:     fmt.Sprintf("Your petition '%s' is still awaiting review and has been escalated.", petition.Title),
				CreatedAt:   now.UTC(),
			}
			if err := e.notifications.Create(ctx, &notification); err != nil {
				e.logger.Warn("create escalation notification", "petition", petition.PublicID, "error", err)
			}
		}

		if e.alerts != nil {
			alert := domain.Alert{
				PetitionID: petition.PublicID,
				Title:      petition.Title,
				Category:   petition.Category,
				Priority:   petition.Priority,
				Urgency:    petition.Urgency,
				Reason:     fmt.Sprintf("awaiting review since %s", petition.CreatedAt.Format(time.RFC3339)),
			}
			if err := e.alerts.PublishAlert(ctx, alert); err != nil {
				e.logger.Warn("publish escalation alert", "petition", petition.PublicID, "error", err)
			}
		}
	}

	return nil
}

// Sweeper wires the interval driver with the escalation sweep.
type Sweeper struct {
	driver    ports.Scheduler
	escalator *Escalator
}

// NewSweeper returns a helper to start/stop the recurring sweep.
func NewSweeper(driver ports.Scheduler, escalator *Escalator) *Sweeper {
	return &Sweeper{driver: driver, escalator: escalator}
}

// Start registers the sweep with the provided scheduler.
func (s *Sweeper) Start(ctx context.Context) error {
	if s.driver == nil || s.escalator == nil {
		return nil
	}

	job := func(trigger time.Time) {
		if err := s.escalator.Sweep(ctx, trigger); err != nil {
			s.escalator.logger.Warn("escalation sweep", "error", err)
		}
	}

	return s.driver.Start(ctx, job)
}

// Stop gracefully tears down the underlying scheduler.
func (s *Sweeper) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}

	return s.driver.Stop(ctx)
}
