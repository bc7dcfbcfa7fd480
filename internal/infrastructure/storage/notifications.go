package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"PetitionRouter/internal/domain"
)

// Create stores a new notification and fills in its generated id.
func (r *NotificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	builder := r.sb.Insert("notifications").
		Columns("submitter_id", "petition_id", "message", "read_status", "created_at").
		Values(notification.SubmitterID, notification.PetitionID,
			notification.Message, notification.Read, notification.CreatedAt)

	id, err := r.insert(ctx, builder)
	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	notification.ID = id
	return nil
}

// ListBySubmitter returns a submitter's notifications, newest first.
func (r *NotificationRepository) ListBySubmitter(ctx context.Context, submitterID string, unreadOnly bool) ([]domain.Notification, error) {
	builder := r.sb.Select("id", "submitter_id", "petition_id", "message", "read_status", "created_at").
		From("notifications").
		Where(sq.Eq{"submitter_id": submitterID}).
		OrderBy("created_at DESC", "id DESC")
	if unreadOnly {
		builder = builder.Where(sq.Eq{"read_status": false})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var notification domain.Notification
		if err := rows.Scan(&notification.ID, &notification.SubmitterID,
			&notification.PetitionID, &notification.Message,
			&notification.Read, &notification.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, notification)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return notifications, nil
}

// MarkRead flags one notification as read.
func (r *NotificationRepository) MarkRead(ctx context.Context, id int64) error {
	query, args, err := r.sb.Update("notifications").
		Set("read_status", true).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("mark notification %d read: %w", id, err)
	}
	return nil
}

// MarkAllRead flags every unread notification of a submitter as read.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, submitterID string) error {
	query, args, err := r.sb.Update("notifications").
		Set("read_status", true).
		Where(sq.Eq{"submitter_id": submitterID, "read_status": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("mark notifications read: %w", err)
	}
	return nil
}
