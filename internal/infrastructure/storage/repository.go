package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"PetitionRouter/internal/domain"
	"PetitionRouter/internal/ports"
)

// base carries the shared sql.DB handle and squirrel builder; driver
// differences (placeholders, RETURNING support) live here.
type base struct {
	db        *sql.DB
	sb        sq.StatementBuilderType
	returning bool
}

// Store bundles the per-aggregate repositories over one database.
type Store struct {
	Petitions     *PetitionRepository
	Departments   *DepartmentRepository
	Notifications *NotificationRepository
}

var _ ports.PetitionRepository = (*PetitionRepository)(nil)
var _ ports.DepartmentRepository = (*DepartmentRepository)(nil)
var _ ports.NotificationRepository = (*NotificationRepository)(nil)

// PetitionRepository persists petitions and their status history.
type PetitionRepository struct{ base }

// DepartmentRepository persists the department roster.
type DepartmentRepository struct{ base }

// NotificationRepository persists in-app notifications.
type NotificationRepository struct{ base }

// NewStore wires a sql.DB; driver selects the placeholder format.
func NewStore(db *sql.DB, driver string) *Store {
	var placeholder sq.PlaceholderFormat = sq.Question
	returning := false
	if driver == "postgres" {
		placeholder = sq.Dollar
		returning = true
	}
	b := base{
		db:        db,
		sb:        sq.StatementBuilder.PlaceholderFormat(placeholder),
		returning: returning,
	}
	return &Store{
		Petitions:     &PetitionRepository{base: b},
		Departments:   &DepartmentRepository{base: b},
		Notifications: &NotificationRepository{base: b},
	}
}

// insert runs the builder and returns the generated row id, via RETURNING on
// postgres and LastInsertId on sqlite.
func (r *base) insert(ctx context.Context, builder sq.InsertBuilder) (int64, error) {
	if r.returning {
		query, args, err := builder.Suffix("RETURNING id").ToSql()
		if err != nil {
			return 0, fmt.Errorf("build insert: %w", err)
		}
		var id int64
		if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
			return 0, fmt.Errorf("insert returning: %w", err)
		}
		return id, nil
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert: %w", err)
	}
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("insert: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// Save stores a new petition and fills in its generated id.
func (r *PetitionRepository) Save(ctx context.Context, petition *domain.Petition) error {
	builder := r.sb.Insert("petitions").
		Columns("public_id", "submitter_id", "title", "description", "category",
			"department_id", "priority", "sentiment", "urgency", "status",
			"resolution", "created_at", "updated_at", "resolved_at").
		Values(petition.PublicID, petition.SubmitterID, petition.Title,
			petition.Description, petition.Category, petition.DepartmentID,
			string(petition.Priority), petition.Sentiment, string(petition.Urgency),
			string(petition.Status), petition.Resolution, petition.CreatedAt,
			petition.UpdatedAt, petition.ResolvedAt)

	id, err := r.insert(ctx, builder)
	if err != nil {
		return fmt.Errorf("save petition: %w", err)
	}
	petition.ID = id
	return nil
}

var petitionColumns = []string{
	"id", "public_id", "submitter_id", "title", "description", "category",
	"department_id", "priority", "sentiment", "urgency", "status",
	"resolution", "created_at", "updated_at", "resolved_at",
}

func scanPetition(row sq.RowScanner) (domain.Petition, error) {
	var p domain.Petition
	err := row.Scan(&p.ID, &p.PublicID, &p.SubmitterID, &p.Title, &p.Description,
		&p.Category, &p.DepartmentID, &p.Priority, &p.Sentiment, &p.Urgency,
		&p.Status, &p.Resolution, &p.CreatedAt, &p.UpdatedAt, &p.ResolvedAt)
	return p, err
}

// GetByPublicID loads one petition by its external identifier.
func (r *PetitionRepository) GetByPublicID(ctx context.Context, publicID string) (domain.Petition, error) {
	query, args, err := r.sb.Select(petitionColumns...).
		From("petitions").
		Where(sq.Eq{"public_id": publicID}).
		ToSql()
	if err != nil {
		return domain.Petition{}, fmt.Errorf("build query: %w", err)
	}

	petition, err := scanPetition(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Petition{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Petition{}, fmt.Errorf("query petition: %w", err)
	}
	return petition, nil
}

// List returns petitions matching the filter, newest first.
func (r *PetitionRepository) List(ctx context.Context, filter ports.PetitionFilter) ([]domain.Petition, error) {
	builder := r.sb.Select(petitionColumns...).
		From("petitions").
		OrderBy("created_at DESC", "id DESC")

	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status": string(filter.Status)})
	}
	if filter.DepartmentID != 0 {
		builder = builder.Where(sq.Eq{"department_id": filter.DepartmentID})
	}
	if filter.Priority != "" {
		builder = builder.Where(sq.Eq{"priority": string(filter.Priority)})
	}
	if filter.SubmitterID != "" {
		builder = builder.Where(sq.Eq{"submitter_id": filter.SubmitterID})
	}

	return r.queryPetitions(ctx, builder)
}

// UpdateStatus transitions one petition.
func (r *PetitionRepository) UpdateStatus(ctx context.Context, id int64, status domain.Status, resolution string, resolvedAt *time.Time) error {
	builder := r.sb.Update("petitions").
		Set("status", string(status)).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id})
	if resolution != "" {
		builder = builder.Set("resolution", resolution)
	}
	if resolvedAt != nil {
		builder = builder.Set("resolved_at", *resolvedAt)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update petition %d: %w", id, err)
	}
	return nil
}

// ListStale returns petitions stuck in status since before olderThan.
func (r *PetitionRepository) ListStale(ctx context.Context, status domain.Status, olderThan time.Time) ([]domain.Petition, error) {
	builder := r.sb.Select(petitionColumns...).
		From("petitions").
		Where(sq.Eq{"status": string(status)}).
		Where(sq.Lt{"created_at": olderThan}).
		OrderBy("created_at ASC")

	return r.queryPetitions(ctx, builder)
}

func (r *PetitionRepository) queryPetitions(ctx context.Context, builder sq.SelectBuilder) ([]domain.Petition, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query petitions: %w", err)
	}
	defer rows.Close()

	var petitions []domain.Petition
	for rows.Next() {
		petition, err := scanPetition(rows)
		if err != nil {
			return nil, fmt.Errorf("scan petition: %w", err)
		}
		petitions = append(petitions, petition)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return petitions, nil
}

// AppendStatusChange records a history row.
func (r *PetitionRepository) AppendStatusChange(ctx context.Context, change domain.StatusChange) error {
	builder := r.sb.Insert("petition_status").
		Columns("petition_id", "status", "comment", "updated_by", "created_at").
		Values(change.PetitionID, string(change.Status), change.Comment, change.UpdatedBy, change.Timestamp)

	if _, err := r.insert(ctx, builder); err != nil {
		return fmt.Errorf("append status change: %w", err)
	}
	return nil
}

// History returns the status trail for a petition, oldest first.
func (r *PetitionRepository) History(ctx context.Context, petitionID int64) ([]domain.StatusChange, error) {
	query, args, err := r.sb.Select("id", "petition_id", "status", "comment", "updated_by", "created_at").
		From("petition_status").
		Where(sq.Eq{"petition_id": petitionID}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var changes []domain.StatusChange
	for rows.Next() {
		var change domain.StatusChange
		if err := rows.Scan(&change.ID, &change.PetitionID, &change.Status,
			&change.Comment, &change.UpdatedBy, &change.Timestamp); err != nil {
			return nil, fmt.Errorf("scan status change: %w", err)
		}
		changes = append(changes, change)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return changes, nil
}
