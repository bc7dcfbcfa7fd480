package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"PetitionRouter/internal/domain"
)

// GetByName resolves a department by its exact name. Category labels are
// department names, so routing uses this lookup verbatim.
func (r *DepartmentRepository) GetByName(ctx context.Context, name string) (domain.Department, error) {
	query, args, err := r.sb.Select("id", "name", "description", "email", "created_at").
		From("departments").
		Where(sq.Eq{"name": name}).
		ToSql()
	if err != nil {
		return domain.Department{}, fmt.Errorf("build query: %w", err)
	}

	var department domain.Department
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&department.ID, &department.Name, &department.Description,
		&department.Email, &department.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Department{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Department{}, fmt.Errorf("query department: %w", err)
	}
	return department, nil
}

// List returns all departments ordered by name.
func (r *DepartmentRepository) List(ctx context.Context) ([]domain.Department, error) {
	query, args, err := r.sb.Select("id", "name", "description", "email", "created_at").
		From("departments").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query departments: %w", err)
	}
	defer rows.Close()

	var departments []domain.Department
	for rows.Next() {
		var department domain.Department
		if err := rows.Scan(&department.ID, &department.Name,
			&department.Description, &department.Email, &department.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan department: %w", err)
		}
		departments = append(departments, department)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return departments, nil
}

// Seed inserts departments that are not present yet; existing rows are left
// untouched.
func (r *DepartmentRepository) Seed(ctx context.Context, departments []domain.Department) error {
	for _, department := range departments {
		query, args, err := r.sb.Insert("departments").
			Columns("name", "description", "email", "created_at").
			Values(department.Name, department.Description, department.Email, department.CreatedAt).
			Suffix("ON CONFLICT (name) DO NOTHING").
			ToSql()
		if err != nil {
			return fmt.Errorf("build seed insert: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("seed department %s: %w", department.Name, err)
		}
	}
	return nil
}
