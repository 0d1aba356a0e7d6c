package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-admin-api/internal/models"
)

// SchoolRepository manages persistence for schools. Soft-deleted rows are
// invisible to every method here; only Create and Update touch them.
type SchoolRepository struct {
	db *sqlx.DB
}

// NewSchoolRepository constructs a SchoolRepository.
func NewSchoolRepository(db *sqlx.DB) *SchoolRepository {
	return &SchoolRepository{db: db}
}

// FindByID fetches an active school by ID.
func (r *SchoolRepository) FindByID(ctx context.Context, id string) (*models.School, error) {
	const query = `SELECT id, name, address, phone, email, active, created_at, updated_at
        FROM schools WHERE id = $1 AND active = true LIMIT 1`
	var school models.School
	if err := r.db.GetContext(ctx, &school, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find school by id: %w", err)
	}
	return &school, nil
}

// List returns active schools, optionally restricted to a single ID.
func (r *SchoolRepository) List(ctx context.Context, schoolID string) ([]models.School, error) {
	query := `SELECT id, name, address, phone, email, active, created_at, updated_at
        FROM schools WHERE active = true`
	args := []interface{}{}
	if schoolID != "" {
		query += " AND id = $1"
		args = append(args, schoolID)
	}
	query += " ORDER BY name ASC"

	schools := []models.School{}
	if err := r.db.SelectContext(ctx, &schools, query, args...); err != nil {
		return nil, fmt.Errorf("list schools: %w", err)
	}
	return schools, nil
}

// ExistsByNameOrEmail checks for an active school using the name or email,
// optionally excluding an ID.
func (r *SchoolRepository) ExistsByNameOrEmail(ctx context.Context, name, email, excludeID string) (bool, error) {
	query := "SELECT 1 FROM schools WHERE (name = $1 OR email = $2) AND active = true"
	args := []interface{}{name, email}
	if excludeID != "" {
		query += " AND id <> $3"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check school uniqueness: %w", err)
	}
	return true, nil
}

// Create inserts a new school record.
func (r *SchoolRepository) Create(ctx context.Context, school *models.School) error {
	if school.ID == "" {
		school.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	school.CreatedAt = now
	school.UpdatedAt = now
	school.Active = true
	const query = `INSERT INTO schools (id, name, address, phone, email, active, created_at, updated_at)
        VALUES (:id, :name, :address, :phone, :email, :active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, school); err != nil {
		return fmt.Errorf("create school: %w", err)
	}
	return nil
}

// Update modifies an existing school.
func (r *SchoolRepository) Update(ctx context.Context, school *models.School) error {
	school.UpdatedAt = time.Now().UTC()
	const query = `UPDATE schools SET name = :name, address = :address, phone = :phone,
        email = :email, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, school); err != nil {
		return fmt.Errorf("update school: %w", err)
	}
	return nil
}

// Deactivate soft-deletes a school.
func (r *SchoolRepository) Deactivate(ctx context.Context, id string) error {
	const query = `UPDATE schools SET active = false, updated_at = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("deactivate school: %w", err)
	}
	return nil
}
