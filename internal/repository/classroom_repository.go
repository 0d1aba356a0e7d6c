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

// ClassroomRepository manages persistence for classrooms.
type ClassroomRepository struct {
	db *sqlx.DB
}

// NewClassroomRepository constructs a ClassroomRepository.
func NewClassroomRepository(db *sqlx.DB) *ClassroomRepository {
	return &ClassroomRepository{db: db}
}

// FindByID fetches an active classroom with its school name joined.
func (r *ClassroomRepository) FindByID(ctx context.Context, id string) (*models.ClassroomDetail, error) {
	const query = `SELECT c.id, c.name, c.school_id, c.capacity, c.resources, c.active, c.created_at, c.updated_at,
        s.name AS school_name
        FROM classrooms c
        JOIN schools s ON s.id = c.school_id
        WHERE c.id = $1 AND c.active = true`
	var detail models.ClassroomDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find classroom by id: %w", err)
	}
	return &detail, nil
}

// List returns active classrooms matching the filter, newest first.
func (r *ClassroomRepository) List(ctx context.Context, filter models.ClassroomFilter) ([]models.ClassroomDetail, error) {
	query := `SELECT c.id, c.name, c.school_id, c.capacity, c.resources, c.active, c.created_at, c.updated_at,
        s.name AS school_name
        FROM classrooms c
        JOIN schools s ON s.id = c.school_id
        WHERE c.active = true`
	args := []interface{}{}
	if filter.SchoolID != "" {
		query += fmt.Sprintf(" AND c.school_id = $%d", len(args)+1)
		args = append(args, filter.SchoolID)
	}
	query += " ORDER BY c.created_at DESC"

	classrooms := []models.ClassroomDetail{}
	if err := r.db.SelectContext(ctx, &classrooms, query, args...); err != nil {
		return nil, fmt.Errorf("list classrooms: %w", err)
	}
	return classrooms, nil
}

// ExistsByNameInSchool checks for an active classroom with the same name in a
// school, optionally excluding an ID.
func (r *ClassroomRepository) ExistsByNameInSchool(ctx context.Context, name, schoolID, excludeID string) (bool, error) {
	query := "SELECT 1 FROM classrooms WHERE name = $1 AND school_id = $2 AND active = true"
	args := []interface{}{name, schoolID}
	if excludeID != "" {
		query += " AND id <> $3"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check classroom uniqueness: %w", err)
	}
	return true, nil
}

// CountBySchool returns the number of active classrooms in a school.
func (r *ClassroomRepository) CountBySchool(ctx context.Context, schoolID string) (int, error) {
	const query = `SELECT COUNT(*) FROM classrooms WHERE school_id = $1 AND active = true`
	var count int
	if err := r.db.GetContext(ctx, &count, query, schoolID); err != nil {
		return 0, fmt.Errorf("count classrooms: %w", err)
	}
	return count, nil
}

// Create inserts a new classroom record.
func (r *ClassroomRepository) Create(ctx context.Context, classroom *models.Classroom) error {
	if classroom.ID == "" {
		classroom.ID = uuid.NewString()
	}
	if classroom.Resources == nil {
		classroom.Resources = []string{}
	}
	now := time.Now().UTC()
	classroom.CreatedAt = now
	classroom.UpdatedAt = now
	classroom.Active = true
	const query = `INSERT INTO classrooms (id, name, school_id, capacity, resources, active, created_at, updated_at)
        VALUES (:id, :name, :school_id, :capacity, :resources, :active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, classroom); err != nil {
		return fmt.Errorf("create classroom: %w", err)
	}
	return nil
}

// Update modifies an existing classroom.
func (r *ClassroomRepository) Update(ctx context.Context, classroom *models.Classroom) error {
	classroom.UpdatedAt = time.Now().UTC()
	const query = `UPDATE classrooms SET name = :name, capacity = :capacity, resources = :resources,
        updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, classroom); err != nil {
		return fmt.Errorf("update classroom: %w", err)
	}
	return nil
}

// Deactivate soft-deletes a classroom.
func (r *ClassroomRepository) Deactivate(ctx context.Context, id string) error {
	const query = `UPDATE classrooms SET active = false, updated_at = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("deactivate classroom: %w", err)
	}
	return nil
}
