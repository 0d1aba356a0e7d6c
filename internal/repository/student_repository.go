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

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// FindByID fetches an active student with school and classroom names joined.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.StudentDetail, error) {
	const query = `SELECT st.id, st.first_name, st.last_name, st.email, st.date_of_birth,
        st.school_id, st.classroom_id, st.enrollment_date, st.active, st.created_at, st.updated_at,
        s.name AS school_name, c.name AS classroom_name
        FROM students st
        JOIN schools s ON s.id = st.school_id
        LEFT JOIN classrooms c ON c.id = st.classroom_id
        WHERE st.id = $1 AND st.active = true`
	var detail models.StudentDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find student by id: %w", err)
	}
	return &detail, nil
}

// List returns active students matching the filter.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, error) {
	query := `SELECT st.id, st.first_name, st.last_name, st.email, st.date_of_birth,
        st.school_id, st.classroom_id, st.enrollment_date, st.active, st.created_at, st.updated_at,
        s.name AS school_name, c.name AS classroom_name
        FROM students st
        JOIN schools s ON s.id = st.school_id
        LEFT JOIN classrooms c ON c.id = st.classroom_id
        WHERE st.active = true`
	args := []interface{}{}
	if filter.SchoolID != "" {
		query += fmt.Sprintf(" AND st.school_id = $%d", len(args)+1)
		args = append(args, filter.SchoolID)
	}
	if filter.ClassroomID != "" {
		query += fmt.Sprintf(" AND st.classroom_id = $%d", len(args)+1)
		args = append(args, filter.ClassroomID)
	}
	query += " ORDER BY st.last_name ASC, st.first_name ASC"

	students := []models.StudentDetail{}
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// ExistsByEmail checks for an active student with the email, optionally
// excluding an ID.
func (r *StudentRepository) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	query := "SELECT 1 FROM students WHERE email = $1 AND active = true"
	args := []interface{}{email}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check student email: %w", err)
	}
	return true, nil
}

// CountByClassroom returns the active enrollment of a classroom. The capacity
// invariant compares against this count.
func (r *StudentRepository) CountByClassroom(ctx context.Context, classroomID string) (int, error) {
	const query = `SELECT COUNT(*) FROM students WHERE classroom_id = $1 AND active = true`
	var count int
	if err := r.db.GetContext(ctx, &count, query, classroomID); err != nil {
		return 0, fmt.Errorf("count enrollment: %w", err)
	}
	return count, nil
}

// CountBySchool returns the number of active students in a school.
func (r *StudentRepository) CountBySchool(ctx context.Context, schoolID string) (int, error) {
	const query = `SELECT COUNT(*) FROM students WHERE school_id = $1 AND active = true`
	var count int
	if err := r.db.GetContext(ctx, &count, query, schoolID); err != nil {
		return 0, fmt.Errorf("count students: %w", err)
	}
	return count, nil
}

// Create inserts a new student record.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	student.CreatedAt = now
	student.UpdatedAt = now
	if student.EnrollmentDate.IsZero() {
		student.EnrollmentDate = now
	}
	student.Active = true
	const query = `INSERT INTO students (id, first_name, last_name, email, date_of_birth, school_id, classroom_id, enrollment_date, active, created_at, updated_at)
        VALUES (:id, :first_name, :last_name, :email, :date_of_birth, :school_id, :classroom_id, :enrollment_date, :active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// Update modifies an existing student's own fields.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	student.UpdatedAt = time.Now().UTC()
	const query = `UPDATE students SET first_name = :first_name, last_name = :last_name, email = :email,
        date_of_birth = :date_of_birth, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return nil
}

// SetClassroom records an enrollment change. A nil classroomID clears the
// enrollment.
func (r *StudentRepository) SetClassroom(ctx context.Context, id string, classroomID *string) error {
	const query = `UPDATE students SET classroom_id = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, classroomID, time.Now().UTC()); err != nil {
		return fmt.Errorf("set classroom: %w", err)
	}
	return nil
}

// Transfer moves a student to another school, replacing the enrollment.
func (r *StudentRepository) Transfer(ctx context.Context, id, schoolID string, classroomID *string) error {
	const query = `UPDATE students SET school_id = $2, classroom_id = $3, updated_at = $4 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, schoolID, classroomID, time.Now().UTC()); err != nil {
		return fmt.Errorf("transfer student: %w", err)
	}
	return nil
}

// Deactivate soft-deletes a student.
func (r *StudentRepository) Deactivate(ctx context.Context, id string) error {
	const query = `UPDATE students SET active = false, updated_at = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("deactivate student: %w", err)
	}
	return nil
}
