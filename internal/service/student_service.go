package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/internal/policy"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

type studentRepository interface {
	FindByID(ctx context.Context, id string) (*models.StudentDetail, error)
	List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, error)
	ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error)
	CountByClassroom(ctx context.Context, classroomID string) (int, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	SetClassroom(ctx context.Context, id string, classroomID *string) error
	Transfer(ctx context.Context, id, schoolID string, classroomID *string) error
	Deactivate(ctx context.Context, id string) error
}

type studentSchoolRepository interface {
	FindByID(ctx context.Context, id string) (*models.School, error)
}

type studentClassroomRepository interface {
	FindByID(ctx context.Context, id string) (*models.ClassroomDetail, error)
}

const dateOfBirthLayout = "2006-01-02"

// CreateStudentRequest holds payload for creating students.
type CreateStudentRequest struct {
	FirstName   string `json:"firstName" validate:"required,min=1,max=50"`
	LastName    string `json:"lastName" validate:"required,min=1,max=50"`
	Email       string `json:"email" validate:"required,email"`
	DateOfBirth string `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	SchoolID    string `json:"schoolId"`
	ClassroomID string `json:"classroomId"`
}

// UpdateStudentRequest holds a partial update; nil fields are left alone.
type UpdateStudentRequest struct {
	StudentID   string  `json:"studentId"`
	FirstName   *string `json:"firstName" validate:"omitempty,min=1,max=50"`
	LastName    *string `json:"lastName" validate:"omitempty,min=1,max=50"`
	Email       *string `json:"email" validate:"omitempty,email"`
	DateOfBirth *string `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
}

// StudentService handles student management, enrollment and transfer. The
// capacity and same-school invariants are re-checked on every mutation that
// touches an enrollment, not only at creation.
type StudentService struct {
	repo       studentRepository
	schools    studentSchoolRepository
	classrooms studentClassroomRepository
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, schools studentSchoolRepository, classrooms studentClassroomRepository, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, schools: schools, classrooms: classrooms, validator: validate, logger: logger}
}

// Create registers a student in the policy-resolved school, optionally
// enrolling them in a classroom of that school with free capacity.
func (s *StudentService) Create(ctx context.Context, actor policy.Actor, req CreateStudentRequest) (*models.StudentDetail, error) {
	targetSchoolID, ok := policy.ResolveSchoolScope(actor, req.SchoolID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrAccessDenied, "Unauthorized to create students")
	}
	if targetSchoolID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "School ID is required")
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err)
	}

	if _, err := s.schools.FindByID(ctx, targetSchoolID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "School not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load school")
	}

	var classroomID *string
	if req.ClassroomID != "" {
		if err := s.checkClassroom(ctx, req.ClassroomID, targetSchoolID,
			"Classroom does not belong to the specified school", "Classroom is at full capacity"); err != nil {
			return nil, err
		}
		id := req.ClassroomID
		classroomID = &id
	}

	email := strings.ToLower(req.Email)
	exists, err := s.repo.ExistsByEmail(ctx, email, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check student email")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "Student with this email already exists")
	}

	student := &models.Student{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       email,
		DateOfBirth: parseDateOfBirth(req.DateOfBirth),
		SchoolID:    targetSchoolID,
		ClassroomID: classroomID,
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}

	s.logger.Info("student created", zap.String("student_id", student.ID), zap.String("school_id", targetSchoolID))

	return s.reload(ctx, student.ID)
}

// Get returns a single active student with school and classroom names.
func (s *StudentService) Get(ctx context.Context, actor policy.Actor, studentID string) (*models.StudentDetail, error) {
	if studentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Student ID is required")
	}

	student, err := s.findStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if !policy.CanAccess(actor, student.SchoolID) {
		return nil, appErrors.Clone(appErrors.ErrAccessDenied, "Access denied to this student")
	}

	return student, nil
}

// List returns active students within the actor's scope, optionally filtered
// by classroom.
func (s *StudentService) List(ctx context.Context, actor policy.Actor, schoolID, classroomID string) ([]models.StudentDetail, error) {
	scope, ok := policy.ResolveSchoolScope(actor, schoolID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrAccessDenied, "Access denied")
	}

	students, err := s.repo.List(ctx, models.StudentFilter{SchoolID: scope, ClassroomID: classroomID})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	return students, nil
}

// Update applies a partial update to a student's own fields. An email change
// is re-checked for global uniqueness.
func (s *StudentService) Update(ctx context.Context, actor policy.Actor, req UpdateStudentRequest) (*models.StudentDetail, error) {
	if req.StudentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Student ID is required")
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err)
	}

	detail, err := s.findStudent(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}

	if !policy.CanAccess(actor, detail.SchoolID) {
		return nil, appErrors.Clone(appErrors.ErrAccessDenied, "Access denied to update this student")
	}

	student := detail.Student

	if req.Email != nil {
		email := strings.ToLower(*req.Email)
		if email != student.Email {
			exists, err := s.repo.ExistsByEmail(ctx, email, student.ID)
			if err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check student email")
			}
			if exists {
				return nil, appErrors.Clone(appErrors.ErrConflict, "Another student with this email already exists")
			}
			student.Email = email
		}
	}

	if req.FirstName != nil {
		student.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		student.LastName = *req.LastName
	}
	if req.DateOfBirth != nil {
		student.DateOfBirth = parseDateOfBirth(*req.DateOfBirth)
	}

	if err := s.repo.Update(ctx, &student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}

	return s.reload(ctx, student.ID)
}

// Delete soft-deletes a student.
func (s *StudentService) Delete(ctx context.Context, actor policy.Actor, studentID string) error {
	if studentID == "" {
		return appErrors.Clone(appErrors.ErrValidation, "Student ID is required")
	}

	student, err := s.findStudent(ctx, studentID)
	if err != nil {
		return err
	}

	if !policy.CanAccess(actor, student.SchoolID) {
		return appErrors.Clone(appErrors.ErrAccessDenied, "Access denied to delete this student")
	}

	if err := s.repo.Deactivate(ctx, student.ID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete student")
	}

	s.logger.Info("student deleted", zap.String("student_id", student.ID))

	return nil
}

// Enroll places a student in a classroom of their own school, re-validating
// the tenant match and capacity at enrollment time.
func (s *StudentService) Enroll(ctx context.Context, actor policy.Actor, studentID, classroomID string) (*models.StudentDetail, error) {
	if studentID == "" || classroomID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Student ID and Classroom ID are required")
	}

	student, err := s.findStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if !policy.CanAccess(actor, student.SchoolID) {
		return nil, appErrors.Clone(appErrors.ErrAccessDenied, "Access denied to enroll this student")
	}

	if err := s.checkClassroom(ctx, classroomID, student.SchoolID,
		"Classroom does not belong to the student's school", "Classroom is at full capacity"); err != nil {
		return nil, err
	}

	if err := s.repo.SetClassroom(ctx, student.ID, &classroomID); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enroll student")
	}

	s.logger.Info("student enrolled", zap.String("student_id", student.ID), zap.String("classroom_id", classroomID))

	return s.reload(ctx, student.ID)
}

// Transfer moves a student across schools, superadmin only. Without a target
// classroom the enrollment is cleared.
func (s *StudentService) Transfer(ctx context.Context, actor policy.Actor, studentID, targetSchoolID, targetClassroomID string) (*models.StudentDetail, error) {
	if !actor.IsSuperadmin() {
		return nil, appErrors.Clone(appErrors.ErrAccessDenied, "Only superadmins can transfer students between schools")
	}

	if studentID == "" || targetSchoolID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Student ID and Target School ID are required")
	}

	student, err := s.findStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if _, err := s.schools.FindByID(ctx, targetSchoolID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Target school not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load school")
	}

	var classroomID *string
	if targetClassroomID != "" {
		classroom, err := s.classrooms.FindByID(ctx, targetClassroomID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "Target classroom not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load classroom")
		}
		if classroom.SchoolID != targetSchoolID {
			return nil, appErrors.Clone(appErrors.ErrAccessDenied, "Target classroom does not belong to the target school")
		}
		enrolled, err := s.repo.CountByClassroom(ctx, classroom.ID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count enrollment")
		}
		if enrolled >= classroom.Capacity {
			return nil, appErrors.Clone(appErrors.ErrConflict, "Target classroom is at full capacity")
		}
		classroomID = &targetClassroomID
	}

	if err := s.repo.Transfer(ctx, student.ID, targetSchoolID, classroomID); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to transfer student")
	}

	s.logger.Info("student transferred", zap.String("student_id", student.ID), zap.String("school_id", targetSchoolID))

	return s.reload(ctx, student.ID)
}

func (s *StudentService) findStudent(ctx context.Context, id string) (*models.StudentDetail, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return student, nil
}

// checkClassroom verifies the classroom is active, belongs to the school and
// still has room for one more active student.
func (s *StudentService) checkClassroom(ctx context.Context, classroomID, schoolID, mismatchMsg, fullMsg string) error {
	classroom, err := s.classrooms.FindByID(ctx, classroomID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "Classroom not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load classroom")
	}
	if classroom.SchoolID != schoolID {
		return appErrors.Clone(appErrors.ErrAccessDenied, mismatchMsg)
	}

	enrolled, err := s.repo.CountByClassroom(ctx, classroomID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count enrollment")
	}
	if enrolled >= classroom.Capacity {
		return appErrors.Clone(appErrors.ErrConflict, fullMsg)
	}
	return nil
}

func (s *StudentService) reload(ctx context.Context, id string) (*models.StudentDetail, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reload student")
	}
	return student, nil
}

func parseDateOfBirth(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	// Format already validated by the datetime tag.
	t, err := time.Parse(dateOfBirthLayout, raw)
	if err != nil {
		return nil
	}
	return &t
}
