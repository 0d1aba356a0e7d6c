package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/internal/policy"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

type classroomRepository interface {
	FindByID(ctx context.Context, id string) (*models.ClassroomDetail, error)
	List(ctx context.Context, filter models.ClassroomFilter) ([]models.ClassroomDetail, error)
	ExistsByNameInSchool(ctx context.Context, name, schoolID, excludeID string) (bool, error)
	Create(ctx context.Context, classroom *models.Classroom) error
	Update(ctx context.Context, classroom *models.Classroom) error
	Deactivate(ctx context.Context, id string) error
}

type classroomSchoolRepository interface {
	FindByID(ctx context.Context, id string) (*models.School, error)
}

type classroomEnrollmentCounter interface {
	CountByClassroom(ctx context.Context, classroomID string) (int, error)
}

// CreateClassroomRequest holds payload for creating classrooms. SchoolID is
// honoured for superadmins only; school admins are scoped to their own school.
type CreateClassroomRequest struct {
	Name      string   `json:"name" validate:"required,min=1,max=100"`
	Capacity  int      `json:"capacity" validate:"omitempty,min=1,max=500"`
	Resources []string `json:"resources"`
	SchoolID  string   `json:"schoolId"`
}

// UpdateClassroomRequest holds a partial update; nil fields are left alone.
type UpdateClassroomRequest struct {
	ClassroomID string    `json:"classroomId"`
	Name        *string   `json:"name" validate:"omitempty,min=1,max=100"`
	Capacity    *int      `json:"capacity" validate:"omitempty,min=1,max=500"`
	Resources   *[]string `json:"resources"`
}

// ClassroomService handles classroom management for a tenant.
type ClassroomService struct {
	repo      classroomRepository
	schools   classroomSchoolRepository
	students  classroomEnrollmentCounter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassroomService constructs the classroom service.
func NewClassroomService(repo classroomRepository, schools classroomSchoolRepository, students classroomEnrollmentCounter, validate *validator.Validate, logger *zap.Logger) *ClassroomService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassroomService{repo: repo, schools: schools, students: students, validator: validate, logger: logger}
}

// Create adds a classroom to the policy-resolved school. The target school
// must be active and the name unique within it; capacity defaults to 30.
func (s *ClassroomService) Create(ctx context.Context, actor policy.Actor, req CreateClassroomRequest) (*models.Classroom, error) {
	targetSchoolID, ok := policy.ResolveSchoolScope(actor, req.SchoolID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrAccessDenied, "Unauthorized to create classrooms")
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

	exists, err := s.repo.ExistsByNameInSchool(ctx, req.Name, targetSchoolID, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check classroom uniqueness")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "Classroom with this name already exists in this school")
	}

	capacity := req.Capacity
	if capacity == 0 {
		capacity = models.DefaultClassroomCapacity
	}

	classroom := &models.Classroom{
		Name:      req.Name,
		SchoolID:  targetSchoolID,
		Capacity:  capacity,
		Resources: req.Resources,
	}
	if err := s.repo.Create(ctx, classroom); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create classroom")
	}

	s.logger.Info("classroom created", zap.String("classroom_id", classroom.ID), zap.String("school_id", targetSchoolID))

	return classroom, nil
}

// Get returns a single active classroom with its school name.
func (s *ClassroomService) Get(ctx context.Context, actor policy.Actor, classroomID string) (*models.ClassroomDetail, error) {
	if classroomID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Classroom ID is required")
	}

	classroom, err := s.repo.FindByID(ctx, classroomID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Classroom not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load classroom")
	}

	if !policy.CanAccess(actor, classroom.SchoolID) {
		return nil, appErrors.Clone(appErrors.ErrAccessDenied, "Access denied to this classroom")
	}

	return classroom, nil
}

// List returns active classrooms within the actor's scope. Superadmins may
// filter by school; school admins always see only their own.
func (s *ClassroomService) List(ctx context.Context, actor policy.Actor, schoolID string) ([]models.ClassroomDetail, error) {
	scope, ok := policy.ResolveSchoolScope(actor, schoolID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrAccessDenied, "Access denied")
	}

	classrooms, err := s.repo.List(ctx, models.ClassroomFilter{SchoolID: scope})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list classrooms")
	}
	return classrooms, nil
}

// Update applies a partial update. A rename is re-checked for uniqueness and
// capacity may not drop below the current active enrollment.
func (s *ClassroomService) Update(ctx context.Context, actor policy.Actor, req UpdateClassroomRequest) (*models.Classroom, error) {
	if req.ClassroomID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Classroom ID is required")
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err)
	}

	detail, err := s.repo.FindByID(ctx, req.ClassroomID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Classroom not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load classroom")
	}

	if !policy.CanAccess(actor, detail.SchoolID) {
		return nil, appErrors.Clone(appErrors.ErrAccessDenied, "Access denied to update this classroom")
	}

	classroom := detail.Classroom

	if req.Name != nil && *req.Name != classroom.Name {
		exists, err := s.repo.ExistsByNameInSchool(ctx, *req.Name, classroom.SchoolID, classroom.ID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check classroom uniqueness")
		}
		if exists {
			return nil, appErrors.Clone(appErrors.ErrConflict, "Classroom with this name already exists in this school")
		}
		classroom.Name = *req.Name
	}

	if req.Capacity != nil {
		enrolled, err := s.students.CountByClassroom(ctx, classroom.ID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count enrollment")
		}
		if *req.Capacity < enrolled {
			return nil, appErrors.Clone(appErrors.ErrConflict, "Capacity cannot be lower than current enrollment")
		}
		classroom.Capacity = *req.Capacity
	}

	if req.Resources != nil {
		classroom.Resources = *req.Resources
	}

	if err := s.repo.Update(ctx, &classroom); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update classroom")
	}

	return &classroom, nil
}

// Delete soft-deletes a classroom once no active students remain enrolled.
func (s *ClassroomService) Delete(ctx context.Context, actor policy.Actor, classroomID string) error {
	if classroomID == "" {
		return appErrors.Clone(appErrors.ErrValidation, "Classroom ID is required")
	}

	classroom, err := s.repo.FindByID(ctx, classroomID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "Classroom not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load classroom")
	}

	if !policy.CanAccess(actor, classroom.SchoolID) {
		return appErrors.Clone(appErrors.ErrAccessDenied, "Access denied to delete this classroom")
	}

	enrolled, err := s.students.CountByClassroom(ctx, classroom.ID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count enrollment")
	}
	if enrolled > 0 {
		return appErrors.Clone(appErrors.ErrDependencyGuard, "Cannot delete classroom with enrolled students. Transfer them first.")
	}

	if err := s.repo.Deactivate(ctx, classroom.ID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete classroom")
	}

	s.logger.Info("classroom deleted", zap.String("classroom_id", classroom.ID))

	return nil
}
