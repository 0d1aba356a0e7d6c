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

type schoolRepository interface {
	FindByID(ctx context.Context, id string) (*models.School, error)
	List(ctx context.Context, schoolID string) ([]models.School, error)
	ExistsByNameOrEmail(ctx context.Context, name, email, excludeID string) (bool, error)
	Create(ctx context.Context, school *models.School) error
	Update(ctx context.Context, school *models.School) error
	Deactivate(ctx context.Context, id string) error
}

type schoolClassroomCounter interface {
	CountBySchool(ctx context.Context, schoolID string) (int, error)
}

type schoolStudentCounter interface {
	CountBySchool(ctx context.Context, schoolID string) (int, error)
}

// CreateSchoolRequest holds payload for creating schools.
type CreateSchoolRequest struct {
	Name    string `json:"name" validate:"required,min=3,max=100"`
	Address string `json:"address" validate:"required,max=500"`
	Phone   string `json:"phone" validate:"omitempty,max=20"`
	Email   string `json:"email" validate:"required,email"`
}

// UpdateSchoolRequest holds a partial update; nil fields are left untouched.
type UpdateSchoolRequest struct {
	SchoolID string  `json:"schoolId"`
	Name     *string `json:"name" validate:"omitempty,min=3,max=100"`
	Address  *string `json:"address" validate:"omitempty,max=500"`
	Phone    *string `json:"phone" validate:"omitempty,max=20"`
	Email    *string `json:"email" validate:"omitempty,email"`
}

// SchoolService handles school management. Every school-level mutation is
// restricted to superadmins; reads are tenant-scoped through the policy.
type SchoolService struct {
	repo       schoolRepository
	classrooms schoolClassroomCounter
	students   schoolStudentCounter
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewSchoolService constructs the school service.
func NewSchoolService(repo schoolRepository, classrooms schoolClassroomCounter, students schoolStudentCounter, validate *validator.Validate, logger *zap.Logger) *SchoolService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SchoolService{repo: repo, classrooms: classrooms, students: students, validator: validate, logger: logger}
}

// Create registers a new school. Superadmin only, gated ahead of validation.
func (s *SchoolService) Create(ctx context.Context, actor policy.Actor, req CreateSchoolRequest) (*models.School, error) {
	if !actor.IsSuperadmin() {
		return nil, appErrors.Clone(appErrors.ErrAccessDenied, "Only superadmins can create schools")
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err)
	}

	exists, err := s.repo.ExistsByNameOrEmail(ctx, req.Name, req.Email, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check school uniqueness")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "School with this name or email already exists")
	}

	school := &models.School{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
	}
	if err := s.repo.Create(ctx, school); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create school")
	}

	s.logger.Info("school created", zap.String("school_id", school.ID))

	return school, nil
}

// Get returns a single active school. Not-found is reported before the
// tenant check so an inactive school never reads as access-denied.
func (s *SchoolService) Get(ctx context.Context, actor policy.Actor, schoolID string) (*models.School, error) {
	if schoolID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "School ID is required")
	}

	school, err := s.repo.FindByID(ctx, schoolID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "School not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load school")
	}

	if !policy.CanAccess(actor, school.ID) {
		return nil, appErrors.Clone(appErrors.ErrAccessDenied, "Access denied to this school")
	}

	return school, nil
}

// List returns active schools visible to the actor: all of them for a
// superadmin, only their own for a school admin.
func (s *SchoolService) List(ctx context.Context, actor policy.Actor) ([]models.School, error) {
	scope, ok := policy.ResolveSchoolScope(actor, "")
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrAccessDenied, "Access denied")
	}

	schools, err := s.repo.List(ctx, scope)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schools")
	}
	return schools, nil
}

// Update applies a partial update to an active school. Superadmin only.
func (s *SchoolService) Update(ctx context.Context, actor policy.Actor, req UpdateSchoolRequest) (*models.School, error) {
	if !actor.IsSuperadmin() {
		return nil, appErrors.Clone(appErrors.ErrAccessDenied, "Only superadmins can update schools")
	}

	if req.SchoolID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "School ID is required")
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err)
	}

	school, err := s.repo.FindByID(ctx, req.SchoolID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "School not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load school")
	}

	name := school.Name
	email := school.Email
	if req.Name != nil {
		name = *req.Name
	}
	if req.Email != nil {
		email = *req.Email
	}
	if name != school.Name || email != school.Email {
		exists, err := s.repo.ExistsByNameOrEmail(ctx, name, email, school.ID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check school uniqueness")
		}
		if exists {
			return nil, appErrors.Clone(appErrors.ErrConflict, "School with this name or email already exists")
		}
	}

	school.Name = name
	school.Email = email
	if req.Address != nil {
		school.Address = *req.Address
	}
	if req.Phone != nil {
		school.Phone = *req.Phone
	}

	if err := s.repo.Update(ctx, school); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update school")
	}

	return school, nil
}

// Delete soft-deletes a school once no active classrooms or students remain.
func (s *SchoolService) Delete(ctx context.Context, actor policy.Actor, schoolID string) error {
	if !actor.IsSuperadmin() {
		return appErrors.Clone(appErrors.ErrAccessDenied, "Only superadmins can delete schools")
	}

	if schoolID == "" {
		return appErrors.Clone(appErrors.ErrValidation, "School ID is required")
	}

	school, err := s.repo.FindByID(ctx, schoolID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "School not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load school")
	}

	classroomCount, err := s.classrooms.CountBySchool(ctx, school.ID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count classrooms")
	}
	studentCount, err := s.students.CountBySchool(ctx, school.ID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count students")
	}
	if classroomCount > 0 || studentCount > 0 {
		return appErrors.Clone(appErrors.ErrDependencyGuard, "Cannot delete school with existing classrooms or students. Remove them first.")
	}

	if err := s.repo.Deactivate(ctx, school.ID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete school")
	}

	s.logger.Info("school deleted", zap.String("school_id", school.ID))

	return nil
}
