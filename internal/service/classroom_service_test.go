package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/internal/policy"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

type classroomRepoMock struct {
	detail      *models.ClassroomDetail
	exists      bool
	created     *models.Classroom
	updated     *models.Classroom
	deactivated string
	listFilter  models.ClassroomFilter
}

func (m *classroomRepoMock) FindByID(ctx context.Context, id string) (*models.ClassroomDetail, error) {
	if m.detail == nil || m.detail.ID != id {
		return nil, sql.ErrNoRows
	}
	return m.detail, nil
}

func (m *classroomRepoMock) List(ctx context.Context, filter models.ClassroomFilter) ([]models.ClassroomDetail, error) {
	m.listFilter = filter
	return nil, nil
}

func (m *classroomRepoMock) ExistsByNameInSchool(ctx context.Context, name, schoolID, excludeID string) (bool, error) {
	return m.exists, nil
}

func (m *classroomRepoMock) Create(ctx context.Context, classroom *models.Classroom) error {
	classroom.ID = "class-1"
	m.created = classroom
	return nil
}

func (m *classroomRepoMock) Update(ctx context.Context, classroom *models.Classroom) error {
	m.updated = classroom
	return nil
}

func (m *classroomRepoMock) Deactivate(ctx context.Context, id string) error {
	m.deactivated = id
	return nil
}

type countByClassroomMock struct {
	count int
}

func (m *countByClassroomMock) CountByClassroom(ctx context.Context, classroomID string) (int, error) {
	return m.count, nil
}

func newClassroomService(repo *classroomRepoMock, schools *authSchoolRepoMock, students *countByClassroomMock) *ClassroomService {
	return NewClassroomService(repo, schools, students, NewValidator(), zap.NewNop())
}

func TestClassroomServiceCreateForcesAdminSchool(t *testing.T) {
	repo := &classroomRepoMock{}
	schools := &authSchoolRepoMock{school: &models.School{ID: "school-1"}}
	svc := newClassroomService(repo, schools, &countByClassroomMock{})

	// A school admin naming another school is silently scoped to their own.
	classroom, err := svc.Create(context.Background(), policy.Actor{Role: models.RoleSchoolAdmin, SchoolID: "school-1"}, CreateClassroomRequest{
		Name:     "Room A",
		SchoolID: "school-2",
	})
	require.NoError(t, err)
	assert.Equal(t, "school-1", classroom.SchoolID)
}

func TestClassroomServiceCreateDefaultsCapacity(t *testing.T) {
	repo := &classroomRepoMock{}
	schools := &authSchoolRepoMock{school: &models.School{ID: "school-1"}}
	svc := newClassroomService(repo, schools, &countByClassroomMock{})

	classroom, err := svc.Create(context.Background(), superadmin, CreateClassroomRequest{Name: "Room A", SchoolID: "school-1"})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultClassroomCapacity, classroom.Capacity)
}

func TestClassroomServiceCreateRequiresSchoolForSuperadmin(t *testing.T) {
	svc := newClassroomService(&classroomRepoMock{}, &authSchoolRepoMock{}, &countByClassroomMock{})

	_, err := svc.Create(context.Background(), superadmin, CreateClassroomRequest{Name: "Room A"})
	require.Error(t, err)
	assert.Equal(t, "School ID is required", appErrors.FromError(err).Message)
}

func TestClassroomServiceCreateDuplicateName(t *testing.T) {
	repo := &classroomRepoMock{exists: true}
	schools := &authSchoolRepoMock{school: &models.School{ID: "school-1"}}
	svc := newClassroomService(repo, schools, &countByClassroomMock{})

	_, err := svc.Create(context.Background(), superadmin, CreateClassroomRequest{Name: "Room A", SchoolID: "school-1"})
	require.Error(t, err)
	assert.Equal(t, "Classroom with this name already exists in this school", appErrors.FromError(err).Message)
}

func TestClassroomServiceGetAccessDenied(t *testing.T) {
	repo := &classroomRepoMock{detail: &models.ClassroomDetail{
		Classroom:  models.Classroom{ID: "class-1", SchoolID: "school-1"},
		SchoolName: "North High",
	}}
	svc := newClassroomService(repo, &authSchoolRepoMock{}, &countByClassroomMock{})

	_, err := svc.Get(context.Background(), policy.Actor{Role: models.RoleSchoolAdmin, SchoolID: "school-2"}, "class-1")
	require.Error(t, err)
	assert.Equal(t, "Access denied to this classroom", appErrors.FromError(err).Message)
}

func TestClassroomServiceUpdateCapacityBelowEnrollment(t *testing.T) {
	repo := &classroomRepoMock{detail: &models.ClassroomDetail{
		Classroom: models.Classroom{ID: "class-1", SchoolID: "school-1", Capacity: 30},
	}}
	svc := newClassroomService(repo, &authSchoolRepoMock{}, &countByClassroomMock{count: 25})

	capacity := 20
	_, err := svc.Update(context.Background(), superadmin, UpdateClassroomRequest{ClassroomID: "class-1", Capacity: &capacity})
	require.Error(t, err)
	assert.Equal(t, "Capacity cannot be lower than current enrollment", appErrors.FromError(err).Message)
}

func TestClassroomServiceUpdateRenameChecksUniqueness(t *testing.T) {
	repo := &classroomRepoMock{
		detail: &models.ClassroomDetail{Classroom: models.Classroom{ID: "class-1", SchoolID: "school-1", Name: "Room A", Capacity: 30}},
		exists: true,
	}
	svc := newClassroomService(repo, &authSchoolRepoMock{}, &countByClassroomMock{})

	name := "Room B"
	_, err := svc.Update(context.Background(), superadmin, UpdateClassroomRequest{ClassroomID: "class-1", Name: &name})
	require.Error(t, err)
	assert.Equal(t, "Classroom with this name already exists in this school", appErrors.FromError(err).Message)
}

func TestClassroomServiceDeleteBlockedByEnrollment(t *testing.T) {
	repo := &classroomRepoMock{detail: &models.ClassroomDetail{
		Classroom: models.Classroom{ID: "class-1", SchoolID: "school-1", Capacity: 30},
	}}
	svc := newClassroomService(repo, &authSchoolRepoMock{}, &countByClassroomMock{count: 1})

	err := svc.Delete(context.Background(), superadmin, "class-1")
	require.Error(t, err)
	assert.Equal(t, "Cannot delete classroom with enrolled students. Transfer them first.", appErrors.FromError(err).Message)
	assert.Empty(t, repo.deactivated)
}

func TestClassroomServiceDeleteSuccess(t *testing.T) {
	repo := &classroomRepoMock{detail: &models.ClassroomDetail{
		Classroom: models.Classroom{ID: "class-1", SchoolID: "school-1", Capacity: 30},
	}}
	svc := newClassroomService(repo, &authSchoolRepoMock{}, &countByClassroomMock{})

	err := svc.Delete(context.Background(), superadmin, "class-1")
	require.NoError(t, err)
	assert.Equal(t, "class-1", repo.deactivated)
}

func TestClassroomServiceListScopesSchoolAdmin(t *testing.T) {
	repo := &classroomRepoMock{}
	svc := newClassroomService(repo, &authSchoolRepoMock{}, &countByClassroomMock{})

	_, err := svc.List(context.Background(), policy.Actor{Role: models.RoleSchoolAdmin, SchoolID: "school-1"}, "school-2")
	require.NoError(t, err)
	assert.Equal(t, "school-1", repo.listFilter.SchoolID)
}
