package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/internal/service"
)

type schoolStoreStub struct {
	school      *models.School
	deactivated string
}

func (m *schoolStoreStub) FindByID(ctx context.Context, id string) (*models.School, error) {
	if m.school == nil || m.school.ID != id {
		return nil, sql.ErrNoRows
	}
	return m.school, nil
}

func (m *schoolStoreStub) List(ctx context.Context, schoolID string) ([]models.School, error) {
	if m.school == nil {
		return nil, nil
	}
	return []models.School{*m.school}, nil
}

func (m *schoolStoreStub) ExistsByNameOrEmail(ctx context.Context, name, email, excludeID string) (bool, error) {
	return false, nil
}

func (m *schoolStoreStub) Create(ctx context.Context, school *models.School) error {
	school.ID = "school-1"
	m.school = school
	return nil
}

func (m *schoolStoreStub) Update(ctx context.Context, school *models.School) error {
	m.school = school
	return nil
}

func (m *schoolStoreStub) Deactivate(ctx context.Context, id string) error {
	m.deactivated = id
	return nil
}

type counterStub struct {
	count int
}

func (m *counterStub) CountBySchool(ctx context.Context, schoolID string) (int, error) {
	return m.count, nil
}

func newSchoolRouter(store *schoolStoreStub, classrooms, students *counterStub) (*gin.Engine, *service.TokenService) {
	gin.SetMode(gin.TestMode)
	tokens := testTokenService()
	svc := service.NewSchoolService(store, classrooms, students, service.NewValidator(), zap.NewNop())
	handlers := Handlers{
		Auth:      NewAuthHandler(nil),
		School:    NewSchoolHandler(svc),
		Classroom: NewClassroomHandler(nil),
		Student:   NewStudentHandler(nil),
		Export:    NewExportHandler(nil),
	}
	r := gin.New()
	if err := Register(r, tokens, BuildRoutes(handlers)); err != nil {
		panic(err)
	}
	return r, tokens
}

func sessionFor(t *testing.T, tokens *service.TokenService, role models.UserRole, schoolID string) string {
	t.Helper()
	signed, err := tokens.IssueSessionToken(service.SessionTokenParams{UserID: "u1", UserKey: "alice", Role: role, SchoolID: schoolID})
	require.NoError(t, err)
	return signed
}

func TestSchoolHandlerCreateDeniedForSchoolAdmin(t *testing.T) {
	r, tokens := newSchoolRouter(&schoolStoreStub{}, &counterStub{}, &counterStub{})

	body, _ := json.Marshal(map[string]string{
		"name":    "North High",
		"address": "1 Main St",
		"email":   "office@north.example.com",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/school/createSchool", bytes.NewReader(body))
	req.Header.Set("token", sessionFor(t, tokens, models.RoleSchoolAdmin, "school-1"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Only superadmins can create schools")
}

func TestSchoolHandlerCreateAsSuperadmin(t *testing.T) {
	store := &schoolStoreStub{}
	r, tokens := newSchoolRouter(store, &counterStub{}, &counterStub{})

	body, _ := json.Marshal(map[string]string{
		"name":    "North High",
		"address": "1 Main St",
		"email":   "office@north.example.com",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/school/createSchool", bytes.NewReader(body))
	req.Header.Set("token", sessionFor(t, tokens, models.RoleSuperadmin, ""))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, store.school)
	assert.Contains(t, w.Body.String(), "school-1")
}

func TestSchoolHandlerGetRequiresID(t *testing.T) {
	r, tokens := newSchoolRouter(&schoolStoreStub{}, &counterStub{}, &counterStub{})

	req := httptest.NewRequest(http.MethodGet, "/api/school/getSchool", nil)
	req.Header.Set("token", sessionFor(t, tokens, models.RoleSuperadmin, ""))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "School ID is required")
}

func TestSchoolHandlerDeleteBlockedByDependents(t *testing.T) {
	store := &schoolStoreStub{school: &models.School{ID: "school-1", Name: "North High", Active: true}}
	r, tokens := newSchoolRouter(store, &counterStub{count: 1}, &counterStub{})

	req := httptest.NewRequest(http.MethodDelete, "/api/school/deleteSchool?schoolId=school-1", nil)
	req.Header.Set("token", sessionFor(t, tokens, models.RoleSuperadmin, ""))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Cannot delete school with existing classrooms or students. Remove them first.")
	assert.Empty(t, store.deactivated)
}
