package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-admin-api/internal/service"
	"github.com/noah-isme/school-admin-api/pkg/config"
)

func testHandlers() Handlers {
	return Handlers{
		Auth:      NewAuthHandler(nil),
		School:    NewSchoolHandler(nil),
		Classroom: NewClassroomHandler(nil),
		Student:   NewStudentHandler(nil),
		Export:    NewExportHandler(nil),
	}
}

func testTokenService() *service.TokenService {
	return service.NewTokenService(config.TokenConfig{
		AccountSecret:     "account-secret",
		SessionSecret:     "session-secret",
		AccountExpiration: time.Hour,
		SessionExpiration: time.Hour,
	})
}

func TestRegisterMountsFullSurface(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	routes := BuildRoutes(testHandlers())
	require.NoError(t, Register(r, testTokenService(), routes))

	mounted := make(map[string]bool)
	for _, info := range r.Routes() {
		mounted[info.Method+" "+info.Path] = true
	}
	for _, route := range routes {
		assert.True(t, mounted[route.Method+" "+route.Path()], "missing %s %s", route.Method, route.Path())
	}
}

func TestSchoolListMountedAsGetAllSchools(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	require.NoError(t, Register(r, testTokenService(), BuildRoutes(testHandlers())))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/school/getAllSchools", nil))
	assert.NotEqual(t, http.StatusNotFound, w.Code, "list operation is named getAllSchools")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	routes := BuildRoutes(testHandlers())
	routes = append(routes, routes[0])

	err := Register(r, testTokenService(), routes)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registered twice")
}

func TestRegisterRejectsMissingOperation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	routes := BuildRoutes(testHandlers())
	var trimmed []Route
	for _, route := range routes {
		if route.Operation == "transferStudent" {
			continue
		}
		trimmed = append(trimmed, route)
	}

	err := Register(r, testTokenService(), trimmed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "student/transferStudent")
}

func TestRegisterRejectsUnknownAuthMode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	routes := []Route{{Method: http.MethodGet, Entity: "school", Operation: "getAllSchools", Auth: "bearer", Handler: func(c *gin.Context) {}}}
	err := Register(r, testTokenService(), routes)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown auth mode")
}

func TestSessionRoutesRequireToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	require.NoError(t, Register(r, testTokenService(), BuildRoutes(testHandlers())))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/school/getAllSchools", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/user/createSessionToken", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
