package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-admin-api/internal/service"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
	"github.com/noah-isme/school-admin-api/pkg/response"
)

// SchoolHandler wires HTTP endpoints to the school service.
type SchoolHandler struct {
	service *service.SchoolService
}

// NewSchoolHandler creates a new handler.
func NewSchoolHandler(svc *service.SchoolService) *SchoolHandler {
	return &SchoolHandler{service: svc}
}

// CreateSchool godoc
// @Summary Create school
// @Description Register a new school, superadmin only
// @Tags Schools
// @Accept json
// @Produce json
// @Param token header string true "Session token"
// @Param payload body service.CreateSchoolRequest true "School payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /school/createSchool [post]
func (h *SchoolHandler) CreateSchool(c *gin.Context) {
	var req service.CreateSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Invalid request payload"))
		return
	}

	school, err := h.service.Create(c.Request.Context(), actorFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, school)
}

// GetSchool godoc
// @Summary Get school
// @Description Fetch a single active school by id
// @Tags Schools
// @Produce json
// @Param token header string true "Session token"
// @Param schoolId query string true "School id"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /school/getSchool [get]
func (h *SchoolHandler) GetSchool(c *gin.Context) {
	school, err := h.service.Get(c.Request.Context(), actorFromContext(c), c.Query("schoolId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, school)
}

// GetSchools godoc
// @Summary List schools
// @Description List active schools visible to the caller
// @Tags Schools
// @Produce json
// @Param token header string true "Session token"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /school/getAllSchools [get]
func (h *SchoolHandler) GetSchools(c *gin.Context) {
	schools, err := h.service.List(c.Request.Context(), actorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, schools)
}

// UpdateSchool godoc
// @Summary Update school
// @Description Apply a partial update to a school, superadmin only
// @Tags Schools
// @Accept json
// @Produce json
// @Param token header string true "Session token"
// @Param payload body service.UpdateSchoolRequest true "Update payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /school/updateSchool [put]
func (h *SchoolHandler) UpdateSchool(c *gin.Context) {
	var req service.UpdateSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Invalid request payload"))
		return
	}

	school, err := h.service.Update(c.Request.Context(), actorFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, school)
}

// DeleteSchool godoc
// @Summary Delete school
// @Description Soft-delete a school with no active classrooms or students, superadmin only
// @Tags Schools
// @Produce json
// @Param token header string true "Session token"
// @Param schoolId query string true "School id"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /school/deleteSchool [delete]
func (h *SchoolHandler) DeleteSchool(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), actorFromContext(c), c.Query("schoolId")); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"message": "School deleted successfully"})
}
