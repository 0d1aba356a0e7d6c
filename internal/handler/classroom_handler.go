package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-admin-api/internal/service"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
	"github.com/noah-isme/school-admin-api/pkg/response"
)

// ClassroomHandler wires HTTP endpoints to the classroom service.
type ClassroomHandler struct {
	service *service.ClassroomService
}

// NewClassroomHandler creates a new handler.
func NewClassroomHandler(svc *service.ClassroomService) *ClassroomHandler {
	return &ClassroomHandler{service: svc}
}

// CreateClassroom godoc
// @Summary Create classroom
// @Description Add a classroom to a school within the caller's scope
// @Tags Classrooms
// @Accept json
// @Produce json
// @Param token header string true "Session token"
// @Param payload body service.CreateClassroomRequest true "Classroom payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /classroom/createClassroom [post]
func (h *ClassroomHandler) CreateClassroom(c *gin.Context) {
	var req service.CreateClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Invalid request payload"))
		return
	}

	classroom, err := h.service.Create(c.Request.Context(), actorFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, classroom)
}

// GetClassroom godoc
// @Summary Get classroom
// @Description Fetch a single active classroom by id
// @Tags Classrooms
// @Produce json
// @Param token header string true "Session token"
// @Param classroomId query string true "Classroom id"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /classroom/getClassroom [get]
func (h *ClassroomHandler) GetClassroom(c *gin.Context) {
	classroom, err := h.service.Get(c.Request.Context(), actorFromContext(c), c.Query("classroomId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, classroom)
}

// GetClassrooms godoc
// @Summary List classrooms
// @Description List active classrooms within the caller's scope
// @Tags Classrooms
// @Produce json
// @Param token header string true "Session token"
// @Param schoolId query string false "Filter by school, superadmin only"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /classroom/getClassrooms [get]
func (h *ClassroomHandler) GetClassrooms(c *gin.Context) {
	classrooms, err := h.service.List(c.Request.Context(), actorFromContext(c), c.Query("schoolId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, classrooms)
}

// UpdateClassroom godoc
// @Summary Update classroom
// @Description Apply a partial update to a classroom
// @Tags Classrooms
// @Accept json
// @Produce json
// @Param token header string true "Session token"
// @Param payload body service.UpdateClassroomRequest true "Update payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /classroom/updateClassroom [put]
func (h *ClassroomHandler) UpdateClassroom(c *gin.Context) {
	var req service.UpdateClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Invalid request payload"))
		return
	}

	classroom, err := h.service.Update(c.Request.Context(), actorFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, classroom)
}

// DeleteClassroom godoc
// @Summary Delete classroom
// @Description Soft-delete a classroom with no enrolled students
// @Tags Classrooms
// @Produce json
// @Param token header string true "Session token"
// @Param classroomId query string true "Classroom id"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /classroom/deleteClassroom [delete]
func (h *ClassroomHandler) DeleteClassroom(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), actorFromContext(c), c.Query("classroomId")); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"message": "Classroom deleted successfully"})
}
