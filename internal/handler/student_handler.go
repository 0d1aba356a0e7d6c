package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-admin-api/internal/service"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
	"github.com/noah-isme/school-admin-api/pkg/response"
)

// StudentHandler wires HTTP endpoints to the student service.
type StudentHandler struct {
	service *service.StudentService
}

// NewStudentHandler creates a new handler.
func NewStudentHandler(svc *service.StudentService) *StudentHandler {
	return &StudentHandler{service: svc}
}

// CreateStudent godoc
// @Summary Create student
// @Description Register a student, optionally enrolling them in a classroom
// @Tags Students
// @Accept json
// @Produce json
// @Param token header string true "Session token"
// @Param payload body service.CreateStudentRequest true "Student payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /student/createStudent [post]
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	var req service.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Invalid request payload"))
		return
	}

	student, err := h.service.Create(c.Request.Context(), actorFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, student)
}

// GetStudent godoc
// @Summary Get student
// @Description Fetch a single active student by id
// @Tags Students
// @Produce json
// @Param token header string true "Session token"
// @Param studentId query string true "Student id"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /student/getStudent [get]
func (h *StudentHandler) GetStudent(c *gin.Context) {
	student, err := h.service.Get(c.Request.Context(), actorFromContext(c), c.Query("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, student)
}

// GetStudents godoc
// @Summary List students
// @Description List active students within the caller's scope
// @Tags Students
// @Produce json
// @Param token header string true "Session token"
// @Param schoolId query string false "Filter by school, superadmin only"
// @Param classroomId query string false "Filter by classroom"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /student/getStudents [get]
func (h *StudentHandler) GetStudents(c *gin.Context) {
	students, err := h.service.List(c.Request.Context(), actorFromContext(c), c.Query("schoolId"), c.Query("classroomId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, students)
}

// UpdateStudent godoc
// @Summary Update student
// @Description Apply a partial update to a student's own fields
// @Tags Students
// @Accept json
// @Produce json
// @Param token header string true "Session token"
// @Param payload body service.UpdateStudentRequest true "Update payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /student/updateStudent [put]
func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	var req service.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Invalid request payload"))
		return
	}

	student, err := h.service.Update(c.Request.Context(), actorFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, student)
}

// DeleteStudent godoc
// @Summary Delete student
// @Description Soft-delete a student
// @Tags Students
// @Produce json
// @Param token header string true "Session token"
// @Param studentId query string true "Student id"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /student/deleteStudent [delete]
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), actorFromContext(c), c.Query("studentId")); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"message": "Student deleted successfully"})
}

type enrollStudentRequest struct {
	StudentID   string `json:"studentId"`
	ClassroomID string `json:"classroomId"`
}

// EnrollStudent godoc
// @Summary Enroll student
// @Description Place a student in a classroom of their own school
// @Tags Students
// @Accept json
// @Produce json
// @Param token header string true "Session token"
// @Param payload body enrollStudentRequest true "Enrollment payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /student/enrollStudent [post]
func (h *StudentHandler) EnrollStudent(c *gin.Context) {
	var req enrollStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Invalid request payload"))
		return
	}

	student, err := h.service.Enroll(c.Request.Context(), actorFromContext(c), req.StudentID, req.ClassroomID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, student)
}

type transferStudentRequest struct {
	StudentID   string `json:"studentId"`
	SchoolID    string `json:"schoolId"`
	ClassroomID string `json:"classroomId"`
}

// TransferStudent godoc
// @Summary Transfer student
// @Description Move a student to another school, superadmin only
// @Tags Students
// @Accept json
// @Produce json
// @Param token header string true "Session token"
// @Param payload body transferStudentRequest true "Transfer payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /student/transferStudent [post]
func (h *StudentHandler) TransferStudent(c *gin.Context) {
	var req transferStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Invalid request payload"))
		return
	}

	student, err := h.service.Transfer(c.Request.Context(), actorFromContext(c), req.StudentID, req.SchoolID, req.ClassroomID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, student)
}
