package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-admin-api/internal/service"
	"github.com/noah-isme/school-admin-api/pkg/response"
)

// ExportHandler wires HTTP endpoints to the export service.
type ExportHandler struct {
	service *service.ExportService
}

// NewExportHandler creates a new handler.
func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// ExportStudents godoc
// @Summary Export student roster
// @Description Download the active-student roster as CSV or PDF
// @Tags Students
// @Produce text/csv
// @Produce application/pdf
// @Param token header string true "Session token"
// @Param schoolId query string false "Filter by school, superadmin only"
// @Param format query string false "csv or pdf, defaults to csv"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /student/exportStudents [get]
func (h *ExportHandler) ExportStudents(c *gin.Context) {
	roster, err := h.service.Roster(c.Request.Context(), actorFromContext(c), c.Query("schoolId"), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", roster.Filename))
	c.Data(http.StatusOK, roster.ContentType, roster.Content)
}
