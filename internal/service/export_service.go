package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/internal/policy"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
	"github.com/noah-isme/school-admin-api/pkg/export"
)

type exportStudentRepository interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, error)
}

// RosterExport is a rendered roster document.
type RosterExport struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportService renders the active-student roster for the actor's scope.
type ExportService struct {
	students exportStudentRepository
	logger   *zap.Logger
}

// NewExportService constructs the export service.
func NewExportService(students exportStudentRepository, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{students: students, logger: logger}
}

// Roster produces the student roster as CSV or PDF. School admins always
// export their own school; superadmins may pass a school or export all.
func (s *ExportService) Roster(ctx context.Context, actor policy.Actor, schoolID, format string) (*RosterExport, error) {
	scope, ok := policy.ResolveSchoolScope(actor, schoolID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrAccessDenied, "Access denied")
	}

	students, err := s.students.List(ctx, models.StudentFilter{SchoolID: scope})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}

	table := export.Table{
		Columns: []string{"First Name", "Last Name", "Email", "School", "Classroom"},
		Rows:    make([][]string, 0, len(students)),
	}
	for _, st := range students {
		classroom := ""
		if st.ClassroomName != nil {
			classroom = *st.ClassroomName
		}
		table.Rows = append(table.Rows, []string{st.FirstName, st.LastName, st.Email, st.SchoolName, classroom})
	}

	switch format {
	case "", "csv":
		content, err := export.RenderCSV(table)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render roster")
		}
		return &RosterExport{Content: content, ContentType: "text/csv", Filename: "students.csv"}, nil
	case "pdf":
		content, err := export.RenderPDF(table, "Student Roster")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render roster")
		}
		return &RosterExport{Content: content, ContentType: "application/pdf", Filename: "students.pdf"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("Unsupported export format: %s", format))
	}
}
