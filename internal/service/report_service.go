package service

import (
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/schooldesk/csr/internal/models"
	appErrors "github.com/schooldesk/csr/pkg/errors"
	"github.com/schooldesk/csr/pkg/export"
)

// ReportFormat selects the rendered file type.
type ReportFormat string

const (
	ReportFormatCSV ReportFormat = "csv"
	ReportFormatPDF ReportFormat = "pdf"
)

// ReportType selects the dataset.
type ReportType string

const (
	// ReportTypeRoster lists every student with absence and grade counts.
	ReportTypeRoster ReportType = "roster"
	// ReportTypeGradeSheet lists one student's grade rows.
	ReportTypeGradeSheet ReportType = "gradesheet"
)

type reportStudentRepo interface {
	All() ([]models.Student, error)
	FindByID(id string) (*models.Student, error)
}

type reportAttendanceRepo interface {
	ByStudent(studentID string) ([]models.AttendanceRecord, error)
}

type reportGradeRepo interface {
	ByStudent(studentID string) ([]models.GradeRecord, error)
}

type reportStorage interface {
	Save(filename string, data []byte) (string, error)
	Path(filename string) string
}

type csvRenderer interface {
	Render(table export.Table) ([]byte, error)
}

type pdfRenderer interface {
	Render(table export.Table, title string) ([]byte, error)
}

// ReportService builds tabular reports over the collections and renders
// them to files in the exports directory.
type ReportService struct {
	students   reportStudentRepo
	attendance reportAttendanceRepo
	grades     reportGradeRepo
	storage    reportStorage
	csv        csvRenderer
	pdf        pdfRenderer
	logger     *zap.Logger
}

// NewReportService constructs a ReportService.
func NewReportService(students reportStudentRepo, attendance reportAttendanceRepo, grades reportGradeRepo, storage reportStorage, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		students:   students,
		attendance: attendance,
		grades:     grades,
		storage:    storage,
		csv:        export.NewCSVRenderer(),
		pdf:        export.NewPDFRenderer(),
		logger:     logger,
	}
}

// Generate builds the requested dataset, renders it, and saves the file.
// studentID is only consulted for the grade sheet. Returns the absolute path
// of the written file.
func (s *ReportService) Generate(reportType ReportType, format ReportFormat, studentID string) (string, error) {
	var (
		table export.Table
		title string
		err   error
	)
	switch reportType {
	case ReportTypeRoster:
		table, title, err = s.buildRoster()
	case ReportTypeGradeSheet:
		table, title, err = s.buildGradeSheet(studentID)
	default:
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported report type %q", reportType))
	}
	if err != nil {
		return "", err
	}

	var payload []byte
	switch format {
	case ReportFormatCSV:
		payload, err = s.csv.Render(table)
	case ReportFormatPDF:
		payload, err = s.pdf.Render(table, title)
	default:
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported report format %q", format))
	}
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to render report")
	}

	filename := fmt.Sprintf("%s_%s.%s", reportType, time.Now().Format("20060102_150405"), format)
	if _, err := s.storage.Save(filename, payload); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to save report")
	}
	path := s.storage.Path(filename)
	s.logger.Info("report generated", zap.String("type", string(reportType)), zap.String("path", path))
	return path, nil
}

func (s *ReportService) buildRoster() (export.Table, string, error) {
	students, err := s.students.All()
	if err != nil {
		return export.Table{}, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to read students")
	}
	rows := make([][]string, 0, len(students))
	for _, st := range students {
		attendance, err := s.attendance.ByStudent(st.ID)
		if err != nil {
			return export.Table{}, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to read attendance")
		}
		absences := 0
		for _, rec := range attendance {
			if rec.Status == models.AttendanceStatusAbsent {
				absences++
			}
		}
		grades, err := s.grades.ByStudent(st.ID)
		if err != nil {
			return export.Table{}, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to read grades")
		}
		rows = append(rows, []string{
			st.ID,
			st.FullName(),
			st.Track,
			st.BirthDate,
			strconv.Itoa(absences),
			strconv.Itoa(len(grades)),
		})
	}
	table := export.Table{
		Columns: []string{"ID", "Name", "Track", "Birthdate", "Absences", "Grades"},
		Rows:    rows,
	}
	return table, "Student Roster", nil
}

func (s *ReportService) buildGradeSheet(studentID string) (export.Table, string, error) {
	student, err := s.students.FindByID(studentID)
	if err != nil {
		return export.Table{}, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to load student")
	}
	if student == nil {
		return export.Table{}, "", appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	grades, err := s.grades.ByStudent(studentID)
	if err != nil {
		return export.Table{}, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to read grades")
	}
	rows := make([][]string, 0, len(grades))
	for _, g := range grades {
		rows = append(rows, []string{
			g.Subject,
			g.SchoolYear,
			string(g.Semester),
			strconv.Itoa(g.Grade),
		})
	}
	table := export.Table{
		Columns: []string{"Subject", "School Year", "Semester", "Grade"},
		Rows:    rows,
	}
	title := fmt.Sprintf("Grade Sheet - %s (%s)", student.FullName(), student.ID)
	return table, title, nil
}
