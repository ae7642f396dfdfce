package service

import (
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/schooldesk/csr/internal/models"
	appErrors "github.com/schooldesk/csr/pkg/errors"
)

type attendanceRepository interface {
	All() ([]models.AttendanceRecord, error)
	ByStudent(studentID string) ([]models.AttendanceRecord, error)
	Insert(record models.AttendanceRecord) error
	Delete(id string) (bool, error)
}

// CreateAttendanceRequest holds payload for new attendance rows.
type CreateAttendanceRequest struct {
	StudentID string                  `json:"userId" validate:"required"`
	Date      string                  `json:"date" validate:"required,datetime=2006-01-02"`
	Status    models.AttendanceStatus `json:"status" validate:"required"`
}

// AttendanceService handles attendance use-cases.
type AttendanceService struct {
	repo      attendanceRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(repo attendanceRepository, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{repo: repo, validator: validate, logger: logger}
}

// List returns all attendance rows in stored order.
func (s *AttendanceService) List() ([]models.AttendanceRecord, error) {
	records, err := s.repo.All()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to list attendance")
	}
	return records, nil
}

// ListByStudent returns one student's rows newest first, the order the
// student view shows them in.
func (s *AttendanceService) ListByStudent(studentID string) ([]models.AttendanceRecord, error) {
	records, err := s.repo.ByStudent(studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to list attendance")
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date > records[j].Date
	})
	return records, nil
}

// CountAbsences returns the number of Absent rows for the student.
func (s *AttendanceService) CountAbsences(studentID string) (int, error) {
	records, err := s.repo.ByStudent(studentID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to count absences")
	}
	count := 0
	for _, rec := range records {
		if rec.Status == models.AttendanceStatusAbsent {
			count++
		}
	}
	return count, nil
}

// Create appends an attendance row. The student id is not checked against
// the students collection, and duplicate rows for the same student and date
// are permitted.
func (s *AttendanceService) Create(req CreateAttendanceRequest) (*models.AttendanceRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, "invalid attendance payload")
	}
	if !req.Status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "status must be Present, Absent or Tardy")
	}
	record := models.AttendanceRecord{
		ID:        uuid.NewString(),
		StudentID: req.StudentID,
		Date:      req.Date,
		Status:    req.Status,
	}
	if err := s.repo.Insert(record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to create attendance row")
	}
	s.logger.Info("attendance recorded",
		zap.String("student_id", record.StudentID),
		zap.String("date", record.Date),
		zap.String("status", string(record.Status)))
	return &record, nil
}

// Delete removes one attendance row by its generated id.
func (s *AttendanceService) Delete(id string) error {
	removed, err := s.repo.Delete(id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to delete attendance row")
	}
	if !removed {
		return appErrors.Clone(appErrors.ErrNotFound, "attendance row not found")
	}
	return nil
}
