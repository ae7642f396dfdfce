package service

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/schooldesk/csr/internal/models"
	appErrors "github.com/schooldesk/csr/pkg/errors"
)

type gradeRepository interface {
	All() ([]models.GradeRecord, error)
	ByStudent(studentID string) ([]models.GradeRecord, error)
	Insert(grade models.GradeRecord) error
	UpdateValue(id string, value int) (bool, error)
	Delete(id string) (bool, error)
}

// CreateGradeRequest holds payload for new grade rows.
type CreateGradeRequest struct {
	StudentID  string          `json:"userId" validate:"required"`
	SchoolYear string          `json:"schoolYear"`
	Semester   models.Semester `json:"semester" validate:"required"`
	Subject    string          `json:"subject" validate:"required"`
	Grade      int             `json:"grade"`
}

// GradeService handles grade use-cases.
type GradeService struct {
	repo      gradeRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewGradeService constructs the grade service.
func NewGradeService(repo gradeRepository, validate *validator.Validate, logger *zap.Logger) *GradeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradeService{repo: repo, validator: validate, logger: logger}
}

// List returns all grade rows in stored order.
func (s *GradeService) List() ([]models.GradeRecord, error) {
	grades, err := s.repo.All()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to list grades")
	}
	return grades, nil
}

// ListByStudent returns one student's grade rows in stored order.
func (s *GradeService) ListByStudent(studentID string) ([]models.GradeRecord, error) {
	grades, err := s.repo.ByStudent(studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to list grades")
	}
	return grades, nil
}

// Create appends a grade row. The school year defaults when left blank.
func (s *GradeService) Create(req CreateGradeRequest) (*models.GradeRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, "invalid grade payload")
	}
	if !req.Semester.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "semester must be 1st Semester or 2nd Semester")
	}
	schoolYear := strings.TrimSpace(req.SchoolYear)
	if schoolYear == "" {
		schoolYear = "2024-2025"
	}
	grade := models.GradeRecord{
		ID:         uuid.NewString(),
		StudentID:  req.StudentID,
		SchoolYear: schoolYear,
		Semester:   req.Semester,
		Subject:    req.Subject,
		Grade:      req.Grade,
	}
	if err := s.repo.Insert(grade); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to create grade row")
	}
	s.logger.Info("grade recorded",
		zap.String("student_id", grade.StudentID),
		zap.String("subject", grade.Subject),
		zap.Int("grade", grade.Grade))
	return &grade, nil
}

// UpdateGrade edits the numeric value of an existing row in place. The raw
// text comes straight from the edit field; non-numeric input is rejected and
// the row stays unchanged.
func (s *GradeService) UpdateGrade(id string, rawValue string) error {
	value, err := strconv.Atoi(strings.TrimSpace(rawValue))
	if err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "grade must be a whole number")
	}
	updated, err := s.repo.UpdateValue(id, value)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to update grade")
	}
	if !updated {
		return appErrors.Clone(appErrors.ErrNotFound, "grade row not found")
	}
	return nil
}

// Delete removes one grade row by its generated id.
func (s *GradeService) Delete(id string) error {
	removed, err := s.repo.Delete(id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to delete grade row")
	}
	if !removed {
		return appErrors.Clone(appErrors.ErrNotFound, "grade row not found")
	}
	return nil
}
