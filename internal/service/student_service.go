package service

import (
	"encoding/base64"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/schooldesk/csr/internal/models"
	appErrors "github.com/schooldesk/csr/pkg/errors"
)

type studentRepository interface {
	All() ([]models.Student, error)
	FindByID(id string) (*models.Student, error)
	ExistsByID(id string) (bool, error)
	Insert(student models.Student) error
	Update(student models.Student) (bool, error)
	Delete(id string) (bool, error)
}

type attendanceCascade interface {
	DeleteByStudent(studentID string) error
}

type gradeCascade interface {
	DeleteByStudent(studentID string) error
}

// CreateStudentRequest holds payload for creating students.
type CreateStudentRequest struct {
	ID        string `json:"id" validate:"required"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Track     string `json:"track"`
	BirthDate string `json:"birth" validate:"required,datetime=2006-01-02"`
}

// UpdateStudentRequest holds payload for updating students. The id itself is
// immutable and addressed separately.
type UpdateStudentRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Track     string `json:"track"`
	BirthDate string `json:"birth" validate:"required,datetime=2006-01-02"`
}

// StudentListResult is one page of the student list.
type StudentListResult struct {
	Items      []models.Student
	Pagination models.Pagination
}

// StudentService handles student record use-cases, including the cascade to
// attendance and grade rows on delete.
type StudentService struct {
	repo       studentRepository
	attendance attendanceCascade
	grades     gradeCascade
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, attendance attendanceCascade, grades gradeCascade, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, attendance: attendance, grades: grades, validator: validate, logger: logger}
}

// List returns one page of students. The filter is a case-insensitive
// substring match on the id or on "first last". Page is clamped into
// [1, max(1, ceil(total/pageSize))].
func (s *StudentService) List(filter models.StudentFilter) (*StudentListResult, error) {
	students, err := s.repo.All()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to list students")
	}

	needle := strings.ToLower(strings.TrimSpace(filter.Search))
	filtered := students
	if needle != "" {
		filtered = make([]models.Student, 0, len(students))
		for _, st := range students {
			if strings.Contains(strings.ToLower(st.ID), needle) ||
				strings.Contains(strings.ToLower(st.FullName()), needle) {
				filtered = append(filtered, st)
			}
		}
	}

	size := filter.PageSize
	if size <= 0 {
		size = 10
	}
	total := len(filtered)
	totalPages := (total + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &StudentListResult{
		Items: filtered[start:end],
		Pagination: models.Pagination{
			Page:       page,
			PageSize:   size,
			TotalCount: total,
			TotalPages: totalPages,
		},
	}, nil
}

// Create registers a new student. A duplicate id is a validation failure.
func (s *StudentService) Create(req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, "invalid student payload")
	}
	exists, err := s.repo.ExistsByID(req.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to check student id")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student id already exists")
	}
	track := strings.TrimSpace(req.Track)
	if track == "" {
		track = "ICT"
	}
	student := models.Student{
		ID:        req.ID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Track:     track,
		BirthDate: req.BirthDate,
	}
	if err := s.repo.Insert(student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to create student")
	}
	s.logger.Info("student created", zap.String("student_id", student.ID))
	return &student, nil
}

// Update modifies an existing student record. The id stays as created; the
// stored avatar is preserved.
func (s *StudentService) Update(id string, req UpdateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, "invalid student payload")
	}
	current, err := s.repo.FindByID(id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to load student")
	}
	if current == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	current.FirstName = req.FirstName
	current.LastName = req.LastName
	current.Track = req.Track
	current.BirthDate = req.BirthDate
	if _, err := s.repo.Update(*current); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to update student")
	}
	return current, nil
}

// SetAvatar stores an uploaded image on the student record as a base64 data
// URL, the same encoded-blob shape the export format carries.
func (s *StudentService) SetAvatar(id string, image []byte, mimeType string) error {
	if len(image) == 0 {
		return appErrors.Clone(appErrors.ErrValidation, "empty image")
	}
	current, err := s.repo.FindByID(id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to load student")
	}
	if current == nil {
		return appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	if mimeType == "" {
		mimeType = "image/png"
	}
	encoded := "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(image)
	current.Avatar = &encoded
	if _, err := s.repo.Update(*current); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to store avatar")
	}
	s.logger.Info("avatar updated", zap.String("student_id", id), zap.Int("bytes", len(image)))
	return nil
}

// Delete removes the student and cascades to their attendance and grade
// rows. Referential integrity is enforced here, not by the store.
func (s *StudentService) Delete(id string) error {
	removed, err := s.repo.Delete(id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to delete student")
	}
	if !removed {
		return appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	if err := s.attendance.DeleteByStudent(id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to cascade attendance rows")
	}
	if err := s.grades.DeleteByStudent(id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to cascade grade rows")
	}
	s.logger.Info("student deleted", zap.String("student_id", id))
	return nil
}
