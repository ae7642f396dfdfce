package service

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/schooldesk/csr/internal/models"
	appErrors "github.com/schooldesk/csr/pkg/errors"
)

type scheduleRepository interface {
	All() ([]models.ScheduleEntry, error)
	Insert(entry models.ScheduleEntry) error
	Delete(id string) (bool, error)
}

// CreateScheduleRequest holds payload for new schedule entries.
type CreateScheduleRequest struct {
	Subject string `json:"subject" validate:"required"`
	Time    string `json:"time" validate:"required"`
	Days    string `json:"days"`
	Room    string `json:"room"`
	Teacher string `json:"teacher"`
}

// ScheduleService handles the global class schedule.
type ScheduleService struct {
	repo      scheduleRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewScheduleService constructs the schedule service.
func NewScheduleService(repo scheduleRepository, validate *validator.Validate, logger *zap.Logger) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{repo: repo, validator: validate, logger: logger}
}

// List returns the schedule in stored order.
func (s *ScheduleService) List() ([]models.ScheduleEntry, error) {
	entries, err := s.repo.All()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to list schedule")
	}
	return entries, nil
}

// Create appends a schedule entry. Subject and time are required.
func (s *ScheduleService) Create(req CreateScheduleRequest) (*models.ScheduleEntry, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, "invalid schedule payload")
	}
	entry := models.ScheduleEntry{
		ID:      uuid.NewString(),
		Subject: req.Subject,
		Time:    req.Time,
		Days:    req.Days,
		Room:    req.Room,
		Teacher: req.Teacher,
	}
	if err := s.repo.Insert(entry); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to create schedule entry")
	}
	s.logger.Info("schedule entry added", zap.String("subject", entry.Subject), zap.String("time", entry.Time))
	return &entry, nil
}

// Delete removes one schedule entry by its generated id.
func (s *ScheduleService) Delete(id string) error {
	removed, err := s.repo.Delete(id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to delete schedule entry")
	}
	if !removed {
		return appErrors.Clone(appErrors.ErrNotFound, "schedule entry not found")
	}
	return nil
}
