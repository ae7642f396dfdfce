package service

import (
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/schooldesk/csr/internal/models"
	appErrors "github.com/schooldesk/csr/pkg/errors"
)

// The admin credential pair is a fixed constant, not configuration. The hash
// is bcrypt("admin123").
const (
	adminUsername     = "admin"
	adminPasswordHash = "$2b$12$0HMYuI8jUeQ4BCthrD7DHugeLR7G0/Nsm2NUT9EOngpU4Z634EMRu"
)

type authStudentRepository interface {
	FindByID(id string) (*models.Student, error)
}

// AuthService resolves login attempts into sessions.
type AuthService struct {
	students authStudentRepository
	logger   *zap.Logger
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(students authStudentRepository, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{students: students, logger: logger}
}

// Login authenticates the given role. Admins match the constant credential
// pair. Students present their id and a secret of the form "{id}-{MMDD}"
// derived from their stored birth date. The returned session is a value; it
// is never stored globally.
func (s *AuthService) Login(role models.Role, identifier, secret string) (models.Session, error) {
	switch role {
	case models.RoleAdmin:
		return s.loginAdmin(identifier, secret)
	case models.RoleStudent:
		return s.loginStudent(identifier, secret)
	default:
		return models.LoggedOut(), appErrors.Clone(appErrors.ErrValidation, "unknown login role")
	}
}

// Logout clears any session back to the logged-out state.
func (s *AuthService) Logout(session *models.Session) {
	*session = models.LoggedOut()
}

func (s *AuthService) loginAdmin(username, password string) (models.Session, error) {
	if username != adminUsername ||
		bcrypt.CompareHashAndPassword([]byte(adminPasswordHash), []byte(password)) != nil {
		s.logger.Warn("admin login rejected", zap.String("username", username))
		return models.LoggedOut(), appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid admin credentials")
	}
	s.logger.Info("admin login", zap.String("username", username))
	return models.Session{Role: models.RoleAdmin, AdminName: adminUsername}, nil
}

func (s *AuthService) loginStudent(id, secret string) (models.Session, error) {
	student, err := s.students.FindByID(id)
	if err != nil {
		return models.LoggedOut(), appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to load student")
	}
	if student == nil {
		return models.LoggedOut(), appErrors.Clone(appErrors.ErrNotFound, "student id not found")
	}
	if secret != studentSecret(*student) {
		s.logger.Warn("student login rejected", zap.String("student_id", id))
		return models.LoggedOut(), appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid student password (ID-MMDD)")
	}
	s.logger.Info("student login", zap.String("student_id", id))
	return models.Session{Role: models.RoleStudent, Student: student}, nil
}

// studentSecret derives the expected secret "{id}-{MMDD}" from the stored
// ISO birth date.
func studentSecret(student models.Student) string {
	parts := strings.Split(student.BirthDate, "-")
	mmdd := ""
	if len(parts) == 3 {
		mmdd = parts[1] + parts[2]
	}
	return student.ID + "-" + mmdd
}
