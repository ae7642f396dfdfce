package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/schooldesk/csr/internal/models"
	appErrors "github.com/schooldesk/csr/pkg/errors"
)

type mockAuthStudents struct {
	students map[string]models.Student
}

func (m *mockAuthStudents) FindByID(id string) (*models.Student, error) {
	if s, ok := m.students[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func newAuthService(students ...models.Student) *AuthService {
	byID := make(map[string]models.Student, len(students))
	for _, s := range students {
		byID[s.ID] = s
	}
	return NewAuthService(&mockAuthStudents{students: byID}, zap.NewNop())
}

func TestLoginAdmin(t *testing.T) {
	svc := newAuthService()

	session, err := svc.Login(models.RoleAdmin, "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, session.Role)
	assert.Equal(t, "admin", session.AdminName)
	assert.Nil(t, session.Student)
}

func TestLoginAdminWrongPassword(t *testing.T) {
	svc := newAuthService()

	session, err := svc.Login(models.RoleAdmin, "admin", "letmein")
	require.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
	assert.Equal(t, models.RoleNone, session.Role)
}

func TestLoginStudentSecretFromBirthDate(t *testing.T) {
	svc := newAuthService(models.Student{ID: "12-1234-567", FirstName: "Juan", LastName: "Dela Cruz", BirthDate: "2005-05-31"})

	session, err := svc.Login(models.RoleStudent, "12-1234-567", "12-1234-567-0531")
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, session.Role)
	require.NotNil(t, session.Student)
	assert.Equal(t, "12-1234-567", session.Student.ID)
}

func TestLoginStudentWrongSecret(t *testing.T) {
	svc := newAuthService(models.Student{ID: "12-1234-567", BirthDate: "2005-05-31"})

	_, err := svc.Login(models.RoleStudent, "12-1234-567", "wrong")
	require.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestLoginStudentUnknownID(t *testing.T) {
	svc := newAuthService()

	_, err := svc.Login(models.RoleStudent, "99-0000-000", "99-0000-000-0101")
	require.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestLogoutClearsSession(t *testing.T) {
	svc := newAuthService()
	session := models.Session{Role: models.RoleAdmin, AdminName: "admin"}

	svc.Logout(&session)
	assert.Equal(t, models.RoleNone, session.Role)
	assert.Empty(t, session.AdminName)
	assert.Nil(t, session.Student)
}
