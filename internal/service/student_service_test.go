package service

import (
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/schooldesk/csr/internal/models"
	appErrors "github.com/schooldesk/csr/pkg/errors"
)

type mockStudentRepo struct {
	students []models.Student
}

func (m *mockStudentRepo) All() ([]models.Student, error) {
	return append([]models.Student(nil), m.students...), nil
}

func (m *mockStudentRepo) FindByID(id string) (*models.Student, error) {
	for i := range m.students {
		if m.students[i].ID == id {
			s := m.students[i]
			return &s, nil
		}
	}
	return nil, nil
}

func (m *mockStudentRepo) ExistsByID(id string) (bool, error) {
	s, _ := m.FindByID(id)
	return s != nil, nil
}

func (m *mockStudentRepo) Insert(student models.Student) error {
	m.students = append(m.students, student)
	return nil
}

func (m *mockStudentRepo) Update(student models.Student) (bool, error) {
	for i := range m.students {
		if m.students[i].ID == student.ID {
			m.students[i] = student
			return true, nil
		}
	}
	return false, nil
}

func (m *mockStudentRepo) Delete(id string) (bool, error) {
	for i := range m.students {
		if m.students[i].ID == id {
			m.students = append(m.students[:i], m.students[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type mockCascade struct {
	deletedFor []string
}

func (m *mockCascade) DeleteByStudent(studentID string) error {
	m.deletedFor = append(m.deletedFor, studentID)
	return nil
}

func newStudentService(students ...models.Student) (*StudentService, *mockStudentRepo, *mockCascade, *mockCascade) {
	repo := &mockStudentRepo{students: students}
	att := &mockCascade{}
	grades := &mockCascade{}
	svc := NewStudentService(repo, att, grades, validator.New(), zap.NewNop())
	return svc, repo, att, grades
}

func TestStudentServiceFilterMatchesIDOrName(t *testing.T) {
	svc, _, _, _ := newStudentService(
		models.Student{ID: "12-1234-567", FirstName: "Juan", LastName: "Dela Cruz"},
		models.Student{ID: "13-1111-888", FirstName: "Maria", LastName: "Santos"},
	)

	result, err := svc.List(models.StudentFilter{Search: "maria", Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "13-1111-888", result.Items[0].ID)

	result, err = svc.List(models.StudentFilter{Search: "12-1234", Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "12-1234-567", result.Items[0].ID)
}

func TestStudentServicePaginationAndClamp(t *testing.T) {
	students := make([]models.Student, 0, 11)
	for i := 0; i < 11; i++ {
		students = append(students, models.Student{ID: fmt.Sprintf("10-0000-%03d", i), FirstName: "S", LastName: fmt.Sprintf("%d", i)})
	}
	svc, _, _, _ := newStudentService(students...)

	result, err := svc.List(models.StudentFilter{Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, result.Items, 1)
	assert.Equal(t, 2, result.Pagination.TotalPages)
	assert.Equal(t, 11, result.Pagination.TotalCount)

	// out-of-range pages clamp to the last page
	result, err = svc.List(models.StudentFilter{Page: 99, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Pagination.Page)
	assert.Len(t, result.Items, 1)

	result, err = svc.List(models.StudentFilter{Page: -3, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Pagination.Page)
}

func TestStudentServiceListEmptyCollection(t *testing.T) {
	svc, _, _, _ := newStudentService()

	result, err := svc.List(models.StudentFilter{Page: 5, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, result.Items)
	assert.Equal(t, 1, result.Pagination.Page)
	assert.Equal(t, 1, result.Pagination.TotalPages)
}

func TestStudentServiceCreate(t *testing.T) {
	svc, repo, _, _ := newStudentService()

	student, err := svc.Create(CreateStudentRequest{
		ID: "12-1234-567", FirstName: "Juan", LastName: "Dela Cruz", BirthDate: "2005-05-31",
	})
	require.NoError(t, err)
	assert.Equal(t, "ICT", student.Track) // defaulted
	assert.Len(t, repo.students, 1)
}

func TestStudentServiceCreateDuplicateID(t *testing.T) {
	svc, _, _, _ := newStudentService(models.Student{ID: "12-1234-567"})

	_, err := svc.Create(CreateStudentRequest{
		ID: "12-1234-567", FirstName: "Juan", LastName: "Dela Cruz", BirthDate: "2005-05-31",
	})
	require.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestStudentServiceCreateMissingFields(t *testing.T) {
	svc, _, _, _ := newStudentService()

	_, err := svc.Create(CreateStudentRequest{ID: "12-1234-567", FirstName: "Juan"})
	require.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestStudentServiceUpdateKeepsIDAndAvatar(t *testing.T) {
	avatar := "data:image/png;base64,AAAA"
	svc, repo, _, _ := newStudentService(models.Student{
		ID: "12-1234-567", FirstName: "Juan", LastName: "Dela Cruz", BirthDate: "2005-05-31", Avatar: &avatar,
	})

	updated, err := svc.Update("12-1234-567", UpdateStudentRequest{
		FirstName: "Juanito", LastName: "Dela Cruz", Track: "STEM", BirthDate: "2005-05-31",
	})
	require.NoError(t, err)
	assert.Equal(t, "12-1234-567", updated.ID)
	assert.Equal(t, "Juanito", updated.FirstName)
	require.NotNil(t, repo.students[0].Avatar)
	assert.Equal(t, avatar, *repo.students[0].Avatar)
}

func TestStudentServiceUpdateNotFound(t *testing.T) {
	svc, _, _, _ := newStudentService()

	_, err := svc.Update("99-9999-999", UpdateStudentRequest{
		FirstName: "A", LastName: "B", BirthDate: "2005-01-01",
	})
	require.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestStudentServiceSetAvatar(t *testing.T) {
	svc, repo, _, _ := newStudentService(models.Student{ID: "12-1234-567", FirstName: "Juan", LastName: "Dela Cruz"})

	require.NoError(t, svc.SetAvatar("12-1234-567", []byte{0x89, 0x50, 0x4e, 0x47}, "image/png"))
	require.NotNil(t, repo.students[0].Avatar)
	assert.Contains(t, *repo.students[0].Avatar, "data:image/png;base64,")
}

func TestStudentServiceDeleteCascades(t *testing.T) {
	svc, repo, att, grades := newStudentService(models.Student{ID: "12-1234-567"})

	require.NoError(t, svc.Delete("12-1234-567"))
	assert.Empty(t, repo.students)
	assert.Equal(t, []string{"12-1234-567"}, att.deletedFor)
	assert.Equal(t, []string{"12-1234-567"}, grades.deletedFor)
}

func TestStudentServiceDeleteNotFound(t *testing.T) {
	svc, _, att, _ := newStudentService()

	err := svc.Delete("99-9999-999")
	require.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.Empty(t, att.deletedFor)
}
