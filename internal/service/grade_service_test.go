package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schooldesk/csr/internal/models"
	appErrors "github.com/schooldesk/csr/pkg/errors"
)

type mockGradeRepo struct {
	grades []models.GradeRecord
}

func (m *mockGradeRepo) All() ([]models.GradeRecord, error) {
	return append([]models.GradeRecord(nil), m.grades...), nil
}

func (m *mockGradeRepo) ByStudent(studentID string) ([]models.GradeRecord, error) {
	var out []models.GradeRecord
	for _, g := range m.grades {
		if g.StudentID == studentID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (m *mockGradeRepo) Insert(grade models.GradeRecord) error {
	m.grades = append(m.grades, grade)
	return nil
}

func (m *mockGradeRepo) UpdateValue(id string, value int) (bool, error) {
	for i := range m.grades {
		if m.grades[i].ID == id {
			m.grades[i].Grade = value
			return true, nil
		}
	}
	return false, nil
}

func (m *mockGradeRepo) Delete(id string) (bool, error) {
	for i := range m.grades {
		if m.grades[i].ID == id {
			m.grades = append(m.grades[:i], m.grades[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func TestGradeServiceCreateDefaultsSchoolYear(t *testing.T) {
	repo := &mockGradeRepo{}
	svc := NewGradeService(repo, nil, nil)

	grade, err := svc.Create(CreateGradeRequest{
		StudentID: "12-1234-567",
		Semester:  models.SemesterFirst,
		Subject:   "Mathematics",
		Grade:     88,
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-2025", grade.SchoolYear)
	assert.NotEmpty(t, grade.ID)
	assert.Len(t, repo.grades, 1)
}

func TestGradeServiceCreateInvalidSemester(t *testing.T) {
	svc := NewGradeService(&mockGradeRepo{}, nil, nil)

	_, err := svc.Create(CreateGradeRequest{
		StudentID: "12-1234-567",
		Semester:  models.Semester("Summer"),
		Subject:   "Mathematics",
	})
	require.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestGradeServiceUpdateGrade(t *testing.T) {
	repo := &mockGradeRepo{grades: []models.GradeRecord{
		{ID: "g1", StudentID: "12-1234-567", Subject: "Mathematics", Grade: 80},
	}}
	svc := NewGradeService(repo, nil, nil)

	require.NoError(t, svc.UpdateGrade("g1", " 85 "))
	assert.Equal(t, 85, repo.grades[0].Grade)
}

func TestGradeServiceUpdateGradeRejectsNonNumeric(t *testing.T) {
	repo := &mockGradeRepo{grades: []models.GradeRecord{
		{ID: "g1", StudentID: "12-1234-567", Subject: "Mathematics", Grade: 80},
	}}
	svc := NewGradeService(repo, nil, nil)

	err := svc.UpdateGrade("g1", "eighty-five")
	require.ErrorIs(t, err, appErrors.ErrValidation)
	// row stays unchanged
	assert.Equal(t, 80, repo.grades[0].Grade)
}

func TestGradeServiceUpdateGradeNotFound(t *testing.T) {
	svc := NewGradeService(&mockGradeRepo{}, nil, nil)

	err := svc.UpdateGrade("missing", "85")
	require.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestGradeServiceDelete(t *testing.T) {
	repo := &mockGradeRepo{grades: []models.GradeRecord{{ID: "g1"}}}
	svc := NewGradeService(repo, nil, nil)

	require.NoError(t, svc.Delete("g1"))
	assert.Empty(t, repo.grades)
	require.ErrorIs(t, svc.Delete("g1"), appErrors.ErrNotFound)
}
