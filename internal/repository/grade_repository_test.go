package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schooldesk/csr/internal/models"
)

func TestGradeRepositoryUpdateValue(t *testing.T) {
	repo := NewGradeRepository(newTestStore(t))
	require.NoError(t, repo.Insert(models.GradeRecord{ID: "g1", StudentID: "s1", Subject: "Math", Grade: 90}))

	updated, err := repo.UpdateValue("g1", 85)
	require.NoError(t, err)
	assert.True(t, updated)

	all, err := repo.All()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 85, all[0].Grade)
}

func TestGradeRepositoryDeleteByStudent(t *testing.T) {
	repo := NewGradeRepository(newTestStore(t))
	require.NoError(t, repo.Insert(models.GradeRecord{ID: "g1", StudentID: "s1"}))
	require.NoError(t, repo.Insert(models.GradeRecord{ID: "g2", StudentID: "s2"}))
	require.NoError(t, repo.Insert(models.GradeRecord{ID: "g3", StudentID: "s1"}))

	require.NoError(t, repo.DeleteByStudent("s1"))

	all, err := repo.All()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "g2", all[0].ID)
}

func TestAttendanceRepositoryByStudentAndDuplicates(t *testing.T) {
	repo := NewAttendanceRepository(newTestStore(t))
	row := models.AttendanceRecord{StudentID: "s1", Date: "2025-08-09", Status: models.AttendanceStatusAbsent}
	row.ID = "a1"
	require.NoError(t, repo.Insert(row))
	row.ID = "a2"
	require.NoError(t, repo.Insert(row)) // same student and date is allowed
	require.NoError(t, repo.Insert(models.AttendanceRecord{ID: "a3", StudentID: "s2", Date: "2025-08-09", Status: models.AttendanceStatusTardy}))

	mine, err := repo.ByStudent("s1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}
