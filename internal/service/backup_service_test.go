package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schooldesk/csr/internal/models"
	"github.com/schooldesk/csr/internal/repository"
	"github.com/schooldesk/csr/internal/store"
	appErrors "github.com/schooldesk/csr/pkg/errors"
	"github.com/schooldesk/csr/pkg/storage"
)

func newBackupService(t *testing.T) (*BackupService, *store.Store) {
	fs, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	st := store.New(fs)
	svc := NewBackupService(
		repository.NewStudentRepository(st),
		repository.NewAttendanceRepository(st),
		repository.NewGradeRepository(st),
		repository.NewScheduleRepository(st),
		st,
		nil,
	)
	return svc, st
}

func TestBackupExportImportRoundTrip(t *testing.T) {
	src, _ := newBackupService(t)
	require.NoError(t, src.SeedDemo())

	data, err := src.Export()
	require.NoError(t, err)

	dst, _ := newBackupService(t)
	require.NoError(t, dst.Import(data))

	again, err := dst.Export()
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(again))
}

func TestBackupImportMalformedLeavesDataUntouched(t *testing.T) {
	svc, _ := newBackupService(t)
	require.NoError(t, svc.SeedDemo())

	before, err := svc.Export()
	require.NoError(t, err)

	err = svc.Import([]byte(`{"users": [truncated`))
	require.ErrorIs(t, err, appErrors.ErrParse)

	after, err := svc.Export()
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
}

func TestBackupImportMissingKeysDefaultEmpty(t *testing.T) {
	svc, _ := newBackupService(t)
	require.NoError(t, svc.SeedDemo())

	require.NoError(t, svc.Import([]byte(`{"users": [{"id": "12-1234-567", "firstName": "Juan", "lastName": "Dela Cruz", "track": "ICT", "birth": "2005-05-31"}]}`)))

	var attendance []models.AttendanceRecord
	require.NoError(t, svc.store.Load(store.SlotAttendance, &attendance))
	assert.Empty(t, attendance)

	var users []models.Student
	require.NoError(t, svc.store.Load(store.SlotUsers, &users))
	require.Len(t, users, 1)
	assert.Equal(t, "Juan", users[0].FirstName)
}

func TestBackupImportBackfillsRecordIDs(t *testing.T) {
	svc, _ := newBackupService(t)

	require.NoError(t, svc.Import([]byte(`{
		"attendance": [{"userId": "12-1234-567", "date": "2025-08-09", "status": "Absent"}],
		"grades": [{"userId": "12-1234-567", "schoolYear": "2024-2025", "semester": "1st Semester", "subject": "Math", "grade": 90}]
	}`)))

	var attendance []models.AttendanceRecord
	require.NoError(t, svc.store.Load(store.SlotAttendance, &attendance))
	require.Len(t, attendance, 1)
	assert.NotEmpty(t, attendance[0].ID)

	var grades []models.GradeRecord
	require.NoError(t, svc.store.Load(store.SlotGrades, &grades))
	require.Len(t, grades, 1)
	assert.NotEmpty(t, grades[0].ID)
}

func TestBackupResetAll(t *testing.T) {
	svc, st := newBackupService(t)
	require.NoError(t, svc.SeedDemo())
	require.True(t, svc.Seeded())

	require.NoError(t, svc.ResetAll())
	assert.False(t, svc.Seeded())

	var users []models.Student
	require.NoError(t, st.Load(store.SlotUsers, &users))
	assert.Empty(t, users)
}

func TestBackupSeededFalseOnFreshStore(t *testing.T) {
	svc, _ := newBackupService(t)
	assert.False(t, svc.Seeded())
}
