package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schooldesk/csr/internal/models"
	appErrors "github.com/schooldesk/csr/pkg/errors"
)

type mockScheduleRepo struct {
	entries []models.ScheduleEntry
}

func (m *mockScheduleRepo) All() ([]models.ScheduleEntry, error) {
	return append([]models.ScheduleEntry(nil), m.entries...), nil
}

func (m *mockScheduleRepo) Insert(entry models.ScheduleEntry) error {
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockScheduleRepo) Delete(id string) (bool, error) {
	for i := range m.entries {
		if m.entries[i].ID == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func TestScheduleServiceCreate(t *testing.T) {
	repo := &mockScheduleRepo{}
	svc := NewScheduleService(repo, nil, nil)

	entry, err := svc.Create(CreateScheduleRequest{
		Subject: "Math", Time: "8:00 - 9:00", Days: "Mon-Fri", Room: "101", Teacher: "Mr. Cruz",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.Len(t, repo.entries, 1)
}

func TestScheduleServiceCreateRequiresSubjectAndTime(t *testing.T) {
	svc := NewScheduleService(&mockScheduleRepo{}, nil, nil)

	_, err := svc.Create(CreateScheduleRequest{Subject: "Math"})
	require.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.Create(CreateScheduleRequest{Time: "8:00 - 9:00"})
	require.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestScheduleServiceDelete(t *testing.T) {
	repo := &mockScheduleRepo{entries: []models.ScheduleEntry{{ID: "s1", Subject: "Math"}}}
	svc := NewScheduleService(repo, nil, nil)

	require.NoError(t, svc.Delete("s1"))
	assert.Empty(t, repo.entries)
	require.ErrorIs(t, svc.Delete("s1"), appErrors.ErrNotFound)
}
