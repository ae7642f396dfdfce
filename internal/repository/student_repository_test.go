package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schooldesk/csr/internal/models"
	"github.com/schooldesk/csr/internal/store"
	"github.com/schooldesk/csr/pkg/storage"
)

func newTestStore(t *testing.T) *store.Store {
	fs, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return store.New(fs)
}

func TestStudentRepositoryInsertAndFind(t *testing.T) {
	repo := NewStudentRepository(newTestStore(t))

	require.NoError(t, repo.Insert(models.Student{ID: "12-1234-567", FirstName: "Juan", LastName: "Dela Cruz"}))

	found, err := repo.FindByID("12-1234-567")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Juan", found.FirstName)

	missing, err := repo.FindByID("99-9999-999")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStudentRepositoryUpdatePreservesOrder(t *testing.T) {
	repo := NewStudentRepository(newTestStore(t))
	require.NoError(t, repo.Insert(models.Student{ID: "a", FirstName: "A"}))
	require.NoError(t, repo.Insert(models.Student{ID: "b", FirstName: "B"}))

	updated, err := repo.Update(models.Student{ID: "a", FirstName: "A2"})
	require.NoError(t, err)
	assert.True(t, updated)

	all, err := repo.All()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "A2", all[0].FirstName)
	assert.Equal(t, "b", all[1].ID)
}

func TestStudentRepositoryUpdateUnknownID(t *testing.T) {
	repo := NewStudentRepository(newTestStore(t))

	updated, err := repo.Update(models.Student{ID: "nope"})
	require.NoError(t, err)
	assert.False(t, updated)
}

func TestStudentRepositoryDelete(t *testing.T) {
	repo := NewStudentRepository(newTestStore(t))
	require.NoError(t, repo.Insert(models.Student{ID: "a"}))
	require.NoError(t, repo.Insert(models.Student{ID: "b"}))

	removed, err := repo.Delete("a")
	require.NoError(t, err)
	assert.True(t, removed)

	all, err := repo.All()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "b", all[0].ID)
}

func TestStudentRepositoryReplaceAllNil(t *testing.T) {
	repo := NewStudentRepository(newTestStore(t))
	require.NoError(t, repo.Insert(models.Student{ID: "a"}))

	require.NoError(t, repo.ReplaceAll(nil))

	all, err := repo.All()
	require.NoError(t, err)
	assert.Empty(t, all)
}
