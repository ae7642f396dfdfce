package repository

import (
	"github.com/schooldesk/csr/internal/models"
	"github.com/schooldesk/csr/internal/store"
)

// GradeRepository provides persistence for grade rows.
type GradeRepository struct {
	store *store.Store
}

// NewGradeRepository creates a new grade repository.
func NewGradeRepository(s *store.Store) *GradeRepository {
	return &GradeRepository{store: s}
}

// All returns the full collection in stored order.
func (r *GradeRepository) All() ([]models.GradeRecord, error) {
	var grades []models.GradeRecord
	if err := r.store.Load(store.SlotGrades, &grades); err != nil {
		return nil, err
	}
	return grades, nil
}

// ByStudent returns all grade rows for one student, in stored order.
func (r *GradeRepository) ByStudent(studentID string) ([]models.GradeRecord, error) {
	grades, err := r.All()
	if err != nil {
		return nil, err
	}
	filtered := make([]models.GradeRecord, 0, len(grades))
	for _, g := range grades {
		if g.StudentID == studentID {
			filtered = append(filtered, g)
		}
	}
	return filtered, nil
}

// Insert appends a grade row.
func (r *GradeRepository) Insert(grade models.GradeRecord) error {
	grades, err := r.All()
	if err != nil {
		return err
	}
	grades = append(grades, grade)
	return r.store.Save(store.SlotGrades, grades)
}

// UpdateValue sets the numeric grade on the row with the given id. Returns
// false when absent.
func (r *GradeRepository) UpdateValue(id string, value int) (bool, error) {
	grades, err := r.All()
	if err != nil {
		return false, err
	}
	for i := range grades {
		if grades[i].ID == id {
			grades[i].Grade = value
			return true, r.store.Save(store.SlotGrades, grades)
		}
	}
	return false, nil
}

// Delete removes the row with the given id. Returns false when absent.
func (r *GradeRepository) Delete(id string) (bool, error) {
	grades, err := r.All()
	if err != nil {
		return false, err
	}
	for i := range grades {
		if grades[i].ID == id {
			grades = append(grades[:i], grades[i+1:]...)
			return true, r.store.Save(store.SlotGrades, grades)
		}
	}
	return false, nil
}

// DeleteByStudent removes every grade belonging to the student. Used by the
// cascade when a student is deleted.
func (r *GradeRepository) DeleteByStudent(studentID string) error {
	grades, err := r.All()
	if err != nil {
		return err
	}
	kept := make([]models.GradeRecord, 0, len(grades))
	for _, g := range grades {
		if g.StudentID != studentID {
			kept = append(kept, g)
		}
	}
	return r.store.Save(store.SlotGrades, kept)
}

// ReplaceAll swaps the whole collection, used by import and reset.
func (r *GradeRepository) ReplaceAll(grades []models.GradeRecord) error {
	if grades == nil {
		grades = []models.GradeRecord{}
	}
	return r.store.Save(store.SlotGrades, grades)
}
