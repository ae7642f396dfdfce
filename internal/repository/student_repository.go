package repository

import (
	"github.com/schooldesk/csr/internal/models"
	"github.com/schooldesk/csr/internal/store"
)

// StudentRepository provides persistence for the students collection.
type StudentRepository struct {
	store *store.Store
}

// NewStudentRepository creates a new student repository.
func NewStudentRepository(s *store.Store) *StudentRepository {
	return &StudentRepository{store: s}
}

// All returns the full collection in stored order.
func (r *StudentRepository) All() ([]models.Student, error) {
	var students []models.Student
	if err := r.store.Load(store.SlotUsers, &students); err != nil {
		return nil, err
	}
	return students, nil
}

// FindByID returns the student with the given id, or nil when absent.
func (r *StudentRepository) FindByID(id string) (*models.Student, error) {
	students, err := r.All()
	if err != nil {
		return nil, err
	}
	for i := range students {
		if students[i].ID == id {
			s := students[i]
			return &s, nil
		}
	}
	return nil, nil
}

// ExistsByID reports whether a student with the id is present.
func (r *StudentRepository) ExistsByID(id string) (bool, error) {
	s, err := r.FindByID(id)
	if err != nil {
		return false, err
	}
	return s != nil, nil
}

// Insert appends a student to the collection.
func (r *StudentRepository) Insert(student models.Student) error {
	students, err := r.All()
	if err != nil {
		return err
	}
	students = append(students, student)
	return r.store.Save(store.SlotUsers, students)
}

// Update replaces the student with the same id. Returns false when the id is
// not present.
func (r *StudentRepository) Update(student models.Student) (bool, error) {
	students, err := r.All()
	if err != nil {
		return false, err
	}
	for i := range students {
		if students[i].ID == student.ID {
			students[i] = student
			return true, r.store.Save(store.SlotUsers, students)
		}
	}
	return false, nil
}

// Delete removes the student with the given id. Returns false when absent.
func (r *StudentRepository) Delete(id string) (bool, error) {
	students, err := r.All()
	if err != nil {
		return false, err
	}
	for i := range students {
		if students[i].ID == id {
			students = append(students[:i], students[i+1:]...)
			return true, r.store.Save(store.SlotUsers, students)
		}
	}
	return false, nil
}

// ReplaceAll swaps the whole collection, used by import and reset.
func (r *StudentRepository) ReplaceAll(students []models.Student) error {
	if students == nil {
		students = []models.Student{}
	}
	return r.store.Save(store.SlotUsers, students)
}
