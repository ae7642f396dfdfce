package repository

import (
	"github.com/schooldesk/csr/internal/models"
	"github.com/schooldesk/csr/internal/store"
)

// AttendanceRepository provides persistence for attendance rows.
type AttendanceRepository struct {
	store *store.Store
}

// NewAttendanceRepository creates a new attendance repository.
func NewAttendanceRepository(s *store.Store) *AttendanceRepository {
	return &AttendanceRepository{store: s}
}

// All returns the full collection in stored order.
func (r *AttendanceRepository) All() ([]models.AttendanceRecord, error) {
	var records []models.AttendanceRecord
	if err := r.store.Load(store.SlotAttendance, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ByStudent returns all rows for one student, in stored order.
func (r *AttendanceRepository) ByStudent(studentID string) ([]models.AttendanceRecord, error) {
	records, err := r.All()
	if err != nil {
		return nil, err
	}
	filtered := make([]models.AttendanceRecord, 0, len(records))
	for _, rec := range records {
		if rec.StudentID == studentID {
			filtered = append(filtered, rec)
		}
	}
	return filtered, nil
}

// Insert appends an attendance row. Duplicate (student, date) rows are
// allowed.
func (r *AttendanceRepository) Insert(record models.AttendanceRecord) error {
	records, err := r.All()
	if err != nil {
		return err
	}
	records = append(records, record)
	return r.store.Save(store.SlotAttendance, records)
}

// Delete removes the row with the given id. Returns false when absent.
func (r *AttendanceRepository) Delete(id string) (bool, error) {
	records, err := r.All()
	if err != nil {
		return false, err
	}
	for i := range records {
		if records[i].ID == id {
			records = append(records[:i], records[i+1:]...)
			return true, r.store.Save(store.SlotAttendance, records)
		}
	}
	return false, nil
}

// DeleteByStudent removes every row belonging to the student. Used by the
// cascade when a student is deleted.
func (r *AttendanceRepository) DeleteByStudent(studentID string) error {
	records, err := r.All()
	if err != nil {
		return err
	}
	kept := make([]models.AttendanceRecord, 0, len(records))
	for _, rec := range records {
		if rec.StudentID != studentID {
			kept = append(kept, rec)
		}
	}
	return r.store.Save(store.SlotAttendance, kept)
}

// ReplaceAll swaps the whole collection, used by import and reset.
func (r *AttendanceRepository) ReplaceAll(records []models.AttendanceRecord) error {
	if records == nil {
		records = []models.AttendanceRecord{}
	}
	return r.store.Save(store.SlotAttendance, records)
}
