package repository

import (
	"github.com/schooldesk/csr/internal/models"
	"github.com/schooldesk/csr/internal/store"
)

// ScheduleRepository provides persistence for the global class schedule.
type ScheduleRepository struct {
	store *store.Store
}

// NewScheduleRepository creates a new schedule repository.
func NewScheduleRepository(s *store.Store) *ScheduleRepository {
	return &ScheduleRepository{store: s}
}

// All returns the full schedule in stored order.
func (r *ScheduleRepository) All() ([]models.ScheduleEntry, error) {
	var entries []models.ScheduleEntry
	if err := r.store.Load(store.SlotSchedule, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Insert appends a schedule entry.
func (r *ScheduleRepository) Insert(entry models.ScheduleEntry) error {
	entries, err := r.All()
	if err != nil {
		return err
	}
	entries = append(entries, entry)
	return r.store.Save(store.SlotSchedule, entries)
}

// Delete removes the entry with the given id. Returns false when absent.
func (r *ScheduleRepository) Delete(id string) (bool, error) {
	entries, err := r.All()
	if err != nil {
		return false, err
	}
	for i := range entries {
		if entries[i].ID == id {
			entries = append(entries[:i], entries[i+1:]...)
			return true, r.store.Save(store.SlotSchedule, entries)
		}
	}
	return false, nil
}

// ReplaceAll swaps the whole schedule, used by import and reset.
func (r *ScheduleRepository) ReplaceAll(entries []models.ScheduleEntry) error {
	if entries == nil {
		entries = []models.ScheduleEntry{}
	}
	return r.store.Save(store.SlotSchedule, entries)
}
