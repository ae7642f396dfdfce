// Package store is the persistent layer: four named slots holding
// JSON-serialized collections, plus the theme preference. Every slot is
// loaded and saved whole; there is no partial update. Slot names carry a
// trailing schema tag so a future format change gets a fresh file instead of
// colliding with old data.
package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/schooldesk/csr/pkg/storage"
)

// Slot names. The _v1 suffix is the schema tag.
const (
	SlotUsers      = "csr_users_v1.json"
	SlotAttendance = "csr_attendance_v1.json"
	SlotGrades     = "csr_grades_v1.json"
	SlotSchedule   = "csr_schedule_v1.json"
	slotTheme      = "csr_theme_v1.json"
)

// Store reads and writes whole collections atomically per call.
type Store struct {
	fs *storage.LocalStorage
}

// New wraps a LocalStorage handle.
func New(fs *storage.LocalStorage) *Store {
	return &Store{fs: fs}
}

// Load unmarshals a slot into dest. A missing slot leaves dest untouched and
// returns nil, so callers start from their zero value.
func (s *Store) Load(slot string, dest any) error {
	data, err := s.fs.Read(slot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("load slot %s: %w", slot, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decode slot %s: %w", slot, err)
	}
	return nil
}

// Save marshals v and replaces the slot contents. The underlying write is
// atomic (temp file + rename).
func (s *Store) Save(slot string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode slot %s: %w", slot, err)
	}
	if _, err := s.fs.Save(slot, data); err != nil {
		return fmt.Errorf("save slot %s: %w", slot, err)
	}
	return nil
}

// Remove deletes a slot. Removing an absent slot is not an error.
func (s *Store) Remove(slot string) error {
	return s.fs.Delete(slot)
}

// HasUsers reports whether the users slot exists at all, which is how first
// boot is detected.
func (s *Store) HasUsers() bool {
	return s.fs.Exists(SlotUsers)
}

// Theme returns the persisted theme preference, defaulting to "light".
func (s *Store) Theme() string {
	var theme string
	if err := s.Load(slotTheme, &theme); err != nil || theme == "" {
		return "light"
	}
	return theme
}

// SetTheme persists the theme preference.
func (s *Store) SetTheme(theme string) error {
	return s.Save(slotTheme, theme)
}
