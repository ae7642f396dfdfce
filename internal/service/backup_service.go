package service

import (
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/schooldesk/csr/internal/models"
	"github.com/schooldesk/csr/internal/store"
	appErrors "github.com/schooldesk/csr/pkg/errors"
)

// Document is the export file shape: one JSON object holding snapshots of
// the four collections under fixed field names.
type Document struct {
	Users      []models.Student          `json:"users"`
	Attendance []models.AttendanceRecord `json:"attendance"`
	Grades     []models.GradeRecord      `json:"grades"`
	Schedule   []models.ScheduleEntry    `json:"schedule"`
}

type backupStudentRepo interface {
	All() ([]models.Student, error)
	ReplaceAll(students []models.Student) error
}

type backupAttendanceRepo interface {
	All() ([]models.AttendanceRecord, error)
	ReplaceAll(records []models.AttendanceRecord) error
}

type backupGradeRepo interface {
	All() ([]models.GradeRecord, error)
	ReplaceAll(grades []models.GradeRecord) error
}

type backupScheduleRepo interface {
	All() ([]models.ScheduleEntry, error)
	ReplaceAll(entries []models.ScheduleEntry) error
}

// BackupService serializes the whole database to a single JSON document and
// back, and owns the destructive reset.
type BackupService struct {
	students   backupStudentRepo
	attendance backupAttendanceRepo
	grades     backupGradeRepo
	schedule   backupScheduleRepo
	store      *store.Store
	logger     *zap.Logger
}

// NewBackupService constructs the backup service.
func NewBackupService(students backupStudentRepo, attendance backupAttendanceRepo, grades backupGradeRepo, schedule backupScheduleRepo, st *store.Store, logger *zap.Logger) *BackupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BackupService{
		students:   students,
		attendance: attendance,
		grades:     grades,
		schedule:   schedule,
		store:      st,
		logger:     logger,
	}
}

// Export returns the pretty-printed JSON snapshot of all four collections.
func (s *BackupService) Export() ([]byte, error) {
	doc, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to encode export")
	}
	return data, nil
}

// Import replaces all four collections with the document contents. The
// document is parsed in full before anything is written, so a malformed file
// leaves existing data untouched. Missing keys default to empty collections.
func (s *BackupService) Import(data []byte) error {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return appErrors.Wrap(err, appErrors.ErrParse.Code, "invalid JSON document")
	}
	ensureRecordIDs(&doc)
	if err := s.students.ReplaceAll(doc.Users); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to import students")
	}
	if err := s.attendance.ReplaceAll(doc.Attendance); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to import attendance")
	}
	if err := s.grades.ReplaceAll(doc.Grades); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to import grades")
	}
	if err := s.schedule.ReplaceAll(doc.Schedule); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to import schedule")
	}
	s.logger.Info("import complete",
		zap.Int("students", len(doc.Users)),
		zap.Int("attendance", len(doc.Attendance)),
		zap.Int("grades", len(doc.Grades)),
		zap.Int("schedule", len(doc.Schedule)))
	return nil
}

// ResetAll erases the four collections. Confirmation is the caller's
// responsibility.
func (s *BackupService) ResetAll() error {
	for _, slot := range []string{store.SlotUsers, store.SlotAttendance, store.SlotGrades, store.SlotSchedule} {
		if err := s.store.Remove(slot); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to reset data")
		}
	}
	s.logger.Warn("all collections erased")
	return nil
}

// Seeded reports whether the users slot exists at all.
func (s *BackupService) Seeded() bool {
	return s.store.HasUsers()
}

// SeedDemo loads the demo dataset used on first boot.
func (s *BackupService) SeedDemo() error {
	doc := Document{
		Users: []models.Student{
			{ID: "12-1234-567", FirstName: "Juan", LastName: "Dela Cruz", Track: "ICT", BirthDate: "2005-05-31"},
			{ID: "13-1111-888", FirstName: "Maria", LastName: "Santos", Track: "ICT", BirthDate: "2005-08-12"},
			{ID: "14-2222-333", FirstName: "Ana", LastName: "Reyes", Track: "ICT", BirthDate: "2005-01-10"},
			{ID: "15-3333-444", FirstName: "Mark", LastName: "Lopez", Track: "ICT", BirthDate: "2005-02-02"},
		},
		Attendance: []models.AttendanceRecord{
			{StudentID: "12-1234-567", Date: "2025-08-09", Status: models.AttendanceStatusAbsent},
			{StudentID: "12-1234-567", Date: "2025-08-08", Status: models.AttendanceStatusTardy},
			{StudentID: "13-1111-888", Date: "2025-08-08", Status: models.AttendanceStatusAbsent},
		},
		Grades: []models.GradeRecord{
			{StudentID: "12-1234-567", SchoolYear: "2024-2025", Semester: models.SemesterFirst, Subject: "Math", Grade: 90},
			{StudentID: "12-1234-567", SchoolYear: "2024-2025", Semester: models.SemesterFirst, Subject: "English", Grade: 88},
		},
		Schedule: []models.ScheduleEntry{
			{Subject: "Math", Time: "8:00 - 9:00", Days: "Mon-Fri", Room: "101", Teacher: "Mr. Cruz"},
			{Subject: "English", Time: "9:00 - 10:00", Days: "Mon-Fri", Room: "102", Teacher: "Ms. Santos"},
		},
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to encode demo data")
	}
	s.logger.Info("seeding demo data")
	return s.Import(data)
}

func (s *BackupService) snapshot() (*Document, error) {
	users, err := s.students.All()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to read students")
	}
	attendance, err := s.attendance.All()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to read attendance")
	}
	grades, err := s.grades.All()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to read grades")
	}
	schedule, err := s.schedule.All()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to read schedule")
	}
	if users == nil {
		users = []models.Student{}
	}
	if attendance == nil {
		attendance = []models.AttendanceRecord{}
	}
	if grades == nil {
		grades = []models.GradeRecord{}
	}
	if schedule == nil {
		schedule = []models.ScheduleEntry{}
	}
	return &Document{Users: users, Attendance: attendance, Grades: grades, Schedule: schedule}, nil
}

// ensureRecordIDs backfills generated ids on imported rows that lack them,
// e.g. documents produced by older exports. Rows that already carry ids keep
// them, so an export/import round trip is element-for-element identical.
func ensureRecordIDs(doc *Document) {
	for i := range doc.Attendance {
		if doc.Attendance[i].ID == "" {
			doc.Attendance[i].ID = uuid.NewString()
		}
	}
	for i := range doc.Grades {
		if doc.Grades[i].ID == "" {
			doc.Grades[i].ID = uuid.NewString()
		}
	}
	for i := range doc.Schedule {
		if doc.Schedule[i].ID == "" {
			doc.Schedule[i].ID = uuid.NewString()
		}
	}
}
