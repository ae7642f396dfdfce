package models

// AttendanceStatus represents the status for attendance records.
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "Present"
	AttendanceStatusAbsent  AttendanceStatus = "Absent"
	AttendanceStatusTardy   AttendanceStatus = "Tardy"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusAbsent, AttendanceStatusTardy:
		return true
	default:
		return false
	}
}

// AttendanceRecord is a single attendance row. StudentID references a
// Student but is not enforced as a foreign key; duplicate (student, date)
// rows are permitted. ID is generated on insert.
type AttendanceRecord struct {
	ID        string           `json:"id"`
	StudentID string           `json:"userId"`
	Date      string           `json:"date"`
	Status    AttendanceStatus `json:"status"`
}
