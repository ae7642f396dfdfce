package models

// Semester is one of the two academic terms within a school year.
type Semester string

const (
	SemesterFirst  Semester = "1st Semester"
	SemesterSecond Semester = "2nd Semester"
)

// Valid returns true when the semester is a supported value.
func (s Semester) Valid() bool {
	return s == SemesterFirst || s == SemesterSecond
}

// GradeRecord is a single subject grade for a student in a school year and
// semester. ID is generated on insert.
type GradeRecord struct {
	ID         string   `json:"id"`
	StudentID  string   `json:"userId"`
	SchoolYear string   `json:"schoolYear"`
	Semester   Semester `json:"semester"`
	Subject    string   `json:"subject"`
	Grade      int      `json:"grade"`
}
