package models

// Student represents a learner registered in the school. The ID keeps the
// "NN-NNNN-NNN" student-number format and is immutable after creation; it is
// the join key for attendance and grade rows.
type Student struct {
	ID        string  `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Track     string  `json:"track"`
	BirthDate string  `json:"birth"`
	Avatar    *string `json:"avatar"`
}

// FullName joins first and last name for display and search.
func (s Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

// StudentFilter encapsulates the search and paging parameters for listing
// students.
type StudentFilter struct {
	Search   string
	Page     int
	PageSize int
}

// Pagination describes the page of results a list call returned.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalCount int `json:"totalCount"`
	TotalPages int `json:"totalPages"`
}
