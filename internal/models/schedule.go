package models

// ScheduleEntry is one row of the global class schedule. Time and Days are
// free text ("8:00 - 9:00", "Mon-Fri"). ID is generated on insert.
type ScheduleEntry struct {
	ID      string `json:"id"`
	Subject string `json:"subject"`
	Time    string `json:"time"`
	Days    string `json:"days"`
	Room    string `json:"room"`
	Teacher string `json:"teacher"`
}
