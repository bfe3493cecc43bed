package storage

// Days lists the schedule keys in display order, Monday first.
var Days = []string{"senin", "selasa", "rabu", "kamis", "jumat", "sabtu", "minggu"}

// IsDay reports whether key is one of Days.
func IsDay(key string) bool {
	for _, d := range Days {
		if d == key {
			return true
		}
	}
	return false
}

// Student represents a document in the students collection, keyed by
// lower-cased nickname.
type Student struct {
	Nickname string `json:"nickname"`
	Name     string `json:"name"`
	Class    string `json:"class"`
	Hobby    string `json:"hobby,omitempty"`
}

// ScheduleEntry represents a document in the schedule collection. An empty
// Subject means the day is off.
type ScheduleEntry struct {
	Day     string `json:"day"`
	Subject string `json:"subject,omitempty"`
}
