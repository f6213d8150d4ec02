package entities

// Workgroup is derived from the meetings that name it
type Workgroup struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	MeetingCount int      `json:"meeting_count"`
	MeetingIDs   []string `json:"meeting_ids"`
}
