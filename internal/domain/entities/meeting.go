package entities

// WorkingDoc is a titled link attached to a meeting
type WorkingDoc struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// Meeting is one canonical occurrence of a workgroup meeting.
// Instances are built once by the ingest parser and must be treated as read-only afterwards.
type Meeting struct {
	ID               string       `json:"id"`
	WorkgroupID      string       `json:"workgroup_id"`
	WorkgroupName    string       `json:"workgroup"`
	Date             Date         `json:"date"`
	Host             string       `json:"host"`
	Documenter       string       `json:"documenter"`
	PeoplePresent    []string     `json:"people_present"`
	Purpose          string       `json:"purpose,omitempty"`
	MeetingType      string       `json:"type,omitempty"`
	TypeOfMeeting    string       `json:"type_of_meeting,omitempty"`
	VideoLink        string       `json:"video_link,omitempty"`
	WorkingDocs      []WorkingDoc `json:"working_docs"`
	DiscussionPoints []string     `json:"discussion_points"`
	TopicsCovered    []string     `json:"topics_covered"`
	Emotions         []string     `json:"emotions"`
	Decisions        []Decision   `json:"decisions"`
	ActionItems      []ActionItem `json:"action_items"`
	NoSummaryGiven   bool         `json:"no_summary_given"`
	Canceled         bool         `json:"canceled"`
}

// MatchesWorkgroup reports whether the given criterion names this meeting's workgroup,
// either by exact id or by case-insensitive display name
func (m *Meeting) MatchesWorkgroup(workgroup string) bool {
	return matchWorkgroup(m.WorkgroupID, m.WorkgroupName, workgroup)
}
