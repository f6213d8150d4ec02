package entities

// Topic is derived from meeting topic sets. Key is the case-folded identity,
// Name keeps the first-seen casing.
type Topic struct {
	Key          string         `json:"key"`
	Name         string         `json:"name"`
	MeetingIDs   []string       `json:"meeting_ids"`
	WorkgroupIDs []string       `json:"workgroup_ids"`
	CoOccurrence map[string]int `json:"co_occurrence"`
}

// DiscussedBy reports whether the workgroup discussed the topic at least once
func (t *Topic) DiscussedBy(workgroupID string) bool {
	for _, id := range t.WorkgroupIDs {
		if id == workgroupID {
			return true
		}
	}
	return false
}
