package entities

import (
	"encoding/json"
	"strings"
)

// ActionItemStatus represents the progress of an action item
type ActionItemStatus string

const (
	ActionItemStatusTodo       ActionItemStatus = "todo"
	ActionItemStatusInProgress ActionItemStatus = "inProgress"
	ActionItemStatusDone       ActionItemStatus = "done"
	ActionItemStatusCancelled  ActionItemStatus = "cancelled"
	ActionItemStatusUnknown    ActionItemStatus = "unknown"
)

// ActionItemStatuses lists the canonical statuses in display order
var ActionItemStatuses = []ActionItemStatus{
	ActionItemStatusTodo,
	ActionItemStatusInProgress,
	ActionItemStatusDone,
	ActionItemStatusCancelled,
	ActionItemStatusUnknown,
}

// ParseActionItemStatus maps a raw status case-insensitively onto the canonical set.
// An empty value is todo; an unrecognized one is unknown.
func ParseActionItemStatus(raw string) ActionItemStatus {
	if strings.TrimSpace(raw) == "" {
		return ActionItemStatusTodo
	}
	switch foldLetters(raw) {
	case "todo":
		return ActionItemStatusTodo
	case "inprogress", "started", "ongoing":
		return ActionItemStatusInProgress
	case "done", "complete", "completed", "finished":
		return ActionItemStatusDone
	case "cancelled", "canceled", "dropped":
		return ActionItemStatusCancelled
	default:
		return ActionItemStatusUnknown
	}
}

// LookupActionItemStatus resolves a status criterion. It reports false for an empty value
// and for anything that folds to neither a canonical status name nor a known synonym.
func LookupActionItemStatus(raw string) (ActionItemStatus, bool) {
	if strings.TrimSpace(raw) == "" {
		return "", false
	}
	folded := foldLetters(raw)
	for _, st := range ActionItemStatuses {
		if folded == foldLetters(string(st)) {
			return st, true
		}
	}
	if st := ParseActionItemStatus(raw); st != ActionItemStatusUnknown {
		return st, true
	}
	return "", false
}

// DueDate keeps a parsed calendar date when the raw value was parseable,
// otherwise the raw text for display
type DueDate struct {
	Date *Date  `json:"date,omitempty"`
	Text string `json:"text,omitempty"`
}

// IsZero reports whether no due date was given
func (d DueDate) IsZero() bool {
	return d.Date == nil && d.Text == ""
}

// String returns the ISO date when parsed, else the raw text
func (d DueDate) String() string {
	if d.Date != nil {
		return d.Date.String()
	}
	return d.Text
}

// MarshalJSON emits null for an absent due date
func (d DueDate) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	type plain DueDate
	return json.Marshal(plain(d))
}

// ActionItem is a task recorded in a meeting. It copies the parent's workgroup and date.
type ActionItem struct {
	ID          string           `json:"id"`
	MeetingID   string           `json:"meeting_id"`
	WorkgroupID string           `json:"workgroup_id"`
	Workgroup   string           `json:"workgroup"`
	Date        Date             `json:"date"`
	Text        string           `json:"text"`
	Assignee    string           `json:"assignee,omitempty"`
	DueDate     DueDate          `json:"due_date"`
	Status      ActionItemStatus `json:"status"`
}

// MatchesWorkgroup works like Meeting.MatchesWorkgroup
func (a *ActionItem) MatchesWorkgroup(workgroup string) bool {
	return matchWorkgroup(a.WorkgroupID, a.Workgroup, workgroup)
}
