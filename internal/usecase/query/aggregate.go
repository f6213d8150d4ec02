package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/johnquangdev/meeting-archive/internal/domain/entities"
	ucerrors "github.com/johnquangdev/meeting-archive/internal/usecase/errors"
)

// AggregateDecisions flattens the decisions of meetings in meeting order. Each decision
// carries its parent's workgroup and date, filled in from the meeting when missing.
func AggregateDecisions(meetings []entities.Meeting) []entities.Decision {
	out := []entities.Decision{}
	for i := range meetings {
		m := &meetings[i]
		for _, d := range m.Decisions {
			if d.MeetingID == "" {
				d.MeetingID = m.ID
			}
			if d.WorkgroupID == "" {
				d.WorkgroupID = m.WorkgroupID
			}
			if d.Workgroup == "" {
				d.Workgroup = m.WorkgroupName
			}
			if d.Date.IsZero() {
				d.Date = m.Date
			}
			out = append(out, d)
		}
	}
	return out
}

// AggregateActionItems flattens the action items of meetings like AggregateDecisions
func AggregateActionItems(meetings []entities.Meeting) []entities.ActionItem {
	out := []entities.ActionItem{}
	for i := range meetings {
		m := &meetings[i]
		for _, a := range m.ActionItems {
			if a.MeetingID == "" {
				a.MeetingID = m.ID
			}
			if a.WorkgroupID == "" {
				a.WorkgroupID = m.WorkgroupID
			}
			if a.Workgroup == "" {
				a.Workgroup = m.WorkgroupName
			}
			if a.Date.IsZero() {
				a.Date = m.Date
			}
			out = append(out, a)
		}
	}
	return out
}

// SortOrder orders a workgroup's meetings by date
type SortOrder string

const (
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
)

// ParseSortOrder accepts "newest", "oldest" or empty (newest)
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortNewest:
		return SortNewest, nil
	case SortOldest:
		return SortOldest, nil
	default:
		return "", fmt.Errorf("%w: %q", ucerrors.ErrInvalidSortOrder, s)
	}
}

// MeetingsByWorkgroup returns the workgroup's meetings sorted by date. Meetings on the
// same day keep their input order.
func MeetingsByWorkgroup(meetings []entities.Meeting, workgroup string, order SortOrder) []entities.Meeting {
	out := []entities.Meeting{}
	for i := range meetings {
		if meetings[i].MatchesWorkgroup(workgroup) {
			out = append(out, meetings[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if order == SortOldest {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Date.After(out[j].Date)
	})
	return out
}
