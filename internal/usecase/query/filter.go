// Package query filters and flattens canonical meetings. Every function is pure:
// inputs are never modified and results keep input order.
package query

import (
	"fmt"
	"strings"

	"github.com/johnquangdev/meeting-archive/internal/domain/entities"
	ucerrors "github.com/johnquangdev/meeting-archive/internal/usecase/errors"
	"github.com/johnquangdev/meeting-archive/pkg/textnorm"
)

// MeetingFilter criteria are combined with AND. Tags match when any of them is among the
// meeting's topics. Date bounds are inclusive; zero values impose no constraint.
type MeetingFilter struct {
	Workgroup string
	StartDate *entities.Date
	EndDate   *entities.Date
	Tags      []string
}

func (f MeetingFilter) empty() bool {
	return strings.TrimSpace(f.Workgroup) == "" && f.StartDate == nil && f.EndDate == nil && len(tagSet(f.Tags)) == 0
}

// DecisionFilter narrows aggregated decisions
type DecisionFilter struct {
	Workgroup string
	StartDate *entities.Date
	EndDate   *entities.Date
}

// ActionItemFilter narrows aggregated action items. Assignee compares by person identity,
// Status by canonical status; a status outside the canonical set matches nothing.
type ActionItemFilter struct {
	Workgroup string
	Assignee  string
	Status    string
	StartDate *entities.Date
	EndDate   *entities.Date
}

// ValidateRange rejects a start bound that falls after the end bound
func ValidateRange(start, end *entities.Date) error {
	if start != nil && end != nil && start.After(*end) {
		return fmt.Errorf("%w: %s > %s", ucerrors.ErrInvalidDateRange, start, end)
	}
	return nil
}

// FilterMeetings returns the meetings matching every supplied criterion. With no
// criteria the input slice itself is returned.
func FilterMeetings(meetings []entities.Meeting, f MeetingFilter) []entities.Meeting {
	if f.empty() {
		return meetings
	}
	tags := tagSet(f.Tags)

	out := []entities.Meeting{}
	for i := range meetings {
		m := &meetings[i]
		if !m.MatchesWorkgroup(f.Workgroup) || !m.Date.InRange(f.StartDate, f.EndDate) {
			continue
		}
		if len(tags) > 0 && !hasAnyTopic(m, tags) {
			continue
		}
		out = append(out, *m)
	}
	return out
}

func tagSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		if k := textnorm.TopicKey(tag); k != "" {
			set[k] = struct{}{}
		}
	}
	return set
}

func hasAnyTopic(m *entities.Meeting, tags map[string]struct{}) bool {
	for _, topic := range m.TopicsCovered {
		if _, ok := tags[textnorm.TopicKey(topic)]; ok {
			return true
		}
	}
	return false
}

// FilterDecisions returns the decisions matching every supplied criterion
func FilterDecisions(decisions []entities.Decision, f DecisionFilter) []entities.Decision {
	out := []entities.Decision{}
	for i := range decisions {
		d := &decisions[i]
		if d.MatchesWorkgroup(f.Workgroup) && d.Date.InRange(f.StartDate, f.EndDate) {
			out = append(out, *d)
		}
	}
	return out
}

// FilterActionItems returns the action items matching every supplied criterion
func FilterActionItems(items []entities.ActionItem, f ActionItemFilter) []entities.ActionItem {
	assignee := ""
	if strings.TrimSpace(f.Assignee) != "" {
		assignee = textnorm.NameKey(f.Assignee)
	}
	var status entities.ActionItemStatus
	if strings.TrimSpace(f.Status) != "" {
		st, ok := entities.LookupActionItemStatus(f.Status)
		if !ok {
			return []entities.ActionItem{}
		}
		status = st
	}

	out := []entities.ActionItem{}
	for i := range items {
		a := &items[i]
		if !a.MatchesWorkgroup(f.Workgroup) || !a.Date.InRange(f.StartDate, f.EndDate) {
			continue
		}
		if assignee != "" && textnorm.NameKey(a.Assignee) != assignee {
			continue
		}
		if status != "" && a.Status != status {
			continue
		}
		out = append(out, *a)
	}
	return out
}
