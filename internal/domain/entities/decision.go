package entities

import (
	"strings"
	"unicode"
)

// DecisionEffect describes who a decision affects
type DecisionEffect string

const (
	DecisionEffectOnlyThisWorkgroup DecisionEffect = "affectsOnlyThisWorkgroup"
	DecisionEffectOtherPeople       DecisionEffect = "mayAffectOtherPeople"
	DecisionEffectUnknown           DecisionEffect = "unknown"
)

// ParseDecisionEffect maps a raw effect value onto the canonical set.
// Matching ignores case, whitespace and punctuation. An empty value affects only this
// workgroup; anything unrecognized is unknown.
func ParseDecisionEffect(raw string) DecisionEffect {
	if strings.TrimSpace(raw) == "" {
		return DecisionEffectOnlyThisWorkgroup
	}
	switch foldLetters(raw) {
	case "affectsonlythisworkgroup":
		return DecisionEffectOnlyThisWorkgroup
	case "mayaffectotherpeople":
		return DecisionEffectOtherPeople
	default:
		return DecisionEffectUnknown
	}
}

// Decision is a decision recorded in a meeting. It copies the parent's workgroup and date.
type Decision struct {
	ID          string         `json:"id"`
	MeetingID   string         `json:"meeting_id"`
	WorkgroupID string         `json:"workgroup_id"`
	Workgroup   string         `json:"workgroup"`
	Date        Date           `json:"date"`
	Text        string         `json:"text"`
	Rationale   string         `json:"rationale,omitempty"`
	Effect      DecisionEffect `json:"effect"`
	Opposing    string         `json:"opposing,omitempty"`
}

// MatchesWorkgroup works like Meeting.MatchesWorkgroup
func (d *Decision) MatchesWorkgroup(workgroup string) bool {
	return matchWorkgroup(d.WorkgroupID, d.Workgroup, workgroup)
}

func matchWorkgroup(id, name, criterion string) bool {
	criterion = strings.TrimSpace(criterion)
	if criterion == "" {
		return true
	}
	return id == criterion || strings.EqualFold(strings.TrimSpace(name), criterion)
}

// foldLetters lower-cases s and keeps only letters, so "May affect other-people" and
// "mayAffectOtherPeople" compare equal
func foldLetters(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
