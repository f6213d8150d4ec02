package ingest

import (
	"strconv"
	"strings"

	"github.com/johnquangdev/meeting-archive/internal/domain/entities"
)

// ToRecord re-expresses a canonical meeting in the raw archive shape. Normalizing the
// result yields the same meeting, including sub-entity ids: gaps left by skipped
// sub-records are padded with empty entries.
func ToRecord(m entities.Meeting) RawRecord {
	info := RawRecord{
		"date":          m.Date.String(),
		"host":          m.Host,
		"documenter":    m.Documenter,
		"peoplePresent": toAnyList(m.PeoplePresent),
		"workingDocs":   workingDocsRecord(m.WorkingDocs),
	}
	setIfNotEmpty(info, "purpose", m.Purpose)
	setIfNotEmpty(info, "typeOfMeeting", m.TypeOfMeeting)
	setIfNotEmpty(info, "meetingVideoLink", m.VideoLink)

	agenda := RawRecord{
		"discussionPoints": toAnyList(m.DiscussionPoints),
		"decisionItems":    decisionsRecord(m.Decisions),
		"actionItems":      actionItemsRecord(m.ActionItems),
	}

	rec := RawRecord{
		"workgroup_id": m.WorkgroupID,
		"workgroup":    m.WorkgroupName,
		"meetingInfo":  info,
		"agendaItems":  []any{agenda},
		"tags": RawRecord{
			"topicsCovered": toAnyList(m.TopicsCovered),
			"emotions":      toAnyList(m.Emotions),
		},
		"noSummaryGiven":  m.NoSummaryGiven,
		"canceledSummary": m.Canceled,
	}
	setIfNotEmpty(rec, "type", m.MeetingType)
	return rec
}

// ToRecords maps ToRecord over meetings
func ToRecords(meetings []entities.Meeting) []RawRecord {
	out := make([]RawRecord, len(meetings))
	for i, m := range meetings {
		out[i] = ToRecord(m)
	}
	return out
}

func decisionsRecord(decisions []entities.Decision) []any {
	out := []any{}
	for _, d := range decisions {
		out = padTo(out, sequenceOf(d.ID, "_decision_"))
		rec := RawRecord{
			"decision": d.Text,
			"effect":   string(d.Effect),
		}
		setIfNotEmpty(rec, "rationale", d.Rationale)
		setIfNotEmpty(rec, "opposing", d.Opposing)
		out = append(out, rec)
	}
	return out
}

func actionItemsRecord(items []entities.ActionItem) []any {
	out := []any{}
	for _, a := range items {
		out = padTo(out, sequenceOf(a.ID, "_action_"))
		rec := RawRecord{
			"text":   a.Text,
			"status": string(a.Status),
		}
		setIfNotEmpty(rec, "assignee", a.Assignee)
		setIfNotEmpty(rec, "dueDate", a.DueDate.String())
		out = append(out, rec)
	}
	return out
}

func workingDocsRecord(docs []entities.WorkingDoc) []any {
	out := make([]any, 0, len(docs))
	for _, d := range docs {
		out = append(out, RawRecord{"title": d.Title, "link": d.Link})
	}
	return out
}

// sequenceOf reads the trailing sequence number of a sub-entity id, -1 when absent
func sequenceOf(id, marker string) int {
	i := strings.LastIndex(id, marker)
	if i < 0 {
		return -1
	}
	n, err := strconv.Atoi(id[i+len(marker):])
	if err != nil {
		return -1
	}
	return n
}

func padTo(list []any, n int) []any {
	for len(list) < n {
		list = append(list, RawRecord{})
	}
	return list
}

func toAnyList(items []string) []any {
	out := make([]any, len(items))
	for i, s := range items {
		out[i] = s
	}
	return out
}

func setIfNotEmpty(rec RawRecord, key, value string) {
	if value != "" {
		rec[key] = value
	}
}
