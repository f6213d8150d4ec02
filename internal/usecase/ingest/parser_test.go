package ingest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-archive/internal/domain/entities"
)

const sampleArchive = `[
  {
    "workgroup": "Research Guild",
    "workgroup_id": "wg-research",
    "type": "Custom",
    "meetingInfo": {
      "date": "2025-03-01",
      "host": "  Alice   Smith ",
      "documenter": "Bob [SNet]",
      "peoplePresent": "Alice Smith, Bob, carol ,alice smith",
      "purpose": "Monthly sync",
      "workingDocs": [{"title": "Notes", "link": "https://example.org/notes"}, {}]
    },
    "agendaItems": [
      {
        "discussionPoints": ["Budget review"],
        "decisionItems": [
          {"decision": "Adopt plan A", "effect": "affectsOnlyThisWorkgroup", "rationale": "cheapest"},
          {"decision": ""},
          {"decision": "Publish notes", "effect": "Everyone"}
        ],
        "actionItems": [
          {"text": "Draft budget", "assignee": "Carol", "status": "Done", "dueDate": "2025-03-15"},
          {"text": "Ping treasury", "dueDate": "next week"}
        ]
      },
      {"narrative": "We talked about onboarding."}
    ],
    "tags": {"topicsCovered": "Budget, Governance", "emotions": "calm, Calm"},
    "meetingTopics": ["governance", "Onboarding"]
  },
  {
    "workgroup": "Research Guild",
    "workgroup_id": "wg-research",
    "meetingInfo": {"date": "2025-03-01"}
  },
  {
    "workgroup": "Archive Guild",
    "meetingInfo": {"date": "2025-03-02"}
  },
  "not a record"
]`

func mustNormalize(t *testing.T, doc string) Result {
	t.Helper()
	records, err := DecodeArchive([]byte(doc))
	require.NoError(t, err)
	return NewParser(nil).Normalize(records)
}

func TestDecodeArchive_NotSequence(t *testing.T) {
	for _, doc := range []string{`{"workgroup": "x"}`, `"text"`, `42`, `not json`, ``} {
		t.Run(doc, func(t *testing.T) {
			_, err := DecodeArchive([]byte(doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, entities.ErrNotSequence)
		})
	}
}

func TestNormalizeValue_NotSequence(t *testing.T) {
	_, err := NewParser(nil).NormalizeValue(map[string]any{"workgroup": "x"})
	assert.ErrorIs(t, err, entities.ErrNotSequence)

	res, err := NewParser(nil).NormalizeValue([]any{})
	require.NoError(t, err)
	assert.Empty(t, res.Meetings)
	assert.Empty(t, res.Diagnostics)
}

func TestNormalize_Meeting(t *testing.T) {
	res := mustNormalize(t, sampleArchive)
	require.Len(t, res.Meetings, 2)

	m := res.Meetings[0]
	assert.Equal(t, "wg-research_2025-03-01_0", m.ID)
	assert.Equal(t, "Research Guild", m.WorkgroupName)
	assert.Equal(t, "2025-03-01", m.Date.String())
	assert.Equal(t, "Alice Smith", m.Host)
	assert.Equal(t, "Bob [SNet]", m.Documenter)
	assert.Equal(t, []string{"Alice Smith", "Bob", "carol"}, m.PeoplePresent)
	assert.Equal(t, []entities.WorkingDoc{{Title: "Notes", Link: "https://example.org/notes"}}, m.WorkingDocs)
	assert.Equal(t, "Custom", m.MeetingType)
	assert.Equal(t, []string{"calm"}, m.Emotions)

	second := res.Meetings[1]
	assert.Equal(t, "wg-research_2025-03-01_1", second.ID)
	assert.Empty(t, second.PeoplePresent)
	assert.NotNil(t, second.PeoplePresent)
	assert.Empty(t, second.DiscussionPoints)
	assert.Empty(t, second.TopicsCovered)
	assert.Empty(t, second.Decisions)
}

func TestNormalize_AgendaMerge(t *testing.T) {
	m := mustNormalize(t, sampleArchive).Meetings[0]

	assert.Equal(t, []string{
		"Budget review",
		"We talked about onboarding.",
		"governance",
		"Onboarding",
	}, m.DiscussionPoints)
	assert.Equal(t, []string{"Budget", "Governance", "Onboarding"}, m.TopicsCovered)
}

func TestNormalize_NarrativeAndLabels(t *testing.T) {
	res := mustNormalize(t, `[{
		"workgroup": "G", "workgroup_id": "g",
		"meetingInfo": {"date": "2025-01-10"},
		"agendaItems": [{"narrative": "Short update"}],
		"meetingTopics": "alpha, beta"
	}]`)
	require.Len(t, res.Meetings, 1)
	m := res.Meetings[0]
	assert.Equal(t, []string{"Short update", "alpha", "beta"}, m.DiscussionPoints)
	assert.ElementsMatch(t, []string{"alpha", "beta"}, m.TopicsCovered)
}

func TestNormalize_SubEntities(t *testing.T) {
	m := mustNormalize(t, sampleArchive).Meetings[0]

	require.Len(t, m.Decisions, 2)
	assert.Equal(t, "wg-research_2025-03-01_0_decision_0", m.Decisions[0].ID)
	assert.Equal(t, entities.DecisionEffectOnlyThisWorkgroup, m.Decisions[0].Effect)
	assert.Equal(t, "cheapest", m.Decisions[0].Rationale)
	assert.Equal(t, "wg-research_2025-03-01_0_decision_2", m.Decisions[1].ID)
	assert.Equal(t, entities.DecisionEffectUnknown, m.Decisions[1].Effect)
	for _, d := range m.Decisions {
		assert.Equal(t, m.ID, d.MeetingID)
		assert.Equal(t, "Research Guild", d.Workgroup)
		assert.True(t, m.Date.Equal(d.Date))
	}

	require.Len(t, m.ActionItems, 2)
	done := m.ActionItems[0]
	assert.Equal(t, "wg-research_2025-03-01_0_action_0", done.ID)
	assert.Equal(t, entities.ActionItemStatusDone, done.Status)
	assert.Equal(t, "Carol", done.Assignee)
	require.NotNil(t, done.DueDate.Date)
	assert.Equal(t, "2025-03-15", done.DueDate.Date.String())

	pending := m.ActionItems[1]
	assert.Equal(t, entities.ActionItemStatusTodo, pending.Status)
	assert.Nil(t, pending.DueDate.Date)
	assert.Equal(t, "next week", pending.DueDate.Text)
}

func TestNormalize_Isolation(t *testing.T) {
	good := `{"workgroup": "G", "workgroup_id": "g", "meetingInfo": {"date": "2025-01-0%d"}}`
	bad := `{"workgroup": "G", "workgroup_id": "g", "meetingInfo": {"date": "whenever"}}`

	for pos := 0; pos < 4; pos++ {
		var items []string
		day := 1
		for i := 0; i < 4; i++ {
			if i == pos {
				items = append(items, bad)
				continue
			}
			items = append(items, fmt.Sprintf(good, day))
			day++
		}
		res := mustNormalize(t, "["+strings.Join(items, ",")+"]")
		assert.Len(t, res.Meetings, 3, "bad record at %d", pos)
		require.Len(t, res.Diagnostics, 1)
		assert.Equal(t, pos, res.Diagnostics[0].Index)
		assert.ErrorIs(t, res.Diagnostics[0].Err, entities.ErrInvalidDate)
	}
}

func TestNormalize_Diagnostics(t *testing.T) {
	res := mustNormalize(t, sampleArchive)
	require.Len(t, res.Diagnostics, 2)

	assert.Equal(t, 2, res.Diagnostics[0].Index)
	assert.ErrorIs(t, res.Diagnostics[0].Err, entities.ErrMissingWorkgroupID)
	assert.Equal(t, 3, res.Diagnostics[1].Index)
	assert.ErrorIs(t, res.Diagnostics[1].Err, entities.ErrRecordNotObject)
}

func TestNormalize_RequiredFields(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"missing name", `[{"workgroup_id": "g", "meetingInfo": {"date": "2025-01-01"}}]`, entities.ErrMissingWorkgroupName},
		{"missing date", `[{"workgroup_id": "g", "workgroup": "G", "meetingInfo": {}}]`, entities.ErrMissingDate},
		{"numeric id accepted", `[{"workgroup_id": 7, "workgroup": "G", "meetingInfo": {"date": "2025-01-01"}}]`, nil},
		{"top-level date", `[{"workgroupId": "g", "workgroupName": "G", "date": "Jan 5, 2025"}]`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := mustNormalize(t, tt.doc)
			if tt.want == nil {
				assert.Len(t, res.Meetings, 1)
				assert.Empty(t, res.Diagnostics)
				return
			}
			require.Len(t, res.Diagnostics, 1)
			assert.ErrorIs(t, res.Diagnostics[0].Err, tt.want)
		})
	}
}

func TestNormalize_StatusNormalization(t *testing.T) {
	res := mustNormalize(t, `[{
		"workgroup": "G", "workgroup_id": "g", "meetingInfo": {"date": "2025-01-01"},
		"agendaItems": [{"actionItems": [
			{"text": "a", "status": "Done"},
			{"text": "b", "status": "DONE"},
			{"text": "c", "status": "done "},
			{"text": "d", "status": "stalled"}
		]}]
	}]`)
	items := res.Meetings[0].ActionItems
	require.Len(t, items, 4)
	for _, a := range items[:3] {
		assert.Equal(t, entities.ActionItemStatusDone, a.Status)
	}
	assert.Equal(t, entities.ActionItemStatusUnknown, items[3].Status)
}

func TestNormalize_Determinism(t *testing.T) {
	first := mustNormalize(t, sampleArchive)
	second := mustNormalize(t, sampleArchive)
	assert.Equal(t, first, second)
}

func TestNormalize_Idempotence(t *testing.T) {
	first := mustNormalize(t, sampleArchive)
	again := NewParser(nil).Normalize(ToRecords(first.Meetings))

	assert.Empty(t, again.Diagnostics)
	assert.Equal(t, first.Meetings, again.Meetings)
}

func TestNormalize_AbsentEffectAffectsOnlyThisWorkgroup(t *testing.T) {
	m := mustNormalize(t, `[{
		"workgroup": "Research Guild",
		"workgroup_id": "wg-research",
		"meetingInfo": {"date": "2025-03-01"},
		"agendaItems": [{"decisionItems": [{"decision": "d"}, {"decision": "e", "effect": "sideways"}]}]
	}]`).Meetings[0]

	require.Len(t, m.Decisions, 2)
	assert.Equal(t, entities.DecisionEffectOnlyThisWorkgroup, m.Decisions[0].Effect)
	assert.Equal(t, entities.DecisionEffectUnknown, m.Decisions[1].Effect)
}

func TestNormalize_TopicLabelListKeepsLabelsWhole(t *testing.T) {
	m := mustNormalize(t, `[{
		"workgroup": "G", "workgroup_id": "g",
		"meetingInfo": {"date": "2025-01-10"},
		"meetingTopics": ["Research, Development", "Ops"]
	}]`).Meetings[0]

	assert.Equal(t, []string{"Research, Development", "Ops"}, m.DiscussionPoints)
	assert.Equal(t, []string{"Research, Development", "Ops"}, m.TopicsCovered)
}
