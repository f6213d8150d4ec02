package entities

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSON(t *testing.T) {
	d := MustParseDate("2025-03-01")
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-03-01"`, string(b))

	var back Date
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, d.Equal(back))

	b, err = json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	err = json.Unmarshal([]byte(`"03/01/2025"`), &back)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestDate_InRange(t *testing.T) {
	start := MustParseDate("2025-02-01")
	end := MustParseDate("2025-02-28")

	assert.True(t, start.InRange(&start, &end))
	assert.True(t, end.InRange(&start, &end))
	assert.False(t, MustParseDate("2025-01-31").InRange(&start, &end))
	assert.False(t, MustParseDate("2025-03-01").InRange(&start, &end))
	assert.True(t, MustParseDate("1999-01-01").InRange(nil, &end))
	assert.True(t, MustParseDate("2099-01-01").InRange(&start, nil))
}

func TestParseActionItemStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want ActionItemStatus
	}{
		{"Done", ActionItemStatusDone},
		{"DONE", ActionItemStatusDone},
		{"done ", ActionItemStatusDone},
		{"completed", ActionItemStatusDone},
		{"", ActionItemStatusTodo},
		{"To Do", ActionItemStatusTodo},
		{"in progress", ActionItemStatusInProgress},
		{"inProgress", ActionItemStatusInProgress},
		{"Canceled", ActionItemStatusCancelled},
		{"cancelled", ActionItemStatusCancelled},
		{"blocked?", ActionItemStatusUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseActionItemStatus(tt.raw))
		})
	}
}

func TestLookupActionItemStatus(t *testing.T) {
	for _, st := range ActionItemStatuses {
		got, ok := LookupActionItemStatus(string(st))
		assert.True(t, ok, st)
		assert.Equal(t, st, got)
	}

	got, ok := LookupActionItemStatus("In Progress")
	assert.True(t, ok)
	assert.Equal(t, ActionItemStatusInProgress, got)

	for _, raw := range []string{"", "  ", "garbage", "blocked?"} {
		_, ok := LookupActionItemStatus(raw)
		assert.False(t, ok, raw)
	}
}

func TestParseDecisionEffect(t *testing.T) {
	assert.Equal(t, DecisionEffectOnlyThisWorkgroup, ParseDecisionEffect("affectsOnlyThisWorkgroup"))
	assert.Equal(t, DecisionEffectOnlyThisWorkgroup, ParseDecisionEffect("AFFECTS ONLY THIS WORKGROUP"))
	assert.Equal(t, DecisionEffectOtherPeople, ParseDecisionEffect("mayAffectOtherPeople"))
	assert.Equal(t, DecisionEffectOnlyThisWorkgroup, ParseDecisionEffect(""))
	assert.Equal(t, DecisionEffectOnlyThisWorkgroup, ParseDecisionEffect("  "))
	assert.Equal(t, DecisionEffectUnknown, ParseDecisionEffect("unknown"))
	assert.Equal(t, DecisionEffectUnknown, ParseDecisionEffect("everyone"))
}

func TestMeeting_MatchesWorkgroup(t *testing.T) {
	m := Meeting{WorkgroupID: "wg-1", WorkgroupName: "Research Guild"}
	assert.True(t, m.MatchesWorkgroup("wg-1"))
	assert.True(t, m.MatchesWorkgroup("research guild"))
	assert.True(t, m.MatchesWorkgroup(""))
	assert.False(t, m.MatchesWorkgroup("WG-1"))
	assert.False(t, m.MatchesWorkgroup("Archive Guild"))
}

func TestRegistry(t *testing.T) {
	r := NewRegistry[Workgroup](strings.ToLower)
	a := r.Upsert("Alpha", func(key string) *Workgroup { return &Workgroup{ID: key, Name: "Alpha"} })
	r.Upsert("Beta", func(key string) *Workgroup { return &Workgroup{ID: key, Name: "Beta"} })
	again := r.Upsert("ALPHA", func(key string) *Workgroup { return &Workgroup{ID: key, Name: "dup"} })

	assert.Same(t, a, again)
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []string{"alpha", "beta"}, r.Keys())

	got, ok := r.Get("aLpHa")
	require.True(t, ok)
	assert.Equal(t, "Alpha", got.Name)

	_, ok = r.Get("gamma")
	assert.False(t, ok)

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"name":"Alpha"`)
}

func TestGraph(t *testing.T) {
	g := NewGraph(GraphKindTopics)
	assert.True(t, g.AddNode(Node{ID: "topic:a", Kind: NodeKindTopic, Label: "A"}))
	assert.False(t, g.AddNode(Node{ID: "topic:a", Kind: NodeKindTopic, Label: "again"}))
	g.AddNode(Node{ID: "topic:b", Kind: NodeKindTopic, Label: "B"})
	g.AddNode(Node{ID: "topic:c", Kind: NodeKindTopic, Label: "C"})

	g.AddWeight("topic:a", "topic:b", 1)
	g.AddWeight("topic:b", "topic:a", 1)
	g.AddWeight("topic:a", "topic:a", 1)

	assert.Equal(t, 2, g.EdgeWeight("topic:a", "topic:b"))
	assert.Equal(t, 2, g.EdgeWeight("topic:b", "topic:a"))
	assert.Equal(t, 0, g.EdgeWeight("topic:a", "topic:c"))
	assert.Equal(t, 1, g.EdgeCount())
	assert.Equal(t, 3, g.NodeCount())
	assert.Equal(t, []string{"topic:b"}, g.Neighbors("topic:a"))
	assert.Empty(t, g.Neighbors("topic:c"))

	n, ok := g.Node("topic:a")
	require.True(t, ok)
	assert.Equal(t, "A", n.Label)

	b, err := json.Marshal(g)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"kind":"topics",
		"nodes":[{"id":"topic:a","kind":"topic","label":"A"},{"id":"topic:b","kind":"topic","label":"B"},{"id":"topic:c","kind":"topic","label":"C"}],
		"edges":[{"source":"topic:a","target":"topic:b","weight":2}]
	}`, string(b))
}
