package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-archive/internal/domain/entities"
	ucerrors "github.com/johnquangdev/meeting-archive/internal/usecase/errors"
)

func date(s string) *entities.Date {
	d := entities.MustParseDate(s)
	return &d
}

func fixtures() []entities.Meeting {
	return []entities.Meeting{
		{
			ID: "a_2025-01-10_0", WorkgroupID: "a", WorkgroupName: "Alpha", Date: *date("2025-01-10"),
			Host: "Alice", Documenter: "Bob [SNet]", PeoplePresent: []string{"alice", "Carol"},
			TopicsCovered: []string{"Budget", "Governance"},
			ActionItems: []entities.ActionItem{
				{ID: "a_2025-01-10_0_action_0", Assignee: "Dave"},
				{ID: "a_2025-01-10_0_action_1", Assignee: "carol"},
			},
		},
		{
			ID: "a_2025-02-10_0", WorkgroupID: "a", WorkgroupName: "Alpha", Date: *date("2025-02-10"),
			Host: "Bob", PeoplePresent: []string{"Alice"},
			TopicsCovered: []string{"budget", "Tokenomics"},
		},
		{
			ID: "b_2025-02-11_0", WorkgroupID: "b", WorkgroupName: "Beta", Date: *date("2025-02-11"),
			Host: "Alice", TopicsCovered: []string{"Onboarding"},
		},
	}
}

func TestBuildEntities_Persons(t *testing.T) {
	ents := BuildEntities(fixtures())
	assert.Equal(t, []string{"alice", "bob", "carol", "dave"}, ents.Persons.Keys())

	alice, ok := ents.Persons.Get("  ALICE ")
	require.True(t, ok)
	assert.Equal(t, "Alice", alice.Name)
	assert.Equal(t, []string{"a", "b"}, alice.WorkgroupIDs)
	assert.Equal(t, []string{"a_2025-01-10_0", "a_2025-02-10_0", "b_2025-02-11_0"}, alice.MeetingIDs)
	assert.ElementsMatch(t, []entities.Role{entities.RoleHost, entities.RoleParticipant}, alice.Roles["a"])
	assert.Equal(t, []entities.Role{entities.RoleHost}, alice.Roles["b"])

	bob, ok := ents.Persons.Get("Bob")
	require.True(t, ok)
	assert.Equal(t, "Bob [SNet]", bob.Name)
	assert.True(t, bob.HasRole("a", entities.RoleDocumenter))
	assert.True(t, bob.HasRole("a", entities.RoleHost))

	carol, _ := ents.Persons.Get("Carol")
	assert.Equal(t, []string{"a_2025-01-10_0"}, carol.MeetingIDs)
	assert.Equal(t, []string{"a_2025-01-10_0_action_1"}, carol.ActionItemIDs)

	dave, ok := ents.Persons.Get("dave")
	require.True(t, ok)
	assert.Equal(t, []entities.Role{entities.RoleParticipant}, dave.Roles["a"])
	assert.Equal(t, []string{"a_2025-01-10_0_action_0"}, dave.ActionItemIDs)
}

func TestBuildEntities_TopicsAndWorkgroups(t *testing.T) {
	ents := BuildEntities(fixtures())

	budget, ok := ents.Topics.Get("BUDGET")
	require.True(t, ok)
	assert.Equal(t, "Budget", budget.Name)
	assert.Equal(t, []string{"a_2025-01-10_0", "a_2025-02-10_0"}, budget.MeetingIDs)
	assert.Equal(t, []string{"a"}, budget.WorkgroupIDs)
	assert.Equal(t, map[string]int{"governance": 1, "tokenomics": 1}, budget.CoOccurrence)

	onboarding, _ := ents.Topics.Get("onboarding")
	assert.Empty(t, onboarding.CoOccurrence)

	alpha, ok := ents.Workgroups.Get("a")
	require.True(t, ok)
	assert.Equal(t, "Alpha", alpha.Name)
	assert.Equal(t, 2, alpha.MeetingCount)

	assert.Len(t, ents.TopicsForWorkgroup("a"), 3)
	assert.Len(t, ents.PeopleForWorkgroup("b"), 1)
	assert.Empty(t, ents.PeopleForWorkgroup("missing"))
}

func TestBuildEntities_Deterministic(t *testing.T) {
	first, second := BuildEntities(fixtures()), BuildEntities(fixtures())
	assert.Equal(t, first.Persons.All(), second.Persons.All())
	assert.Equal(t, first.Topics.All(), second.Topics.All())
	assert.Equal(t, first.Workgroups.All(), second.Workgroups.All())
	assert.Equal(t, BuildTopicGraph(fixtures()), BuildTopicGraph(fixtures()))
	assert.Equal(t, BuildParticipationGraph(fixtures()), BuildParticipationGraph(fixtures()))
}

func TestBuildParticipationGraph(t *testing.T) {
	g := BuildParticipationGraph(fixtures())
	alice := entities.PersonNodeID("alice")
	wgA := entities.WorkgroupNodeID("a")

	assert.Equal(t, 2, g.EdgeWeight(alice, wgA))
	assert.Equal(t, 2, g.EdgeWeight(wgA, alice))
	assert.Equal(t, 1, g.EdgeWeight(alice, entities.WorkgroupNodeID("b")))
	assert.Equal(t, 2, g.EdgeWeight(entities.PersonNodeID("bob"), wgA))
	assert.Equal(t, 1, g.EdgeWeight(entities.PersonNodeID("dave"), wgA))

	for _, e := range g.Edges() {
		src, _ := g.Node(e.Source)
		dst, _ := g.Node(e.Target)
		assert.NotEqual(t, src.Kind, dst.Kind, "edge %s-%s joins same kind", e.Source, e.Target)
	}
}

func TestBuildTopicGraph(t *testing.T) {
	g := BuildTopicGraph(fixtures())
	budget := entities.TopicNodeID("budget")
	gov := entities.TopicNodeID("governance")

	assert.Equal(t, 1, g.EdgeWeight(budget, gov))
	assert.Equal(t, 1, g.EdgeWeight(gov, budget))
	assert.True(t, g.HasNode(entities.TopicNodeID("onboarding")))
	assert.Empty(t, g.Neighbors(entities.TopicNodeID("onboarding")))
	assert.Equal(t, 4, g.NodeCount())
	assert.Equal(t, 2, g.EdgeCount())
}

func TestFilterGraph_DateExclusionDropsEdge(t *testing.T) {
	g, err := FilterGraph(entities.GraphKindTopics, fixtures(), GraphFilter{StartDate: date("2025-02-01")})
	require.NoError(t, err)

	assert.Equal(t, 0, g.EdgeWeight(entities.TopicNodeID("budget"), entities.TopicNodeID("governance")))
	assert.False(t, g.HasNode(entities.TopicNodeID("governance")))
	assert.Equal(t, 1, g.EdgeWeight(entities.TopicNodeID("budget"), entities.TopicNodeID("tokenomics")))
}

func TestFilterGraph_WeightsReflectSubset(t *testing.T) {
	g, err := FilterGraph(entities.GraphKindParticipation, fixtures(), GraphFilter{
		Workgroup: "alpha",
		EndDate:   date("2025-01-31"),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, g.EdgeWeight(entities.PersonNodeID("alice"), entities.WorkgroupNodeID("a")))
	assert.False(t, g.HasNode(entities.WorkgroupNodeID("b")))
}

func TestFilterGraph_UnknownKind(t *testing.T) {
	_, err := FilterGraph("sankey", fixtures(), GraphFilter{})
	assert.ErrorIs(t, err, ucerrors.ErrUnknownGraphKind)
}
