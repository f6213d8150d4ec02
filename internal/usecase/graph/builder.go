package graph

import (
	"fmt"

	"github.com/johnquangdev/meeting-archive/internal/domain/entities"
	ucerrors "github.com/johnquangdev/meeting-archive/internal/usecase/errors"
	"github.com/johnquangdev/meeting-archive/pkg/textnorm"
)

// GraphFilter restricts the meetings a graph is rebuilt from. Empty fields impose no constraint.
type GraphFilter struct {
	Workgroup string
	StartDate *entities.Date
	EndDate   *entities.Date
}

func (f GraphFilter) match(m *entities.Meeting) bool {
	return m.MatchesWorkgroup(f.Workgroup) && m.Date.InRange(f.StartDate, f.EndDate)
}

// BuildParticipationGraph links people to the workgroups whose meetings they took part in.
// An edge weight is the number of distinct meetings of that workgroup the person appears in.
func BuildParticipationGraph(meetings []entities.Meeting) *entities.Graph {
	g := entities.NewGraph(entities.GraphKindParticipation)
	for i := range meetings {
		m := &meetings[i]
		wgNode := entities.WorkgroupNodeID(m.WorkgroupID)
		g.AddNode(entities.Node{ID: wgNode, Kind: entities.NodeKindWorkgroup, Label: m.WorkgroupName})

		inMeeting := set{}
		for _, ap := range appearances(m) {
			key := textnorm.NameKey(ap.name)
			if key == "" || !inMeeting.add(key) {
				continue
			}
			personNode := entities.PersonNodeID(key)
			g.AddNode(entities.Node{ID: personNode, Kind: entities.NodeKindPerson, Label: textnorm.CleanName(ap.name)})
			g.AddWeight(personNode, wgNode, 1)
		}
	}
	return g
}

// BuildTopicGraph links topics discussed in the same meeting. Every topic is a node,
// including ones that never co-occur.
func BuildTopicGraph(meetings []entities.Meeting) *entities.Graph {
	g := entities.NewGraph(entities.GraphKindTopics)
	for i := range meetings {
		m := &meetings[i]

		var nodes []string
		inMeeting := set{}
		for _, name := range m.TopicsCovered {
			key := textnorm.TopicKey(name)
			if key == "" || !inMeeting.add(key) {
				continue
			}
			id := entities.TopicNodeID(key)
			g.AddNode(entities.Node{ID: id, Kind: entities.NodeKindTopic, Label: textnorm.CleanName(name)})
			nodes = append(nodes, id)
		}

		for a := 0; a < len(nodes); a++ {
			for b := a + 1; b < len(nodes); b++ {
				src, dst := nodes[a], nodes[b]
				if dst < src {
					src, dst = dst, src
				}
				g.AddWeight(src, dst, 1)
			}
		}
	}
	return g
}

// Build dispatches on kind
func Build(kind entities.GraphKind, meetings []entities.Meeting) (*entities.Graph, error) {
	switch kind {
	case entities.GraphKindParticipation:
		return BuildParticipationGraph(meetings), nil
	case entities.GraphKindTopics:
		return BuildTopicGraph(meetings), nil
	default:
		return nil, fmt.Errorf("%w: %q", ucerrors.ErrUnknownGraphKind, kind)
	}
}

// FilterGraph rebuilds the graph of the given kind from the meetings matching f, so edge
// weights count only the filtered meetings.
func FilterGraph(kind entities.GraphKind, meetings []entities.Meeting, f GraphFilter) (*entities.Graph, error) {
	subset := make([]entities.Meeting, 0, len(meetings))
	for i := range meetings {
		if f.match(&meetings[i]) {
			subset = append(subset, meetings[i])
		}
	}
	return Build(kind, subset)
}
