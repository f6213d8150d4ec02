package entities

import "encoding/json"

// GraphKind names one of the derived relationship graphs
type GraphKind string

const (
	GraphKindParticipation GraphKind = "participation"
	GraphKindTopics        GraphKind = "topics"
)

// NodeKind is the entity type behind a graph node
type NodeKind string

const (
	NodeKindPerson    NodeKind = "person"
	NodeKindWorkgroup NodeKind = "workgroup"
	NodeKindTopic     NodeKind = "topic"
)

// PersonNodeID namespaces a person identity key
func PersonNodeID(key string) string { return string(NodeKindPerson) + ":" + key }

// WorkgroupNodeID namespaces a workgroup id
func WorkgroupNodeID(id string) string { return string(NodeKindWorkgroup) + ":" + id }

// TopicNodeID namespaces a topic identity key
func TopicNodeID(key string) string { return string(NodeKindTopic) + ":" + key }

// Node is a vertex of a relationship graph
type Node struct {
	ID    string   `json:"id"`
	Kind  NodeKind `json:"kind"`
	Label string   `json:"label"`
}

// Edge is an undirected weighted edge
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Weight int    `json:"weight"`
}

type edgeKey [2]string

func newEdgeKey(a, b string) edgeKey {
	if b < a {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// Graph is an undirected weighted graph. Nodes and edges keep insertion order.
type Graph struct {
	Kind GraphKind

	nodes     []Node
	nodeIndex map[string]int
	edges     []Edge
	edgeIndex map[edgeKey]int
	adjacency map[string][]string
}

// NewGraph creates an empty graph of the given kind
func NewGraph(kind GraphKind) *Graph {
	return &Graph{
		Kind:      kind,
		nodeIndex: make(map[string]int),
		edgeIndex: make(map[edgeKey]int),
		adjacency: make(map[string][]string),
	}
}

// AddNode inserts n unless a node with the same id exists. It reports whether n was added.
func (g *Graph) AddNode(n Node) bool {
	if _, ok := g.nodeIndex[n.ID]; ok {
		return false
	}
	g.nodeIndex[n.ID] = len(g.nodes)
	g.nodes = append(g.nodes, n)
	return true
}

// AddWeight adds delta to the edge between a and b, creating it if needed.
// Self-loops are ignored.
func (g *Graph) AddWeight(a, b string, delta int) {
	if a == b {
		return
	}
	key := newEdgeKey(a, b)
	if i, ok := g.edgeIndex[key]; ok {
		g.edges[i].Weight += delta
		return
	}
	g.edgeIndex[key] = len(g.edges)
	g.edges = append(g.edges, Edge{Source: a, Target: b, Weight: delta})
	g.adjacency[a] = append(g.adjacency[a], b)
	g.adjacency[b] = append(g.adjacency[b], a)
}

// Node returns the node with the given id
func (g *Graph) Node(id string) (Node, bool) {
	i, ok := g.nodeIndex[id]
	if !ok {
		return Node{}, false
	}
	return g.nodes[i], true
}

// HasNode reports whether id is a node of g
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodeIndex[id]
	return ok
}

// EdgeWeight returns the weight between a and b, 0 when there is no edge.
// EdgeWeight(a, b) == EdgeWeight(b, a).
func (g *Graph) EdgeWeight(a, b string) int {
	if i, ok := g.edgeIndex[newEdgeKey(a, b)]; ok {
		return g.edges[i].Weight
	}
	return 0
}

// Neighbors returns the ids adjacent to id in edge insertion order
func (g *Graph) Neighbors(id string) []string {
	return append([]string(nil), g.adjacency[id]...)
}

// Nodes returns a copy of the node set
func (g *Graph) Nodes() []Node {
	return append([]Node(nil), g.nodes...)
}

// Edges returns a copy of the edge set
func (g *Graph) Edges() []Edge {
	return append([]Edge(nil), g.edges...)
}

// NodeCount returns the number of nodes
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges
func (g *Graph) EdgeCount() int { return len(g.edges) }

type graphJSON struct {
	Kind  GraphKind `json:"kind"`
	Nodes []Node    `json:"nodes"`
	Edges []Edge    `json:"edges"`
}

// MarshalJSON encodes the graph as node and edge lists
func (g *Graph) MarshalJSON() ([]byte, error) {
	out := graphJSON{Kind: g.Kind, Nodes: g.nodes, Edges: g.edges}
	if out.Nodes == nil {
		out.Nodes = []Node{}
	}
	if out.Edges == nil {
		out.Edges = []Edge{}
	}
	return json.Marshal(out)
}
