package ingest

import (
	"sort"
	"strings"

	"github.com/johnquangdev/meeting-archive/pkg/textnorm"
)

// AgendaShape is one of the ways a record can carry agenda content
type AgendaShape int

// Declaration order is merge precedence.
const (
	AgendaStructured AgendaShape = iota
	AgendaNarrative
	AgendaTopicLabels
)

func (s AgendaShape) String() string {
	switch s {
	case AgendaStructured:
		return "structured"
	case AgendaNarrative:
		return "narrative"
	case AgendaTopicLabels:
		return "topicLabels"
	default:
		return "unknown"
	}
}

// AgendaSource is agenda content of a single shape found on a record
type AgendaSource struct {
	Shape AgendaShape
	Items []string
}

// agendaSources collects every agenda shape present on rec: discussionPoints lists and
// narrative strings from each agenda item, then the record-level meetingTopics labels.
func agendaSources(rec RawRecord) []AgendaSource {
	var sources []AgendaSource
	for _, raw := range asList(rec["agendaItems"]) {
		item := asObject(raw)
		if item == nil {
			continue
		}
		if points := structuredPoints(item["discussionPoints"]); len(points) > 0 {
			sources = append(sources, AgendaSource{Shape: AgendaStructured, Items: points})
		}
		if narrative := asString(item["narrative"]); narrative != "" {
			sources = append(sources, AgendaSource{Shape: AgendaNarrative, Items: []string{narrative}})
		}
	}
	if labels := textnorm.SplitList(rec["meetingTopics"]); len(labels) > 0 {
		sources = append(sources, AgendaSource{Shape: AgendaTopicLabels, Items: labels})
	}
	return sources
}

func structuredPoints(v any) []string {
	if s, ok := v.(string); ok {
		if s = strings.TrimSpace(s); s != "" {
			return []string{s}
		}
		return nil
	}
	var points []string
	for _, p := range asList(v) {
		if s := asString(p); s != "" {
			points = append(points, s)
		}
	}
	return points
}

// mergeAgenda orders sources by precedence and concatenates them into discussion points.
// Nothing is dropped. Topic labels are also returned so they can join the topic set.
func mergeAgenda(sources []AgendaSource) (points []string, labels []string) {
	ordered := append([]AgendaSource(nil), sources...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Shape < ordered[j].Shape })

	points = []string{}
	for _, src := range ordered {
		points = append(points, src.Items...)
		if src.Shape == AgendaTopicLabels {
			labels = append(labels, src.Items...)
		}
	}
	return points, labels
}
