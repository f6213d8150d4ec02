package archive

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-archive/internal/domain/entities"
	ucerrors "github.com/johnquangdev/meeting-archive/internal/usecase/errors"
	"github.com/johnquangdev/meeting-archive/internal/usecase/graph"
	"github.com/johnquangdev/meeting-archive/internal/usecase/ingest"
	"github.com/johnquangdev/meeting-archive/internal/usecase/query"
)

// Trigger records what started a reload
type Trigger string

const (
	TriggerStartup  Trigger = "startup"
	TriggerManual   Trigger = "manual"
	TriggerSchedule Trigger = "schedule"
	TriggerWebhook  Trigger = "webhook"
)

// Snapshot is one immutable, fully derived view of the archive. Readers share
// it without locking; a reload replaces it wholesale.
type Snapshot struct {
	Generation    uuid.UUID
	LoadedAt      time.Time
	Source        string
	Trigger       Trigger
	Meetings      []entities.Meeting
	Diagnostics   []entities.Diagnostic
	Decisions     []entities.Decision
	ActionItems   []entities.ActionItem
	Entities      graph.Entities
	Participation *entities.Graph
	Topics        *entities.Graph

	byID map[string]int
}

// BuildSnapshot runs the full pipeline over one archive document
func BuildSnapshot(data []byte, parser *ingest.Parser, source string, trigger Trigger) (*Snapshot, error) {
	records, err := ingest.DecodeArchive(data)
	if err != nil {
		return nil, err
	}
	if parser == nil {
		parser = ingest.NewParser(nil)
	}
	result := parser.Normalize(records)

	byID := make(map[string]int, len(result.Meetings))
	for i, m := range result.Meetings {
		byID[m.ID] = i
	}

	return &Snapshot{
		Generation:    uuid.New(),
		LoadedAt:      time.Now().UTC(),
		Source:        source,
		Trigger:       trigger,
		Meetings:      result.Meetings,
		Diagnostics:   result.Diagnostics,
		Decisions:     query.AggregateDecisions(result.Meetings),
		ActionItems:   query.AggregateActionItems(result.Meetings),
		Entities:      graph.BuildEntities(result.Meetings),
		Participation: graph.BuildParticipationGraph(result.Meetings),
		Topics:        graph.BuildTopicGraph(result.Meetings),
		byID:          byID,
	}, nil
}

// Meeting looks a meeting up by id
func (s *Snapshot) Meeting(id string) (*entities.Meeting, bool) {
	i, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return &s.Meetings[i], true
}

// Graph returns the prebuilt graph of the given kind
func (s *Snapshot) Graph(kind entities.GraphKind) (*entities.Graph, error) {
	switch kind {
	case entities.GraphKindParticipation:
		return s.Participation, nil
	case entities.GraphKindTopics:
		return s.Topics, nil
	default:
		return nil, fmt.Errorf("%w: %q", ucerrors.ErrUnknownGraphKind, kind)
	}
}

// Event describes the snapshot for reload subscribers
func (s *Snapshot) Event() entities.ReloadedEvent {
	return entities.ReloadedEvent{
		Generation:      s.Generation,
		Source:          s.Source,
		Trigger:         string(s.Trigger),
		MeetingCount:    len(s.Meetings),
		DiagnosticCount: len(s.Diagnostics),
		LoadedAt:        s.LoadedAt,
	}
}
