package ingest

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-archive/internal/domain/entities"
	"github.com/johnquangdev/meeting-archive/pkg/dates"
	"github.com/johnquangdev/meeting-archive/pkg/textnorm"
)

// Result is the output of one normalization pass
type Result struct {
	Meetings    []entities.Meeting    `json:"meetings"`
	Diagnostics []entities.Diagnostic `json:"diagnostics"`
}

// Parser turns raw archive records into canonical meetings
type Parser struct {
	logger *zap.Logger
}

// NewParser creates a Parser. A nil logger discards field-level events.
func NewParser(logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{logger: logger}
}

// NormalizeValue normalizes an already decoded document. It fails with ErrNotSequence
// when v is not a list.
func (p *Parser) NormalizeValue(v any) (Result, error) {
	records, err := toRecords(v)
	if err != nil {
		return Result{}, err
	}
	return p.Normalize(records), nil
}

// Normalize converts every record independently. Rejected records are reported in
// Diagnostics and never abort the pass.
func (p *Parser) Normalize(records []RawRecord) Result {
	res := Result{
		Meetings:    make([]entities.Meeting, 0, len(records)),
		Diagnostics: []entities.Diagnostic{},
	}
	sequence := make(map[string]int)

	for i, rec := range records {
		head, err := p.parseHead(rec)
		if err != nil {
			diag := entities.NewDiagnostic(i, err)
			res.Diagnostics = append(res.Diagnostics, diag)
			p.logger.Warn("ingest.record.rejected",
				zap.Int("index", i),
				zap.String("reason", diag.Reason),
			)
			continue
		}

		slot := head.workgroupID + "_" + head.date.String()
		id := fmt.Sprintf("%s_%d", slot, sequence[slot])
		sequence[slot]++

		res.Meetings = append(res.Meetings, p.buildMeeting(i, id, head, rec))
	}
	return res
}

type recordHead struct {
	workgroupID   string
	workgroupName string
	date          entities.Date
	info          RawRecord
}

// parseHead validates the fields a record cannot be accepted without
func (p *Parser) parseHead(rec RawRecord) (recordHead, error) {
	if rec == nil {
		return recordHead{}, entities.ErrRecordNotObject
	}

	head := recordHead{
		workgroupID:   rec.firstString("workgroup_id", "workgroupId"),
		workgroupName: textnorm.CleanName(rec.firstString("workgroup", "workgroupName")),
		info:          asObject(rec["meetingInfo"]),
	}
	if head.workgroupID == "" {
		return recordHead{}, entities.ErrMissingWorkgroupID
	}
	if head.workgroupName == "" {
		return recordHead{}, entities.ErrMissingWorkgroupName
	}

	rawDate := head.info.firstString("date")
	if rawDate == "" {
		rawDate = rec.firstString("date")
	}
	if rawDate == "" {
		return recordHead{}, entities.ErrMissingDate
	}
	date, err := dates.Parse(rawDate)
	if err != nil {
		return recordHead{}, err
	}
	head.date = date
	return head, nil
}

func (p *Parser) buildMeeting(index int, id string, head recordHead, rec RawRecord) entities.Meeting {
	info := head.info
	tags := asObject(rec["tags"])

	points, labels := mergeAgenda(agendaSources(rec))
	topics := append(textnorm.SplitList(tags["topicsCovered"]), labels...)

	people := textnorm.SplitList(info["peoplePresent"])
	for i := range people {
		people[i] = textnorm.CleanName(people[i])
	}

	m := entities.Meeting{
		ID:               id,
		WorkgroupID:      head.workgroupID,
		WorkgroupName:    head.workgroupName,
		Date:             head.date,
		Host:             textnorm.CleanName(info.firstString("host")),
		Documenter:       textnorm.CleanName(info.firstString("documenter")),
		PeoplePresent:    textnorm.Dedupe(people, textnorm.NameKey),
		Purpose:          info.firstString("purpose"),
		MeetingType:      rec.firstString("type"),
		TypeOfMeeting:    info.firstString("typeOfMeeting"),
		VideoLink:        info.firstString("meetingVideoLink"),
		WorkingDocs:      parseWorkingDocs(info["workingDocs"]),
		DiscussionPoints: points,
		TopicsCovered:    textnorm.Dedupe(topics, textnorm.TopicKey),
		Emotions:         textnorm.Dedupe(textnorm.SplitList(tags["emotions"]), textnorm.TopicKey),
		NoSummaryGiven:   asBool(rec["noSummaryGiven"]),
		Canceled:         asBool(rec["canceledSummary"]),
	}
	m.Decisions, m.ActionItems = p.buildSubEntities(index, &m, rec)
	return m
}

func parseWorkingDocs(v any) []entities.WorkingDoc {
	docs := []entities.WorkingDoc{}
	for _, raw := range asList(v) {
		doc := asObject(raw)
		if doc == nil {
			continue
		}
		wd := entities.WorkingDoc{
			Title: doc.firstString("title"),
			Link:  doc.firstString("link"),
		}
		if wd.Title == "" && wd.Link == "" {
			continue
		}
		docs = append(docs, wd)
	}
	return docs
}

// buildSubEntities walks every agenda item's decision and action sub-records.
// Sequence numbers count raw sub-records, so a skipped entry leaves a gap instead of
// renumbering its siblings.
func (p *Parser) buildSubEntities(index int, m *entities.Meeting, rec RawRecord) ([]entities.Decision, []entities.ActionItem) {
	decisions := []entities.Decision{}
	actions := []entities.ActionItem{}
	var decisionSeq, actionSeq int

	for _, rawItem := range asList(rec["agendaItems"]) {
		item := asObject(rawItem)
		if item == nil {
			continue
		}

		for _, raw := range asList(item["decisionItems"]) {
			seq := decisionSeq
			decisionSeq++
			if d, ok := p.buildDecision(index, m, seq, asObject(raw)); ok {
				decisions = append(decisions, d)
			}
		}

		for _, raw := range asList(item["actionItems"]) {
			seq := actionSeq
			actionSeq++
			if a, ok := p.buildActionItem(index, m, seq, asObject(raw)); ok {
				actions = append(actions, a)
			}
		}
	}
	return decisions, actions
}

func (p *Parser) buildDecision(index int, m *entities.Meeting, seq int, raw RawRecord) (entities.Decision, bool) {
	id := fmt.Sprintf("%s_decision_%d", m.ID, seq)
	text := raw.firstString("decision", "text")
	if text == "" {
		p.logger.Debug("ingest.decision.skipped",
			zap.Int("index", index),
			zap.String("decision_id", id),
			zap.Error(entities.ErrMissingDecisionText),
		)
		return entities.Decision{}, false
	}

	rawEffect := raw.firstString("effect")
	effect := entities.ParseDecisionEffect(rawEffect)
	if effect == entities.DecisionEffectUnknown && rawEffect != string(entities.DecisionEffectUnknown) {
		p.logFieldDefault(index, id, "effect", rawEffect, string(effect))
	}

	return entities.Decision{
		ID:          id,
		MeetingID:   m.ID,
		WorkgroupID: m.WorkgroupID,
		Workgroup:   m.WorkgroupName,
		Date:        m.Date,
		Text:        text,
		Rationale:   raw.firstString("rationale"),
		Effect:      effect,
		Opposing:    raw.firstString("opposing"),
	}, true
}

func (p *Parser) buildActionItem(index int, m *entities.Meeting, seq int, raw RawRecord) (entities.ActionItem, bool) {
	id := fmt.Sprintf("%s_action_%d", m.ID, seq)
	text := raw.firstString("text")
	if text == "" {
		p.logger.Debug("ingest.action_item.skipped",
			zap.Int("index", index),
			zap.String("action_item_id", id),
			zap.Error(entities.ErrMissingActionText),
		)
		return entities.ActionItem{}, false
	}

	rawStatus := raw.firstString("status")
	status := entities.ParseActionItemStatus(rawStatus)
	if status == entities.ActionItemStatusUnknown && rawStatus != string(entities.ActionItemStatusUnknown) {
		p.logFieldDefault(index, id, "status", rawStatus, string(status))
	}

	var due entities.DueDate
	if rawDue := raw.firstString("dueDate"); rawDue != "" {
		if d, ok := dates.ParseOptional(rawDue); ok {
			due.Date = d
		} else {
			due.Text = rawDue
			p.logFieldDefault(index, id, "dueDate", rawDue, "text")
		}
	}

	return entities.ActionItem{
		ID:          id,
		MeetingID:   m.ID,
		WorkgroupID: m.WorkgroupID,
		Workgroup:   m.WorkgroupName,
		Date:        m.Date,
		Text:        text,
		Assignee:    textnorm.CleanName(raw.firstString("assignee")),
		DueDate:     due,
		Status:      status,
	}, true
}

func (p *Parser) logFieldDefault(index int, id, field, raw, resolved string) {
	p.logger.Debug("ingest.field.defaulted",
		zap.Int("index", index),
		zap.String("entity_id", id),
		zap.String("field", field),
		zap.String("raw", raw),
		zap.String("resolved", resolved),
	)
}
