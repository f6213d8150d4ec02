package presenter

import (
	dto "github.com/johnquangdev/meeting-archive/internal/adapter/dto/archive"
	"github.com/johnquangdev/meeting-archive/internal/adapter/dto/common"
	"github.com/johnquangdev/meeting-archive/internal/domain/entities"
	"github.com/johnquangdev/meeting-archive/internal/usecase/archive"
	"github.com/johnquangdev/meeting-archive/internal/usecase/graph"
)

// ToSummaryResponse converts a snapshot to SummaryResponse DTO
func ToSummaryResponse(s *archive.Snapshot) *dto.SummaryResponse {
	if s == nil {
		return nil
	}
	return &dto.SummaryResponse{
		Generation:      s.Generation.String(),
		Source:          s.Source,
		Trigger:         string(s.Trigger),
		LoadedAt:        s.LoadedAt,
		MeetingCount:    len(s.Meetings),
		DecisionCount:   len(s.Decisions),
		ActionItemCount: len(s.ActionItems),
		PersonCount:     s.Entities.Persons.Len(),
		TopicCount:      s.Entities.Topics.Len(),
		WorkgroupCount:  s.Entities.Workgroups.Len(),
		DiagnosticCount: len(s.Diagnostics),
	}
}

// ToDiagnosticResponses converts rejected-record diagnostics
func ToDiagnosticResponses(diags []entities.Diagnostic) []dto.DiagnosticResponse {
	out := make([]dto.DiagnosticResponse, len(diags))
	for i, d := range diags {
		out[i] = dto.DiagnosticResponse{Index: d.Index, Reason: d.Reason}
	}
	return out
}

// ToPersonResponse converts a Person entity to PersonResponse DTO
func ToPersonResponse(p *entities.Person) *dto.PersonResponse {
	if p == nil {
		return nil
	}
	roles := make(map[string][]string, len(p.Roles))
	for wg, rs := range p.Roles {
		names := make([]string, len(rs))
		for i, r := range rs {
			names[i] = string(r)
		}
		roles[wg] = names
	}
	return &dto.PersonResponse{
		Key:           p.Key,
		Name:          p.Name,
		MeetingCount:  len(p.MeetingIDs),
		WorkgroupIDs:  p.WorkgroupIDs,
		MeetingIDs:    p.MeetingIDs,
		ActionItemIDs: p.ActionItemIDs,
		Roles:         roles,
	}
}

// ToPersonResponses converts a slice of Person entities
func ToPersonResponses(persons []*entities.Person) []*dto.PersonResponse {
	out := make([]*dto.PersonResponse, len(persons))
	for i, p := range persons {
		out[i] = ToPersonResponse(p)
	}
	return out
}

// ToTopicResponse converts a Topic entity to TopicResponse DTO
func ToTopicResponse(t *entities.Topic) *dto.TopicResponse {
	if t == nil {
		return nil
	}
	return &dto.TopicResponse{
		Key:          t.Key,
		Name:         t.Name,
		MeetingCount: len(t.MeetingIDs),
		MeetingIDs:   t.MeetingIDs,
		WorkgroupIDs: t.WorkgroupIDs,
		CoOccurrence: t.CoOccurrence,
	}
}

// ToTopicResponses converts a slice of Topic entities
func ToTopicResponses(topics []*entities.Topic) []*dto.TopicResponse {
	out := make([]*dto.TopicResponse, len(topics))
	for i, t := range topics {
		out[i] = ToTopicResponse(t)
	}
	return out
}

// ToWorkgroupResponse converts a Workgroup entity, listing the names of its
// topics and people
func ToWorkgroupResponse(wg *entities.Workgroup, ents graph.Entities) *dto.WorkgroupResponse {
	if wg == nil {
		return nil
	}
	topics := ents.TopicsForWorkgroup(wg.ID)
	people := ents.PeopleForWorkgroup(wg.ID)

	resp := &dto.WorkgroupResponse{
		ID:           wg.ID,
		Name:         wg.Name,
		MeetingCount: wg.MeetingCount,
		MeetingIDs:   wg.MeetingIDs,
		Topics:       make([]string, len(topics)),
		People:       make([]string, len(people)),
	}
	for i, t := range topics {
		resp.Topics[i] = t.Name
	}
	for i, p := range people {
		resp.People[i] = p.Name
	}
	return resp
}

// ToWorkgroupResponses converts every workgroup in the snapshot
func ToWorkgroupResponses(ents graph.Entities) []*dto.WorkgroupResponse {
	all := ents.Workgroups.All()
	out := make([]*dto.WorkgroupResponse, len(all))
	for i, wg := range all {
		out[i] = ToWorkgroupResponse(wg, ents)
	}
	return out
}

// ToHealthResponse reports liveness with the latest reload status
func ToHealthResponse(environment string, st archive.ReloadStatus) *dto.HealthResponse {
	resp := &dto.HealthResponse{
		Status:      "ok",
		Environment: environment,
		LastError:   st.LastError,
		AutoReload:  st.AutoReload,
	}
	if !st.LoadedAt.IsZero() {
		loadedAt := st.LoadedAt
		resp.Generation = st.Generation.String()
		resp.LoadedAt = &loadedAt
	} else {
		resp.Status = "loading"
	}
	if !st.LastAttemptAt.IsZero() {
		attempt := st.LastAttemptAt
		resp.LastAttemptAt = &attempt
	}
	return resp
}

// Paginate slices items to the requested page
func Paginate[T any](items []T, page common.PageRequest) common.ListResponse {
	start, end := page.Bounds(len(items))
	data := items[start:end]
	if data == nil {
		data = []T{}
	}
	return common.ListResponse{
		Data:       data,
		Pagination: common.NewPagination(page, len(items)),
	}
}
