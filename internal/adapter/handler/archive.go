package handler

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-archive/errors"
	dto "github.com/johnquangdev/meeting-archive/internal/adapter/dto/archive"
	"github.com/johnquangdev/meeting-archive/internal/adapter/dto/common"
	"github.com/johnquangdev/meeting-archive/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-archive/internal/domain/entities"
	"github.com/johnquangdev/meeting-archive/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/meeting-archive/internal/usecase/archive"
	"github.com/johnquangdev/meeting-archive/internal/usecase/graph"
	"github.com/johnquangdev/meeting-archive/internal/usecase/query"
	"github.com/johnquangdev/meeting-archive/pkg/dates"
	"github.com/johnquangdev/meeting-archive/pkg/textnorm"
	"github.com/johnquangdev/meeting-archive/pkg/validator"
)

// Archive handles read access to the loaded archive snapshot
type Archive struct {
	service archive.Service
	logger  *zap.Logger
}

// NewArchiveHandler creates a new archive handler
func NewArchiveHandler(service archive.Service, logger *zap.Logger) *Archive {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Archive{service: service, logger: logger}
}

// bind decodes and validates query parameters into req
func (h *Archive) bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.ErrInvalidArgument("invalid query parameters")
	}
	if err := c.Validate(req); err != nil {
		return errors.ErrInvalidArgument(validator.Message(err))
	}
	return nil
}

// dateRange parses validated YYYY-MM-DD bounds; empty means open
func dateRange(start, end string) (*entities.Date, *entities.Date, error) {
	var from, to *entities.Date
	if start != "" {
		d, err := dates.Parse(start)
		if err != nil {
			return nil, nil, errors.ErrInvalidArgument(fmt.Sprintf("start_date: %v", err))
		}
		from = &d
	}
	if end != "" {
		d, err := dates.Parse(end)
		if err != nil {
			return nil, nil, errors.ErrInvalidArgument(fmt.Sprintf("end_date: %v", err))
		}
		to = &d
	}
	if err := query.ValidateRange(from, to); err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

// statusCriterion rejects a status filter outside the canonical action item statuses
func statusCriterion(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	if _, ok := entities.LookupActionItemStatus(raw); ok {
		return nil
	}
	names := make([]string, 0, len(entities.ActionItemStatuses))
	for _, st := range entities.ActionItemStatuses {
		names = append(names, string(st))
	}
	return errors.ErrInvalidArgument(fmt.Sprintf("status must be one of [%s]", strings.Join(names, " ")))
}

// pathParam returns the unescaped path parameter
func pathParam(c echo.Context, name string) string {
	raw := c.Param(name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

// Summary handles GET /v1/archive
func (h *Archive) Summary(c echo.Context) error {
	snap, err := h.service.Current()
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToSummaryResponse(snap))
}

// Diagnostics handles GET /v1/archive/diagnostics
func (h *Archive) Diagnostics(c echo.Context) error {
	snap, err := h.service.Current()
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToDiagnosticResponses(snap.Diagnostics))
}

// Reload handles POST /v1/archive/reload
func (h *Archive) Reload(c echo.Context) error {
	subject, _ := c.Get(middleware.ContextKeySubject).(string)
	h.logger.Info("archive.reload.requested",
		zap.String("request_id", getRequestID(c)),
		zap.String("subject", subject),
	)

	snap, err := h.service.Reload(c.Request().Context(), archive.TriggerManual)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrReloadFailed(sourceName(h.service), err))
	}
	return HandleSuccess(h.logger, c, presenter.ToSummaryResponse(snap))
}

func sourceName(service archive.Service) string {
	if snap, err := service.Current(); err == nil {
		return snap.Source
	}
	return "unknown"
}

// ListMeetings handles GET /v1/meetings
func (h *Archive) ListMeetings(c echo.Context) error {
	var req dto.MeetingListRequest
	if err := h.bind(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	from, to, err := dateRange(req.StartDate, req.EndDate)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	snap, err := h.service.Current()
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	tags := []string{}
	for _, t := range req.Tags {
		tags = append(tags, textnorm.SplitList(t)...)
	}
	meetings := query.FilterMeetings(snap.Meetings, query.MeetingFilter{
		Workgroup: req.Workgroup,
		StartDate: from,
		EndDate:   to,
		Tags:      tags,
	})
	return HandleSuccess(h.logger, c, presenter.Paginate(meetings, common.PageRequest{Page: req.Page, PageSize: req.PageSize}))
}

// GetMeeting handles GET /v1/meetings/:id
func (h *Archive) GetMeeting(c echo.Context) error {
	snap, err := h.service.Current()
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id := pathParam(c, "id")
	m, ok := snap.Meeting(id)
	if !ok {
		return HandleError(h.logger, c, errors.ErrNotFound("meeting").WithDetail("id", id))
	}
	return HandleSuccess(h.logger, c, m)
}

// ListDecisions handles GET /v1/decisions
func (h *Archive) ListDecisions(c echo.Context) error {
	var req dto.DecisionListRequest
	if err := h.bind(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	from, to, err := dateRange(req.StartDate, req.EndDate)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	snap, err := h.service.Current()
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	decisions := query.FilterDecisions(snap.Decisions, query.DecisionFilter{
		Workgroup: req.Workgroup,
		StartDate: from,
		EndDate:   to,
	})
	return HandleSuccess(h.logger, c, presenter.Paginate(decisions, common.PageRequest{Page: req.Page, PageSize: req.PageSize}))
}

// ListActionItems handles GET /v1/action-items
func (h *Archive) ListActionItems(c echo.Context) error {
	var req dto.ActionItemListRequest
	if err := h.bind(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	if err := statusCriterion(req.Status); err != nil {
		return HandleError(h.logger, c, err)
	}
	from, to, err := dateRange(req.StartDate, req.EndDate)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	snap, err := h.service.Current()
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	items := query.FilterActionItems(snap.ActionItems, query.ActionItemFilter{
		Workgroup: req.Workgroup,
		Assignee:  req.Assignee,
		Status:    req.Status,
		StartDate: from,
		EndDate:   to,
	})
	return HandleSuccess(h.logger, c, presenter.Paginate(items, common.PageRequest{Page: req.Page, PageSize: req.PageSize}))
}

// ListPeople handles GET /v1/people
func (h *Archive) ListPeople(c echo.Context) error {
	var req dto.RegistryListRequest
	if err := h.bind(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	snap, err := h.service.Current()
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	people := snap.Entities.Persons.All()
	if req.Workgroup != "" {
		people = snap.Entities.PeopleForWorkgroup(h.workgroupID(snap, req.Workgroup))
	}
	return HandleSuccess(h.logger, c, presenter.Paginate(presenter.ToPersonResponses(people), common.PageRequest{Page: req.Page, PageSize: req.PageSize}))
}

// GetPerson handles GET /v1/people/:name
func (h *Archive) GetPerson(c echo.Context) error {
	snap, err := h.service.Current()
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	name := pathParam(c, "name")
	p, ok := snap.Entities.Persons.Get(name)
	if !ok {
		return HandleError(h.logger, c, errors.ErrNotFound("person").WithDetail("name", name))
	}
	return HandleSuccess(h.logger, c, presenter.ToPersonResponse(p))
}

// ListTopics handles GET /v1/topics
func (h *Archive) ListTopics(c echo.Context) error {
	var req dto.RegistryListRequest
	if err := h.bind(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	snap, err := h.service.Current()
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	topics := snap.Entities.Topics.All()
	if req.Workgroup != "" {
		topics = snap.Entities.TopicsForWorkgroup(h.workgroupID(snap, req.Workgroup))
	}
	return HandleSuccess(h.logger, c, presenter.Paginate(presenter.ToTopicResponses(topics), common.PageRequest{Page: req.Page, PageSize: req.PageSize}))
}

// GetTopic handles GET /v1/topics/:name
func (h *Archive) GetTopic(c echo.Context) error {
	snap, err := h.service.Current()
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	name := pathParam(c, "name")
	t, ok := snap.Entities.Topics.Get(name)
	if !ok {
		return HandleError(h.logger, c, errors.ErrNotFound("topic").WithDetail("name", name))
	}
	return HandleSuccess(h.logger, c, presenter.ToTopicResponse(t))
}

// ListWorkgroups handles GET /v1/workgroups
func (h *Archive) ListWorkgroups(c echo.Context) error {
	snap, err := h.service.Current()
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToWorkgroupResponses(snap.Entities))
}

// WorkgroupMeetings handles GET /v1/workgroups/:id/meetings
func (h *Archive) WorkgroupMeetings(c echo.Context) error {
	var req dto.WorkgroupMeetingsRequest
	if err := h.bind(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	order, err := query.ParseSortOrder(req.Sort)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	snap, err := h.service.Current()
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	raw := pathParam(c, "id")
	wg, ok := snap.Entities.Workgroups.Get(h.workgroupID(snap, raw))
	if !ok {
		return HandleError(h.logger, c, errors.ErrNotFound("workgroup").WithDetail("id", raw))
	}
	return HandleSuccess(h.logger, c, query.MeetingsByWorkgroup(snap.Meetings, wg.ID, order))
}

// GetGraph handles GET /v1/graphs/:kind
func (h *Archive) GetGraph(c echo.Context) error {
	var req dto.GraphRequest
	if err := h.bind(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	from, to, err := dateRange(req.StartDate, req.EndDate)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	snap, err := h.service.Current()
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	kind := entities.GraphKind(pathParam(c, "kind"))
	if !req.Filtered() {
		g, err := snap.Graph(kind)
		if err != nil {
			return HandleError(h.logger, c, err)
		}
		return HandleSuccess(h.logger, c, g)
	}

	g, err := graph.FilterGraph(kind, snap.Meetings, graph.GraphFilter{
		Workgroup: req.Workgroup,
		StartDate: from,
		EndDate:   to,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, g)
}

// workgroupID resolves a workgroup criterion (id or case-insensitive name) to an id
func (h *Archive) workgroupID(snap *archive.Snapshot, criterion string) string {
	if wg, ok := snap.Entities.Workgroups.Get(criterion); ok {
		return wg.ID
	}
	for _, wg := range snap.Entities.Workgroups.All() {
		if wg.Name != "" && textnorm.TopicKey(wg.Name) == textnorm.TopicKey(criterion) {
			return wg.ID
		}
	}
	return criterion
}
