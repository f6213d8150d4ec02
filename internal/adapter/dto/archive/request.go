package archive

// MeetingListRequest represents query parameters for listing meetings.
// Tags may repeat or carry a comma-separated list.
type MeetingListRequest struct {
	Workgroup string   `query:"workgroup"`
	StartDate string   `query:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string   `query:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Tags      []string `query:"tags"`
	Page      int      `query:"page" validate:"omitempty,min=1"`
	PageSize  int      `query:"page_size" validate:"omitempty,min=1,max=500"`
}

// DecisionListRequest represents query parameters for listing decisions
type DecisionListRequest struct {
	Workgroup string `query:"workgroup"`
	StartDate string `query:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `query:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Page      int    `query:"page" validate:"omitempty,min=1"`
	PageSize  int    `query:"page_size" validate:"omitempty,min=1,max=500"`
}

// ActionItemListRequest represents query parameters for listing action items
type ActionItemListRequest struct {
	Workgroup string `query:"workgroup"`
	Assignee  string `query:"assignee"`
	Status    string `query:"status" validate:"omitempty,max=32"`
	StartDate string `query:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `query:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Page      int    `query:"page" validate:"omitempty,min=1"`
	PageSize  int    `query:"page_size" validate:"omitempty,min=1,max=500"`
}

// RegistryListRequest paginates people and topics
type RegistryListRequest struct {
	Workgroup string `query:"workgroup"`
	Page      int    `query:"page" validate:"omitempty,min=1"`
	PageSize  int    `query:"page_size" validate:"omitempty,min=1,max=500"`
}

// WorkgroupMeetingsRequest represents query parameters for a workgroup's meetings
type WorkgroupMeetingsRequest struct {
	Sort string `query:"sort" validate:"omitempty,oneof=newest oldest"`
}

// GraphRequest narrows a graph to a workgroup and date range
type GraphRequest struct {
	Workgroup string `query:"workgroup"`
	StartDate string `query:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `query:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

// Filtered reports whether any narrowing criterion is set
func (r GraphRequest) Filtered() bool {
	return r.Workgroup != "" || r.StartDate != "" || r.EndDate != ""
}
