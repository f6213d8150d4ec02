package common

// PageRequest holds pagination query parameters
type PageRequest struct {
	Page     int `query:"page" validate:"omitempty,min=1"`
	PageSize int `query:"page_size" validate:"omitempty,min=1,max=500"`
}

// Default page size for list endpoints
const DefaultPageSize = 50

// Normalize fills defaults for absent pagination parameters
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	return p
}

// Bounds returns the half-open slice range of the page within total items
func (p PageRequest) Bounds(total int) (start, end int) {
	p = p.Normalize()
	start = (p.Page - 1) * p.PageSize
	if start > total {
		start = total
	}
	end = start + p.PageSize
	if end > total {
		end = total
	}
	return start, end
}

// PaginationResponse represents pagination metadata
type PaginationResponse struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
	TotalItems int `json:"total_items"`
}

// NewPagination describes the page p of total items
func NewPagination(p PageRequest, total int) *PaginationResponse {
	p = p.Normalize()
	totalPages := total / p.PageSize
	if total%p.PageSize != 0 {
		totalPages++
	}
	return &PaginationResponse{
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: totalPages,
		TotalItems: total,
	}
}

// ListResponse represents a paginated list response
type ListResponse struct {
	Data       interface{}         `json:"data"`
	Pagination *PaginationResponse `json:"pagination,omitempty"`
}
