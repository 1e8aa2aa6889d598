package dto

// PaginationMeta 分页元数据
type PaginationMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

// NewPaginationMeta 由 page/limit/total 推导分页元数据
func NewPaginationMeta(page, limit int, total int64) PaginationMeta {
	totalPages := (total + int64(limit) - 1) / int64(limit)
	return PaginationMeta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
