package dto

// ── brothers ──

// CreateBrotherRequest create brother
type CreateBrotherRequest struct {
	FullName string `json:"full_name" binding:"required,min=2,max=150"`
	Phone    string `json:"phone"     binding:"omitempty,max=30"`
	Email    string `json:"email"     binding:"omitempty,email,max=255"`
	GroupID  string `json:"group_id"  binding:"required,uuid"`
	IsActive *bool  `json:"is_active"` // defaults to true
}

// UpdateBrotherRequest update brother; nil fields are left unchanged
type UpdateBrotherRequest struct {
	FullName *string `json:"full_name" binding:"omitempty,min=2,max=150"`
	Phone    *string `json:"phone"     binding:"omitempty,max=30"`
	Email    *string `json:"email"     binding:"omitempty,email,max=255"`
	GroupID  *string `json:"group_id"  binding:"omitempty,uuid"`
	IsActive *bool   `json:"is_active"`
}

// BrotherListRequest brother list filter
type BrotherListRequest struct {
	GroupID         string `form:"group_id"         binding:"omitempty,uuid"`
	Keyword         string `form:"keyword"          binding:"omitempty,max=100"`
	IncludeInactive bool   `form:"include_inactive"`
	PaginationRequest
}

// BrotherResponse brother
type BrotherResponse struct {
	ID        string      `json:"id"`
	FullName  string      `json:"full_name"`
	Phone     string      `json:"phone,omitempty"`
	Email     string      `json:"email,omitempty"`
	GroupID   string      `json:"group_id"`
	Group     *GroupBrief `json:"group,omitempty"`
	IsActive  bool        `json:"is_active"`
	CreatedAt string      `json:"created_at"`
	UpdatedAt string      `json:"updated_at"`
}

// BrotherBrief brother summary embedded in assignments
type BrotherBrief struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone,omitempty"`
}

// ImportRowError one rejected spreadsheet row (1-based, header is row 1)
type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportBrothersResponse result of a roster import
type ImportBrothersResponse struct {
	Created int              `json:"created"`
	Skipped int              `json:"skipped"`
	Errors  []ImportRowError `json:"errors,omitempty"`
}
