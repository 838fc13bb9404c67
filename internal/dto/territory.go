package dto

// ── territories ──

// CreateTerritoryRequest create territory
type CreateTerritoryRequest struct {
	Name        string `json:"name"          binding:"required,min=1,max=150"`
	Description string `json:"description"   binding:"omitempty,max=1000"`
	MapImageURL string `json:"map_image_url" binding:"omitempty,url,max=500"`
	MapURL      string `json:"map_url"       binding:"omitempty,url,max=500"`
	GroupID     string `json:"group_id"      binding:"required,uuid"`
	IsActive    *bool  `json:"is_active"` // defaults to true
}

// UpdateTerritoryRequest update territory; nil fields are left unchanged
type UpdateTerritoryRequest struct {
	Name        *string `json:"name"          binding:"omitempty,min=1,max=150"`
	Description *string `json:"description"   binding:"omitempty,max=1000"`
	MapImageURL *string `json:"map_image_url" binding:"omitempty,url,max=500"`
	MapURL      *string `json:"map_url"       binding:"omitempty,url,max=500"`
	GroupID     *string `json:"group_id"      binding:"omitempty,uuid"`
	IsActive    *bool   `json:"is_active"`
}

// TerritoryListRequest territory list filter
type TerritoryListRequest struct {
	GroupID         string `form:"group_id"         binding:"omitempty,uuid"`
	Keyword         string `form:"keyword"          binding:"omitempty,max=100"`
	IncludeInactive bool   `form:"include_inactive"`
	PaginationRequest
}

// TerritoryResponse territory
type TerritoryResponse struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	MapImageURL string      `json:"map_image_url,omitempty"`
	MapURL      string      `json:"map_url,omitempty"`
	GroupID     string      `json:"group_id"`
	Group       *GroupBrief `json:"group,omitempty"`
	IsActive    bool        `json:"is_active"`
	CreatedAt   string      `json:"created_at"`
	UpdatedAt   string      `json:"updated_at"`
}

// TerritoryBrief territory summary embedded in assignments
type TerritoryBrief struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MapImageURL string `json:"map_image_url,omitempty"`
	MapURL      string `json:"map_url,omitempty"`
}
