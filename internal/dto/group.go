package dto

// ── groups ──

// CreateGroupRequest create group
type CreateGroupRequest struct {
	Name        string `json:"name"        binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"omitempty,max=500"`
}

// UpdateGroupRequest update group; nil fields are left unchanged
type UpdateGroupRequest struct {
	Name        *string `json:"name"        binding:"omitempty,min=2,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	Status      *string `json:"status"      binding:"omitempty,oneof=active inactive"`
}

// GroupListRequest group list filter
type GroupListRequest struct {
	Status string `form:"status" binding:"omitempty,oneof=active inactive"`
}

// GroupResponse group
type GroupResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// GroupBrief group summary embedded in other responses
type GroupBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
