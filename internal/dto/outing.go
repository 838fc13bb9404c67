package dto

// ── outings and assignments ──

// GenerateOutingRequest generate the assignments of a (group, date)
type GenerateOutingRequest struct {
	GroupID string `json:"group_id" binding:"required,uuid"`
	Date    string `json:"date"     binding:"required"` // YYYY-MM-DD
	// Mode overrides the configured policy: "single" or "full".
	Mode string `json:"mode" binding:"omitempty,oneof=single full"`
}

// OutingQuery identifies one outing
type OutingQuery struct {
	GroupID string `form:"group_id" binding:"required,uuid"`
	Date    string `form:"date"     binding:"required"`
}

// OutingResponse assignments of one (group, date)
type OutingResponse struct {
	GroupID     string               `json:"group_id"`
	Date        string               `json:"date"`
	Assignments []AssignmentResponse `json:"assignments"`
}

// DeleteOutingResponse number of removed assignments
type DeleteOutingResponse struct {
	Deleted int64 `json:"deleted"`
}

// AssignmentResponse assignment
type AssignmentResponse struct {
	ID        string          `json:"id"`
	GroupID   string          `json:"group_id"`
	Date      string          `json:"date"`
	Status    string          `json:"status"`
	Version   int             `json:"version"`
	Brother   *BrotherBrief   `json:"brother,omitempty"`
	Territory *TerritoryBrief `json:"territory,omitempty"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
}

// AssignmentListRequest assignment list filter
type AssignmentListRequest struct {
	GroupID     string `form:"group_id"     binding:"omitempty,uuid"`
	BrotherID   string `form:"brother_id"   binding:"omitempty,uuid"`
	TerritoryID string `form:"territory_id" binding:"omitempty,uuid"`
	Status      string `form:"status"       binding:"omitempty,oneof=generated completed"`
	From        string `form:"from"`
	To          string `form:"to"`
	PaginationRequest
}

// UpdateAssignmentStatusRequest toggle status
type UpdateAssignmentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateAssignmentPairRequest reassign brother and/or territory
type UpdateAssignmentPairRequest struct {
	BrotherID   *string `json:"brother_id"   binding:"omitempty,uuid"`
	TerritoryID *string `json:"territory_id" binding:"omitempty,uuid"`
}
