package dto

// ── reports ──

// ReportStatsRequest report filter. Empty From/To default to the current
// month.
type ReportStatsRequest struct {
	From        string `form:"from"`
	To          string `form:"to"`
	GroupID     string `form:"group_id"     binding:"omitempty,uuid"`
	BrotherID   string `form:"brother_id"   binding:"omitempty,uuid"`
	TerritoryID string `form:"territory_id" binding:"omitempty,uuid"`
}

// CountItem a named counter
type CountItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// WeekCount assignments in one ISO week ("2024-W05")
type WeekCount struct {
	Week  string `json:"week"`
	Count int    `json:"count"`
}

// ReportStatsResponse aggregated outing statistics
type ReportStatsResponse struct {
	From                 string      `json:"from"`
	To                   string      `json:"to"`
	TotalAssignments     int         `json:"total_assignments"`
	CompletedAssignments int         `json:"completed_assignments"`
	BrotherParticipation []CountItem `json:"brother_participation"`
	TerritoryUsage       []CountItem `json:"territory_usage"`
	WeeklyDistribution   []WeekCount `json:"weekly_distribution"`
}
