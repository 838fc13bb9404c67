package service

import (
	"time"

	"github.com/ray8844/saida-de-campo/internal/dto"
	"github.com/ray8844/saida-de-campo/internal/model"
)

// ── model → dto ──

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dto.TimeLayout)
}

// optionalID turns an empty caller id into NULL.
func optionalID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

func toGroupResponse(g *model.Group) dto.GroupResponse {
	return dto.GroupResponse{
		ID:          g.GroupID,
		Name:        g.Name,
		Description: g.Description,
		Status:      string(g.Status),
		CreatedAt:   formatTime(g.CreatedAt),
		UpdatedAt:   formatTime(g.UpdatedAt),
	}
}

func toGroupBrief(g *model.Group) *dto.GroupBrief {
	if g == nil {
		return nil
	}
	return &dto.GroupBrief{ID: g.GroupID, Name: g.Name}
}

func toBrotherResponse(b *model.Brother) dto.BrotherResponse {
	return dto.BrotherResponse{
		ID:        b.BrotherID,
		FullName:  b.FullName,
		Phone:     b.Phone,
		Email:     b.Email,
		GroupID:   b.GroupID,
		Group:     toGroupBrief(b.Group),
		IsActive:  b.IsActive,
		CreatedAt: formatTime(b.CreatedAt),
		UpdatedAt: formatTime(b.UpdatedAt),
	}
}

func toTerritoryResponse(t *model.Territory) dto.TerritoryResponse {
	return dto.TerritoryResponse{
		ID:          t.TerritoryID,
		Name:        t.Name,
		Description: t.Description,
		MapImageURL: t.MapImageURL,
		MapURL:      t.MapURL,
		GroupID:     t.GroupID,
		Group:       toGroupBrief(t.Group),
		IsActive:    t.IsActive,
		CreatedAt:   formatTime(t.CreatedAt),
		UpdatedAt:   formatTime(t.UpdatedAt),
	}
}

func toAssignmentResponse(a *model.Assignment) dto.AssignmentResponse {
	resp := dto.AssignmentResponse{
		ID:        a.AssignmentID,
		GroupID:   a.GroupID,
		Date:      a.ServiceDate,
		Status:    string(a.Status),
		Version:   a.Version,
		CreatedAt: formatTime(a.CreatedAt),
		UpdatedAt: formatTime(a.UpdatedAt),
	}
	if a.Brother != nil {
		resp.Brother = &dto.BrotherBrief{ID: a.Brother.BrotherID, FullName: a.Brother.FullName, Phone: a.Brother.Phone}
	} else {
		resp.Brother = &dto.BrotherBrief{ID: a.BrotherID}
	}
	if a.Territory != nil {
		resp.Territory = &dto.TerritoryBrief{
			ID:          a.Territory.TerritoryID,
			Name:        a.Territory.Name,
			MapImageURL: a.Territory.MapImageURL,
			MapURL:      a.Territory.MapURL,
		}
	} else {
		resp.Territory = &dto.TerritoryBrief{ID: a.TerritoryID}
	}
	return resp
}

func toAssignmentResponses(items []model.Assignment) []dto.AssignmentResponse {
	out := make([]dto.AssignmentResponse, 0, len(items))
	for i := range items {
		out = append(out, toAssignmentResponse(&items[i]))
	}
	return out
}
