package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ray8844/saida-de-campo/internal/dto"
	"github.com/ray8844/saida-de-campo/internal/service"
	"github.com/ray8844/saida-de-campo/pkg/response"
)

// TerritoryHandler territory endpoints
type TerritoryHandler struct {
	svc service.TerritoryService
}

// NewTerritoryHandler creates a TerritoryHandler.
func NewTerritoryHandler(svc service.TerritoryService) *TerritoryHandler {
	return &TerritoryHandler{svc: svc}
}

// ListTerritories GET /api/v1/territories
func (h *TerritoryHandler) ListTerritories(c *gin.Context) {
	var req dto.TerritoryListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c, err)
		return
	}

	items, total, err := h.svc.List(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OKPage(c, items, total, req.GetPage(), req.GetPageSize())
}

// GetTerritory GET /api/v1/territories/:id
func (h *TerritoryHandler) GetTerritory(c *gin.Context) {
	id, ok := pathID(c, "territory")
	if !ok {
		return
	}
	territory, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, territory)
}

// CreateTerritory POST /api/v1/territories
func (h *TerritoryHandler) CreateTerritory(c *gin.Context) {
	var req dto.CreateTerritoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	territory, err := h.svc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, territory)
}

// UpdateTerritory PUT /api/v1/territories/:id
func (h *TerritoryHandler) UpdateTerritory(c *gin.Context) {
	id, ok := pathID(c, "territory")
	if !ok {
		return
	}
	var req dto.UpdateTerritoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	territory, err := h.svc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, territory)
}

// DeleteTerritory DELETE /api/v1/territories/:id
func (h *TerritoryHandler) DeleteTerritory(c *gin.Context) {
	id, ok := pathID(c, "territory")
	if !ok {
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id, callerID); err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, nil)
}
