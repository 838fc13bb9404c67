package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ray8844/saida-de-campo/internal/dto"
	"github.com/ray8844/saida-de-campo/internal/service"
	"github.com/ray8844/saida-de-campo/pkg/response"
)

// GroupHandler group endpoints
type GroupHandler struct {
	svc service.GroupService
}

// NewGroupHandler creates a GroupHandler.
func NewGroupHandler(svc service.GroupService) *GroupHandler {
	return &GroupHandler{svc: svc}
}

// ListGroups GET /api/v1/groups
func (h *GroupHandler) ListGroups(c *gin.Context) {
	var req dto.GroupListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c, err)
		return
	}

	groups, err := h.svc.List(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, gin.H{"list": groups})
}

// GetGroup GET /api/v1/groups/:id
func (h *GroupHandler) GetGroup(c *gin.Context) {
	id, ok := pathID(c, "group")
	if !ok {
		return
	}
	group, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, group)
}

// CreateGroup POST /api/v1/groups
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	var req dto.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	group, err := h.svc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, group)
}

// UpdateGroup PUT /api/v1/groups/:id
func (h *GroupHandler) UpdateGroup(c *gin.Context) {
	id, ok := pathID(c, "group")
	if !ok {
		return
	}
	var req dto.UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	group, err := h.svc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, group)
}

// DeleteGroup DELETE /api/v1/groups/:id
func (h *GroupHandler) DeleteGroup(c *gin.Context) {
	id, ok := pathID(c, "group")
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
