package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ray8844/saida-de-campo/internal/dto"
	"github.com/ray8844/saida-de-campo/internal/model"
	"github.com/ray8844/saida-de-campo/internal/repository"
	pkgerrors "github.com/ray8844/saida-de-campo/pkg/errors"
)

// ── group errors ──

var (
	ErrGroupNotFound = pkgerrors.NotFound("group not found")
	ErrGroupInactive = pkgerrors.Validation("group is inactive")
)

// GroupService group use cases
type GroupService interface {
	Create(ctx context.Context, req *dto.CreateGroupRequest, callerID string) (*dto.GroupResponse, error)
	GetByID(ctx context.Context, id string) (*dto.GroupResponse, error)
	List(ctx context.Context, req *dto.GroupListRequest) ([]dto.GroupResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateGroupRequest, callerID string) (*dto.GroupResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type groupService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewGroupService creates a GroupService.
func NewGroupService(repo *repository.Repository, logger *zap.Logger) GroupService {
	return &groupService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *groupService) Create(ctx context.Context, req *dto.CreateGroupRequest, callerID string) (*dto.GroupResponse, error) {
	group := &model.Group{
		Name:        req.Name,
		Description: req.Description,
		Status:      model.GroupActive,
	}
	group.CreatedBy = optionalID(callerID)
	group.UpdatedBy = optionalID(callerID)

	if err := s.repo.Group.Create(ctx, group); err != nil {
		s.logger.Error("create group failed", zap.Error(err))
		return nil, err
	}

	resp := toGroupResponse(group)
	return &resp, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *groupService) GetByID(ctx context.Context, id string) (*dto.GroupResponse, error) {
	group, err := s.loadGroup(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toGroupResponse(group)
	return &resp, nil
}

// ────────────────────── List ──────────────────────

func (s *groupService) List(ctx context.Context, req *dto.GroupListRequest) ([]dto.GroupResponse, error) {
	groups, err := s.repo.Group.List(ctx, model.GroupStatus(req.Status))
	if err != nil {
		s.logger.Error("list groups failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.GroupResponse, 0, len(groups))
	for i := range groups {
		result = append(result, toGroupResponse(&groups[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *groupService) Update(ctx context.Context, id string, req *dto.UpdateGroupRequest, callerID string) (*dto.GroupResponse, error) {
	group, err := s.loadGroup(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		group.Name = *req.Name
	}
	if req.Description != nil {
		group.Description = *req.Description
	}
	if req.Status != nil {
		status := model.GroupStatus(*req.Status)
		if !status.Valid() {
			return nil, pkgerrors.Validationf("unknown group status %q", *req.Status)
		}
		group.Status = status
	}
	group.UpdatedBy = optionalID(callerID)

	if err := s.repo.Group.Update(ctx, group); err != nil {
		s.logger.Error("update group failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	resp := toGroupResponse(group)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *groupService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.loadGroup(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Group.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("delete group failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *groupService) loadGroup(ctx context.Context, id string) (*model.Group, error) {
	return findGroup(ctx, s.repo, s.logger, id)
}

// findGroup loads a group and translates a missing row into ErrGroupNotFound.
func findGroup(ctx context.Context, repo *repository.Repository, logger *zap.Logger, id string) (*model.Group, error) {
	group, err := repo.Group.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		logger.Error("query group failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return group, nil
}
