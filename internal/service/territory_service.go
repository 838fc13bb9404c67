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

var ErrTerritoryNotFound = pkgerrors.NotFound("territory not found")

// TerritoryService territory use cases
type TerritoryService interface {
	Create(ctx context.Context, req *dto.CreateTerritoryRequest, callerID string) (*dto.TerritoryResponse, error)
	GetByID(ctx context.Context, id string) (*dto.TerritoryResponse, error)
	List(ctx context.Context, req *dto.TerritoryListRequest) ([]dto.TerritoryResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateTerritoryRequest, callerID string) (*dto.TerritoryResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type territoryService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTerritoryService creates a TerritoryService.
func NewTerritoryService(repo *repository.Repository, logger *zap.Logger) TerritoryService {
	return &territoryService{repo: repo, logger: logger}
}

func (s *territoryService) Create(ctx context.Context, req *dto.CreateTerritoryRequest, callerID string) (*dto.TerritoryResponse, error) {
	group, err := findGroup(ctx, s.repo, s.logger, req.GroupID)
	if err != nil {
		return nil, err
	}

	territory := &model.Territory{
		Name:        req.Name,
		Description: req.Description,
		MapImageURL: req.MapImageURL,
		MapURL:      req.MapURL,
		GroupID:     req.GroupID,
		IsActive:    req.IsActive == nil || *req.IsActive,
	}
	territory.CreatedBy = optionalID(callerID)
	territory.UpdatedBy = optionalID(callerID)

	if err := s.repo.Territory.Create(ctx, territory); err != nil {
		s.logger.Error("create territory failed", zap.String("group_id", req.GroupID), zap.Error(err))
		return nil, err
	}

	territory.Group = group
	resp := toTerritoryResponse(territory)
	return &resp, nil
}

func (s *territoryService) GetByID(ctx context.Context, id string) (*dto.TerritoryResponse, error) {
	territory, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toTerritoryResponse(territory)
	return &resp, nil
}

func (s *territoryService) List(ctx context.Context, req *dto.TerritoryListRequest) ([]dto.TerritoryResponse, int64, error) {
	filter := repository.TerritoryFilter{
		GroupID:         req.GroupID,
		Keyword:         req.Keyword,
		IncludeInactive: req.IncludeInactive,
	}
	territories, total, err := s.repo.Territory.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list territories failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.TerritoryResponse, 0, len(territories))
	for i := range territories {
		result = append(result, toTerritoryResponse(&territories[i]))
	}
	return result, total, nil
}

func (s *territoryService) Update(ctx context.Context, id string, req *dto.UpdateTerritoryRequest, callerID string) (*dto.TerritoryResponse, error) {
	territory, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.GroupID != nil && *req.GroupID != territory.GroupID {
		group, err := findGroup(ctx, s.repo, s.logger, *req.GroupID)
		if err != nil {
			return nil, err
		}
		territory.GroupID = group.GroupID
		territory.Group = group
	}
	if req.Name != nil {
		territory.Name = *req.Name
	}
	if req.Description != nil {
		territory.Description = *req.Description
	}
	if req.MapImageURL != nil {
		territory.MapImageURL = *req.MapImageURL
	}
	if req.MapURL != nil {
		territory.MapURL = *req.MapURL
	}
	if req.IsActive != nil {
		territory.IsActive = *req.IsActive
	}
	territory.UpdatedBy = optionalID(callerID)

	if err := s.repo.Territory.Update(ctx, territory); err != nil {
		s.logger.Error("update territory failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	resp := toTerritoryResponse(territory)
	return &resp, nil
}

func (s *territoryService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Territory.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("delete territory failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *territoryService) load(ctx context.Context, id string) (*model.Territory, error) {
	territory, err := s.repo.Territory.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTerritoryNotFound
		}
		s.logger.Error("query territory failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return territory, nil
}
