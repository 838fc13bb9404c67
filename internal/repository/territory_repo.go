package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ray8844/saida-de-campo/internal/model"
)

// TerritoryFilter territory list filter
type TerritoryFilter struct {
	GroupID         string
	Keyword         string
	IncludeInactive bool
}

// TerritoryRepository territory data access
type TerritoryRepository interface {
	Create(ctx context.Context, territory *model.Territory) error
	GetByID(ctx context.Context, id string) (*model.Territory, error)
	List(ctx context.Context, filter TerritoryFilter, offset, limit int) ([]model.Territory, int64, error)
	// ListActiveByGroup returns the territories eligible for generation.
	ListActiveByGroup(ctx context.Context, groupID string) ([]model.Territory, error)
	Update(ctx context.Context, territory *model.Territory) error
	Delete(ctx context.Context, id, deletedBy string) error
}

type territoryRepo struct {
	db *gorm.DB
}

// NewTerritoryRepo creates a TerritoryRepository.
func NewTerritoryRepo(db *gorm.DB) TerritoryRepository {
	return &territoryRepo{db: db}
}

func (r *territoryRepo) Create(ctx context.Context, territory *model.Territory) error {
	return r.db.WithContext(ctx).Create(territory).Error
}

func (r *territoryRepo) GetByID(ctx context.Context, id string) (*model.Territory, error) {
	var territory model.Territory
	err := r.db.WithContext(ctx).
		Preload("Group").
		Where("territory_id = ?", id).
		First(&territory).Error
	if err != nil {
		return nil, err
	}
	return &territory, nil
}

func (r *territoryRepo) List(ctx context.Context, filter TerritoryFilter, offset, limit int) ([]model.Territory, int64, error) {
	var (
		territories []model.Territory
		total       int64
	)

	db := r.db.WithContext(ctx).Model(&model.Territory{})
	if filter.GroupID != "" {
		db = db.Where("group_id = ?", filter.GroupID)
	}
	if !filter.IncludeInactive {
		db = db.Where("is_active = ?", true)
	}
	if filter.Keyword != "" {
		like := "%" + filter.Keyword + "%"
		db = db.Where("name LIKE ? OR description LIKE ?", like, like)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("name ASC").Offset(offset).Limit(limit).Find(&territories).Error
	return territories, total, err
}

func (r *territoryRepo) ListActiveByGroup(ctx context.Context, groupID string) ([]model.Territory, error) {
	var territories []model.Territory
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND is_active = ?", groupID, true).
		Order("name ASC").
		Find(&territories).Error
	return territories, err
}

func (r *territoryRepo) Update(ctx context.Context, territory *model.Territory) error {
	return r.db.WithContext(ctx).
		Model(territory).
		Where("territory_id = ?", territory.TerritoryID).
		Updates(map[string]interface{}{
			"name":          territory.Name,
			"description":   territory.Description,
			"map_image_url": territory.MapImageURL,
			"map_url":       territory.MapURL,
			"group_id":      territory.GroupID,
			"is_active":     territory.IsActive,
			"updated_by":    territory.UpdatedBy,
		}).Error
}

func (r *territoryRepo) Delete(ctx context.Context, id, deletedBy string) error {
	return softDelete(ctx, r.db, &model.Territory{}, "territory_id", id, deletedBy)
}
