package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ray8844/saida-de-campo/internal/model"
)

// GroupRepository group data access
type GroupRepository interface {
	Create(ctx context.Context, group *model.Group) error
	GetByID(ctx context.Context, id string) (*model.Group, error)
	List(ctx context.Context, status model.GroupStatus) ([]model.Group, error)
	Update(ctx context.Context, group *model.Group) error
	Delete(ctx context.Context, id, deletedBy string) error
}

type groupRepo struct {
	db *gorm.DB
}

// NewGroupRepo creates a GroupRepository.
func NewGroupRepo(db *gorm.DB) GroupRepository {
	return &groupRepo{db: db}
}

func (r *groupRepo) Create(ctx context.Context, group *model.Group) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *groupRepo) GetByID(ctx context.Context, id string) (*model.Group, error) {
	var group model.Group
	err := r.db.WithContext(ctx).
		Where("group_id = ?", id).
		First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// List returns groups ordered by name; an empty status returns every group.
func (r *groupRepo) List(ctx context.Context, status model.GroupStatus) ([]model.Group, error) {
	var groups []model.Group
	db := r.db.WithContext(ctx)
	if status != "" {
		db = db.Where("status = ?", status)
	}
	err := db.Order("name ASC").Find(&groups).Error
	return groups, err
}

func (r *groupRepo) Update(ctx context.Context, group *model.Group) error {
	return r.db.WithContext(ctx).
		Model(group).
		Where("group_id = ?", group.GroupID).
		Updates(map[string]interface{}{
			"name":        group.Name,
			"description": group.Description,
			"status":      group.Status,
			"updated_by":  group.UpdatedBy,
		}).Error
}

func (r *groupRepo) Delete(ctx context.Context, id, deletedBy string) error {
	return softDelete(ctx, r.db, &model.Group{}, "group_id", id, deletedBy)
}
