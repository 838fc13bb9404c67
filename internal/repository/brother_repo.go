package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ray8844/saida-de-campo/internal/model"
)

// BrotherFilter brother list filter
type BrotherFilter struct {
	GroupID         string
	Keyword         string
	IncludeInactive bool
}

// BrotherRepository brother data access
type BrotherRepository interface {
	Create(ctx context.Context, brother *model.Brother) error
	BatchCreate(ctx context.Context, brothers []model.Brother) error
	GetByID(ctx context.Context, id string) (*model.Brother, error)
	List(ctx context.Context, filter BrotherFilter, offset, limit int) ([]model.Brother, int64, error)
	// ListActiveByGroup returns the brothers eligible for generation.
	ListActiveByGroup(ctx context.Context, groupID string) ([]model.Brother, error)
	Update(ctx context.Context, brother *model.Brother) error
	Delete(ctx context.Context, id, deletedBy string) error
}

type brotherRepo struct {
	db *gorm.DB
}

// NewBrotherRepo creates a BrotherRepository.
func NewBrotherRepo(db *gorm.DB) BrotherRepository {
	return &brotherRepo{db: db}
}

func (r *brotherRepo) Create(ctx context.Context, brother *model.Brother) error {
	return r.db.WithContext(ctx).Create(brother).Error
}

func (r *brotherRepo) BatchCreate(ctx context.Context, brothers []model.Brother) error {
	if len(brothers) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(&brothers, 100).Error
}

func (r *brotherRepo) GetByID(ctx context.Context, id string) (*model.Brother, error) {
	var brother model.Brother
	err := r.db.WithContext(ctx).
		Preload("Group").
		Where("brother_id = ?", id).
		First(&brother).Error
	if err != nil {
		return nil, err
	}
	return &brother, nil
}

func (r *brotherRepo) List(ctx context.Context, filter BrotherFilter, offset, limit int) ([]model.Brother, int64, error) {
	var (
		brothers []model.Brother
		total    int64
	)

	db := r.db.WithContext(ctx).Model(&model.Brother{})
	if filter.GroupID != "" {
		db = db.Where("group_id = ?", filter.GroupID)
	}
	if !filter.IncludeInactive {
		db = db.Where("is_active = ?", true)
	}
	if filter.Keyword != "" {
		like := "%" + filter.Keyword + "%"
		db = db.Where("full_name LIKE ? OR email LIKE ? OR phone LIKE ?", like, like, like)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("full_name ASC").Offset(offset).Limit(limit).Find(&brothers).Error
	return brothers, total, err
}

func (r *brotherRepo) ListActiveByGroup(ctx context.Context, groupID string) ([]model.Brother, error) {
	var brothers []model.Brother
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND is_active = ?", groupID, true).
		Order("full_name ASC").
		Find(&brothers).Error
	return brothers, err
}

func (r *brotherRepo) Update(ctx context.Context, brother *model.Brother) error {
	return r.db.WithContext(ctx).
		Model(brother).
		Where("brother_id = ?", brother.BrotherID).
		Updates(map[string]interface{}{
			"full_name":  brother.FullName,
			"phone":      brother.Phone,
			"email":      brother.Email,
			"group_id":   brother.GroupID,
			"is_active":  brother.IsActive,
			"updated_by": brother.UpdatedBy,
		}).Error
}

func (r *brotherRepo) Delete(ctx context.Context, id, deletedBy string) error {
	return softDelete(ctx, r.db, &model.Brother{}, "brother_id", id, deletedBy)
}
