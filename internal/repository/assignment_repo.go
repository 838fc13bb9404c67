package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ray8844/saida-de-campo/internal/model"
	pkgerrors "github.com/ray8844/saida-de-campo/pkg/errors"
)

// AssignmentFilter assignment list filter. From and To are inclusive
// YYYY-MM-DD bounds; empty fields are ignored.
type AssignmentFilter struct {
	GroupID     string
	BrotherID   string
	TerritoryID string
	Status      model.AssignmentStatus
	From        string
	To          string
}

// AssignmentRepository assignment data access
type AssignmentRepository interface {
	// CreateOuting stores the assignments of one (group, date) outing. It
	// fails with pkgerrors.ErrDuplicate when the outing already has
	// assignments or when any pair would double-book a brother or territory,
	// and with gorm.ErrRecordNotFound when the group does not exist.
	CreateOuting(ctx context.Context, items []model.Assignment) error
	GetByID(ctx context.Context, id string) (*model.Assignment, error)
	ListByGroupAndDate(ctx context.Context, groupID, date string) ([]model.Assignment, error)
	// ListRecentByGroup returns at most limit assignments, most recent first.
	ListRecentByGroup(ctx context.Context, groupID string, limit int) ([]model.Assignment, error)
	List(ctx context.Context, filter AssignmentFilter, offset, limit int) ([]model.Assignment, int64, error)
	// Find returns every assignment matching filter, oldest first.
	Find(ctx context.Context, filter AssignmentFilter) ([]model.Assignment, error)
	// Update writes status, brother and territory under the optimistic lock.
	Update(ctx context.Context, a *model.Assignment) error
	Delete(ctx context.Context, id string) error
	DeleteByGroupAndDate(ctx context.Context, groupID, date string) (int64, error)
}

type assignmentRepo struct {
	db *gorm.DB
}

// NewAssignmentRepo creates an AssignmentRepository.
func NewAssignmentRepo(db *gorm.DB) AssignmentRepository {
	return &assignmentRepo{db: db}
}

func (r *assignmentRepo) CreateOuting(ctx context.Context, items []model.Assignment) error {
	if len(items) == 0 {
		return nil
	}
	groupID, date := items[0].GroupID, items[0].ServiceDate

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The group row lock serializes outing writes of one group across
		// replicas, so the count below cannot race another insert.
		// SQLite ignores FOR UPDATE and serializes writers itself.
		var group model.Group
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("group_id").
			Where("group_id = ?", groupID).
			Take(&group).Error; err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&model.Assignment{}).
			Where("group_id = ? AND service_date = ?", groupID, date).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return pkgerrors.ErrDuplicate
		}
		return tx.Omit("Brother", "Territory", "Group").Create(&items).Error
	})
	return translateDuplicate(err)
}

func (r *assignmentRepo) GetByID(ctx context.Context, id string) (*model.Assignment, error) {
	var a model.Assignment
	err := r.withNames(ctx).
		Where("assignment_id = ?", id).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assignmentRepo) ListByGroupAndDate(ctx context.Context, groupID, date string) ([]model.Assignment, error) {
	var items []model.Assignment
	err := r.withNames(ctx).
		Where("group_id = ? AND service_date = ?", groupID, date).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *assignmentRepo) ListRecentByGroup(ctx context.Context, groupID string, limit int) ([]model.Assignment, error) {
	var items []model.Assignment
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("service_date DESC, created_at DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}

func (r *assignmentRepo) List(ctx context.Context, filter AssignmentFilter, offset, limit int) ([]model.Assignment, int64, error) {
	var (
		items []model.Assignment
		total int64
	)

	if err := applyFilter(r.db.WithContext(ctx).Model(&model.Assignment{}), filter).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := applyFilter(r.withNames(ctx), filter).
		Order("service_date DESC, created_at ASC").
		Offset(offset).Limit(limit).
		Find(&items).Error
	return items, total, err
}

func (r *assignmentRepo) Find(ctx context.Context, filter AssignmentFilter) ([]model.Assignment, error) {
	var items []model.Assignment
	err := applyFilter(r.withNames(ctx), filter).
		Order("service_date ASC, created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *assignmentRepo) Update(ctx context.Context, a *model.Assignment) error {
	oldVersion := a.Version
	result := r.db.WithContext(ctx).
		Model(&model.Assignment{}).
		Where("assignment_id = ? AND version = ?", a.AssignmentID, oldVersion).
		Updates(map[string]interface{}{
			"brother_id":   a.BrotherID,
			"territory_id": a.TerritoryID,
			"status":       a.Status,
			"updated_by":   a.UpdatedBy,
			"version":      oldVersion + 1,
		})
	if result.Error != nil {
		return translateDuplicate(result.Error)
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	a.Version = oldVersion + 1
	return nil
}

func (r *assignmentRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("assignment_id = ?", id).
		Delete(&model.Assignment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *assignmentRepo) DeleteByGroupAndDate(ctx context.Context, groupID, date string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("group_id = ? AND service_date = ?", groupID, date).
		Delete(&model.Assignment{})
	return result.RowsAffected, result.Error
}

// withNames preloads the brother and territory, including soft-deleted
// ones, so historical assignments keep their labels.
func (r *assignmentRepo) withNames(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Brother", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Preload("Territory", func(db *gorm.DB) *gorm.DB { return db.Unscoped() })
}

func applyFilter(db *gorm.DB, f AssignmentFilter) *gorm.DB {
	if f.GroupID != "" {
		db = db.Where("group_id = ?", f.GroupID)
	}
	if f.BrotherID != "" {
		db = db.Where("brother_id = ?", f.BrotherID)
	}
	if f.TerritoryID != "" {
		db = db.Where("territory_id = ?", f.TerritoryID)
	}
	if f.Status != "" {
		db = db.Where("status = ?", f.Status)
	}
	if f.From != "" {
		db = db.Where("service_date >= ?", f.From)
	}
	if f.To != "" {
		db = db.Where("service_date <= ?", f.To)
	}
	return db
}

func translateDuplicate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return pkgerrors.ErrDuplicate
	}
	return err
}
