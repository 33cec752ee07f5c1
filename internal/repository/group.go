package repository

import (
	"context"

	"github.com/dagym-lab/backend/internal/entity"
	"github.com/dagym-lab/backend/pkg/xcontext"
)

type GetListGroupFilter struct {
	Q      string
	Offset int
	Limit  int
}

type GroupRepository interface {
	Create(ctx context.Context, data *entity.Group) error
	GetByID(ctx context.Context, id string) (*entity.Group, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.Group, error)
	GetList(ctx context.Context, filter GetListGroupFilter) ([]entity.Group, error)
	DeleteByID(ctx context.Context, id string) error
}

type groupRepository struct{}

func NewGroupRepository() *groupRepository {
	return &groupRepository{}
}

func (r *groupRepository) Create(ctx context.Context, data *entity.Group) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *groupRepository) GetByID(ctx context.Context, id string) (*entity.Group, error) {
	var record entity.Group
	if err := xcontext.DB(ctx).Take(&record, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *groupRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Group, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var records []entity.Group
	if err := xcontext.DB(ctx).Where("id IN (?)", ids).Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *groupRepository) GetList(ctx context.Context, filter GetListGroupFilter) ([]entity.Group, error) {
	tx := xcontext.DB(ctx).Model(&entity.Group{}).
		Offset(filter.Offset).
		Limit(filter.Limit).
		Order("created_at DESC")

	if filter.Q != "" {
		tx = tx.Where("name LIKE ? OR category LIKE ?", "%"+filter.Q+"%", "%"+filter.Q+"%")
	}

	var records []entity.Group
	if err := tx.Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *groupRepository) DeleteByID(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.Group{}, "id=?", id).Error
}
