package repository

import (
	"context"
	"time"

	"github.com/dagym-lab/backend/internal/entity"
	"github.com/dagym-lab/backend/pkg/xcontext"
)

type StoryRepository interface {
	Create(ctx context.Context, data *entity.Story) error
	GetByID(ctx context.Context, id string) (*entity.Story, error)
	GetActiveByUserID(ctx context.Context, userID string, now time.Time) ([]entity.Story, error)
	DeleteByID(ctx context.Context, id string) error
	DeleteByUserID(ctx context.Context, userID string) error
}

type storyRepository struct{}

func NewStoryRepository() *storyRepository {
	return &storyRepository{}
}

func (r *storyRepository) Create(ctx context.Context, data *entity.Story) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *storyRepository) GetByID(ctx context.Context, id string) (*entity.Story, error) {
	var record entity.Story
	if err := xcontext.DB(ctx).Take(&record, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *storyRepository) GetActiveByUserID(
	ctx context.Context, userID string, now time.Time,
) ([]entity.Story, error) {
	var records []entity.Story
	err := xcontext.DB(ctx).
		Where("user_id=? AND expires_at > ?", userID, now).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *storyRepository) DeleteByID(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.Story{}, "id=?", id).Error
}

func (r *storyRepository) DeleteByUserID(ctx context.Context, userID string) error {
	return xcontext.DB(ctx).Delete(&entity.Story{}, "user_id=?", userID).Error
}
