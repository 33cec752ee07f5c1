package repository

import (
	"context"

	"github.com/dagym-lab/backend/internal/entity"
	"github.com/dagym-lab/backend/pkg/xcontext"
)

type LikeRepository interface {
	Get(ctx context.Context, postID, userID string) (*entity.Like, error)
	Create(ctx context.Context, data *entity.Like) error
	Delete(ctx context.Context, postID, userID string) error
	CountByPostID(ctx context.Context, postID string) (int64, error)
	GetListByPostIDs(ctx context.Context, postIDs []string) ([]entity.Like, error)
	DeleteByPostID(ctx context.Context, postID string) error
	DeleteByUserID(ctx context.Context, userID string) error
}

type likeRepository struct{}

func NewLikeRepository() *likeRepository {
	return &likeRepository{}
}

func (r *likeRepository) Get(ctx context.Context, postID, userID string) (*entity.Like, error) {
	var record entity.Like
	err := xcontext.DB(ctx).Take(&record, "post_id=? AND user_id=?", postID, userID).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *likeRepository) Create(ctx context.Context, data *entity.Like) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *likeRepository) Delete(ctx context.Context, postID, userID string) error {
	return xcontext.DB(ctx).
		Delete(&entity.Like{}, "post_id=? AND user_id=?", postID, userID).Error
}

func (r *likeRepository) CountByPostID(ctx context.Context, postID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.Like{}).
		Where("post_id=?", postID).Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *likeRepository) GetListByPostIDs(ctx context.Context, postIDs []string) ([]entity.Like, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}

	var records []entity.Like
	if err := xcontext.DB(ctx).Where("post_id IN (?)", postIDs).Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *likeRepository) DeleteByPostID(ctx context.Context, postID string) error {
	return xcontext.DB(ctx).Delete(&entity.Like{}, "post_id=?", postID).Error
}

func (r *likeRepository) DeleteByUserID(ctx context.Context, userID string) error {
	return xcontext.DB(ctx).Delete(&entity.Like{}, "user_id=?", userID).Error
}
