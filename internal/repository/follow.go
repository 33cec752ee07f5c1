package repository

import (
	"context"

	"github.com/dagym-lab/backend/internal/entity"
	"github.com/dagym-lab/backend/pkg/xcontext"
)

type FollowRepository interface {
	Get(ctx context.Context, followerID, followedID string) (*entity.Follow, error)
	Create(ctx context.Context, data *entity.Follow) error
	Delete(ctx context.Context, followerID, followedID string) error
	GetListByFollowerID(ctx context.Context, followerID string) ([]entity.Follow, error)
	GetListByFollowedID(ctx context.Context, followedID string) ([]entity.Follow, error)
	CountFollowers(ctx context.Context, userID string) (int64, error)
	CountFollowing(ctx context.Context, userID string) (int64, error)
	DeleteByUserID(ctx context.Context, userID string) error
}

type followRepository struct{}

func NewFollowRepository() *followRepository {
	return &followRepository{}
}

func (r *followRepository) Get(ctx context.Context, followerID, followedID string) (*entity.Follow, error) {
	var record entity.Follow
	err := xcontext.DB(ctx).
		Take(&record, "follower_id=? AND followed_id=?", followerID, followedID).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *followRepository) Create(ctx context.Context, data *entity.Follow) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *followRepository) Delete(ctx context.Context, followerID, followedID string) error {
	return xcontext.DB(ctx).
		Delete(&entity.Follow{}, "follower_id=? AND followed_id=?", followerID, followedID).Error
}

func (r *followRepository) GetListByFollowerID(ctx context.Context, followerID string) ([]entity.Follow, error) {
	var records []entity.Follow
	if err := xcontext.DB(ctx).Where("follower_id=?", followerID).Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *followRepository) GetListByFollowedID(ctx context.Context, followedID string) ([]entity.Follow, error) {
	var records []entity.Follow
	if err := xcontext.DB(ctx).Where("followed_id=?", followedID).Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *followRepository) CountFollowers(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.Follow{}).
		Where("followed_id=?", userID).Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *followRepository) CountFollowing(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.Follow{}).
		Where("follower_id=?", userID).Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *followRepository) DeleteByUserID(ctx context.Context, userID string) error {
	return xcontext.DB(ctx).
		Delete(&entity.Follow{}, "follower_id=? OR followed_id=?", userID, userID).Error
}
