package repository

import (
	"context"

	"github.com/dagym-lab/backend/internal/entity"
	"github.com/dagym-lab/backend/pkg/xcontext"
)

type GroupMemberRepository interface {
	Get(ctx context.Context, groupID, userID string) (*entity.GroupMember, error)
	Create(ctx context.Context, data *entity.GroupMember) error
	Delete(ctx context.Context, groupID, userID string) error
	GetListByGroupID(ctx context.Context, groupID string) ([]entity.GroupMember, error)
	GetListByUserID(ctx context.Context, userID string) ([]entity.GroupMember, error)
	GetListByGroupIDs(ctx context.Context, groupIDs []string) ([]entity.GroupMember, error)
	CountByGroupID(ctx context.Context, groupID string) (int64, error)
	DeleteByUserID(ctx context.Context, userID string) error
}

type groupMemberRepository struct{}

func NewGroupMemberRepository() *groupMemberRepository {
	return &groupMemberRepository{}
}

func (r *groupMemberRepository) Get(ctx context.Context, groupID, userID string) (*entity.GroupMember, error) {
	var record entity.GroupMember
	err := xcontext.DB(ctx).Take(&record, "group_id=? AND user_id=?", groupID, userID).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *groupMemberRepository) Create(ctx context.Context, data *entity.GroupMember) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *groupMemberRepository) Delete(ctx context.Context, groupID, userID string) error {
	return xcontext.DB(ctx).
		Delete(&entity.GroupMember{}, "group_id=? AND user_id=?", groupID, userID).Error
}

func (r *groupMemberRepository) GetListByGroupID(ctx context.Context, groupID string) ([]entity.GroupMember, error) {
	var records []entity.GroupMember
	if err := xcontext.DB(ctx).Where("group_id=?", groupID).Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *groupMemberRepository) GetListByUserID(ctx context.Context, userID string) ([]entity.GroupMember, error) {
	var records []entity.GroupMember
	if err := xcontext.DB(ctx).Where("user_id=?", userID).Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *groupMemberRepository) GetListByGroupIDs(ctx context.Context, groupIDs []string) ([]entity.GroupMember, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}

	var records []entity.GroupMember
	if err := xcontext.DB(ctx).Where("group_id IN (?)", groupIDs).Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *groupMemberRepository) CountByGroupID(ctx context.Context, groupID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.GroupMember{}).
		Where("group_id=?", groupID).Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *groupMemberRepository) DeleteByUserID(ctx context.Context, userID string) error {
	return xcontext.DB(ctx).Delete(&entity.GroupMember{}, "user_id=?", userID).Error
}
