package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dagym-lab/backend/internal/common"
	"github.com/dagym-lab/backend/internal/entity"
	"github.com/dagym-lab/backend/internal/model"
	"github.com/dagym-lab/backend/internal/repository"
	"github.com/dagym-lab/backend/pkg/errorx"
	"github.com/dagym-lab/backend/pkg/xcontext"
)

type GroupDomain interface {
	Create(context.Context, *model.CreateGroupRequest) (*model.CreateGroupResponse, error)
	ToggleMembership(context.Context, *model.ToggleGroupMembershipRequest) (*model.ToggleGroupMembershipResponse, error)
	Get(context.Context, *model.GetGroupRequest) (*model.GetGroupResponse, error)
	GetList(context.Context, *model.GetGroupsRequest) (*model.GetGroupsResponse, error)
	GetMyList(context.Context, *model.GetMyGroupsRequest) (*model.GetMyGroupsResponse, error)
	GetMembers(context.Context, *model.GetGroupMembersRequest) (*model.GetGroupMembersResponse, error)
}

type groupDomain struct {
	groupRepo        repository.GroupRepository
	groupMemberRepo  repository.GroupMemberRepository
	userRepo         repository.UserRepository
	membershipLocker *common.KeyLocker
}

func NewGroupDomain(
	groupRepo repository.GroupRepository,
	groupMemberRepo repository.GroupMemberRepository,
	userRepo repository.UserRepository,
) *groupDomain {
	return &groupDomain{
		groupRepo:        groupRepo,
		groupMemberRepo:  groupMemberRepo,
		userRepo:         userRepo,
		membershipLocker: common.NewKeyLocker(),
	}
}

// Create makes a group and enrolls the creator as its first member in the same
// transaction, so no group ever exists without its creator inside.
func (d *groupDomain) Create(
	ctx context.Context, req *model.CreateGroupRequest,
) (*model.CreateGroupResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty group name")
	}

	group := &entity.Group{
		Base:        entity.Base{ID: uuid.NewString()},
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		CreatedBy:   requestUserID,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.groupRepo.Create(ctx, group); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create group: %v", err)
		return nil, errorx.Unknown
	}

	err := d.groupMemberRepo.Create(ctx, &entity.GroupMember{
		GroupID: group.ID,
		UserID:  requestUserID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot add creator to group: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	creator, err := d.userRepo.GetByID(ctx, requestUserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get creator: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateGroupResponse{
		Group: model.ConvertGroup(group, creator, 1, true),
	}, nil
}

// ToggleMembership joins the group if the requester is not a member, otherwise
// leaves it. The creator leaving does not delete the group.
func (d *groupDomain) ToggleMembership(
	ctx context.Context, req *model.ToggleGroupMembershipRequest,
) (*model.ToggleGroupMembershipResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	if req.GroupID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty group id")
	}

	if _, err := d.groupRepo.GetByID(ctx, req.GroupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found group")
		}

		xcontext.Logger(ctx).Errorf("Cannot get group: %v", err)
		return nil, errorx.Unknown
	}

	lockKey := fmt.Sprintf("membership:%s:%s", req.GroupID, requestUserID)
	d.membershipLocker.Lock(lockKey)
	defer d.membershipLocker.Unlock(lockKey)

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	joined := false
	_, err := d.groupMemberRepo.Get(ctx, req.GroupID, requestUserID)
	switch {
	case err == nil:
		if err := d.groupMemberRepo.Delete(ctx, req.GroupID, requestUserID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot delete group member: %v", err)
			return nil, errorx.Unknown
		}

	case errors.Is(err, gorm.ErrRecordNotFound):
		err := d.groupMemberRepo.Create(ctx, &entity.GroupMember{
			GroupID: req.GroupID,
			UserID:  requestUserID,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create group member: %v", err)
			return nil, errorx.Unknown
		}

		joined = true

	default:
		xcontext.Logger(ctx).Errorf("Cannot get group member: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.ToggleGroupMembershipResponse{Joined: joined}, nil
}

func (d *groupDomain) Get(
	ctx context.Context, req *model.GetGroupRequest,
) (*model.GetGroupResponse, error) {
	if req.GroupID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty group id")
	}

	group, err := d.groupRepo.GetByID(ctx, req.GroupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found group")
		}

		xcontext.Logger(ctx).Errorf("Cannot get group: %v", err)
		return nil, errorx.Unknown
	}

	converted, err := d.convertGroups(ctx, []entity.Group{*group})
	if err != nil {
		return nil, err
	}

	return &model.GetGroupResponse{Group: converted[0]}, nil
}

func (d *groupDomain) GetList(
	ctx context.Context, req *model.GetGroupsRequest,
) (*model.GetGroupsResponse, error) {
	offset, limit, err := checkPagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	groups, err := d.groupRepo.GetList(ctx, repository.GetListGroupFilter{
		Q:      req.Q,
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get groups: %v", err)
		return nil, errorx.Unknown
	}

	converted, err := d.convertGroups(ctx, groups)
	if err != nil {
		return nil, err
	}

	return &model.GetGroupsResponse{Groups: converted}, nil
}

func (d *groupDomain) GetMyList(
	ctx context.Context, req *model.GetMyGroupsRequest,
) (*model.GetMyGroupsResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)

	memberships, err := d.groupMemberRepo.GetListByUserID(ctx, requestUserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get memberships: %v", err)
		return nil, errorx.Unknown
	}

	groupIDs := []string{}
	for _, m := range memberships {
		groupIDs = append(groupIDs, m.GroupID)
	}

	groups, err := d.groupRepo.GetByIDs(ctx, groupIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get groups: %v", err)
		return nil, errorx.Unknown
	}

	converted, err := d.convertGroups(ctx, groups)
	if err != nil {
		return nil, err
	}

	return &model.GetMyGroupsResponse{Groups: converted}, nil
}

func (d *groupDomain) GetMembers(
	ctx context.Context, req *model.GetGroupMembersRequest,
) (*model.GetGroupMembersResponse, error) {
	if req.GroupID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty group id")
	}

	if _, err := d.groupRepo.GetByID(ctx, req.GroupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found group")
		}

		xcontext.Logger(ctx).Errorf("Cannot get group: %v", err)
		return nil, errorx.Unknown
	}

	members, err := d.groupMemberRepo.GetListByGroupID(ctx, req.GroupID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get group members: %v", err)
		return nil, errorx.Unknown
	}

	userIDs := []string{}
	for _, m := range members {
		userIDs = append(userIDs, m.UserID)
	}

	users, err := d.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetGroupMembersResponse{Users: model.ConvertShortUsers(users)}, nil
}

func (d *groupDomain) convertGroups(
	ctx context.Context, groups []entity.Group,
) ([]model.Group, error) {
	requestUserID := xcontext.RequestUserID(ctx)

	groupIDs := []string{}
	creatorIDs := []string{}
	for _, g := range groups {
		groupIDs = append(groupIDs, g.ID)
		creatorIDs = append(creatorIDs, g.CreatedBy)
	}

	members, err := d.groupMemberRepo.GetListByGroupIDs(ctx, groupIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get group members: %v", err)
		return nil, errorx.Unknown
	}

	memberCount := map[string]int64{}
	joined := map[string]bool{}
	for _, m := range members {
		memberCount[m.GroupID]++
		if m.UserID == requestUserID {
			joined[m.GroupID] = true
		}
	}

	creators, err := d.userRepo.GetByIDs(ctx, creatorIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get creators: %v", err)
		return nil, errorx.Unknown
	}

	creatorMap := map[string]*entity.User{}
	for i := range creators {
		creatorMap[creators[i].ID] = &creators[i]
	}

	converted := []model.Group{}
	for i := range groups {
		g := &groups[i]
		converted = append(converted, model.ConvertGroup(
			g, creatorMap[g.CreatedBy], memberCount[g.ID], joined[g.ID]))
	}

	return converted, nil
}
