package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"

	"github.com/dagym-lab/backend/internal/common"
	"github.com/dagym-lab/backend/internal/entity"
	"github.com/dagym-lab/backend/internal/model"
	"github.com/dagym-lab/backend/internal/repository"
	"github.com/dagym-lab/backend/pkg/errorx"
	"github.com/dagym-lab/backend/pkg/storage"
	"github.com/dagym-lab/backend/pkg/xcontext"
)

type UserDomain interface {
	ToggleFollow(context.Context, *model.ToggleFollowRequest) (*model.ToggleFollowResponse, error)
	GetFollowers(context.Context, *model.GetFollowersRequest) (*model.GetFollowersResponse, error)
	GetFollowing(context.Context, *model.GetFollowingRequest) (*model.GetFollowingResponse, error)
	GetUser(context.Context, *model.GetUserRequest) (*model.GetUserResponse, error)
	GetMe(context.Context, *model.GetMeRequest) (*model.GetMeResponse, error)
	Update(context.Context, *model.UpdateUserRequest) (*model.UpdateUserResponse, error)
	UploadAvatar(context.Context, *model.UploadAvatarRequest) (*model.UploadAvatarResponse, error)
	Search(context.Context, *model.SearchUsersRequest) (*model.SearchUsersResponse, error)
	GetSuggestions(context.Context, *model.GetSuggestedUsersRequest) (*model.GetSuggestedUsersResponse, error)
	Delete(context.Context, *model.DeleteUserRequest) (*model.DeleteUserResponse, error)
}

type userDomain struct {
	userRepo        repository.UserRepository
	followRepo      repository.FollowRepository
	postRepo        repository.PostRepository
	likeRepo        repository.LikeRepository
	commentRepo     repository.CommentRepository
	groupMemberRepo repository.GroupMemberRepository
	storyRepo       repository.StoryRepository
	messageRepo     repository.MessageRepository
	fileStorage     storage.Storage
	followLocker    *common.KeyLocker
}

func NewUserDomain(
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	postRepo repository.PostRepository,
	likeRepo repository.LikeRepository,
	commentRepo repository.CommentRepository,
	groupMemberRepo repository.GroupMemberRepository,
	storyRepo repository.StoryRepository,
	messageRepo repository.MessageRepository,
	fileStorage storage.Storage,
) *userDomain {
	return &userDomain{
		userRepo:        userRepo,
		followRepo:      followRepo,
		postRepo:        postRepo,
		likeRepo:        likeRepo,
		commentRepo:     commentRepo,
		groupMemberRepo: groupMemberRepo,
		storyRepo:       storyRepo,
		messageRepo:     messageRepo,
		fileStorage:     fileStorage,
		followLocker:    common.NewKeyLocker(),
	}
}

// ToggleFollow follows the target if no edge exists, otherwise unfollows. The
// pair lock plus the transaction makes the toggle atomic, so two racing
// requests resolve to a deterministic final state.
func (d *userDomain) ToggleFollow(
	ctx context.Context, req *model.ToggleFollowRequest,
) (*model.ToggleFollowResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	if req.UserID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty user id")
	}

	// Following yourself does nothing.
	if req.UserID == requestUserID {
		return &model.ToggleFollowResponse{}, nil
	}

	if _, err := d.userRepo.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	lockKey := fmt.Sprintf("follow:%s:%s", requestUserID, req.UserID)
	d.followLocker.Lock(lockKey)
	defer d.followLocker.Unlock(lockKey)

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	following := false
	_, err := d.followRepo.Get(ctx, requestUserID, req.UserID)
	switch {
	case err == nil:
		if err := d.followRepo.Delete(ctx, requestUserID, req.UserID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot delete follow: %v", err)
			return nil, errorx.Unknown
		}

	case errors.Is(err, gorm.ErrRecordNotFound):
		err := d.followRepo.Create(ctx, &entity.Follow{
			FollowerID: requestUserID,
			FollowedID: req.UserID,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create follow: %v", err)
			return nil, errorx.Unknown
		}

		following = true

	default:
		xcontext.Logger(ctx).Errorf("Cannot get follow: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.ToggleFollowResponse{Following: following}, nil
}

func (d *userDomain) GetFollowers(
	ctx context.Context, req *model.GetFollowersRequest,
) (*model.GetFollowersResponse, error) {
	userID := req.UserID
	if userID == "" {
		userID = xcontext.RequestUserID(ctx)
	}

	follows, err := d.followRepo.GetListByFollowedID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get followers: %v", err)
		return nil, errorx.Unknown
	}

	userIDs := []string{}
	for _, f := range follows {
		userIDs = append(userIDs, f.FollowerID)
	}

	users, err := d.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetFollowersResponse{Users: model.ConvertShortUsers(users)}, nil
}

func (d *userDomain) GetFollowing(
	ctx context.Context, req *model.GetFollowingRequest,
) (*model.GetFollowingResponse, error) {
	userID := req.UserID
	if userID == "" {
		userID = xcontext.RequestUserID(ctx)
	}

	follows, err := d.followRepo.GetListByFollowerID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get following list: %v", err)
		return nil, errorx.Unknown
	}

	userIDs := []string{}
	for _, f := range follows {
		userIDs = append(userIDs, f.FollowedID)
	}

	users, err := d.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetFollowingResponse{Users: model.ConvertShortUsers(users)}, nil
}

func (d *userDomain) GetUser(
	ctx context.Context, req *model.GetUserRequest,
) (*model.GetUserResponse, error) {
	if req.UserID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty user id")
	}

	user, err := d.profile(ctx, req.UserID, false)
	if err != nil {
		return nil, err
	}

	return &model.GetUserResponse{User: *user}, nil
}

func (d *userDomain) GetMe(
	ctx context.Context, req *model.GetMeRequest,
) (*model.GetMeResponse, error) {
	user, err := d.profile(ctx, xcontext.RequestUserID(ctx), true)
	if err != nil {
		return nil, err
	}

	return &model.GetMeResponse{User: *user}, nil
}

func (d *userDomain) profile(
	ctx context.Context, userID string, includeSensitive bool,
) (*model.User, error) {
	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	followers, err := d.followRepo.CountFollowers(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count followers: %v", err)
		return nil, errorx.Unknown
	}

	following, err := d.followRepo.CountFollowing(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count following: %v", err)
		return nil, errorx.Unknown
	}

	posts, err := d.postRepo.CountByAuthorID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count posts: %v", err)
		return nil, errorx.Unknown
	}

	isFollowed := false
	if requestUserID := xcontext.RequestUserID(ctx); requestUserID != "" && requestUserID != userID {
		if _, err := d.followRepo.Get(ctx, requestUserID, userID); err == nil {
			isFollowed = true
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get follow: %v", err)
			return nil, errorx.Unknown
		}
	}

	converted := model.ConvertUser(user, includeSensitive, followers, following, posts, isFollowed)
	return &converted, nil
}

func (d *userDomain) Update(
	ctx context.Context, req *model.UpdateUserRequest,
) (*model.UpdateUserResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	if req.Weight < 0 || req.Height < 0 {
		return nil, errorx.New(errorx.BadRequest, "Not allow negative measurements")
	}

	update := &entity.User{
		Name:        req.Name,
		Description: req.Description,
		Weight:      req.Weight,
		Height:      req.Height,
	}

	if req.Weight > 0 || req.Height > 0 {
		update.LastMeasurementUpdate = time.Now()
	}

	if req.Diet != nil {
		b, err := json.Marshal(req.Diet)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot marshal diet: %v", err)
			return nil, errorx.Unknown
		}
		update.Diet = b
	}

	if req.Workout != nil {
		b, err := json.Marshal(req.Workout)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot marshal workout: %v", err)
			return nil, errorx.Unknown
		}
		update.Workout = b
	}

	if err := d.userRepo.UpdateByID(ctx, requestUserID, update); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update user: %v", err)
		return nil, errorx.Unknown
	}

	user, err := d.profile(ctx, requestUserID, true)
	if err != nil {
		return nil, err
	}

	return &model.UpdateUserResponse{User: *user}, nil
}

func (d *userDomain) UploadAvatar(
	ctx context.Context, req *model.UploadAvatarRequest,
) (*model.UploadAvatarResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)

	images, err := common.ProcessImage(ctx, d.fileStorage, "image", "avatars")
	if err != nil {
		return nil, err
	}

	avatarURL := images[0].Url
	err = d.userRepo.UpdateByID(ctx, requestUserID, &entity.User{AvatarURL: avatarURL})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update avatar url: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UploadAvatarResponse{AvatarURL: avatarURL}, nil
}

func (d *userDomain) Search(
	ctx context.Context, req *model.SearchUsersRequest,
) (*model.SearchUsersResponse, error) {
	if req.Q == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty query")
	}

	_, limit, err := checkPagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	users, err := d.userRepo.Search(ctx, req.Q, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot search users: %v", err)
		return nil, errorx.Unknown
	}

	return &model.SearchUsersResponse{Users: model.ConvertShortUsers(users)}, nil
}

// GetSuggestions returns random users the requester does not follow yet.
func (d *userDomain) GetSuggestions(
	ctx context.Context, req *model.GetSuggestedUsersRequest,
) (*model.GetSuggestedUsersResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)

	_, limit, err := checkPagination(ctx, 0, req.Limit)
	if err != nil {
		return nil, err
	}

	follows, err := d.followRepo.GetListByFollowerID(ctx, requestUserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get following list: %v", err)
		return nil, errorx.Unknown
	}

	excluded := []string{requestUserID}
	for _, f := range follows {
		excluded = append(excluded, f.FollowedID)
	}

	candidates, err := d.userRepo.GetRandom(ctx, limit+len(excluded))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get random users: %v", err)
		return nil, errorx.Unknown
	}

	suggestions := []model.ShortUser{}
	for i := range candidates {
		if slices.Contains(excluded, candidates[i].ID) {
			continue
		}

		suggestions = append(suggestions, model.ConvertShortUser(&candidates[i]))
		if len(suggestions) == limit {
			break
		}
	}

	return &model.GetSuggestedUsersResponse{Users: suggestions}, nil
}

// Delete removes the account and everything attached to it in one transaction.
func (d *userDomain) Delete(
	ctx context.Context, req *model.DeleteUserRequest,
) (*model.DeleteUserResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.followRepo.DeleteByUserID(ctx, requestUserID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete follows: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.likeRepo.DeleteByUserID(ctx, requestUserID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete likes: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.commentRepo.DeleteByUserID(ctx, requestUserID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete comments: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.postRepo.DeleteByAuthorID(ctx, requestUserID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete posts: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.groupMemberRepo.DeleteByUserID(ctx, requestUserID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete group memberships: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.storyRepo.DeleteByUserID(ctx, requestUserID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete stories: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.messageRepo.DeleteByUserID(ctx, requestUserID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete messages: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.userRepo.DeleteByID(ctx, requestUserID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete user: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.DeleteUserResponse{}, nil
}
