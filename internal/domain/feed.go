package domain

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/dagym-lab/backend/internal/entity"
	"github.com/dagym-lab/backend/internal/model"
	"github.com/dagym-lab/backend/internal/repository"
	"github.com/dagym-lab/backend/pkg/errorx"
	"github.com/dagym-lab/backend/pkg/xcontext"
)

type FeedDomain interface {
	GetFeed(context.Context, *model.GetFeedRequest) (*model.GetFeedResponse, error)
	GetUserPosts(context.Context, *model.GetUserPostsRequest) (*model.GetUserPostsResponse, error)
}

type feedDomain struct {
	postRepo        repository.PostRepository
	followRepo      repository.FollowRepository
	userRepo        repository.UserRepository
	groupMemberRepo repository.GroupMemberRepository
	viewBuilder     *postViewBuilder
}

func NewFeedDomain(
	postRepo repository.PostRepository,
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
	likeRepo repository.LikeRepository,
	commentRepo repository.CommentRepository,
	groupMemberRepo repository.GroupMemberRepository,
) *feedDomain {
	return &feedDomain{
		postRepo:        postRepo,
		followRepo:      followRepo,
		userRepo:        userRepo,
		groupMemberRepo: groupMemberRepo,
		viewBuilder:     newPostViewBuilder(postRepo, userRepo, likeRepo, commentRepo),
	}
}

// GetFeed returns posts newest first. The general feed covers every author,
// the following feed the requester, the authors they follow, and their
// group-mates.
func (d *feedDomain) GetFeed(
	ctx context.Context, req *model.GetFeedRequest,
) (*model.GetFeedResponse, error) {
	offset, limit, err := checkPagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	feedType := req.Type
	if feedType == "" {
		feedType = model.FeedTypeGeneral
	}

	switch feedType {
	case model.FeedTypeGeneral:
		posts, err := d.postRepo.GetList(ctx, offset, limit)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get posts: %v", err)
			return nil, errorx.Unknown
		}

		views, err := d.viewBuilder.buildList(ctx, posts)
		if err != nil {
			return nil, err
		}

		return &model.GetFeedResponse{Posts: views}, nil

	case model.FeedTypeFollowing:
		requestUserID := xcontext.RequestUserID(ctx)
		if requestUserID == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		authorIDs, err := d.feedAuthorIDs(ctx, requestUserID)
		if err != nil {
			return nil, err
		}

		posts, err := d.postRepo.GetListByAuthorIDs(ctx, authorIDs, offset, limit)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get posts: %v", err)
			return nil, errorx.Unknown
		}

		views, err := d.viewBuilder.buildList(ctx, posts)
		if err != nil {
			return nil, err
		}

		return &model.GetFeedResponse{Posts: views}, nil
	}

	return nil, errorx.New(errorx.BadRequest, "Invalid feed type %s", feedType)
}

// feedAuthorIDs collects the requester, everyone the requester follows, and
// every member of the requester's groups, deduplicated.
func (d *feedDomain) feedAuthorIDs(ctx context.Context, requestUserID string) ([]string, error) {
	follows, err := d.followRepo.GetListByFollowerID(ctx, requestUserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get following list: %v", err)
		return nil, errorx.Unknown
	}

	memberships, err := d.groupMemberRepo.GetListByUserID(ctx, requestUserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get group memberships: %v", err)
		return nil, errorx.Unknown
	}

	groupIDs := []string{}
	for _, m := range memberships {
		groupIDs = append(groupIDs, m.GroupID)
	}

	groupMates := []entity.GroupMember{}
	if len(groupIDs) > 0 {
		groupMates, err = d.groupMemberRepo.GetListByGroupIDs(ctx, groupIDs)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get group members: %v", err)
			return nil, errorx.Unknown
		}
	}

	seen := map[string]bool{requestUserID: true}
	authorIDs := []string{requestUserID}
	for _, f := range follows {
		if !seen[f.FollowedID] {
			seen[f.FollowedID] = true
			authorIDs = append(authorIDs, f.FollowedID)
		}
	}

	for _, m := range groupMates {
		if !seen[m.UserID] {
			seen[m.UserID] = true
			authorIDs = append(authorIDs, m.UserID)
		}
	}

	return authorIDs, nil
}

func (d *feedDomain) GetUserPosts(
	ctx context.Context, req *model.GetUserPostsRequest,
) (*model.GetUserPostsResponse, error) {
	if req.UserID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty user id")
	}

	offset, limit, err := checkPagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	if _, err := d.userRepo.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	posts, err := d.postRepo.GetListByAuthorIDs(ctx, []string{req.UserID}, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get posts: %v", err)
		return nil, errorx.Unknown
	}

	views, err := d.viewBuilder.buildList(ctx, posts)
	if err != nil {
		return nil, err
	}

	return &model.GetUserPostsResponse{Posts: views}, nil
}
