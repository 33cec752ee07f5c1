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

// maxRepostDepth bounds how far a repost chain is resolved when rendering a
// post. Deeper originals are cut off rather than failing the whole view.
const maxRepostDepth = 10

// postViewBuilder renders entity posts into client views. Reposts embed their
// immediate original, resolved recursively with a visited set so a corrupted
// cyclic chain can never hang a request.
type postViewBuilder struct {
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
	likeRepo    repository.LikeRepository
	commentRepo repository.CommentRepository
}

func newPostViewBuilder(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	likeRepo repository.LikeRepository,
	commentRepo repository.CommentRepository,
) *postViewBuilder {
	return &postViewBuilder{
		postRepo:    postRepo,
		userRepo:    userRepo,
		likeRepo:    likeRepo,
		commentRepo: commentRepo,
	}
}

func (b *postViewBuilder) build(ctx context.Context, post *entity.Post) (*model.Post, error) {
	return b.buildWithVisited(ctx, post, map[string]bool{}, 0)
}

func (b *postViewBuilder) buildList(ctx context.Context, posts []entity.Post) ([]model.Post, error) {
	views := []model.Post{}
	for i := range posts {
		view, err := b.build(ctx, &posts[i])
		if err != nil {
			return nil, err
		}

		views = append(views, *view)
	}

	return views, nil
}

func (b *postViewBuilder) buildWithVisited(
	ctx context.Context, post *entity.Post, visited map[string]bool, depth int,
) (*model.Post, error) {
	author, err := b.userRepo.GetByID(ctx, post.AuthorID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get post author: %v", err)
		return nil, errorx.Unknown
	}

	likes, err := b.likeRepo.CountByPostID(ctx, post.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count likes: %v", err)
		return nil, errorx.Unknown
	}

	liked := false
	if viewerID := xcontext.RequestUserID(ctx); viewerID != "" {
		if _, err := b.likeRepo.Get(ctx, post.ID, viewerID); err == nil {
			liked = true
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get like: %v", err)
			return nil, errorx.Unknown
		}
	}

	comments, err := b.comments(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	view := &model.Post{
		ID:          post.ID,
		CreatedAt:   post.CreatedAt.Format(model.DefaultTimeLayout),
		Author:      model.ConvertShortUser(author),
		Description: post.Description,
		PhotoURL:    post.PhotoURL,
		Likes:       likes,
		Liked:       liked,
		Comments:    comments,
	}

	if post.IsRepost() && depth < maxRepostDepth && !visited[post.ID] {
		visited[post.ID] = true

		original, err := b.postRepo.GetByID(ctx, post.OriginalPostID.String)
		switch {
		case err == nil:
			originalView, err := b.buildWithVisited(ctx, original, visited, depth+1)
			if err != nil {
				return nil, err
			}
			view.OriginalPost = originalView

		case errors.Is(err, gorm.ErrRecordNotFound):
			// The original was deleted. The repost stays visible on its own.

		default:
			xcontext.Logger(ctx).Errorf("Cannot get original post: %v", err)
			return nil, errorx.Unknown
		}
	}

	return view, nil
}

func (b *postViewBuilder) comments(ctx context.Context, postID string) ([]model.Comment, error) {
	comments, err := b.commentRepo.GetListByPostID(ctx, postID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get comments: %v", err)
		return nil, errorx.Unknown
	}

	userIDs := []string{}
	for _, c := range comments {
		userIDs = append(userIDs, c.UserID)
	}

	users, err := b.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get comment authors: %v", err)
		return nil, errorx.Unknown
	}

	userMap := map[string]*entity.User{}
	for i := range users {
		userMap[users[i].ID] = &users[i]
	}

	views := []model.Comment{}
	for i := range comments {
		views = append(views, model.ConvertComment(&comments[i], userMap[comments[i].UserID]))
	}

	return views, nil
}
