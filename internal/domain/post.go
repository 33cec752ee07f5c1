package domain

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dagym-lab/backend/internal/common"
	"github.com/dagym-lab/backend/internal/entity"
	"github.com/dagym-lab/backend/internal/model"
	"github.com/dagym-lab/backend/internal/repository"
	"github.com/dagym-lab/backend/pkg/errorx"
	"github.com/dagym-lab/backend/pkg/storage"
	"github.com/dagym-lab/backend/pkg/xcontext"
)

type PostDomain interface {
	Create(context.Context, *model.CreatePostRequest) (*model.CreatePostResponse, error)
	Get(context.Context, *model.GetPostRequest) (*model.GetPostResponse, error)
	Delete(context.Context, *model.DeletePostRequest) (*model.DeletePostResponse, error)
	ToggleLike(context.Context, *model.ToggleLikeRequest) (*model.ToggleLikeResponse, error)
	AddComment(context.Context, *model.AddCommentRequest) (*model.AddCommentResponse, error)
	Repost(context.Context, *model.RepostRequest) (*model.RepostResponse, error)
	UploadPhoto(context.Context, *model.UploadPostPhotoRequest) (*model.UploadPostPhotoResponse, error)
}

type postDomain struct {
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
	likeRepo    repository.LikeRepository
	commentRepo repository.CommentRepository
	fileStorage storage.Storage
	viewBuilder *postViewBuilder
	likeLocker  *common.KeyLocker
}

func NewPostDomain(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	likeRepo repository.LikeRepository,
	commentRepo repository.CommentRepository,
	fileStorage storage.Storage,
) *postDomain {
	return &postDomain{
		postRepo:    postRepo,
		userRepo:    userRepo,
		likeRepo:    likeRepo,
		commentRepo: commentRepo,
		fileStorage: fileStorage,
		viewBuilder: newPostViewBuilder(postRepo, userRepo, likeRepo, commentRepo),
		likeLocker:  common.NewKeyLocker(),
	}
}

// UploadPhoto stores a post image and returns its url. The client passes the
// url back through Create.
func (d *postDomain) UploadPhoto(
	ctx context.Context, req *model.UploadPostPhotoRequest,
) (*model.UploadPostPhotoResponse, error) {
	images, err := common.ProcessImage(ctx, d.fileStorage, "image", "posts")
	if err != nil {
		return nil, err
	}

	return &model.UploadPostPhotoResponse{PhotoURL: images[0].Url}, nil
}

func (d *postDomain) Create(
	ctx context.Context, req *model.CreatePostRequest,
) (*model.CreatePostResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	if strings.TrimSpace(req.Description) == "" && req.PhotoURL == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty post")
	}

	post := &entity.Post{
		Base:        entity.Base{ID: uuid.NewString()},
		AuthorID:    requestUserID,
		Description: req.Description,
		PhotoURL:    req.PhotoURL,
	}

	if err := d.postRepo.Create(ctx, post); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create post: %v", err)
		return nil, errorx.Unknown
	}

	view, err := d.viewBuilder.build(ctx, post)
	if err != nil {
		return nil, err
	}

	return &model.CreatePostResponse{Post: *view}, nil
}

func (d *postDomain) Get(
	ctx context.Context, req *model.GetPostRequest,
) (*model.GetPostResponse, error) {
	if req.PostID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty post id")
	}

	post, err := d.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	view, err := d.viewBuilder.build(ctx, post)
	if err != nil {
		return nil, err
	}

	return &model.GetPostResponse{Post: *view}, nil
}

// Delete removes a post with its likes and comments. Reposts pointing at it
// survive and render without an original.
func (d *postDomain) Delete(
	ctx context.Context, req *model.DeletePostRequest,
) (*model.DeletePostResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	if req.PostID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty post id")
	}

	post, err := d.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	if post.AuthorID != requestUserID {
		return nil, errorx.New(errorx.PermissionDenied, "Only the author can delete this post")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.likeRepo.DeleteByPostID(ctx, req.PostID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete likes: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.commentRepo.DeleteByPostID(ctx, req.PostID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete comments: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.postRepo.DeleteByID(ctx, req.PostID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete post: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.DeletePostResponse{}, nil
}

// ToggleLike likes the post if no like exists, otherwise removes it. The pair
// lock serializes racing toggles for the same post and user.
func (d *postDomain) ToggleLike(
	ctx context.Context, req *model.ToggleLikeRequest,
) (*model.ToggleLikeResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	if req.PostID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty post id")
	}

	if _, err := d.postRepo.GetByID(ctx, req.PostID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	lockKey := fmt.Sprintf("like:%s:%s", req.PostID, requestUserID)
	d.likeLocker.Lock(lockKey)
	defer d.likeLocker.Unlock(lockKey)

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	liked := false
	_, err := d.likeRepo.Get(ctx, req.PostID, requestUserID)
	switch {
	case err == nil:
		if err := d.likeRepo.Delete(ctx, req.PostID, requestUserID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot delete like: %v", err)
			return nil, errorx.Unknown
		}

	case errors.Is(err, gorm.ErrRecordNotFound):
		err := d.likeRepo.Create(ctx, &entity.Like{
			PostID: req.PostID,
			UserID: requestUserID,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create like: %v", err)
			return nil, errorx.Unknown
		}

		liked = true

	default:
		xcontext.Logger(ctx).Errorf("Cannot get like: %v", err)
		return nil, errorx.Unknown
	}

	likes, err := d.likeRepo.CountByPostID(ctx, req.PostID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count likes: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.ToggleLikeResponse{Liked: liked, Likes: likes}, nil
}

func (d *postDomain) AddComment(
	ctx context.Context, req *model.AddCommentRequest,
) (*model.AddCommentResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	if req.PostID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty post id")
	}

	if strings.TrimSpace(req.Text) == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty comment")
	}

	if _, err := d.postRepo.GetByID(ctx, req.PostID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	comment := &entity.Comment{
		Base:   entity.Base{ID: uuid.NewString()},
		PostID: req.PostID,
		UserID: requestUserID,
		Text:   req.Text,
	}

	if err := d.commentRepo.Create(ctx, comment); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create comment: %v", err)
		return nil, errorx.Unknown
	}

	user, err := d.userRepo.GetByID(ctx, requestUserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get comment author: %v", err)
		return nil, errorx.Unknown
	}

	return &model.AddCommentResponse{Comment: model.ConvertComment(comment, user)}, nil
}

// Repost points a new post at the immediate target, even when the target is
// itself a repost. Chains are resolved at view time.
func (d *postDomain) Repost(
	ctx context.Context, req *model.RepostRequest,
) (*model.RepostResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	if req.PostID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty post id")
	}

	if _, err := d.postRepo.GetByID(ctx, req.PostID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	post := &entity.Post{
		Base:           entity.Base{ID: uuid.NewString()},
		AuthorID:       requestUserID,
		Description:    req.Description,
		OriginalPostID: sql.NullString{Valid: true, String: req.PostID},
	}

	if err := d.postRepo.Create(ctx, post); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create repost: %v", err)
		return nil, errorx.Unknown
	}

	view, err := d.viewBuilder.build(ctx, post)
	if err != nil {
		return nil, err
	}

	return &model.RepostResponse{Post: *view}, nil
}
