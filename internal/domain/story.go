package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dagym-lab/backend/internal/entity"
	"github.com/dagym-lab/backend/internal/model"
	"github.com/dagym-lab/backend/internal/repository"
	"github.com/dagym-lab/backend/pkg/errorx"
	"github.com/dagym-lab/backend/pkg/xcontext"
)

type StoryDomain interface {
	Create(context.Context, *model.CreateStoryRequest) (*model.CreateStoryResponse, error)
	GetActive(context.Context, *model.GetActiveStoriesRequest) (*model.GetActiveStoriesResponse, error)
	Delete(context.Context, *model.DeleteStoryRequest) (*model.DeleteStoryResponse, error)
}

type storyDomain struct {
	storyRepo repository.StoryRepository
	userRepo  repository.UserRepository
}

func NewStoryDomain(
	storyRepo repository.StoryRepository,
	userRepo repository.UserRepository,
) *storyDomain {
	return &storyDomain{storyRepo: storyRepo, userRepo: userRepo}
}

func (d *storyDomain) Create(
	ctx context.Context, req *model.CreateStoryRequest,
) (*model.CreateStoryResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	if req.MediaURL == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty media url")
	}

	story := &entity.Story{
		Base:      entity.Base{ID: uuid.NewString()},
		UserID:    requestUserID,
		MediaURL:  req.MediaURL,
		ExpiresAt: time.Now().Add(xcontext.Configs(ctx).Story.Lifetime),
	}

	if err := d.storyRepo.Create(ctx, story); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create story: %v", err)
		return nil, errorx.Unknown
	}

	user, err := d.userRepo.GetByID(ctx, requestUserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateStoryResponse{Story: model.ConvertStory(story, user)}, nil
}

// GetActive returns the unexpired stories of a user, oldest first. Expired
// stories simply stop appearing; there is no cleanup job required for
// correctness.
func (d *storyDomain) GetActive(
	ctx context.Context, req *model.GetActiveStoriesRequest,
) (*model.GetActiveStoriesResponse, error) {
	userID := req.UserID
	if userID == "" {
		userID = xcontext.RequestUserID(ctx)
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	stories, err := d.storyRepo.GetActiveByUserID(ctx, userID, time.Now())
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get stories: %v", err)
		return nil, errorx.Unknown
	}

	views := []model.Story{}
	for i := range stories {
		views = append(views, model.ConvertStory(&stories[i], user))
	}

	return &model.GetActiveStoriesResponse{Stories: views}, nil
}

func (d *storyDomain) Delete(
	ctx context.Context, req *model.DeleteStoryRequest,
) (*model.DeleteStoryResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	if req.StoryID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty story id")
	}

	story, err := d.storyRepo.GetByID(ctx, req.StoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found story")
		}

		xcontext.Logger(ctx).Errorf("Cannot get story: %v", err)
		return nil, errorx.Unknown
	}

	if story.UserID != requestUserID {
		return nil, errorx.New(errorx.PermissionDenied, "Only the owner can delete this story")
	}

	if err := d.storyRepo.DeleteByID(ctx, req.StoryID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete story: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteStoryResponse{}, nil
}
