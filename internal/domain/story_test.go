package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dagym-lab/backend/internal/entity"
	"github.com/dagym-lab/backend/internal/model"
	"github.com/dagym-lab/backend/internal/repository"
	"github.com/dagym-lab/backend/pkg/testutil"
)

func newTestStoryDomain() StoryDomain {
	return NewStoryDomain(
		repository.NewStoryRepository(),
		repository.NewUserRepository(),
	)
}

func Test_storyDomain_CreateAndGetActive(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixture(ctx)
	storyDomain := newTestStoryDomain()

	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)

	created, err := storyDomain.Create(ctxUser1, &model.CreateStoryRequest{
		MediaURL: "https://cdn.example.com/clip.mp4",
	})
	require.NoError(t, err)
	require.Equal(t, testutil.User1.ID, created.Story.User.ID)

	// An already expired story never shows up.
	storyRepo := repository.NewStoryRepository()
	err = storyRepo.Create(ctx, &entity.Story{
		Base:      entity.Base{ID: uuid.NewString()},
		UserID:    testutil.User1.ID,
		MediaURL:  "https://cdn.example.com/old.mp4",
		ExpiresAt: time.Now().Add(-time.Hour),
	})
	require.NoError(t, err)

	active, err := storyDomain.GetActive(ctx, &model.GetActiveStoriesRequest{
		UserID: testutil.User1.ID,
	})
	require.NoError(t, err)
	require.Len(t, active.Stories, 1)
	require.Equal(t, created.Story.ID, active.Stories[0].ID)

	_, err = storyDomain.Create(ctxUser1, &model.CreateStoryRequest{})
	require.Equal(t, "Not allow empty media url", err.Error())
}

func Test_storyDomain_Delete(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixture(ctx)
	storyDomain := newTestStoryDomain()

	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)

	created, err := storyDomain.Create(ctxUser1, &model.CreateStoryRequest{
		MediaURL: "https://cdn.example.com/clip.mp4",
	})
	require.NoError(t, err)

	_, err = storyDomain.Delete(ctxUser2, &model.DeleteStoryRequest{StoryID: created.Story.ID})
	require.Equal(t, "Only the owner can delete this story", err.Error())

	_, err = storyDomain.Delete(ctxUser1, &model.DeleteStoryRequest{StoryID: created.Story.ID})
	require.NoError(t, err)

	active, err := storyDomain.GetActive(ctx, &model.GetActiveStoriesRequest{
		UserID: testutil.User1.ID,
	})
	require.NoError(t, err)
	require.Empty(t, active.Stories)
}
