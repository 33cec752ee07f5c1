package domain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dagym-lab/backend/internal/entity"
	"github.com/dagym-lab/backend/internal/model"
	"github.com/dagym-lab/backend/internal/repository"
	"github.com/dagym-lab/backend/pkg/testutil"
)

func newTestFeedDomain() FeedDomain {
	return NewFeedDomain(
		repository.NewPostRepository(),
		repository.NewFollowRepository(),
		repository.NewUserRepository(),
		repository.NewLikeRepository(),
		repository.NewCommentRepository(),
		repository.NewGroupMemberRepository(),
	)
}

func Test_feedDomain_GetFeed(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixture(ctx)
	feedDomain := newTestFeedDomain()
	postDomain := newTestPostDomain()
	userDomain := newTestUserDomain()

	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	ctxUser3 := testutil.MockContextWithUserID(ctx, testutil.User3.ID)

	user2Post, err := postDomain.Create(ctxUser2, &model.CreatePostRequest{Description: "row day"})
	require.NoError(t, err)

	user3Post, err := postDomain.Create(ctxUser3, &model.CreatePostRequest{Description: "rest day"})
	require.NoError(t, err)

	// The general feed holds everything, newest first.
	general, err := feedDomain.GetFeed(ctx, &model.GetFeedRequest{Type: model.FeedTypeGeneral})
	require.NoError(t, err)
	require.Len(t, general.Posts, 3)
	require.Equal(t, user3Post.Post.ID, general.Posts[0].ID)
	require.Equal(t, user2Post.Post.ID, general.Posts[1].ID)
	require.Equal(t, testutil.Post1.ID, general.Posts[2].ID)

	// The empty type falls back to general.
	fallback, err := feedDomain.GetFeed(ctx, &model.GetFeedRequest{})
	require.NoError(t, err)
	require.Len(t, fallback.Posts, 3)

	// The following feed only covers followed authors plus the requester.
	_, err = userDomain.ToggleFollow(ctxUser2, &model.ToggleFollowRequest{
		UserID: testutil.User1.ID,
	})
	require.NoError(t, err)

	following, err := feedDomain.GetFeed(ctxUser2, &model.GetFeedRequest{
		Type: model.FeedTypeFollowing,
	})
	require.NoError(t, err)
	require.Len(t, following.Posts, 2)
	require.Equal(t, user2Post.Post.ID, following.Posts[0].ID)
	require.Equal(t, testutil.Post1.ID, following.Posts[1].ID)

	// The following feed needs an authenticated requester.
	_, err = feedDomain.GetFeed(ctx, &model.GetFeedRequest{Type: model.FeedTypeFollowing})
	require.Equal(t, "You need to authenticate before", err.Error())

	_, err = feedDomain.GetFeed(ctx, &model.GetFeedRequest{Type: "trending"})
	require.Equal(t, "Invalid feed type trending", err.Error())
}

func Test_feedDomain_GroupMatesInFollowingFeed(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixture(ctx)
	feedDomain := newTestFeedDomain()
	postDomain := newTestPostDomain()

	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	ctxUser3 := testutil.MockContextWithUserID(ctx, testutil.User3.ID)

	_, err := postDomain.Create(ctxUser3, &model.CreatePostRequest{Description: "rest day"})
	require.NoError(t, err)

	// User2 follows nobody but shares a group with user1.
	err = repository.NewGroupMemberRepository().Create(ctx, &entity.GroupMember{
		GroupID: testutil.Group1.ID,
		UserID:  testutil.User2.ID,
	})
	require.NoError(t, err)

	following, err := feedDomain.GetFeed(ctxUser2, &model.GetFeedRequest{
		Type: model.FeedTypeFollowing,
	})
	require.NoError(t, err)
	require.Len(t, following.Posts, 1)
	require.Equal(t, testutil.Post1.ID, following.Posts[0].ID)
	require.Equal(t, testutil.User1.ID, following.Posts[0].Author.ID)
}

func Test_feedDomain_Pagination(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixture(ctx)
	feedDomain := newTestFeedDomain()
	postDomain := newTestPostDomain()

	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	for i := 0; i < 5; i++ {
		_, err := postDomain.Create(ctxUser1, &model.CreatePostRequest{Description: "session"})
		require.NoError(t, err)
	}

	page1, err := feedDomain.GetFeed(ctx, &model.GetFeedRequest{Limit: 4})
	require.NoError(t, err)
	require.Len(t, page1.Posts, 4)

	page2, err := feedDomain.GetFeed(ctx, &model.GetFeedRequest{Offset: 4, Limit: 4})
	require.NoError(t, err)
	require.Len(t, page2.Posts, 2)

	_, err = feedDomain.GetFeed(ctx, &model.GetFeedRequest{Limit: 1000})
	require.Equal(t, "Exceed the maximum of limit (50)", err.Error())
}

func Test_feedDomain_GetUserPosts(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixture(ctx)
	feedDomain := newTestFeedDomain()

	resp, err := feedDomain.GetUserPosts(ctx, &model.GetUserPostsRequest{
		UserID: testutil.User1.ID,
	})
	require.NoError(t, err)
	require.Len(t, resp.Posts, 1)
	require.Equal(t, testutil.Post1.ID, resp.Posts[0].ID)

	empty, err := feedDomain.GetUserPosts(ctx, &model.GetUserPostsRequest{
		UserID: testutil.User2.ID,
	})
	require.NoError(t, err)
	require.Empty(t, empty.Posts)

	_, err = feedDomain.GetUserPosts(ctx, &model.GetUserPostsRequest{UserID: "not-exist"})
	require.Equal(t, "Not found user", err.Error())
}
