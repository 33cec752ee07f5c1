package domain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dagym-lab/backend/internal/model"
	"github.com/dagym-lab/backend/internal/repository"
	"github.com/dagym-lab/backend/pkg/testutil"
)

func newTestUserDomain() UserDomain {
	return NewUserDomain(
		repository.NewUserRepository(),
		repository.NewFollowRepository(),
		repository.NewPostRepository(),
		repository.NewLikeRepository(),
		repository.NewCommentRepository(),
		repository.NewGroupMemberRepository(),
		repository.NewStoryRepository(),
		repository.NewMessageRepository(),
		&testutil.MockStorage{},
	)
}

func Test_userDomain_ToggleFollow(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixture(ctx)
	userDomain := newTestUserDomain()

	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)

	// First toggle follows.
	resp, err := userDomain.ToggleFollow(ctxUser1, &model.ToggleFollowRequest{
		UserID: testutil.User2.ID,
	})
	require.NoError(t, err)
	require.True(t, resp.Following)

	// The edge shows up on both derived views.
	following, err := userDomain.GetFollowing(ctxUser1, &model.GetFollowingRequest{})
	require.NoError(t, err)
	require.Len(t, following.Users, 1)
	require.Equal(t, testutil.User2.ID, following.Users[0].ID)

	followers, err := userDomain.GetFollowers(ctxUser1, &model.GetFollowersRequest{
		UserID: testutil.User2.ID,
	})
	require.NoError(t, err)
	require.Len(t, followers.Users, 1)
	require.Equal(t, testutil.User1.ID, followers.Users[0].ID)

	// The reverse direction is untouched.
	followers, err = userDomain.GetFollowers(ctxUser1, &model.GetFollowersRequest{
		UserID: testutil.User1.ID,
	})
	require.NoError(t, err)
	require.Empty(t, followers.Users)

	// Second toggle unfollows.
	resp, err = userDomain.ToggleFollow(ctxUser1, &model.ToggleFollowRequest{
		UserID: testutil.User2.ID,
	})
	require.NoError(t, err)
	require.False(t, resp.Following)

	following, err = userDomain.GetFollowing(ctxUser1, &model.GetFollowingRequest{})
	require.NoError(t, err)
	require.Empty(t, following.Users)

	// A fresh toggle follows again, unaffected by the removed edge.
	resp, err = userDomain.ToggleFollow(ctxUser1, &model.ToggleFollowRequest{
		UserID: testutil.User2.ID,
	})
	require.NoError(t, err)
	require.True(t, resp.Following)
}

func Test_userDomain_ToggleFollow_EdgeCases(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixture(ctx)
	userDomain := newTestUserDomain()

	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)

	// Self-follow succeeds without creating an edge.
	resp, err := userDomain.ToggleFollow(ctxUser1, &model.ToggleFollowRequest{
		UserID: testutil.User1.ID,
	})
	require.NoError(t, err)
	require.False(t, resp.Following)

	followers, err := userDomain.GetFollowers(ctxUser1, &model.GetFollowersRequest{
		UserID: testutil.User1.ID,
	})
	require.NoError(t, err)
	require.Empty(t, followers.Users)

	_, err = userDomain.ToggleFollow(ctxUser1, &model.ToggleFollowRequest{
		UserID: "not-exist",
	})
	require.Equal(t, "Not found user", err.Error())
}

func Test_userDomain_Profile(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixture(ctx)
	userDomain := newTestUserDomain()

	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)

	_, err := userDomain.ToggleFollow(ctxUser2, &model.ToggleFollowRequest{
		UserID: testutil.User1.ID,
	})
	require.NoError(t, err)

	resp, err := userDomain.GetUser(ctxUser2, &model.GetUserRequest{UserID: testutil.User1.ID})
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.User.Followers)
	require.Equal(t, int64(0), resp.User.Following)
	require.Equal(t, int64(1), resp.User.Posts)
	require.True(t, resp.User.IsFollowed)
	require.Empty(t, resp.User.Email)

	me, err := userDomain.GetMe(ctxUser2, &model.GetMeRequest{})
	require.NoError(t, err)
	require.Equal(t, testutil.User2.Email, me.User.Email)
	require.Equal(t, int64(1), me.User.Following)
}

func Test_userDomain_Update(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixture(ctx)
	userDomain := newTestUserDomain()

	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)

	resp, err := userDomain.Update(ctxUser1, &model.UpdateUserRequest{
		Description: "lifting on weekdays",
		Weight:      82.5,
		Height:      180,
		Diet:        []string{"keto"},
		Workout:     []string{"push", "pull", "legs"},
	})
	require.NoError(t, err)
	require.Equal(t, "lifting on weekdays", resp.User.Description)
	require.Equal(t, 82.5, resp.User.Weight)
	require.Equal(t, []string{"keto"}, resp.User.Diet)
	require.Equal(t, []string{"push", "pull", "legs"}, resp.User.Workout)
	require.NotEmpty(t, resp.User.LastMeasurementUpdate)

	_, err = userDomain.Update(ctxUser1, &model.UpdateUserRequest{Weight: -1})
	require.Equal(t, "Not allow negative measurements", err.Error())
}

func Test_userDomain_SearchAndSuggestions(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixture(ctx)
	userDomain := newTestUserDomain()

	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)

	searchResp, err := userDomain.Search(ctxUser1, &model.SearchUsersRequest{Q: "Two"})
	require.NoError(t, err)
	require.Len(t, searchResp.Users, 1)
	require.Equal(t, testutil.User2.ID, searchResp.Users[0].ID)

	_, err = userDomain.Search(ctxUser1, &model.SearchUsersRequest{Q: ""})
	require.Equal(t, "Not allow empty query", err.Error())

	// After following user2, only user3 remains suggestible.
	_, err = userDomain.ToggleFollow(ctxUser1, &model.ToggleFollowRequest{
		UserID: testutil.User2.ID,
	})
	require.NoError(t, err)

	suggestions, err := userDomain.GetSuggestions(ctxUser1, &model.GetSuggestedUsersRequest{})
	require.NoError(t, err)
	require.Len(t, suggestions.Users, 1)
	require.Equal(t, testutil.User3.ID, suggestions.Users[0].ID)
}

func Test_userDomain_Delete(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixture(ctx)
	userDomain := newTestUserDomain()

	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)

	_, err := userDomain.ToggleFollow(ctxUser2, &model.ToggleFollowRequest{
		UserID: testutil.User1.ID,
	})
	require.NoError(t, err)

	_, err = userDomain.Delete(ctxUser2, &model.DeleteUserRequest{})
	require.NoError(t, err)

	_, err = userDomain.GetUser(ctx, &model.GetUserRequest{UserID: testutil.User2.ID})
	require.Equal(t, "Not found user", err.Error())

	// The follow edge went away with the account.
	followers, err := userDomain.GetFollowers(ctx, &model.GetFollowersRequest{
		UserID: testutil.User1.ID,
	})
	require.NoError(t, err)
	require.Empty(t, followers.Users)
}
