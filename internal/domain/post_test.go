package domain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dagym-lab/backend/internal/model"
	"github.com/dagym-lab/backend/internal/repository"
	"github.com/dagym-lab/backend/pkg/testutil"
)

func newTestPostDomain() PostDomain {
	return NewPostDomain(
		repository.NewPostRepository(),
		repository.NewUserRepository(),
		repository.NewLikeRepository(),
		repository.NewCommentRepository(),
		&testutil.MockStorage{},
	)
}

func Test_postDomain_CreateAndGet(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixture(ctx)
	postDomain := newTestPostDomain()

	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)

	resp, err := postDomain.Create(ctxUser1, &model.CreatePostRequest{
		Description: "leg day",
	})
	require.NoError(t, err)
	require.Equal(t, testutil.User1.ID, resp.Post.Author.ID)
	require.Equal(t, int64(0), resp.Post.Likes)
	require.Nil(t, resp.Post.OriginalPost)

	_, err = postDomain.Create(ctxUser1, &model.CreatePostRequest{Description: "  "})
	require.Equal(t, "Not allow empty post", err.Error())

	_, err = postDomain.Get(ctx, &model.GetPostRequest{PostID: "not-exist"})
	require.Equal(t, "Not found post", err.Error())
}

func Test_postDomain_ToggleLike(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixture(ctx)
	postDomain := newTestPostDomain()

	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)

	// First toggle likes.
	resp, err := postDomain.ToggleLike(ctxUser2, &model.ToggleLikeRequest{
		PostID: testutil.Post1.ID,
	})
	require.NoError(t, err)
	require.True(t, resp.Liked)
	require.Equal(t, int64(1), resp.Likes)

	// The same user toggling again removes the like.
	resp, err = postDomain.ToggleLike(ctxUser2, &model.ToggleLikeRequest{
		PostID: testutil.Post1.ID,
	})
	require.NoError(t, err)
	require.False(t, resp.Liked)
	require.Equal(t, int64(0), resp.Likes)

	// Likes from different users accumulate.
	_, err = postDomain.ToggleLike(ctxUser1, &model.ToggleLikeRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)
	resp, err = postDomain.ToggleLike(ctxUser2, &model.ToggleLikeRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)
	require.Equal(t, int64(2), resp.Likes)

	// Liked is viewer dependent.
	post, err := postDomain.Get(ctxUser2, &model.GetPostRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)
	require.True(t, post.Post.Liked)

	post, err = postDomain.Get(ctx, &model.GetPostRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)
	require.False(t, post.Post.Liked)

	_, err = postDomain.ToggleLike(ctxUser2, &model.ToggleLikeRequest{PostID: "not-exist"})
	require.Equal(t, "Not found post", err.Error())
}

func Test_postDomain_AddComment(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixture(ctx)
	postDomain := newTestPostDomain()

	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)

	first, err := postDomain.AddComment(ctxUser2, &model.AddCommentRequest{
		PostID: testutil.Post1.ID,
		Text:   "nice work",
	})
	require.NoError(t, err)
	require.Equal(t, testutil.User2.ID, first.Comment.User.ID)

	_, err = postDomain.AddComment(ctxUser1, &model.AddCommentRequest{
		PostID: testutil.Post1.ID,
		Text:   "thanks",
	})
	require.NoError(t, err)

	// Comments come back oldest first.
	post, err := postDomain.Get(ctx, &model.GetPostRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)
	require.Len(t, post.Post.Comments, 2)
	require.Equal(t, "nice work", post.Post.Comments[0].Text)
	require.Equal(t, "thanks", post.Post.Comments[1].Text)

	_, err = postDomain.AddComment(ctxUser1, &model.AddCommentRequest{
		PostID: testutil.Post1.ID,
		Text:   " ",
	})
	require.Equal(t, "Not allow empty comment", err.Error())
}

func Test_postDomain_Delete(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixture(ctx)
	postDomain := newTestPostDomain()

	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)

	// Only the author can delete.
	_, err := postDomain.Delete(ctxUser2, &model.DeletePostRequest{PostID: testutil.Post1.ID})
	require.Equal(t, "Only the author can delete this post", err.Error())

	_, err = postDomain.Delete(ctxUser1, &model.DeletePostRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)

	_, err = postDomain.Get(ctx, &model.GetPostRequest{PostID: testutil.Post1.ID})
	require.Equal(t, "Not found post", err.Error())
}

func Test_postDomain_Repost(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixture(ctx)
	postDomain := newTestPostDomain()

	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	ctxUser3 := testutil.MockContextWithUserID(ctx, testutil.User3.ID)

	repost, err := postDomain.Repost(ctxUser2, &model.RepostRequest{
		PostID:      testutil.Post1.ID,
		Description: "look at this",
	})
	require.NoError(t, err)
	require.NotNil(t, repost.Post.OriginalPost)
	require.Equal(t, testutil.Post1.ID, repost.Post.OriginalPost.ID)

	// Reposting a repost keeps the immediate target, not the root.
	second, err := postDomain.Repost(ctxUser3, &model.RepostRequest{PostID: repost.Post.ID})
	require.NoError(t, err)
	require.Equal(t, repost.Post.ID, second.Post.OriginalPost.ID)
	require.NotNil(t, second.Post.OriginalPost.OriginalPost)
	require.Equal(t, testutil.Post1.ID, second.Post.OriginalPost.OriginalPost.ID)

	// Each level carries its own interactions.
	_, err = postDomain.ToggleLike(ctxUser1, &model.ToggleLikeRequest{PostID: repost.Post.ID})
	require.NoError(t, err)

	view, err := postDomain.Get(ctx, &model.GetPostRequest{PostID: second.Post.ID})
	require.NoError(t, err)
	require.Equal(t, int64(0), view.Post.Likes)
	require.Equal(t, int64(1), view.Post.OriginalPost.Likes)

	// Deleting the original leaves the repost visible without it.
	_, err = postDomain.Delete(ctxUser1, &model.DeletePostRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)

	view, err = postDomain.Get(ctx, &model.GetPostRequest{PostID: repost.Post.ID})
	require.NoError(t, err)
	require.Nil(t, view.Post.OriginalPost)

	_, err = postDomain.Repost(ctxUser3, &model.RepostRequest{PostID: "not-exist"})
	require.Equal(t, "Not found post", err.Error())
}
