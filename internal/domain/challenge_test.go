package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dagym-lab/backend/internal/entity"
	"github.com/dagym-lab/backend/internal/model"
	"github.com/dagym-lab/backend/internal/repository"
	"github.com/dagym-lab/backend/pkg/testutil"
)

func newTestChallengeDomain() ChallengeDomain {
	return NewChallengeDomain(
		repository.NewChallengeRepository(),
		repository.NewChallengeParticipantRepository(),
		repository.NewUserRepository(),
		testutil.NewMockRedisClient(),
	)
}

func Test_challengeDomain_Create(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixture(ctx)
	challengeDomain := newTestChallengeDomain()

	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)

	resp, err := challengeDomain.Create(ctxUser1, &model.CreateChallengeRequest{
		Title:       "100 pushups",
		Category:    "strength",
		Duration:    "7d",
		TotalTarget: 100,
		Reward:      "badge",
	})
	require.NoError(t, err)
	require.Equal(t, testutil.User1.ID, resp.Challenge.CreatedBy.ID)
	require.Equal(t, 0, resp.Challenge.Participants)

	_, err = challengeDomain.Create(ctxUser1, &model.CreateChallengeRequest{
		Title:       "",
		TotalTarget: 10,
	})
	require.Equal(t, "Not allow empty title", err.Error())

	_, err = challengeDomain.Create(ctxUser1, &model.CreateChallengeRequest{
		Title:       "no target",
		TotalTarget: 0,
	})
	require.Equal(t, "Total target must be positive", err.Error())

	list, err := challengeDomain.GetList(ctx, &model.GetChallengesRequest{Category: "strength"})
	require.NoError(t, err)
	require.Len(t, list.Challenges, 2)
}

func Test_challengeDomain_Accept(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixture(ctx)
	challengeDomain := newTestChallengeDomain()

	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)

	_, err := challengeDomain.Accept(ctxUser2, &model.AcceptChallengeRequest{
		ChallengeID: testutil.Challenge1.ID,
	})
	require.NoError(t, err)

	// Accepting twice is rejected.
	_, err = challengeDomain.Accept(ctxUser2, &model.AcceptChallengeRequest{
		ChallengeID: testutil.Challenge1.ID,
	})
	require.Equal(t, "You already accepted this challenge", err.Error())

	mine, err := challengeDomain.GetMyList(ctxUser2, &model.GetMyChallengesRequest{})
	require.NoError(t, err)
	require.Len(t, mine.Challenges, 1)
	require.Equal(t, entity.ChallengeActive, mine.Challenges[0].Status)
	require.Equal(t, 0, mine.Challenges[0].Progress)
	require.Equal(t, 1, mine.Challenges[0].Challenge.Participants)

	_, err = challengeDomain.Accept(ctxUser2, &model.AcceptChallengeRequest{
		ChallengeID: "not-exist",
	})
	require.Equal(t, "Not found challenge", err.Error())
}

func Test_challengeDomain_IncreaseProgress(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixture(ctx)
	challengeDomain := newTestChallengeDomain()

	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)

	// Progress requires an accepted challenge.
	_, err := challengeDomain.IncreaseProgress(ctxUser2, &model.IncreaseChallengeProgressRequest{
		ChallengeID: testutil.Challenge1.ID,
	})
	require.Equal(t, "You did not accept this challenge", err.Error())

	_, err = challengeDomain.Accept(ctxUser2, &model.AcceptChallengeRequest{
		ChallengeID: testutil.Challenge1.ID,
	})
	require.NoError(t, err)

	// The fixture challenge has a target of 3.
	for i := 1; i <= 2; i++ {
		resp, err := challengeDomain.IncreaseProgress(ctxUser2, &model.IncreaseChallengeProgressRequest{
			ChallengeID: testutil.Challenge1.ID,
		})
		require.NoError(t, err)
		require.Equal(t, i, resp.Progress)
		require.Equal(t, entity.ChallengeActive, resp.Status)
	}

	// Reaching the target completes the participation.
	resp, err := challengeDomain.IncreaseProgress(ctxUser2, &model.IncreaseChallengeProgressRequest{
		ChallengeID: testutil.Challenge1.ID,
	})
	require.NoError(t, err)
	require.Equal(t, 3, resp.Progress)
	require.Equal(t, entity.ChallengeCompleted, resp.Status)

	// No progress beyond the target.
	_, err = challengeDomain.IncreaseProgress(ctxUser2, &model.IncreaseChallengeProgressRequest{
		ChallengeID: testutil.Challenge1.ID,
	})
	require.Equal(t, "This challenge is already completed", err.Error())

	mine, err := challengeDomain.GetMyList(ctxUser2, &model.GetMyChallengesRequest{})
	require.NoError(t, err)
	require.Equal(t, 3, mine.Challenges[0].Progress)
	require.Equal(t, entity.ChallengeCompleted, mine.Challenges[0].Status)
}

func Test_challengeDomain_GetLeaderboard(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixture(ctx)
	challengeDomain := newTestChallengeDomain()

	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	ctxUser3 := testutil.MockContextWithUserID(ctx, testutil.User3.ID)

	for _, userCtx := range []struct {
		ctx   context.Context
		steps int
	}{
		{ctxUser2, 2},
		{ctxUser3, 1},
	} {
		_, err := challengeDomain.Accept(userCtx.ctx, &model.AcceptChallengeRequest{
			ChallengeID: testutil.Challenge1.ID,
		})
		require.NoError(t, err)

		for i := 0; i < userCtx.steps; i++ {
			_, err := challengeDomain.IncreaseProgress(userCtx.ctx, &model.IncreaseChallengeProgressRequest{
				ChallengeID: testutil.Challenge1.ID,
			})
			require.NoError(t, err)
		}
	}

	board, err := challengeDomain.GetLeaderboard(ctx, &model.GetChallengeLeaderboardRequest{
		ChallengeID: testutil.Challenge1.ID,
	})
	require.NoError(t, err)
	require.Len(t, board.Entries, 2)
	require.Equal(t, testutil.User2.ID, board.Entries[0].User.ID)
	require.Equal(t, 2, board.Entries[0].Progress)
	require.Equal(t, 1, board.Entries[0].Rank)
	require.Equal(t, testutil.User3.ID, board.Entries[1].User.ID)
	require.Equal(t, 2, board.Entries[1].Rank)
	require.Equal(t, 0, board.MyRank)

	// Authenticated requesters see their own rank.
	mine, err := challengeDomain.GetLeaderboard(ctxUser3, &model.GetChallengeLeaderboardRequest{
		ChallengeID: testutil.Challenge1.ID,
	})
	require.NoError(t, err)
	require.Equal(t, 2, mine.MyRank)
}

// The leaderboard reloads from the database when redis lost its keys.
func Test_challengeDomain_LeaderboardColdStart(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixture(ctx)

	redisClient := testutil.NewMockRedisClient()
	challengeDomain := NewChallengeDomain(
		repository.NewChallengeRepository(),
		repository.NewChallengeParticipantRepository(),
		repository.NewUserRepository(),
		redisClient,
	)

	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	_, err := challengeDomain.Accept(ctxUser2, &model.AcceptChallengeRequest{
		ChallengeID: testutil.Challenge1.ID,
	})
	require.NoError(t, err)

	_, err = challengeDomain.IncreaseProgress(ctxUser2, &model.IncreaseChallengeProgressRequest{
		ChallengeID: testutil.Challenge1.ID,
	})
	require.NoError(t, err)

	// Simulate a cache flush.
	err = redisClient.Del(ctx, "leaderboard:"+testutil.Challenge1.ID)
	require.NoError(t, err)

	board, err := challengeDomain.GetLeaderboard(ctx, &model.GetChallengeLeaderboardRequest{
		ChallengeID: testutil.Challenge1.ID,
	})
	require.NoError(t, err)
	require.Len(t, board.Entries, 1)
	require.Equal(t, testutil.User2.ID, board.Entries[0].User.ID)
	require.Equal(t, 1, board.Entries[0].Progress)
}
