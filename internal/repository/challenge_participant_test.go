package repository_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dagym-lab/backend/internal/entity"
	"github.com/dagym-lab/backend/internal/repository"
	"github.com/dagym-lab/backend/pkg/testutil"
)

func Test_challengeParticipantRepository_IncreaseProgress(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixture(ctx)
	repo := repository.NewChallengeParticipantRepository()

	participant := &entity.ChallengeParticipant{
		Base:        entity.Base{ID: "participant1"},
		ChallengeID: testutil.Challenge1.ID,
		UserID:      testutil.User2.ID,
		Status:      entity.ChallengeActive,
	}
	require.NoError(t, repo.Create(ctx, participant))

	target := testutil.Challenge1.TotalTarget
	for i := 1; i <= target; i++ {
		updated, err := repo.IncreaseProgress(ctx, participant.ID, target)
		require.NoError(t, err)
		require.True(t, updated)
	}

	// The guard in the WHERE clause stops further updates at the target.
	updated, err := repo.IncreaseProgress(ctx, participant.ID, target)
	require.NoError(t, err)
	require.False(t, updated)

	record, err := repo.Get(ctx, testutil.Challenge1.ID, testutil.User2.ID)
	require.NoError(t, err)
	require.Equal(t, target, record.Progress)
}

func Test_challengeParticipantRepository_UniquePair(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixture(ctx)
	repo := repository.NewChallengeParticipantRepository()

	err := repo.Create(ctx, &entity.ChallengeParticipant{
		Base:        entity.Base{ID: "participant1"},
		ChallengeID: testutil.Challenge1.ID,
		UserID:      testutil.User2.ID,
	})
	require.NoError(t, err)

	err = repo.Create(ctx, &entity.ChallengeParticipant{
		Base:        entity.Base{ID: "participant2"},
		ChallengeID: testutil.Challenge1.ID,
		UserID:      testutil.User2.ID,
	})
	require.Error(t, err)
	require.True(t, repository.IsDuplicateKeyError(err))

	// Other failures are not mistaken for duplicates.
	require.False(t, repository.IsDuplicateKeyError(gorm.ErrInvalidDB))
}
