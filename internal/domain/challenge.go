package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/dagym-lab/backend/internal/common"
	"github.com/dagym-lab/backend/internal/entity"
	"github.com/dagym-lab/backend/internal/model"
	"github.com/dagym-lab/backend/internal/repository"
	"github.com/dagym-lab/backend/pkg/errorx"
	"github.com/dagym-lab/backend/pkg/xcontext"
	"github.com/dagym-lab/backend/pkg/xredis"
)

type ChallengeDomain interface {
	Create(context.Context, *model.CreateChallengeRequest) (*model.CreateChallengeResponse, error)
	GetList(context.Context, *model.GetChallengesRequest) (*model.GetChallengesResponse, error)
	GetMyList(context.Context, *model.GetMyChallengesRequest) (*model.GetMyChallengesResponse, error)
	Accept(context.Context, *model.AcceptChallengeRequest) (*model.AcceptChallengeResponse, error)
	IncreaseProgress(context.Context, *model.IncreaseChallengeProgressRequest) (*model.IncreaseChallengeProgressResponse, error)
	GetLeaderboard(context.Context, *model.GetChallengeLeaderboardRequest) (*model.GetChallengeLeaderboardResponse, error)
}

type challengeDomain struct {
	challengeRepo   repository.ChallengeRepository
	participantRepo repository.ChallengeParticipantRepository
	userRepo        repository.UserRepository
	redisClient     xredis.Client
	progressLocker  *common.KeyLocker
}

func NewChallengeDomain(
	challengeRepo repository.ChallengeRepository,
	participantRepo repository.ChallengeParticipantRepository,
	userRepo repository.UserRepository,
	redisClient xredis.Client,
) *challengeDomain {
	return &challengeDomain{
		challengeRepo:   challengeRepo,
		participantRepo: participantRepo,
		userRepo:        userRepo,
		redisClient:     redisClient,
		progressLocker:  common.NewKeyLocker(),
	}
}

func (d *challengeDomain) Create(
	ctx context.Context, req *model.CreateChallengeRequest,
) (*model.CreateChallengeResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	if req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty title")
	}

	if req.TotalTarget <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Total target must be positive")
	}

	challenge := &entity.Challenge{
		Base:        entity.Base{ID: uuid.NewString()},
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Duration:    req.Duration,
		TotalTarget: req.TotalTarget,
		Reward:      req.Reward,
		CreatedBy:   requestUserID,
	}

	if err := d.challengeRepo.Create(ctx, challenge); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create challenge: %v", err)
		return nil, errorx.Unknown
	}

	creator, err := d.userRepo.GetByID(ctx, requestUserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get creator: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateChallengeResponse{
		Challenge: model.ConvertChallenge(challenge, creator),
	}, nil
}

func (d *challengeDomain) GetList(
	ctx context.Context, req *model.GetChallengesRequest,
) (*model.GetChallengesResponse, error) {
	offset, limit, err := checkPagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	challenges, err := d.challengeRepo.GetList(ctx, repository.GetListChallengeFilter{
		Category: req.Category,
		Offset:   offset,
		Limit:    limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get challenges: %v", err)
		return nil, errorx.Unknown
	}

	converted, err := d.convertChallenges(ctx, challenges)
	if err != nil {
		return nil, err
	}

	return &model.GetChallengesResponse{Challenges: converted}, nil
}

func (d *challengeDomain) GetMyList(
	ctx context.Context, req *model.GetMyChallengesRequest,
) (*model.GetMyChallengesResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)

	participations, err := d.participantRepo.GetListByUserID(ctx, requestUserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get participations: %v", err)
		return nil, errorx.Unknown
	}

	challengeIDs := []string{}
	for _, p := range participations {
		challengeIDs = append(challengeIDs, p.ChallengeID)
	}

	challenges, err := d.challengeRepo.GetByIDs(ctx, challengeIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get challenges: %v", err)
		return nil, errorx.Unknown
	}

	converted, err := d.convertChallenges(ctx, challenges)
	if err != nil {
		return nil, err
	}

	challengeMap := map[string]model.Challenge{}
	for _, c := range converted {
		challengeMap[c.ID] = c
	}

	views := []model.ChallengeParticipation{}
	for _, p := range participations {
		views = append(views, model.ChallengeParticipation{
			Challenge: challengeMap[p.ChallengeID],
			Status:    p.Status,
			Progress:  p.Progress,
		})
	}

	return &model.GetMyChallengesResponse{Challenges: views}, nil
}

// Accept enrolls the requester once. The unique index on the pair backstops
// racing accepts, so the second one fails with a duplicate error.
func (d *challengeDomain) Accept(
	ctx context.Context, req *model.AcceptChallengeRequest,
) (*model.AcceptChallengeResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	if req.ChallengeID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty challenge id")
	}

	if _, err := d.challengeRepo.GetByID(ctx, req.ChallengeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found challenge")
		}

		xcontext.Logger(ctx).Errorf("Cannot get challenge: %v", err)
		return nil, errorx.Unknown
	}

	if _, err := d.participantRepo.Get(ctx, req.ChallengeID, requestUserID); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "You already accepted this challenge")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get participant: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	err := d.participantRepo.Create(ctx, &entity.ChallengeParticipant{
		Base:        entity.Base{ID: uuid.NewString()},
		ChallengeID: req.ChallengeID,
		UserID:      requestUserID,
		Status:      entity.ChallengeActive,
	})
	if err != nil {
		if repository.IsDuplicateKeyError(err) {
			return nil, errorx.New(errorx.AlreadyExists, "You already accepted this challenge")
		}

		xcontext.Logger(ctx).Errorf("Cannot create participant: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.challengeRepo.IncreaseParticipantCount(ctx, req.ChallengeID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase participant count: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	leaderboardKey := common.RedisKeyChallengeLeaderboard(req.ChallengeID)
	err = d.redisClient.ZAdd(ctx, leaderboardKey, redis.Z{Score: 0, Member: requestUserID})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot add member to leaderboard: %v", err)
	}

	return &model.AcceptChallengeResponse{}, nil
}

// IncreaseProgress adds one unit of progress and flips the participation to
// completed when the target is reached. Progress never exceeds the target and
// completed participations reject further increases.
func (d *challengeDomain) IncreaseProgress(
	ctx context.Context, req *model.IncreaseChallengeProgressRequest,
) (*model.IncreaseChallengeProgressResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	if req.ChallengeID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty challenge id")
	}

	challenge, err := d.challengeRepo.GetByID(ctx, req.ChallengeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found challenge")
		}

		xcontext.Logger(ctx).Errorf("Cannot get challenge: %v", err)
		return nil, errorx.Unknown
	}

	lockKey := fmt.Sprintf("progress:%s:%s", req.ChallengeID, requestUserID)
	d.progressLocker.Lock(lockKey)
	defer d.progressLocker.Unlock(lockKey)

	participant, err := d.participantRepo.Get(ctx, req.ChallengeID, requestUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "You did not accept this challenge")
		}

		xcontext.Logger(ctx).Errorf("Cannot get participant: %v", err)
		return nil, errorx.Unknown
	}

	if participant.Status == entity.ChallengeCompleted {
		return nil, errorx.New(errorx.Unavailable, "This challenge is already completed")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	updated, err := d.participantRepo.IncreaseProgress(ctx, participant.ID, challenge.TotalTarget)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase progress: %v", err)
		return nil, errorx.Unknown
	}

	if !updated {
		return nil, errorx.New(errorx.Unavailable, "This challenge is already completed")
	}

	progress := participant.Progress + 1
	status := entity.ChallengeActive
	if progress >= challenge.TotalTarget {
		status = entity.ChallengeCompleted
		if err := d.participantRepo.UpdateStatusByID(ctx, participant.ID, status); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot update participant status: %v", err)
			return nil, errorx.Unknown
		}
	}

	xcontext.WithCommitDBTransaction(ctx)

	leaderboardKey := common.RedisKeyChallengeLeaderboard(req.ChallengeID)
	if err := d.redisClient.ZIncrBy(ctx, leaderboardKey, 1, requestUserID); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot update leaderboard: %v", err)
	}

	return &model.IncreaseChallengeProgressResponse{
		Progress: progress,
		Status:   status,
	}, nil
}

// GetLeaderboard reads the redis sorted set, reloading it from the database
// the first time a challenge is requested after a cache flush.
func (d *challengeDomain) GetLeaderboard(
	ctx context.Context, req *model.GetChallengeLeaderboardRequest,
) (*model.GetChallengeLeaderboardResponse, error) {
	if req.ChallengeID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty challenge id")
	}

	_, limit, err := checkPagination(ctx, 0, req.Limit)
	if err != nil {
		return nil, err
	}

	if _, err := d.challengeRepo.GetByID(ctx, req.ChallengeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found challenge")
		}

		xcontext.Logger(ctx).Errorf("Cannot get challenge: %v", err)
		return nil, errorx.Unknown
	}

	leaderboardKey := common.RedisKeyChallengeLeaderboard(req.ChallengeID)
	exist, err := d.redisClient.Exist(ctx, leaderboardKey)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check leaderboard existence: %v", err)
		return nil, errorx.Unknown
	}

	if !exist {
		if err := d.loadLeaderboard(ctx, req.ChallengeID, leaderboardKey); err != nil {
			return nil, err
		}
	}

	zs, err := d.redisClient.ZRevRangeWithScores(ctx, leaderboardKey, 0, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get leaderboard: %v", err)
		return nil, errorx.Unknown
	}

	userIDs := []string{}
	for _, z := range zs {
		userIDs = append(userIDs, z.Member.(string))
	}

	users, err := d.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users: %v", err)
		return nil, errorx.Unknown
	}

	userMap := map[string]*entity.User{}
	for i := range users {
		userMap[users[i].ID] = &users[i]
	}

	entries := []model.LeaderboardEntry{}
	for i, z := range zs {
		entries = append(entries, model.LeaderboardEntry{
			User:     model.ConvertShortUser(userMap[z.Member.(string)]),
			Progress: int(z.Score),
			Rank:     i + 1,
		})
	}

	myRank := 0
	if requestUserID := xcontext.RequestUserID(ctx); requestUserID != "" {
		rank, err := d.redisClient.ZRevRank(ctx, leaderboardKey, requestUserID)
		if err == nil {
			myRank = int(rank) + 1
		} else if !errors.Is(err, redis.Nil) {
			xcontext.Logger(ctx).Warnf("Cannot get requester rank: %v", err)
		}
	}

	return &model.GetChallengeLeaderboardResponse{Entries: entries, MyRank: myRank}, nil
}

func (d *challengeDomain) loadLeaderboard(ctx context.Context, challengeID, key string) error {
	participants, err := d.participantRepo.GetListByChallengeID(ctx, challengeID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get participants: %v", err)
		return errorx.Unknown
	}

	for _, p := range participants {
		err := d.redisClient.ZAdd(ctx, key, redis.Z{
			Score:  float64(p.Progress),
			Member: p.UserID,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot load leaderboard member: %v", err)
			return errorx.Unknown
		}
	}

	return nil
}

func (d *challengeDomain) convertChallenges(
	ctx context.Context, challenges []entity.Challenge,
) ([]model.Challenge, error) {
	creatorIDs := []string{}
	for _, c := range challenges {
		creatorIDs = append(creatorIDs, c.CreatedBy)
	}

	creators, err := d.userRepo.GetByIDs(ctx, creatorIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get creators: %v", err)
		return nil, errorx.Unknown
	}

	creatorMap := map[string]*entity.User{}
	for i := range creators {
		creatorMap[creators[i].ID] = &creators[i]
	}

	converted := []model.Challenge{}
	for i := range challenges {
		c := &challenges[i]
		converted = append(converted, model.ConvertChallenge(c, creatorMap[c.CreatedBy]))
	}

	return converted, nil
}
