package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dagym-lab/backend/internal/entity"
	"github.com/dagym-lab/backend/pkg/xcontext"
)

type ChallengeParticipantRepository interface {
	Create(ctx context.Context, data *entity.ChallengeParticipant) error
	Get(ctx context.Context, challengeID, userID string) (*entity.ChallengeParticipant, error)
	GetListByUserID(ctx context.Context, userID string) ([]entity.ChallengeParticipant, error)
	GetListByChallengeID(ctx context.Context, challengeID string) ([]entity.ChallengeParticipant, error)
	IncreaseProgress(ctx context.Context, id string, target int) (bool, error)
	UpdateStatusByID(ctx context.Context, id, status string) error
}

type challengeParticipantRepository struct{}

func NewChallengeParticipantRepository() *challengeParticipantRepository {
	return &challengeParticipantRepository{}
}

func (r *challengeParticipantRepository) Create(ctx context.Context, data *entity.ChallengeParticipant) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *challengeParticipantRepository) Get(
	ctx context.Context, challengeID, userID string,
) (*entity.ChallengeParticipant, error) {
	var record entity.ChallengeParticipant
	err := xcontext.DB(ctx).
		Take(&record, "challenge_id=? AND user_id=?", challengeID, userID).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *challengeParticipantRepository) GetListByUserID(
	ctx context.Context, userID string,
) ([]entity.ChallengeParticipant, error) {
	var records []entity.ChallengeParticipant
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *challengeParticipantRepository) GetListByChallengeID(
	ctx context.Context, challengeID string,
) ([]entity.ChallengeParticipant, error) {
	var records []entity.ChallengeParticipant
	err := xcontext.DB(ctx).
		Where("challenge_id=?", challengeID).
		Order("progress DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

// IncreaseProgress adds one unit of progress without exceeding the target. The
// guard lives in the WHERE clause so concurrent updates can never push progress
// past the target. It reports whether a row was actually updated.
func (r *challengeParticipantRepository) IncreaseProgress(
	ctx context.Context, id string, target int,
) (bool, error) {
	tx := xcontext.DB(ctx).Model(&entity.ChallengeParticipant{}).
		Where("id=? AND progress < ?", id, target).
		Update("progress", gorm.Expr("progress+1"))
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

func (r *challengeParticipantRepository) UpdateStatusByID(ctx context.Context, id, status string) error {
	return xcontext.DB(ctx).Model(&entity.ChallengeParticipant{}).
		Where("id=?", id).
		Update("status", status).Error
}
