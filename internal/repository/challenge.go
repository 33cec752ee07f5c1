package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dagym-lab/backend/internal/entity"
	"github.com/dagym-lab/backend/pkg/xcontext"
)

type GetListChallengeFilter struct {
	Category string
	Offset   int
	Limit    int
}

type ChallengeRepository interface {
	Create(ctx context.Context, data *entity.Challenge) error
	GetByID(ctx context.Context, id string) (*entity.Challenge, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.Challenge, error)
	GetList(ctx context.Context, filter GetListChallengeFilter) ([]entity.Challenge, error)
	IncreaseParticipantCount(ctx context.Context, id string) error
}

type challengeRepository struct{}

func NewChallengeRepository() *challengeRepository {
	return &challengeRepository{}
}

func (r *challengeRepository) Create(ctx context.Context, data *entity.Challenge) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *challengeRepository) GetByID(ctx context.Context, id string) (*entity.Challenge, error) {
	var record entity.Challenge
	if err := xcontext.DB(ctx).Take(&record, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *challengeRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Challenge, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var records []entity.Challenge
	if err := xcontext.DB(ctx).Where("id IN (?)", ids).Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *challengeRepository) GetList(ctx context.Context, filter GetListChallengeFilter) ([]entity.Challenge, error) {
	tx := xcontext.DB(ctx).Model(&entity.Challenge{}).
		Offset(filter.Offset).
		Limit(filter.Limit).
		Order("created_at DESC")

	if filter.Category != "" {
		tx = tx.Where("category=?", filter.Category)
	}

	var records []entity.Challenge
	if err := tx.Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *challengeRepository) IncreaseParticipantCount(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Model(&entity.Challenge{}).
		Where("id=?", id).
		Update("participant_count", gorm.Expr("participant_count+1")).Error
}
