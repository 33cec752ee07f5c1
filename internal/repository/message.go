package repository

import (
	"context"

	"github.com/dagym-lab/backend/internal/entity"
	"github.com/dagym-lab/backend/pkg/xcontext"
)

type MessageRepository interface {
	Create(ctx context.Context, data *entity.Message) error
	GetConversation(ctx context.Context, userID, otherUserID string) ([]entity.Message, error)
	DeleteByUserID(ctx context.Context, userID string) error
}

type messageRepository struct{}

func NewMessageRepository() *messageRepository {
	return &messageRepository{}
}

func (r *messageRepository) Create(ctx context.Context, data *entity.Message) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *messageRepository) GetConversation(
	ctx context.Context, userID, otherUserID string,
) ([]entity.Message, error) {
	var records []entity.Message
	err := xcontext.DB(ctx).
		Where("(sender_id=? AND receiver_id=?) OR (sender_id=? AND receiver_id=?)",
			userID, otherUserID, otherUserID, userID).
		Order("created_at ASC, id ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *messageRepository) DeleteByUserID(ctx context.Context, userID string) error {
	return xcontext.DB(ctx).
		Delete(&entity.Message{}, "sender_id=? OR receiver_id=?", userID, userID).Error
}
