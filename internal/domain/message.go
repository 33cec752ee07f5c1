package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dagym-lab/backend/internal/entity"
	"github.com/dagym-lab/backend/internal/model"
	"github.com/dagym-lab/backend/internal/repository"
	"github.com/dagym-lab/backend/pkg/errorx"
	"github.com/dagym-lab/backend/pkg/xcontext"
)

type MessageDomain interface {
	Send(context.Context, *model.SendMessageRequest) (*model.SendMessageResponse, error)
	GetConversation(context.Context, *model.GetConversationRequest) (*model.GetConversationResponse, error)
}

type messageDomain struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
}

func NewMessageDomain(
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
) *messageDomain {
	return &messageDomain{messageRepo: messageRepo, userRepo: userRepo}
}

func (d *messageDomain) Send(
	ctx context.Context, req *model.SendMessageRequest,
) (*model.SendMessageResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	if req.ReceiverID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty receiver id")
	}

	if req.ReceiverID == requestUserID {
		return nil, errorx.New(errorx.BadRequest, "Cannot send a message to yourself")
	}

	if strings.TrimSpace(req.Content) == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty content")
	}

	if _, err := d.userRepo.GetByID(ctx, req.ReceiverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found receiver")
		}

		xcontext.Logger(ctx).Errorf("Cannot get receiver: %v", err)
		return nil, errorx.Unknown
	}

	message := &entity.Message{
		Base:       entity.Base{ID: uuid.NewString()},
		SenderID:   requestUserID,
		ReceiverID: req.ReceiverID,
		Content:    req.Content,
	}

	if err := d.messageRepo.Create(ctx, message); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create message: %v", err)
		return nil, errorx.Unknown
	}

	return &model.SendMessageResponse{Message: model.ConvertMessage(message)}, nil
}

func (d *messageDomain) GetConversation(
	ctx context.Context, req *model.GetConversationRequest,
) (*model.GetConversationResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	if req.UserID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty user id")
	}

	messages, err := d.messageRepo.GetConversation(ctx, requestUserID, req.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get conversation: %v", err)
		return nil, errorx.Unknown
	}

	views := []model.Message{}
	for i := range messages {
		views = append(views, model.ConvertMessage(&messages[i]))
	}

	return &model.GetConversationResponse{Messages: views}, nil
}
