package model

type SendMessageRequest struct {
	ReceiverID string `json:"receiver_id"`
	Content    string `json:"content"`
}

type SendMessageResponse struct {
	Message Message `json:"message"`
}

type GetConversationRequest struct {
	UserID string `json:"user_id"`
}

type GetConversationResponse struct {
	Messages []Message `json:"messages"`
}
