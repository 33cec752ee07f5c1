package model

type CreateStoryRequest struct {
	MediaURL string `json:"media_url"`
}

type CreateStoryResponse struct {
	Story Story `json:"story"`
}

type GetActiveStoriesRequest struct {
	UserID string `json:"user_id"`
}

type GetActiveStoriesResponse struct {
	Stories []Story `json:"stories"`
}

type DeleteStoryRequest struct {
	StoryID string `json:"story_id"`
}

type DeleteStoryResponse struct{}
