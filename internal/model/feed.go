package model

const (
	FeedTypeGeneral   = "general"
	FeedTypeFollowing = "following"
)

type GetFeedRequest struct {
	Type   string `json:"type"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type GetFeedResponse struct {
	Posts []Post `json:"posts"`
}

type GetUserPostsRequest struct {
	UserID string `json:"user_id"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type GetUserPostsResponse struct {
	Posts []Post `json:"posts"`
}
