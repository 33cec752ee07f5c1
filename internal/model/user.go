package model

type ToggleFollowRequest struct {
	UserID string `json:"user_id"`
}

type ToggleFollowResponse struct {
	Following bool `json:"following"`
}

type GetFollowersRequest struct {
	UserID string `json:"user_id"`
}

type GetFollowersResponse struct {
	Users []ShortUser `json:"users"`
}

type GetFollowingRequest struct {
	UserID string `json:"user_id"`
}

type GetFollowingResponse struct {
	Users []ShortUser `json:"users"`
}

type GetUserRequest struct {
	UserID string `json:"user_id"`
}

type GetUserResponse struct {
	User User `json:"user"`
}

type GetMeRequest struct{}

type GetMeResponse struct {
	User User `json:"user"`
}

type UpdateUserRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Weight      float64  `json:"weight"`
	Height      float64  `json:"height"`
	Diet        []string `json:"diet"`
	Workout     []string `json:"workout"`
}

type UpdateUserResponse struct {
	User User `json:"user"`
}

type UploadAvatarRequest struct {
	// Image data is included in form-data.
}

type UploadAvatarResponse struct {
	AvatarURL string `json:"avatar_url"`
}

type SearchUsersRequest struct {
	Q      string `json:"q"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type SearchUsersResponse struct {
	Users []ShortUser `json:"users"`
}

type GetSuggestedUsersRequest struct {
	Limit int `json:"limit"`
}

type GetSuggestedUsersResponse struct {
	Users []ShortUser `json:"users"`
}

type DeleteUserRequest struct{}

type DeleteUserResponse struct{}
