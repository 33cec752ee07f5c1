package model

type CreatePostRequest struct {
	Description string `json:"description"`
	PhotoURL    string `json:"photo_url"`
}

type CreatePostResponse struct {
	Post Post `json:"post"`
}

type GetPostRequest struct {
	PostID string `json:"post_id"`
}

type GetPostResponse struct {
	Post Post `json:"post"`
}

type DeletePostRequest struct {
	PostID string `json:"post_id"`
}

type DeletePostResponse struct{}

type ToggleLikeRequest struct {
	PostID string `json:"post_id"`
}

type ToggleLikeResponse struct {
	Liked bool  `json:"liked"`
	Likes int64 `json:"likes"`
}

type AddCommentRequest struct {
	PostID string `json:"post_id"`
	Text   string `json:"text"`
}

type AddCommentResponse struct {
	Comment Comment `json:"comment"`
}

type UploadPostPhotoRequest struct{}

type UploadPostPhotoResponse struct {
	PhotoURL string `json:"photo_url"`
}

type RepostRequest struct {
	PostID      string `json:"post_id"`
	Description string `json:"description"`
}

type RepostResponse struct {
	Post Post `json:"post"`
}
