package model

type AccessToken struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type ShortUser struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

type User struct {
	ShortUser

	Email                 string   `json:"email,omitempty"`
	Description           string   `json:"description"`
	Weight                float64  `json:"weight,omitempty"`
	Height                float64  `json:"height,omitempty"`
	Diet                  []string `json:"diet,omitempty"`
	Workout               []string `json:"workout,omitempty"`
	LastMeasurementUpdate string   `json:"last_measurement_update,omitempty"`
	Followers             int64    `json:"followers"`
	Following             int64    `json:"following"`
	Posts                 int64    `json:"posts"`
	IsFollowed            bool     `json:"is_followed"`
}

type Post struct {
	ID           string    `json:"id"`
	CreatedAt    string    `json:"created_at"`
	Author       ShortUser `json:"author"`
	Description  string    `json:"description"`
	PhotoURL     string    `json:"photo_url"`
	Likes        int64     `json:"likes"`
	Liked        bool      `json:"liked"`
	Comments     []Comment `json:"comments"`
	OriginalPost *Post     `json:"original_post,omitempty"`
}

type Comment struct {
	ID        string    `json:"id"`
	CreatedAt string    `json:"created_at"`
	User      ShortUser `json:"user"`
	Text      string    `json:"text"`
}

type Group struct {
	ID          string    `json:"id"`
	CreatedAt   string    `json:"created_at"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	CreatedBy   ShortUser `json:"created_by"`
	Members     int64     `json:"members"`
	IsJoined    bool      `json:"is_joined"`
}

type Story struct {
	ID        string    `json:"id"`
	CreatedAt string    `json:"created_at"`
	ExpiresAt string    `json:"expires_at"`
	User      ShortUser `json:"user"`
	MediaURL  string    `json:"media_url"`
}

type Message struct {
	ID         string `json:"id"`
	CreatedAt  string `json:"created_at"`
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
	Content    string `json:"content"`
	IsRead     bool   `json:"is_read"`
}

type Challenge struct {
	ID           string    `json:"id"`
	CreatedAt    string    `json:"created_at"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Duration     string    `json:"duration"`
	TotalTarget  int       `json:"total_target"`
	Reward       string    `json:"reward"`
	CreatedBy    ShortUser `json:"created_by"`
	Participants int       `json:"participants"`
}

type ChallengeParticipation struct {
	Challenge Challenge `json:"challenge"`
	Status    string    `json:"status"`
	Progress  int       `json:"progress"`
}

type LeaderboardEntry struct {
	User     ShortUser `json:"user"`
	Progress int       `json:"progress"`
	Rank     int       `json:"rank"`
}
