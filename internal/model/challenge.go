package model

type CreateChallengeRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Duration    string `json:"duration"`
	TotalTarget int    `json:"total_target"`
	Reward      string `json:"reward"`
}

type CreateChallengeResponse struct {
	Challenge Challenge `json:"challenge"`
}

type GetChallengesRequest struct {
	Category string `json:"category"`
	Offset   int    `json:"offset"`
	Limit    int    `json:"limit"`
}

type GetChallengesResponse struct {
	Challenges []Challenge `json:"challenges"`
}

type GetMyChallengesRequest struct{}

type GetMyChallengesResponse struct {
	Challenges []ChallengeParticipation `json:"challenges"`
}

type AcceptChallengeRequest struct {
	ChallengeID string `json:"challenge_id"`
}

type AcceptChallengeResponse struct{}

type IncreaseChallengeProgressRequest struct {
	ChallengeID string `json:"challenge_id"`
}

type IncreaseChallengeProgressResponse struct {
	Progress int    `json:"progress"`
	Status   string `json:"status"`
}

type GetChallengeLeaderboardRequest struct {
	ChallengeID string `json:"challenge_id"`
	Limit       int    `json:"limit"`
}

type GetChallengeLeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
	MyRank  int                `json:"my_rank,omitempty"`
}
