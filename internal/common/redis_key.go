package common

import "fmt"

func RedisKeyChallengeLeaderboard(challengeID string) string {
	return fmt.Sprintf("leaderboard:%s", challengeID)
}
