package authenticator_test

import (
	"testing"
	"time"

	"github.com/dagym-lab/backend/pkg/authenticator"
	"github.com/stretchr/testify/require"
)

type tokenInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func TestJWT(t *testing.T) {
	engine := authenticator.NewTokenEngine[tokenInfo]("secret", time.Minute)
	token, err := engine.Generate("user1", tokenInfo{ID: "user1", Username: "foo"})
	require.Nil(t, err)

	info, err := engine.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user1", info.ID)
	require.Equal(t, "foo", info.Username)
}

func TestJWTExpiration(t *testing.T) {
	engine := authenticator.NewTokenEngine[tokenInfo]("secret", -time.Minute)
	token, err := engine.Generate("user1", tokenInfo{ID: "user1"})
	require.Nil(t, err)

	_, err = engine.Verify(token)
	require.Error(t, err)
}

func TestJWTWrongSecret(t *testing.T) {
	engine := authenticator.NewTokenEngine[tokenInfo]("secret", time.Minute)
	token, err := engine.Generate("user1", tokenInfo{ID: "user1"})
	require.Nil(t, err)

	other := authenticator.NewTokenEngine[tokenInfo]("another-secret", time.Minute)
	_, err = other.Verify(token)
	require.Error(t, err)
}
