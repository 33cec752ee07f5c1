package domain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dagym-lab/backend/internal/model"
	"github.com/dagym-lab/backend/internal/repository"
	"github.com/dagym-lab/backend/pkg/testutil"
)

func Test_authDomain_RegisterAndLogin(t *testing.T) {
	ctx := testutil.MockContext()
	authDomain := NewAuthDomain(repository.NewUserRepository())

	registerResp, err := authDomain.Register(ctx, &model.RegisterRequest{
		Name:     "Alice",
		Username: "alice",
		Email:    "alice@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	require.NotEmpty(t, registerResp.AccessToken)
	require.Equal(t, "alice", registerResp.User.Username)
	require.Equal(t, "alice@example.com", registerResp.User.Email)

	// Cannot register the same username twice.
	_, err = authDomain.Register(ctx, &model.RegisterRequest{
		Name:     "Another Alice",
		Username: "alice",
		Email:    "alice2@example.com",
		Password: "supersecret",
	})
	require.Error(t, err)
	require.Equal(t, "This username is already taken", err.Error())

	// Cannot register the same email twice.
	_, err = authDomain.Register(ctx, &model.RegisterRequest{
		Name:     "Another Alice",
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "supersecret",
	})
	require.Equal(t, "This email is already registered", err.Error())

	loginResp, err := authDomain.Login(ctx, &model.LoginRequest{
		Username: "alice",
		Password: "supersecret",
	})
	require.NoError(t, err)
	require.NotEmpty(t, loginResp.AccessToken)

	_, err = authDomain.Login(ctx, &model.LoginRequest{
		Username: "alice",
		Password: "wrongpassword",
	})
	require.Equal(t, "Invalid username or password", err.Error())

	_, err = authDomain.Login(ctx, &model.LoginRequest{
		Username: "nobody",
		Password: "supersecret",
	})
	require.Equal(t, "Invalid username or password", err.Error())
}

func Test_authDomain_RegisterValidation(t *testing.T) {
	ctx := testutil.MockContext()
	authDomain := NewAuthDomain(repository.NewUserRepository())

	_, err := authDomain.Register(ctx, &model.RegisterRequest{
		Username: "",
		Email:    "a@example.com",
		Password: "supersecret",
	})
	require.Equal(t, "Not allow empty username or email", err.Error())

	_, err = authDomain.Register(ctx, &model.RegisterRequest{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "short",
	})
	require.Equal(t, "Password must contain at least 8 characters", err.Error())
}
