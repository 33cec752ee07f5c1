package testutil

import (
	"context"

	"github.com/dagym-lab/backend/internal/entity"
	"github.com/dagym-lab/backend/internal/repository"
)

var (
	User1 = entity.User{
		Base:     entity.Base{ID: "user1"},
		Name:     "User One",
		Username: "user1",
		Email:    "user1@example.com",
	}

	User2 = entity.User{
		Base:     entity.Base{ID: "user2"},
		Name:     "User Two",
		Username: "user2",
		Email:    "user2@example.com",
	}

	User3 = entity.User{
		Base:     entity.Base{ID: "user3"},
		Name:     "User Three",
		Username: "user3",
		Email:    "user3@example.com",
	}

	Post1 = entity.Post{
		Base:        entity.Base{ID: "user1_post1"},
		AuthorID:    "user1",
		Description: "First training session done",
	}

	Group1 = entity.Group{
		Base:      entity.Base{ID: "group1"},
		Name:      "Morning Runners",
		Category:  "running",
		CreatedBy: "user1",
	}

	Challenge1 = entity.Challenge{
		Base:        entity.Base{ID: "challenge1"},
		Title:       "30 workouts",
		Category:    "strength",
		Duration:    "30d",
		TotalTarget: 3,
		CreatedBy:   "user1",
	}
)

// CreateFixture inserts a small consistent data set. Tests that need more rows
// add them on top through the repositories.
func CreateFixture(ctx context.Context) {
	userRepo := repository.NewUserRepository()
	for _, user := range []entity.User{User1, User2, User3} {
		user := user
		if err := userRepo.Create(ctx, &user); err != nil {
			panic(err)
		}
	}

	post := Post1
	if err := repository.NewPostRepository().Create(ctx, &post); err != nil {
		panic(err)
	}

	group := Group1
	if err := repository.NewGroupRepository().Create(ctx, &group); err != nil {
		panic(err)
	}

	err := repository.NewGroupMemberRepository().Create(ctx, &entity.GroupMember{
		GroupID: Group1.ID,
		UserID:  "user1",
	})
	if err != nil {
		panic(err)
	}

	challenge := Challenge1
	if err := repository.NewChallengeRepository().Create(ctx, &challenge); err != nil {
		panic(err)
	}
}
