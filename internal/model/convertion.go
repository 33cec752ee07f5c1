package model

import (
	"encoding/json"
	"time"

	"github.com/dagym-lab/backend/internal/entity"
)

const DefaultTimeLayout string = time.RFC3339Nano

func ConvertShortUser(user *entity.User) ShortUser {
	if user == nil {
		return ShortUser{}
	}

	return ShortUser{
		ID:        user.ID,
		Name:      user.Name,
		Username:  user.Username,
		AvatarURL: user.AvatarURL,
	}
}

func ConvertShortUsers(users []entity.User) []ShortUser {
	shortUsers := []ShortUser{}
	for i := range users {
		shortUsers = append(shortUsers, ConvertShortUser(&users[i]))
	}
	return shortUsers
}

func ConvertUser(
	user *entity.User,
	includeSensitive bool,
	followers, following, posts int64,
	isFollowed bool,
) User {
	if user == nil {
		return User{}
	}

	var diet, workout []string
	if len(user.Diet) > 0 {
		json.Unmarshal(user.Diet, &diet)
	}
	if len(user.Workout) > 0 {
		json.Unmarshal(user.Workout, &workout)
	}

	converted := User{
		ShortUser:   ConvertShortUser(user),
		Description: user.Description,
		Weight:      user.Weight,
		Height:      user.Height,
		Diet:        diet,
		Workout:     workout,
		Followers:   followers,
		Following:   following,
		Posts:       posts,
		IsFollowed:  isFollowed,
	}

	if !user.LastMeasurementUpdate.IsZero() {
		converted.LastMeasurementUpdate = user.LastMeasurementUpdate.Format(DefaultTimeLayout)
	}

	if includeSensitive {
		converted.Email = user.Email
	}

	return converted
}

func ConvertComment(comment *entity.Comment, user *entity.User) Comment {
	if comment == nil {
		return Comment{}
	}

	return Comment{
		ID:        comment.ID,
		CreatedAt: comment.CreatedAt.Format(DefaultTimeLayout),
		User:      ConvertShortUser(user),
		Text:      comment.Text,
	}
}

func ConvertGroup(group *entity.Group, createdBy *entity.User, members int64, isJoined bool) Group {
	if group == nil {
		return Group{}
	}

	return Group{
		ID:          group.ID,
		CreatedAt:   group.CreatedAt.Format(DefaultTimeLayout),
		Name:        group.Name,
		Description: group.Description,
		Category:    group.Category,
		Location:    group.Location,
		CreatedBy:   ConvertShortUser(createdBy),
		Members:     members,
		IsJoined:    isJoined,
	}
}

func ConvertStory(story *entity.Story, user *entity.User) Story {
	if story == nil {
		return Story{}
	}

	return Story{
		ID:        story.ID,
		CreatedAt: story.CreatedAt.Format(DefaultTimeLayout),
		ExpiresAt: story.ExpiresAt.Format(DefaultTimeLayout),
		User:      ConvertShortUser(user),
		MediaURL:  story.MediaURL,
	}
}

func ConvertMessage(message *entity.Message) Message {
	if message == nil {
		return Message{}
	}

	return Message{
		ID:         message.ID,
		CreatedAt:  message.CreatedAt.Format(DefaultTimeLayout),
		SenderID:   message.SenderID,
		ReceiverID: message.ReceiverID,
		Content:    message.Content,
		IsRead:     message.IsRead,
	}
}

func ConvertChallenge(challenge *entity.Challenge, createdBy *entity.User) Challenge {
	if challenge == nil {
		return Challenge{}
	}

	return Challenge{
		ID:           challenge.ID,
		CreatedAt:    challenge.CreatedAt.Format(DefaultTimeLayout),
		Title:        challenge.Title,
		Description:  challenge.Description,
		Category:     challenge.Category,
		Duration:     challenge.Duration,
		TotalTarget:  challenge.TotalTarget,
		Reward:       challenge.Reward,
		CreatedBy:    ConvertShortUser(createdBy),
		Participants: challenge.ParticipantCount,
	}
}
