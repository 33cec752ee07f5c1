package main

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/dagym-lab/backend/config"
	"github.com/dagym-lab/backend/internal/domain"
	"github.com/dagym-lab/backend/internal/entity"
	"github.com/dagym-lab/backend/internal/repository"
	"github.com/dagym-lab/backend/pkg/logger"
	"github.com/dagym-lab/backend/pkg/router"
	"github.com/dagym-lab/backend/pkg/storage"
	"github.com/dagym-lab/backend/pkg/xredis"
)

type srv struct {
	app *cli.App

	userRepo        repository.UserRepository
	followRepo      repository.FollowRepository
	postRepo        repository.PostRepository
	likeRepo        repository.LikeRepository
	commentRepo     repository.CommentRepository
	groupRepo       repository.GroupRepository
	groupMemberRepo repository.GroupMemberRepository
	storyRepo       repository.StoryRepository
	messageRepo     repository.MessageRepository
	challengeRepo   repository.ChallengeRepository
	participantRepo repository.ChallengeParticipantRepository

	authDomain      domain.AuthDomain
	userDomain      domain.UserDomain
	groupDomain     domain.GroupDomain
	postDomain      domain.PostDomain
	feedDomain      domain.FeedDomain
	storyDomain     domain.StoryDomain
	messageDomain   domain.MessageDomain
	challengeDomain domain.ChallengeDomain

	router      *router.Router
	db          *gorm.DB
	logger      logger.Logger
	storage     storage.Storage
	redisClient xredis.Client
	configs     *config.Configs

	server *http.Server
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		panic(err)
	}

	return d
}

func parseInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		panic(err)
	}

	return n
}

func (s *srv) loadConfig() {
	s.configs = &config.Configs{
		Env: getEnv("ENV", "local"),
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			User:     getEnv("MYSQL_USER", "dagym"),
			Password: getEnv("MYSQL_PASSWORD", "dagym"),
			Database: getEnv("MYSQL_DATABASE", "dagym"),
		},
		ApiServer: config.APIServerConfigs{
			Host:         getEnv("HOST", "localhost"),
			Port:         getEnv("PORT", "8080"),
			Cert:         getEnv("SERVER_CERT", ""),
			Key:          getEnv("SERVER_KEY", ""),
			AllowCORS:    []string{getEnv("ALLOW_CORS", "http://localhost:3000")},
			DefaultLimit: parseInt(getEnv("API_DEFAULT_LIMIT", "10")),
			MaxLimit:     parseInt(getEnv("API_MAX_LIMIT", "50")),
		},
		Auth: config.AuthConfigs{
			TokenSecret: getEnv("TOKEN_SECRET", "token-secret"),
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: parseDuration(getEnv("ACCESS_TOKEN_DURATION", "5m")),
			},
		},
		Storage: storage.S3Configs{
			Region:         getEnv("STORAGE_REGION", "auto"),
			Endpoint:       getEnv("STORAGE_ENDPOINT", "http://localhost:9000"),
			PublicEndpoint: getEnv("STORAGE_PUBLIC_ENDPOINT", "http://localhost:9000"),
			AccessKey:      getEnv("STORAGE_ACCESS_KEY", ""),
			SecretKey:      getEnv("STORAGE_SECRET_KEY", ""),
			SSLDisabled:    getEnv("STORAGE_SSL_DISABLE", "true") == "true",
		},
		File: config.FileConfigs{
			MaxSize: int64(parseInt(getEnv("MAX_UPLOAD_SIZE", "2097152"))),
		},
		Story: config.StoryConfigs{
			Lifetime: parseDuration(getEnv("STORY_LIFETIME", "24h")),
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDRESS", "localhost:6379"),
		},
	}
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if s.configs.Env == "local" {
		level = logger.DEBUG
	}

	s.logger = logger.NewLogger(level)
}

func (s *srv) loadDatabase() {
	var err error
	s.db, err = gorm.Open(mysql.Open(s.configs.Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadStorage() {
	s.storage = storage.NewS3Storage(s.configs.Storage)
}

func (s *srv) loadRedisClient(ctx context.Context) {
	var err error
	s.redisClient, err = xredis.NewClient(ctx)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.followRepo = repository.NewFollowRepository()
	s.postRepo = repository.NewPostRepository()
	s.likeRepo = repository.NewLikeRepository()
	s.commentRepo = repository.NewCommentRepository()
	s.groupRepo = repository.NewGroupRepository()
	s.groupMemberRepo = repository.NewGroupMemberRepository()
	s.storyRepo = repository.NewStoryRepository()
	s.messageRepo = repository.NewMessageRepository()
	s.challengeRepo = repository.NewChallengeRepository()
	s.participantRepo = repository.NewChallengeParticipantRepository()
}

func (s *srv) loadDomains() {
	s.authDomain = domain.NewAuthDomain(s.userRepo)
	s.userDomain = domain.NewUserDomain(
		s.userRepo, s.followRepo, s.postRepo, s.likeRepo, s.commentRepo,
		s.groupMemberRepo, s.storyRepo, s.messageRepo, s.storage)
	s.groupDomain = domain.NewGroupDomain(s.groupRepo, s.groupMemberRepo, s.userRepo)
	s.postDomain = domain.NewPostDomain(s.postRepo, s.userRepo, s.likeRepo, s.commentRepo, s.storage)
	s.feedDomain = domain.NewFeedDomain(
		s.postRepo, s.followRepo, s.userRepo, s.likeRepo, s.commentRepo, s.groupMemberRepo)
	s.storyDomain = domain.NewStoryDomain(s.storyRepo, s.userRepo)
	s.messageDomain = domain.NewMessageDomain(s.messageRepo, s.userRepo)
	s.challengeDomain = domain.NewChallengeDomain(
		s.challengeRepo, s.participantRepo, s.userRepo, s.redisClient)
}

func (s *srv) startMigrate(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()

	return entity.MigrateTable(s.db)
}
