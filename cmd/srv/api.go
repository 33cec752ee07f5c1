package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/urfave/cli/v2"

	"github.com/dagym-lab/backend/internal/common"
	"github.com/dagym-lab/backend/internal/middleware"
	"github.com/dagym-lab/backend/pkg/router"
	"github.com/dagym-lab/backend/pkg/xcontext"
)

func (s *srv) startApi(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.loadStorage()

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, *s.configs)
	ctx = xcontext.WithLogger(ctx, s.logger)

	s.loadRedisClient(ctx)
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	c := cors.New(cors.Options{
		AllowedOrigins:   s.configs.ApiServer.AllowCORS,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", s.configs.ApiServer.Port),
		Handler: c.Handler(s.router.Handler()),
	}

	s.logger.Infof("Starting server on port: %s", s.configs.ApiServer.Port)
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}

	s.logger.Infof("Server stop")
	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.db, *s.configs, s.logger)
	s.router.AddCloser(middleware.Logger())
	s.router.AddCloser(middleware.Prometheus())

	// Public API
	publicRouter := s.router.Branch()
	publicRouter.Before(middleware.WithStartTime())
	publicRouter.Before(middleware.WithAuth())
	{
		router.POST(publicRouter, "/register", s.authDomain.Register)
		router.POST(publicRouter, "/login", s.authDomain.Login)

		router.GET(publicRouter, "/getUser", s.userDomain.GetUser)
		router.GET(publicRouter, "/getFollowers", s.userDomain.GetFollowers)
		router.GET(publicRouter, "/getFollowing", s.userDomain.GetFollowing)
		router.GET(publicRouter, "/searchUsers", s.userDomain.Search)

		router.GET(publicRouter, "/getGroup", s.groupDomain.Get)
		router.GET(publicRouter, "/getGroups", s.groupDomain.GetList)
		router.GET(publicRouter, "/getGroupMembers", s.groupDomain.GetMembers)

		router.GET(publicRouter, "/getPost", s.postDomain.Get)
		router.GET(publicRouter, "/getFeed", s.feedDomain.GetFeed)
		router.GET(publicRouter, "/getUserPosts", s.feedDomain.GetUserPosts)

		router.GET(publicRouter, "/getChallenges", s.challengeDomain.GetList)
		router.GET(publicRouter, "/getChallengeLeaderboard", s.challengeDomain.GetLeaderboard)
	}

	// Authenticated API
	authRouter := s.router.Branch()
	authRouter.Before(middleware.WithStartTime())
	authRouter.Before(middleware.WithAuth())
	authRouter.Before(middleware.MustAuth())
	{
		router.GET(authRouter, "/getMe", s.userDomain.GetMe)
		router.POST(authRouter, "/toggleFollow", s.userDomain.ToggleFollow)
		router.POST(authRouter, "/updateUser", s.userDomain.Update)
		router.POST(authRouter, "/uploadAvatar", s.userDomain.UploadAvatar)
		router.GET(authRouter, "/getSuggestedUsers", s.userDomain.GetSuggestions)
		router.POST(authRouter, "/deleteUser", s.userDomain.Delete)

		router.POST(authRouter, "/createGroup", s.groupDomain.Create)
		router.POST(authRouter, "/toggleGroupMembership", s.groupDomain.ToggleMembership)
		router.GET(authRouter, "/getMyGroups", s.groupDomain.GetMyList)

		router.POST(authRouter, "/createPost", s.postDomain.Create)
		router.POST(authRouter, "/uploadPostPhoto", s.postDomain.UploadPhoto)
		router.POST(authRouter, "/deletePost", s.postDomain.Delete)
		router.POST(authRouter, "/toggleLike", s.postDomain.ToggleLike)
		router.POST(authRouter, "/addComment", s.postDomain.AddComment)
		router.POST(authRouter, "/repost", s.postDomain.Repost)

		router.POST(authRouter, "/createStory", s.storyDomain.Create)
		router.GET(authRouter, "/getActiveStories", s.storyDomain.GetActive)
		router.POST(authRouter, "/deleteStory", s.storyDomain.Delete)

		router.POST(authRouter, "/sendMessage", s.messageDomain.Send)
		router.GET(authRouter, "/getConversation", s.messageDomain.GetConversation)

		router.POST(authRouter, "/createChallenge", s.challengeDomain.Create)
		router.GET(authRouter, "/getMyChallenges", s.challengeDomain.GetMyList)
		router.POST(authRouter, "/acceptChallenge", s.challengeDomain.Accept)
		router.POST(authRouter, "/increaseChallengeProgress", s.challengeDomain.IncreaseProgress)
	}

	registry := prometheus.NewRegistry()
	for _, counter := range common.PromCounters {
		registry.MustRegister(counter)
	}
	for _, histogram := range common.PromHistograms {
		registry.MustRegister(histogram)
	}

	s.router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
}
