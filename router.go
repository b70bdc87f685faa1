package main

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/riaz37/job-finder-sub001/internal/config"
	"github.com/riaz37/job-finder-sub001/internal/handler"
	"github.com/riaz37/job-finder-sub001/internal/ratelimit"
	"github.com/riaz37/job-finder-sub001/internal/session"
	"github.com/riaz37/job-finder-sub001/internal/token"
)

type routerHandlers struct {
	health       *handler.HealthHandler
	auth         *handler.AuthHandler
	jobs         *handler.JobHandler
	resumes      *handler.ResumeHandler
	preferences  *handler.PreferencesHandler
	applications *handler.ApplicationHandler
}

// buildRouter assembles the middleware chain. Order matters: headers are
// stamped on every response, then authentication, then rate limiting.
// Excluded paths skip both gates but never the headers.
func buildRouter(cfg config.Config, log *slog.Logger, codec *token.Codec, sessions *session.Store, limiter *ratelimit.Limiter, h routerHandlers) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	excluded := handler.ExcludedPaths()
	router.Use(handler.RequestLoggerMiddleware(log))
	router.Use(handler.CORSMiddleware(strings.Split(cfg.Server.AllowedOrigins, ",")))
	router.Use(handler.SecurityHeadersMiddleware())
	router.Use(handler.AuthMiddleware(codec, sessions, excluded, log))
	router.Use(handler.RateLimitMiddleware(limiter, excluded))

	router.GET("/", h.health.Root)
	router.GET("/health", h.health.Health)
	router.GET("/docs", h.health.Ping)

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.auth.Register)
			auth.POST("/login", h.auth.Login)
			auth.POST("/logout", h.auth.Logout)
			auth.POST("/refresh", h.auth.Refresh)
			auth.GET("/me", h.auth.Me)
			auth.PUT("/password", h.auth.ChangePassword)
			auth.PUT("/email", h.auth.UpdateEmail)
			auth.DELETE("/account", h.auth.DeleteAccount)
		}

		v1.POST("/jobs", h.jobs.Create)
		v1.GET("/jobs", h.jobs.List)
		v1.GET("/jobs/:id", h.jobs.Get)
		v1.POST("/jobs/:id/apply", h.applications.Apply)

		v1.POST("/resumes", h.resumes.Create)
		v1.GET("/resumes", h.resumes.List)
		v1.GET("/resumes/:id", h.resumes.Get)
		v1.PUT("/resumes/:id", h.resumes.Update)
		v1.DELETE("/resumes/:id", h.resumes.Delete)
		v1.GET("/resumes/:id/matches", h.resumes.MatchJobs)

		v1.GET("/preferences", h.preferences.Get)
		v1.PUT("/preferences", h.preferences.Update)

		automation := v1.Group("/automation")
		{
			automation.POST("/validate", h.preferences.ValidateSettings)
			automation.GET("/schedule", h.preferences.Schedule)
			automation.GET("/summary", h.preferences.Summary)
			automation.GET("/recommendations", h.preferences.Recommendations)
		}

		v1.GET("/applications", h.applications.List)
		v1.GET("/applications/:id", h.applications.Get)
		v1.PUT("/applications/:id/status", h.applications.UpdateStatus)
	}

	return router
}
