// Package v1 exposes the REST API of the back office: authentication, the
// conversational assistant and read-only domain listings.
package v1

import (
	"context"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/semaphore"

	"github.com/quilicura/micondominio/ai/assistant"
	"github.com/quilicura/micondominio/ai/llm"
	"github.com/quilicura/micondominio/ai/metrics"
	"github.com/quilicura/micondominio/ai/tools"
	"github.com/quilicura/micondominio/internal/profile"
	"github.com/quilicura/micondominio/server/auth"
	"github.com/quilicura/micondominio/store"
)

// assistantConcurrency bounds how many turns run against the LLM gateway at
// once. Turns beyond the bound wait rather than fail.
const assistantConcurrency = 3

type APIV1Service struct {
	Profile  *profile.Profile
	Store    *store.Store
	Secret   string
	Exporter *metrics.Exporter

	dispatcher         *assistant.Dispatcher
	assistantSemaphore *semaphore.Weighted
}

// NewAPIV1Service wires the API surface. The assistant is initialized only
// when the profile carries an LLM API key; without it the assistant routes
// answer 503 and the rest of the API works normally.
func NewAPIV1Service(secret string, profile *profile.Profile, store *store.Store, exporter *metrics.Exporter) *APIV1Service {
	service := &APIV1Service{
		Profile:            profile,
		Store:              store,
		Secret:             secret,
		Exporter:           exporter,
		assistantSemaphore: semaphore.NewWeighted(assistantConcurrency),
	}

	if profile.IsAIEnabled() {
		gateway, err := llm.NewService(&llm.Config{
			Provider: profile.LLMProvider,
			Model:    profile.LLMModel,
			APIKey:   profile.LLMAPIKey,
			BaseURL:  profile.LLMBaseURL,
			Timeout:  profile.LLMTimeout,
		})
		if err != nil {
			slog.Warn("failed to initialize LLM gateway, assistant disabled",
				"provider", profile.LLMProvider,
				"error", err,
			)
		} else {
			slog.Info("LLM gateway initialized",
				"provider", profile.LLMProvider,
				"model", profile.LLMModel,
			)
			registry := tools.NewRegistry(store)
			sessions := assistant.NewSessions(store)
			service.dispatcher = assistant.NewDispatcher(gateway, registry, sessions, exporter, profile.LLMProvider)

			// Warm up the gateway connection asynchronously. Best effort.
			go func() {
				warmupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				gateway.Warmup(warmupCtx)
			}()
		}
	}

	return service
}

// RegisterRoutes mounts the API under /api/v1.
func (s *APIV1Service) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/auth/login", s.Login)

	authed := api.Group("", auth.Middleware(s.Store, s.Secret))
	authed.GET("/condominiums", s.ListCondominiums)
	authed.GET("/incidents", s.ListIncidents)

	assistantGroup := authed.Group("/assistant", middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStore(10),
	}))
	assistantGroup.POST("/messages", s.PostAssistantMessage)
	assistantGroup.GET("/history", s.GetAssistantHistory)
	assistantGroup.POST("/conversations/reset", s.ResetAssistantConversation)
}
