// Package leads provides the lead lifecycle bounded context module.
// This file defines the module that encapsulates all leads setup and route registration.
package leads

import (
	"context"

	"leadcrm_backend/internal/events"
	apphttp "leadcrm_backend/internal/http"
	"leadcrm_backend/internal/leads/analytics"
	"leadcrm_backend/internal/leads/handler"
	"leadcrm_backend/internal/leads/lifecycle"
	"leadcrm_backend/internal/leads/management"
	"leadcrm_backend/internal/leads/notes"
	"leadcrm_backend/internal/leads/repository"
	"leadcrm_backend/internal/leads/scoring"
	"leadcrm_backend/platform/config"
	"leadcrm_backend/platform/logger"
	"leadcrm_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Config combines the config interfaces the leads module needs.
type Config interface {
	config.LeadsConfig
	config.CacheConfig
}

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler          *handler.Handler
	analyticsHandler *handler.AnalyticsHandler
	publicHandler    *handler.PublicHandler
	management       *management.Service
	lifecycle        *lifecycle.Service
	scoring          *scoring.Service
	notes            *notes.Service
	analytics        *analytics.Service
}

// NewModule creates and initializes the leads module with all its
// dependencies. redisClient may be nil, which disables dashboard caching.
func NewModule(pool *pgxpool.Pool, eventBus events.Bus, val *validator.Validator, cfg Config, log *logger.Logger, redisClient *redis.Client) *Module {
	repo := repository.New(pool)

	var cache *analytics.Cache
	if redisClient != nil {
		cache = analytics.NewCache(redisClient, cfg.GetDashboardCacheTTL(), log)
	}

	mgmtSvc := management.New(repo, eventBus)
	lifecycleSvc := lifecycle.New(repo, eventBus, cfg.IsTerminalLockEnabled())
	scoringSvc := scoring.New(repo, eventBus)
	notesSvc := notes.New(repo, eventBus)
	analyticsSvc := analytics.New(repo, cache, nil)

	// Any lead mutation makes the memoized dashboard stale.
	invalidate := events.HandlerFunc(func(ctx context.Context, _ events.Event) error {
		analyticsSvc.InvalidateDashboard(ctx)
		return nil
	})
	for _, name := range []string{
		events.LeadCreated{}.EventName(),
		events.LeadStatusChanged{}.EventName(),
		events.LeadScoreUpdated{}.EventName(),
		events.LeadDeleted{}.EventName(),
	} {
		eventBus.Subscribe(name, invalidate)
	}

	notesHandler := handler.NewNotesHandler(notesSvc, val)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsSvc, notesSvc, val)
	h := handler.New(mgmtSvc, lifecycleSvc, scoringSvc, notesHandler, val)
	publicHandler := handler.NewPublicHandler(mgmtSvc, val)

	return &Module{
		handler:          h,
		analyticsHandler: analyticsHandler,
		publicHandler:    publicHandler,
		management:       mgmtSvc,
		lifecycle:        lifecycleSvc,
		scoring:          scoringSvc,
		notes:            notesSvc,
		analytics:        analyticsSvc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// ManagementService returns the lead management service for external use.
func (m *Module) ManagementService() *management.Service {
	return m.management
}

// NotesService returns the lead notes service for external use.
func (m *Module) NotesService() *notes.Service {
	return m.notes
}

// RegisterRoutes mounts leads routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Operator routes require authentication.
	m.handler.RegisterRoutes(ctx.Protected.Group("/leads"))
	m.analyticsHandler.RegisterRoutes(ctx.Protected.Group("/analytics"))

	// Marketing-site intake is public but strictly rate limited.
	publicGroup := ctx.Public.Group("/leads")
	publicGroup.Use(ctx.IntakeRateLimiter.RateLimit())
	m.publicHandler.RegisterRoutes(publicGroup)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
