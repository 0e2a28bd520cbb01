package campaigns

import (
	"leadcrm_backend/internal/email"
	apphttp "leadcrm_backend/internal/http"
	"leadcrm_backend/internal/leads/repository"
	"leadcrm_backend/platform/config"
	"leadcrm_backend/platform/logger"
	"leadcrm_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the campaigns bounded context module implementing http.Module.
type Module struct {
	handler *Handler
	service *Service
}

// NewModule creates and initializes the campaigns module.
func NewModule(pool *pgxpool.Pool, sender email.Sender, cfg config.CampaignConfig, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	service := New(repo, sender, cfg.GetCampaignConcurrency(), log)

	return &Module{
		handler: NewHandler(service, val),
		service: service,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "campaigns"
}

// RegisterRoutes mounts campaign routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/campaigns"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
