package exports

import (
	apphttp "leadcrm_backend/internal/http"
	"leadcrm_backend/internal/leads/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module exposes CSV export endpoints for operator tooling.
type Module struct {
	handler *Handler
}

// NewModule creates the exports module backed by the lead store.
func NewModule(pool *pgxpool.Pool) *Module {
	return &Module{handler: NewHandler(repository.New(pool))}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "exports"
}

// RegisterRoutes registers export routes on the protected group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/exports")
	group.GET("/leads", m.handler.HandleExportLeads)
}
