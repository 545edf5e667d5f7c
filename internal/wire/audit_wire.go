package wire

import (
	"car-rental/internal/adaptor"
	"car-rental/internal/data/repository"
	"car-rental/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAudit(
	r chi.Router,
	auditHandler *adaptor.AuditHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/audit-logs", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		// GET /api/admin/audit-logs - Filterable activity trail
		r.Get("/", auditHandler.ListAuditLogs)
	})
}
