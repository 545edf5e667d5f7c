package adaptor

import (
	"net/http"

	"car-rental/internal/dto/request"
	"car-rental/internal/usecase"
	"car-rental/pkg/utils"

	"go.uber.org/zap"
)

type AuditHandler struct {
	service usecase.AuditService
	log     *zap.Logger
}

func NewAuditHandler(service usecase.AuditService, log *zap.Logger) *AuditHandler {
	return &AuditHandler{
		service: service,
		log:     log,
	}
}

// ListAuditLogs handles GET /api/admin/audit-logs
func (h *AuditHandler) ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := &request.AuditLogListRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(q.Get("page"), 1),
			PerPage: utils.ParseInt(q.Get("per_page"), 20),
		},
		Action:     q.Get("action"),
		ActorUser:  q.Get("actor_user"),
		EntityType: q.Get("entity_type"),
		EntityID:   q.Get("entity_id"),
	}

	response, err := h.service.List(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "list audit logs")
		return
	}

	utils.ResponseSuccess(w, "Audit logs retrieved successfully", response)
}
