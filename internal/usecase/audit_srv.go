package usecase

import (
	"context"
	"fmt"
	"time"

	"car-rental/internal/data/entity"
	"car-rental/internal/data/repository"
	"car-rental/internal/dto/request"
	"car-rental/internal/dto/response"
	"car-rental/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuditEntry is what callers hand to the recorder. Actor and request
// context are pulled from ctx, not from the caller.
type AuditEntry struct {
	Action     string
	EntityType string
	EntityID   string
	Message    string
	Metadata   map[string]any
}

type AuditService interface {
	// Record persists the entry best-effort. It never returns an error and
	// never panics past its own frame: a failed audit write must not turn a
	// successful business operation into a failed response.
	Record(ctx context.Context, entry AuditEntry)

	// Admin endpoint
	List(ctx context.Context, req *request.AuditLogListRequest) (*response.PaginatedResponse[response.AuditLogResponse], error)
}

type auditService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAuditService(repo *repository.Repository, log *zap.Logger) AuditService {
	return &auditService{
		repo: repo,
		log:  log.With(zap.String("service", "audit")),
	}
}

const auditWriteTimeout = 3 * time.Second

func (s *auditService) Record(ctx context.Context, entry AuditEntry) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("Audit record panicked", zap.Any("panic", r), zap.String("action", entry.Action))
		}
	}()

	actorRole := "anonymous"
	if role, ok := utils.GetRoleFromContext(ctx); ok && role != "" {
		actorRole = role
	}

	var actorUser *uuid.UUID
	if userID, ok := utils.GetUserIDFromContext(ctx); ok {
		actorUser = &userID
	}

	meta := utils.GetRequestMeta(ctx)

	auditLog := &entity.AuditLog{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		ActorUser: actorUser,
		ActorRole: actorRole,
		Action:    entry.Action,
		Message:   entry.Message,
		Metadata:  entry.Metadata,
		IP:        meta.ClientIP,
		UserAgent: meta.UserAgent,
		RequestID: meta.RequestID,
	}
	if entry.EntityType != "" {
		auditLog.EntityType = &entry.EntityType
	}
	if entry.EntityID != "" {
		auditLog.EntityID = &entry.EntityID
	}

	// The write gets its own deadline, detached from the request's
	// cancellation: an abandoned request should not lose the entry.
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditWriteTimeout)
	defer cancel()

	if err := s.repo.AuditLog.Create(writeCtx, auditLog); err != nil {
		// Swallowed on purpose. Audit failures never reach the caller.
		s.log.Error("Audit log write failed",
			zap.Error(err),
			zap.String("action", entry.Action),
		)
	}
}

func (s *auditService) List(ctx context.Context, req *request.AuditLogListRequest) (*response.PaginatedResponse[response.AuditLogResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Audit log list validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s: %w", utils.FormatValidationErrors(errs), ErrInvalidInput)
	}

	filter := repository.AuditLogFilter{
		Action:     req.Action,
		EntityType: req.EntityType,
		EntityID:   req.EntityID,
	}
	if req.ActorUser != "" {
		actorID, err := uuid.Parse(req.ActorUser)
		if err != nil {
			return nil, fmt.Errorf("invalid actor user ID %s: %w", req.ActorUser, ErrInvalidInput)
		}
		filter.ActorUser = &actorID
	}

	logs, err := s.repo.AuditLog.FindFiltered(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list audit logs", zap.Error(err))
		return nil, err
	}

	total, err := s.repo.AuditLog.CountFiltered(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count audit logs", zap.Error(err))
		return nil, err
	}

	items := make([]response.AuditLogResponse, len(logs))
	for i, l := range logs {
		items[i] = response.AuditLogToResponse(l)
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}
