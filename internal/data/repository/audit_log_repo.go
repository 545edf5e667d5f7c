package repository

import (
	"context"
	"fmt"
	"strconv"

	"car-rental/internal/data/entity"
	"car-rental/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuditLogFilter narrows the admin listing. Zero values mean "no filter".
type AuditLogFilter struct {
	Action     string
	ActorUser  *uuid.UUID
	EntityType string
	EntityID   string
}

type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	FindFiltered(ctx context.Context, filter AuditLogFilter, limit, offset int) ([]*entity.AuditLog, error)
	CountFiltered(ctx context.Context, filter AuditLogFilter) (int64, error)
}

type auditLogRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAuditLogRepository(db database.PgxIface, log *zap.Logger) AuditLogRepository {
	return &auditLogRepository{
		db:  db,
		log: log.With(zap.String("repository", "audit_log")),
	}
}

func (r *auditLogRepository) Create(ctx context.Context, auditLog *entity.AuditLog) error {
	query := `
		INSERT INTO audit_logs (id, actor_user, actor_role, action, entity_type,
		                       entity_id, message, metadata, ip, user_agent,
		                       request_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	// pgx encodes map[string]any as JSONB.
	_, err := r.db.Exec(ctx, query,
		auditLog.ID,
		auditLog.ActorUser,
		auditLog.ActorRole,
		auditLog.Action,
		auditLog.EntityType,
		auditLog.EntityID,
		auditLog.Message,
		auditLog.Metadata,
		auditLog.IP,
		auditLog.UserAgent,
		auditLog.RequestID,
		auditLog.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create audit log",
			zap.Error(err),
			zap.String("action", auditLog.Action),
		)
		return fmt.Errorf("create audit log %s: %w", auditLog.Action, err)
	}

	return nil
}

func buildAuditFilter(filter AuditLogFilter) (string, []any) {
	where := ""
	args := []any{}
	add := func(clause string, value any) {
		if where == "" {
			where = " WHERE "
		} else {
			where += " AND "
		}
		args = append(args, value)
		where += clause + " = $" + strconv.Itoa(len(args))
	}

	if filter.Action != "" {
		add("action", filter.Action)
	}
	if filter.ActorUser != nil {
		add("actor_user", *filter.ActorUser)
	}
	if filter.EntityType != "" {
		add("entity_type", filter.EntityType)
	}
	if filter.EntityID != "" {
		add("entity_id", filter.EntityID)
	}

	return where, args
}

func (r *auditLogRepository) FindFiltered(ctx context.Context, filter AuditLogFilter, limit, offset int) ([]*entity.AuditLog, error) {
	where, args := buildAuditFilter(filter)

	query := `
		SELECT id, actor_user, actor_role, action, entity_type, entity_id,
		       message, metadata, ip, user_agent, request_id, created_at
		FROM audit_logs` + where + `
		ORDER BY created_at DESC
		LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)

	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list audit logs", zap.Error(err))
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	var logs []*entity.AuditLog
	for rows.Next() {
		var l entity.AuditLog
		err := rows.Scan(
			&l.ID,
			&l.ActorUser,
			&l.ActorRole,
			&l.Action,
			&l.EntityType,
			&l.EntityID,
			&l.Message,
			&l.Metadata,
			&l.IP,
			&l.UserAgent,
			&l.RequestID,
			&l.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan audit log row", zap.Error(err))
			return nil, fmt.Errorf("scan audit log row: %w", err)
		}
		logs = append(logs, &l)
	}

	return logs, nil
}

func (r *auditLogRepository) CountFiltered(ctx context.Context, filter AuditLogFilter) (int64, error) {
	where, args := buildAuditFilter(filter)

	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM audit_logs`+where, args...).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count audit logs", zap.Error(err))
		return 0, fmt.Errorf("count audit logs: %w", err)
	}

	return count, nil
}
