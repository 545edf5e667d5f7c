package response

import (
	"time"

	"car-rental/internal/data/entity"
)

type AuditLogResponse struct {
	ID         string         `json:"id"`
	ActorUser  string         `json:"actor_user,omitempty"`
	ActorRole  string         `json:"actor_role"`
	Action     string         `json:"action"`
	EntityType string         `json:"entity_type,omitempty"`
	EntityID   string         `json:"entity_id,omitempty"`
	Message    string         `json:"message"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	IP         string         `json:"ip,omitempty"`
	UserAgent  string         `json:"user_agent,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

func AuditLogToResponse(l *entity.AuditLog) AuditLogResponse {
	resp := AuditLogResponse{
		ID:        l.ID.String(),
		ActorRole: l.ActorRole,
		Action:    l.Action,
		Message:   l.Message,
		Metadata:  l.Metadata,
		IP:        l.IP,
		UserAgent: l.UserAgent,
		RequestID: l.RequestID,
		CreatedAt: l.CreatedAt,
	}
	if l.ActorUser != nil {
		resp.ActorUser = l.ActorUser.String()
	}
	if l.EntityType != nil {
		resp.EntityType = *l.EntityType
	}
	if l.EntityID != nil {
		resp.EntityID = *l.EntityID
	}
	return resp
}
