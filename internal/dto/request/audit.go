package request

type AuditLogListRequest struct {
	PaginatedRequest
	Action     string `json:"action"`
	ActorUser  string `json:"actor_user" validate:"omitempty,uuid4"`
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
}
