package domain

import "time"

type EntityType string
type ActionType string

const (
	EntityTypeUser   EntityType = "user"
	EntityTypeBet    EntityType = "bet"
	EntityTypeVenue  EntityType = "venue"
	EntityTypeGame   EntityType = "game"
	EntityTypeRating EntityType = "rating"

	ActionTypeCreate ActionType = "create"
	ActionTypeUpdate ActionType = "update"
	ActionTypeDelete ActionType = "delete"
	ActionTypeSettle ActionType = "settle"
)

type AuditLog struct {
	ID         int64      `json:"id"`
	EntityType EntityType `json:"entity_type"`
	EntityID   string     `json:"entity_id"`
	Action     ActionType `json:"action"`
	Details    string     `json:"details,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

type AuditLogRepository interface {
	Create(log *AuditLog) error
	FindByEntityID(entityType EntityType, entityID string) ([]*AuditLog, error)
	FindAll(limit, offset int) ([]*AuditLog, error)
}

type AuditLogService interface {
	LogAction(entityType EntityType, entityID string, action ActionType, details string) error
	GetEntityLogs(entityType EntityType, entityID string) ([]*AuditLog, error)
	GetAllLogs(page, pageSize int) ([]*AuditLog, error)
}
