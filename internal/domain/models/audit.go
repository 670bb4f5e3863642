package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/resguardo/resguardo/pkg/constants"
)

// AuditEvent represents a single audit trail event for a mutating operation.
type AuditEvent struct {
	EventID        uuid.UUID        `json:"event_id" gorm:"type:uuid;primaryKey"`
	ActorID        uuid.UUID        `json:"actor_id" gorm:"type:uuid;index"`
	Action         constants.Action `json:"action" gorm:"size:32"`
	Entity         constants.Entity `json:"entity" gorm:"size:32;index"`
	EntityID       string           `json:"entity_id" gorm:"size:64"`
	OrganizationID *uuid.UUID       `json:"organization_id,omitempty" gorm:"type:uuid;index"`
	Result         string           `json:"result" gorm:"size:16"` // "success" or "failure"
	Message        string           `json:"message" gorm:"size:512"`
	Metadata       json.RawMessage  `json:"metadata,omitempty" gorm:"type:jsonb"`
	TraceID        string           `json:"trace_id" gorm:"size:64"`
	Timestamp      time.Time        `json:"timestamp"`
}

// NewAuditEvent creates an audit event for the given actor and operation.
func NewAuditEvent(actorID uuid.UUID, action constants.Action, entity constants.Entity, entityID string) *AuditEvent {
	return &AuditEvent{
		EventID:   uuid.New(),
		ActorID:   actorID,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Result:    "success",
		Timestamp: time.Now().UTC(),
	}
}

// WithOrganization attaches the owning organization.
func (a *AuditEvent) WithOrganization(orgID uuid.UUID) *AuditEvent {
	a.OrganizationID = &orgID
	return a
}

// WithResult overrides the result and message.
func (a *AuditEvent) WithResult(result, message string) *AuditEvent {
	a.Result = result
	a.Message = message
	return a
}

// WithTrace attaches the request trace identifier.
func (a *AuditEvent) WithTrace(traceID string) *AuditEvent {
	a.TraceID = traceID
	return a
}
