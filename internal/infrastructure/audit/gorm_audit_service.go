// Package audit implements the AuditService contract: a GORM sink for the
// queryable trail and a Kafka producer for downstream consumers.
package audit

import (
	"context"

	"gorm.io/gorm"

	"github.com/resguardo/resguardo/internal/domain/models"
	"github.com/resguardo/resguardo/internal/domain/service"
)

// GormAuditService stores audit events in the audit_events table.
type GormAuditService struct {
	db *gorm.DB
}

// NewGormAuditService creates the GORM-backed audit sink.
func NewGormAuditService(db *gorm.DB) service.AuditService {
	return &GormAuditService{db: db}
}

// LogEvent saves an AuditEvent to the database.
func (s *GormAuditService) LogEvent(ctx context.Context, event models.AuditEvent) error {
	return s.db.WithContext(ctx).Create(&event).Error
}
