// Package auditrepo appends audit records and answers the one question the core asks of
// them: when was an order delivered.
package auditrepo

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AuditRecordDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Action     string     `gorm:"index:audit_records_target_idx,priority:3"`
	ActorID    *uuid.UUID `gorm:"type:uuid"`
	TargetType string     `gorm:"index:audit_records_target_idx,priority:1"`
	TargetID   uuid.UUID  `gorm:"type:uuid;index:audit_records_target_idx,priority:2"`
	Details    datatypes.JSONMap
	CreatedAt  time.Time
}

func (AuditRecordDTO) TableName() string {
	return "audit_records"
}

type deliveredRow struct {
	TargetID    uuid.UUID
	DeliveredAt time.Time
}

// GormAuditLog implements ports.AuditLog.
type GormAuditLog struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormAuditLog(db *gorm.DB) *GormAuditLog {
	return &GormAuditLog{db: db, now: time.Now}
}

func (l *GormAuditLog) Record(ctx context.Context, record ports.AuditRecord) error {
	if record.Action == "" {
		return errs.NewValueIsRequiredError("action")
	}
	if record.TargetType == "" {
		return errs.NewValueIsRequiredError("target type")
	}
	if err := record.TargetID.Validate(); err != nil {
		return err
	}

	var actorID *uuid.UUID
	if record.ActorID != nil {
		raw := record.ActorID.Bytes()
		actorID = &raw
	}

	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = l.now()
	}

	details := datatypes.JSONMap(record.Details)
	if details == nil {
		details = datatypes.JSONMap{}
	}

	dto := AuditRecordDTO{
		ID:         uuid.New(),
		Action:     string(record.Action),
		ActorID:    actorID,
		TargetType: record.TargetType,
		TargetID:   record.TargetID.Bytes(),
		Details:    details,
		CreatedAt:  createdAt.UTC(),
	}

	return l.db.WithContext(ctx).Create(&dto).Error
}

func (l *GormAuditLog) DeliveredAt(ctx context.Context, orderIDs []kernel.UUID) (map[kernel.UUID]time.Time, error) {
	delivered := make(map[kernel.UUID]time.Time, len(orderIDs))
	if len(orderIDs) == 0 {
		return delivered, nil
	}

	raw := make([]uuid.UUID, 0, len(orderIDs))
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var rows []deliveredRow
	err := l.db.WithContext(ctx).
		Model(&AuditRecordDTO{}).
		Select("target_id, MAX(created_at) AS delivered_at").
		Where("target_type = ? AND action = ? AND target_id IN ?",
			ports.AuditTargetOrder, string(ports.AuditOrderDelivered), raw).
		Group("target_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		id, err := kernel.UUIDFromBytes(row.TargetID[:])
		if err != nil {
			return nil, err
		}
		delivered[id] = row.DeliveredAt.UTC()
	}

	return delivered, nil
}
