package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/adaezeodina/beautyhub-backend/pkg/enums"
)

// OutboxDLQ holds events the publisher gave up on after exhausting retries.
type OutboxDLQ struct {
	ID            uuid.UUID                 `gorm:"column:id;type:uuid;primaryKey"`
	EventID       uuid.UUID                 `gorm:"column:event_id;type:uuid;not null;unique"`
	EventType     enums.OutboxEventType     `gorm:"column:event_type;type:text;not null"`
	AggregateType enums.OutboxAggregateType `gorm:"column:aggregate_type;type:text;not null"`
	AggregateID   uuid.UUID                 `gorm:"column:aggregate_id;type:uuid;not null"`
	Payload       json.RawMessage           `gorm:"column:payload;type:jsonb;not null"`
	AttemptCount  int                       `gorm:"column:attempt_count;not null"`
	LastError     string                    `gorm:"column:last_error;not null"`
	FailedAt      time.Time                 `gorm:"column:failed_at;autoCreateTime"`
}

// TableName keeps the acronym table name stable under GORM pluralization.
func (OutboxDLQ) TableName() string {
	return "outbox_dlq"
}
