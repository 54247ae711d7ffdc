package models

import (
	"acs/src/types"
	"time"

	"github.com/google/uuid"
)

// OutboxEvent is appended in the same transaction as the lifecycle write that
// produced it. A scheduler job relays pending rows to the mailer so that a
// slow or failing send never blocks the state transition.
type OutboxEvent struct {
	ID   uuid.UUID `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`
	Code string    `gorm:"uniqueIndex" json:"code,omitempty"`

	Kind      types.NotificationKind `json:"kind"`
	Recipient string                 `json:"recipient"`
	Payload   types.JSONB            `gorm:"type:jsonb" json:"payload"`

	Status   string     `gorm:"default:'pending'" json:"status"`
	Attempts int        `json:"attempts"`
	SentAt   *time.Time `json:"sent_at,omitempty"`

	types.Timestamps
}
