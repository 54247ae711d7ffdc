package utils

import (
	"acs/src/models"
	"acs/src/types"

	"gorm.io/gorm"
)

// AppendOutboxEvent records a notification inside the caller's transaction.
// Delivery happens later from the scheduler relay, so a down mailer can never
// fail the lifecycle write that produced the event.
//
// The sequence number is derived from a count of the parent's existing
// events, so concurrent appenders for the same parent are serialized on a
// transaction-scoped advisory lock first. Without it two transactions would
// compute the same sequence and one lifecycle write would abort on the
// code's unique index.
func AppendOutboxEvent(tx *gorm.DB, kind types.NotificationKind, recipient string, parentCode string, payload types.JSONB) error {
	if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", parentCode).Error; err != nil {
		return err
	}
	var seq int64
	err := tx.
		Model(&models.OutboxEvent{}).
		Where("code LIKE ?", parentCode+"-email-%").
		Count(&seq).
		Error
	if err != nil {
		return err
	}
	event := models.OutboxEvent{
		Code:      EmailSequenceCode(parentCode, int(seq)+1),
		Kind:      kind,
		Recipient: recipient,
		Payload:   payload,
		Status:    "pending",
	}
	return tx.Create(&event).Error
}
