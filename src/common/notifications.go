package common

import (
	"acs/src/db"
	"acs/src/lib/mailer"
	"acs/src/models"
	"log"
	"time"

	"gorm.io/gorm"
)

const maxDeliveryAttempts = 5

// DispatchPendingOutbox relays outbox rows appended by lifecycle transactions
// to the mailer and records the in-app notification. Scheduled from boot;
// a failed send only bumps the attempt counter and is retried on the next
// tick, never surfacing back into the lifecycle.
func DispatchPendingOutbox() {
	db := db.GetDb()
	var events []models.OutboxEvent
	err := db.
		Model(&models.OutboxEvent{}).
		Where("status = ? AND attempts < ?", "pending", maxDeliveryAttempts).
		Order("created_at ASC").
		Limit(50).
		Find(&events).
		Error
	if err != nil {
		log.Printf("Error loading outbox events: %s\n", err.Error())
		return
	}
	for _, event := range events {
		if err := mailer.Send(event.Kind, event.Recipient, event.Payload); err != nil {
			log.Printf("Delivery failed for outbox event [%s]: %s\n", event.Code, err.Error())
			db.
				Model(&models.OutboxEvent{}).
				Where(&models.OutboxEvent{ID: event.ID}).
				Update("attempts", gorm.Expr("attempts + 1"))
			continue
		}
		now := time.Now()
		err := db.Transaction(func(tx *gorm.DB) error {
			err := tx.
				Model(&models.OutboxEvent{}).
				Where(&models.OutboxEvent{ID: event.ID}).
				Updates(map[string]any{
					"status":  "sent",
					"sent_at": &now,
				}).
				Error
			if err != nil {
				return err
			}
			payload := event.Payload
			notification := models.Notification{
				ReferenceSource: "outbox",
				ReferenceType:   string(event.Kind),
				ReferenceValue:  event.Code,
				Title:           string(event.Kind),
				ReferenceBody:   &payload,
				Recipient:       event.Recipient,
				Type:            "email",
			}
			return tx.Create(&notification).Error
		})
		if err != nil {
			log.Printf("Error finalizing outbox event [%s]: %s\n", event.Code, err.Error())
		}
	}
}
