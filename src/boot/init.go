package boot

import (
	"acs/src/common"
	"acs/src/db"
	"acs/src/lib"
	"acs/src/models"
	"acs/src/utils"
	"log"
	"time"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.QuoteRequest{},
		&models.Quote{},
		&models.Booking{},
		&models.Passenger{},
		&models.Invoice{},
		&models.Payment{},
		&models.Rating{},
		&models.Notification{},
		&models.OutboxEvent{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

// InitScheduler wires the two periodic jobs: the stale-request sweep and the
// notification outbox relay.
func InitScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return
	}
	if _, err := lib.CreateCronJob(utils.ExpireStaleRequests, 1*time.Minute); err != nil {
		log.Printf("Error scheduling request expiry sweep: %s\n", err.Error())
	}
	if _, err := lib.CreateCronJob(common.DispatchPendingOutbox, 15*time.Second); err != nil {
		log.Printf("Error scheduling outbox relay: %s\n", err.Error())
	}
	log.Println("Jobs in queue:", len(sched.Jobs()))
	sched.Start()
}

func StopScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("Error retrieving Scheduler. Check logs for info")
		return
	}
	if err := sched.Shutdown(); err != nil {
		log.Println("An error has occurred while stopping Scheduler. Check logs for info")
	}
}
