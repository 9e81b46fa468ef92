package utils

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"ojtms/database"
	"ojtms/models/ojt"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[OJT-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// CloseOverdueAssignments flips open assignments past their deadline
// to closed so late submissions stop being accepted.
func CloseOverdueAssignments(db *gorm.DB) error {
	res := db.Model(&ojt.Assignment{}).
		Where("state = ? AND deadline < ?", ojt.AssignmentOpen, time.Now()).
		Update("state", ojt.AssignmentClosed)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		logScheduler(fmt.Sprintf("Auto-closed %d overdue assignments", res.RowsAffected))
	}
	return nil
}

// InitializeSchedulers starts the background cron jobs.
func InitializeSchedulers() *cron.Cron {
	logScheduler("Initializing schedulers...")

	c := cron.New()

	// Hourly sweep for assignments past deadline
	c.AddFunc("0 * * * *", func() {
		if err := CloseOverdueAssignments(database.Database.Db); err != nil {
			logScheduler("Error closing overdue assignments: " + err.Error())
		}
	})

	c.Start()

	logScheduler("All schedulers initialized successfully")
	return c
}
