package configs

import (
	"log"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tapan2502/Ride-Sharing-Assingement/entity"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

// ConnectionDB retries with backoff instead of dying on the first failure;
// after maxAttempts the process exits.
func ConnectionDB(source string) {
	const maxAttempts = 5

	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err = gorm.Open(sqlite.Open(source), &gorm.Config{})
		if err == nil {
			return
		}
		log.Printf("db connect attempt %d/%d failed: %v", attempt, maxAttempts, err)
		time.Sleep(5 * time.Second)
	}
	log.Fatalf("could not connect to database: %v", err)
}

func SetupDatabase() {
	// Migrate the schema
	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Ride{},
		&entity.PaymentHistory{},
	); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}
}
