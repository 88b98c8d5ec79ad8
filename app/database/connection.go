package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"ComandaApp/app/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return db
}

// Initialize opens the convenience store. With a postgres DSN it connects
// there; otherwise it falls back to a local SQLite file under dataPath
// (CGO-free driver). Only convenience data lives here — session prefs and
// the print job log — never business data, which the webhook backend owns.
func Initialize(databaseURL, dataPath string) error {
	var err error

	if databaseURL != "" {
		db, err = gorm.Open(postgres.Open(databaseURL), gormConfig())
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %w", err)
		}
		log.Printf("Convenience store using postgres")
	} else {
		dbPath := filepath.Join(dataPath, "comanda.db")
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
		db, err = gorm.Open(sqlite.Open(dbPath), gormConfig())
		if err != nil {
			return fmt.Errorf("failed to connect to local database: %w", err)
		}
		log.Printf("Convenience store using sqlite at %s", dbPath)
	}

	if err := runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func runMigrations() error {
	return db.AutoMigrate(
		&models.SessionPrefs{},
		&models.PrintJob{},
	)
}
