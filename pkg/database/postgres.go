package database

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"log"
	"net"
	"time"

	"github.com/calgorix23-creator/AttendEase-v2/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Tables lists the models in dependency order.
var Tables = []any{
	&models.User{},
	&models.Session{},
	&models.Attendance{},
	&models.Payment{},
	&models.CreditPackage{},
	&models.LedgerEntry{},
}

// Indexes that gorm tags cannot express.
var indexes = []string{
	// One session per (name, date, time); names compare trimmed and case-folded.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_class_session_slot
		ON class_sessions (lower(btrim(name)), date, "time")`,
	`CREATE INDEX IF NOT EXISTS idx_attendance_waitlist
		ON attendance (session_id, "timestamp")
		WHERE status = 'WAITLISTED'`,
}

func NewPostgresDB(dsn string, autoMigrate bool) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	if autoMigrate {
		if err := Migrate(db); err != nil {
			log.Fatalf("failed to auto-migrate: %v", err)
		}
	}

	return db
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Tables...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	for _, stmt := range indexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}

// Unavailable reports whether err means the database could not be reached,
// as opposed to the database rejecting the statement.
func Unavailable(err error) bool {
	if err == nil {
		return false
	}
	var connErr *pgconn.ConnectError
	var netErr net.Error
	return errors.As(err, &connErr) || errors.As(err, &netErr) || errors.Is(err, driver.ErrBadConn)
}
