//go:build integration

package snapshot

import (
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/calgorix23-creator/AttendEase-v2/internal/engine"
	"github.com/calgorix23-creator/AttendEase-v2/internal/models"
	"github.com/calgorix23-creator/AttendEase-v2/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		getEnv("TEST_DB_HOST", "localhost"),
		getEnv("TEST_DB_PORT", "5434"),
		getEnv("TEST_DB_USER", "postgres"),
		getEnv("TEST_DB_PASSWORD", "postgres"),
		getEnv("TEST_DB_NAME", "attendease_test_db"),
	)

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect to test database: %v", err)
	}
	if err := database.Migrate(testDB); err != nil {
		log.Fatalf("failed to migrate test database: %v", err)
	}

	os.Exit(m.Run())
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestRestoreThenDump(t *testing.T) {
	store := NewStore(testDB)

	require.NoError(t, store.Restore(t.Context(), sampleState()))

	empty, err := store.Empty(t.Context())
	require.NoError(t, err)
	assert.False(t, empty)

	dumped, err := store.Dump(t.Context())
	require.NoError(t, err)
	assert.Len(t, dumped.Users, 2)
	assert.Len(t, dumped.Sessions, 1)
	require.Len(t, dumped.Attendance, 1)
	assert.Equal(t, models.StatusBooked, dumped.Attendance[0].Status)
	assert.Len(t, dumped.Payments, 1)

	var ledger []models.LedgerEntry
	require.NoError(t, testDB.Find(&ledger).Error)
	require.Len(t, ledger, 1)
	assert.Equal(t, 4, ledger[0].Balance)
}

func TestRestoreRejectsInvalidDocument(t *testing.T) {
	store := NewStore(testDB)
	require.NoError(t, store.Restore(t.Context(), sampleState()))

	bad := sampleState()
	bad.Attendance = append(bad.Attendance, bad.Attendance[0])
	bad.Attendance[1].ID = "a2"

	err := store.Restore(t.Context(), bad)
	assert.ErrorIs(t, err, engine.ErrInvalidInput)

	dumped, err := store.Dump(t.Context())
	require.NoError(t, err)
	assert.Len(t, dumped.Attendance, 1)
}
