//go:build integration

package service_test

import (
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/calgorix23-creator/AttendEase-v2/internal/engine"
	"github.com/calgorix23-creator/AttendEase-v2/internal/models"
	"github.com/calgorix23-creator/AttendEase-v2/internal/repository"
	"github.com/calgorix23-creator/AttendEase-v2/internal/service"
	"github.com/calgorix23-creator/AttendEase-v2/pkg/database"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

var dropOrder = []string{"ledger_entries", "credit_packages", "payments", "attendance", "class_sessions", "users"}

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

	dropTables()
	if err := database.Migrate(testDB); err != nil {
		log.Fatalf("failed to migrate test database: %v", err)
	}

	code := m.Run()

	dropTables()
	os.Exit(code)
}

func dropTables() {
	for _, table := range dropOrder {
		testDB.Exec("DROP TABLE IF EXISTS " + table + " CASCADE")
	}
}

func cleanTables() {
	for _, table := range dropOrder {
		testDB.Exec("DELETE FROM " + table)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

type stack struct {
	sessions   service.SessionService
	attendance service.AttendanceService
	wallet     service.WalletService
	purchases  service.PurchaseService
	packages   service.PackageService
}

// newStack wires the services against testDB. Sessions created by
// createSession start a day after now, so cancellations are open.
func newStack(now time.Time, refundOnDelete bool) stack {
	clock := service.Clock(func() time.Time { return now })
	policy := engine.Policy{Location: time.UTC, Notice: engine.DefaultNotice}

	sessionRepo := repository.NewSessionRepository(testDB)
	attendanceRepo := repository.NewAttendanceRepository(testDB)
	userRepo := repository.NewUserRepository(testDB)
	ledgerRepo := repository.NewLedgerRepository(testDB)
	paymentRepo := repository.NewPaymentRepository(testDB)
	packageRepo := repository.NewPackageRepository(testDB)

	return stack{
		sessions:   service.NewSessionService(sessionRepo, attendanceRepo, userRepo, ledgerRepo, refundOnDelete, nil, clock),
		attendance: service.NewAttendanceService(sessionRepo, attendanceRepo, userRepo, ledgerRepo, policy, nil, clock),
		wallet:     service.NewWalletService(userRepo, ledgerRepo, nil, clock),
		purchases:  service.NewPurchaseService(paymentRepo, packageRepo, userRepo, ledgerRepo, 10*time.Millisecond, nil, clock),
		packages:   service.NewPackageService(packageRepo),
	}
}

func newPurchaseService(delay time.Duration) service.PurchaseService {
	return service.NewPurchaseService(
		repository.NewPaymentRepository(testDB),
		repository.NewPackageRepository(testDB),
		repository.NewUserRepository(testDB),
		repository.NewLedgerRepository(testDB),
		delay, nil, nil,
	)
}

var admin = models.Actor{ID: "admin-1", Role: models.RoleAdmin}

func createTrainee(t *testing.T, name string, credits int) *models.User {
	t.Helper()
	user := &models.User{
		Name:     name,
		Email:    name + "@example.com",
		Role:     models.RoleTrainee,
		Password: "secret",
		Credits:  credits,
	}
	require.NoError(t, testDB.Create(user).Error)
	return user
}

func createSession(t *testing.T, s stack, name string, start time.Time, capacity int) *models.Session {
	t.Helper()
	session, err := s.sessions.Create(t.Context(), admin, models.Session{
		Name:        name,
		Date:        start.UTC().Format(engine.DateLayout),
		Time:        start.UTC().Format(engine.TimeLayout),
		MaxCapacity: capacity,
	})
	require.NoError(t, err)
	return session
}

func balance(t *testing.T, id string) int {
	t.Helper()
	var user models.User
	require.NoError(t, testDB.First(&user, "id = ?", id).Error)
	return user.Credits
}
