package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/calgorix23-creator/AttendEase-v2/internal/engine"
	"github.com/calgorix23-creator/AttendEase-v2/internal/middleware"
	"github.com/calgorix23-creator/AttendEase-v2/internal/models"
	"github.com/calgorix23-creator/AttendEase-v2/internal/repository"
	"github.com/calgorix23-creator/AttendEase-v2/internal/service"
	"github.com/labstack/echo/v4"
)

// --- Mock SessionService ---

type mockSessionService struct {
	createFn func(ctx context.Context, actor models.Actor, s models.Session) (*models.Session, error)
	updateFn func(ctx context.Context, actor models.Actor, s models.Session) (*models.Session, error)
	deleteFn func(ctx context.Context, actor models.Actor, id string) error
	getFn    func(ctx context.Context, id string) (*models.Session, error)
	listFn   func(ctx context.Context, filter repository.SessionFilter) ([]models.Session, error)
}

func (m *mockSessionService) Create(ctx context.Context, actor models.Actor, s models.Session) (*models.Session, error) {
	return m.createFn(ctx, actor, s)
}
func (m *mockSessionService) Update(ctx context.Context, actor models.Actor, s models.Session) (*models.Session, error) {
	return m.updateFn(ctx, actor, s)
}
func (m *mockSessionService) Delete(ctx context.Context, actor models.Actor, id string) error {
	return m.deleteFn(ctx, actor, id)
}
func (m *mockSessionService) Get(ctx context.Context, id string) (*models.Session, error) {
	return m.getFn(ctx, id)
}
func (m *mockSessionService) List(ctx context.Context, filter repository.SessionFilter) ([]models.Session, error) {
	return m.listFn(ctx, filter)
}

// --- Mock AttendanceService ---

type mockAttendanceService struct {
	toggleFn  func(ctx context.Context, actor models.Actor, sessionID, traineeID string) (engine.Result, error)
	checkInFn func(ctx context.Context, actor models.Actor, sessionID, traineeID string) (*models.Attendance, error)
	rosterFn  func(ctx context.Context, sessionID string) (*service.Roster, error)
	listFn    func(ctx context.Context, actor models.Actor, traineeID string) ([]models.Attendance, error)
}

func (m *mockAttendanceService) Toggle(ctx context.Context, actor models.Actor, sessionID, traineeID string) (engine.Result, error) {
	return m.toggleFn(ctx, actor, sessionID, traineeID)
}
func (m *mockAttendanceService) CheckIn(ctx context.Context, actor models.Actor, sessionID, traineeID string) (*models.Attendance, error) {
	return m.checkInFn(ctx, actor, sessionID, traineeID)
}
func (m *mockAttendanceService) Roster(ctx context.Context, sessionID string) (*service.Roster, error) {
	return m.rosterFn(ctx, sessionID)
}
func (m *mockAttendanceService) ListByTrainee(ctx context.Context, actor models.Actor, traineeID string) ([]models.Attendance, error) {
	return m.listFn(ctx, actor, traineeID)
}

// --- Mock WalletService ---

type mockWalletService struct {
	getFn    func(ctx context.Context, actor models.Actor, traineeID string) (*service.Wallet, error)
	adjustFn func(ctx context.Context, actor models.Actor, traineeID string, delta int, note string) (*models.User, error)
}

func (m *mockWalletService) Get(ctx context.Context, actor models.Actor, traineeID string) (*service.Wallet, error) {
	return m.getFn(ctx, actor, traineeID)
}
func (m *mockWalletService) Adjust(ctx context.Context, actor models.Actor, traineeID string, delta int, note string) (*models.User, error) {
	return m.adjustFn(ctx, actor, traineeID, delta, note)
}

// --- Mock PurchaseService ---

type mockPurchaseService struct {
	purchaseFn func(ctx context.Context, actor models.Actor, packageID string) (*service.Pending, error)
	historyFn  func(ctx context.Context, actor models.Actor, traineeID string) ([]models.Payment, error)
}

func (m *mockPurchaseService) Purchase(ctx context.Context, actor models.Actor, packageID string) (*service.Pending, error) {
	return m.purchaseFn(ctx, actor, packageID)
}
func (m *mockPurchaseService) Complete(ctx context.Context, paymentID, traineeID, packageID string) (*models.Payment, error) {
	return nil, nil
}
func (m *mockPurchaseService) History(ctx context.Context, actor models.Actor, traineeID string) ([]models.Payment, error) {
	return m.historyFn(ctx, actor, traineeID)
}

// --- Mock PackageService ---

type mockPackageService struct {
	listFn   func(ctx context.Context) ([]models.CreditPackage, error)
	createFn func(ctx context.Context, actor models.Actor, pkg models.CreditPackage) (*models.CreditPackage, error)
	updateFn func(ctx context.Context, actor models.Actor, pkg models.CreditPackage) (*models.CreditPackage, error)
}

func (m *mockPackageService) List(ctx context.Context) ([]models.CreditPackage, error) {
	return m.listFn(ctx)
}
func (m *mockPackageService) Create(ctx context.Context, actor models.Actor, pkg models.CreditPackage) (*models.CreditPackage, error) {
	return m.createFn(ctx, actor, pkg)
}
func (m *mockPackageService) Update(ctx context.Context, actor models.Actor, pkg models.CreditPackage) (*models.CreditPackage, error) {
	return m.updateFn(ctx, actor, pkg)
}
func (m *mockPackageService) EnsureDefaults(ctx context.Context) error {
	return nil
}

// --- Mock UserService / AuthService ---

type mockUserService struct {
	createFn func(ctx context.Context, actor models.Actor, u models.User) (*models.User, error)
	getFn    func(ctx context.Context, actor models.Actor, id string) (*models.User, error)
	listFn   func(ctx context.Context, actor models.Actor, role models.Role) ([]models.User, error)
}

func (m *mockUserService) Create(ctx context.Context, actor models.Actor, u models.User) (*models.User, error) {
	return m.createFn(ctx, actor, u)
}
func (m *mockUserService) Get(ctx context.Context, actor models.Actor, id string) (*models.User, error) {
	return m.getFn(ctx, actor, id)
}
func (m *mockUserService) List(ctx context.Context, actor models.Actor, role models.Role) ([]models.User, error) {
	return m.listFn(ctx, actor, role)
}

type mockAuthService struct {
	loginFn func(ctx context.Context, email, password string) (string, *models.User, error)
	resetFn func(ctx context.Context, email, phone, newPassword string) error
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	return m.loginFn(ctx, email, password)
}
func (m *mockAuthService) ResetPassword(ctx context.Context, email, phone, newPassword string) error {
	return m.resetFn(ctx, email, phone, newPassword)
}

// --- Mock Snapshotter ---

type mockSnapshotter struct {
	dumpFn    func(ctx context.Context) (*engine.State, error)
	restoreFn func(ctx context.Context, state *engine.State) error
}

func (m *mockSnapshotter) Dump(ctx context.Context) (*engine.State, error) {
	return m.dumpFn(ctx)
}
func (m *mockSnapshotter) Restore(ctx context.Context, state *engine.State) error {
	return m.restoreFn(ctx, state)
}

// --- Helpers ---

var (
	adminActor   = models.Actor{ID: "admin-1", Role: models.RoleAdmin}
	traineeActor = models.Actor{ID: "trainee-1", Role: models.RoleTrainee}
)

// newContext builds a JSON request context carrying actor and path params
// given as name/value pairs.
func newContext(method, target, body string, actor models.Actor, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var names, values []string
	for i := 0; i+1 < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)

	middleware.WithActor(c, actor)
	return c, rec
}
