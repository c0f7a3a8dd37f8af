package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/calgorix23-creator/AttendEase-v2/internal/auth"
	"github.com/calgorix23-creator/AttendEase-v2/internal/engine"
	"github.com/calgorix23-creator/AttendEase-v2/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
		wantCode   string
	}{
		{
			name:       "http error with rule violation",
			err:        echo.NewHTTPError(http.StatusConflict, engine.ErrDuplicateSession.Message).SetInternal(engine.ErrDuplicateSession),
			wantStatus: http.StatusConflict,
			wantMsg:    engine.ErrDuplicateSession.Message,
			wantCode:   string(engine.CodeDuplicateSession),
		},
		{
			name:       "plain http error",
			err:        echo.NewHTTPError(http.StatusBadRequest, "invalid request body"),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "invalid request body",
		},
		{
			name:       "unexpected error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			ErrorHandler(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.wantMsg, body["message"])
			if tt.wantCode == "" {
				assert.NotContains(t, body, "code")
			} else {
				assert.Equal(t, tt.wantCode, body["code"])
			}
		})
	}
}

func newAuthServer(issuer *auth.TokenIssuer, mws ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler
	mws = append([]echo.MiddlewareFunc{Authenticate(issuer)}, mws...)
	e.GET("/whoami", func(c echo.Context) error {
		actor := ActorFrom(c)
		return c.JSON(http.StatusOK, map[string]string{"id": actor.ID, "role": string(actor.Role)})
	}, mws...)
	return e
}

func TestAuthenticate(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	token, err := issuer.Issue(&models.User{ID: "u1", Role: models.RoleTrainee})
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "valid token", header: "Bearer " + token, wantStatus: http.StatusOK},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + token, wantStatus: http.StatusUnauthorized},
		{name: "tampered token", header: "Bearer " + token + "x", wantStatus: http.StatusUnauthorized},
	}

	e := newAuthServer(issuer)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				body := decodeError(t, rec)
				assert.Equal(t, "u1", body["id"])
				assert.Equal(t, "TRAINEE", body["role"])
			}
		})
	}
}

func TestRequireStaff(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	e := newAuthServer(issuer, RequireStaff())

	tests := []struct {
		role       models.Role
		wantStatus int
	}{
		{role: models.RoleAdmin, wantStatus: http.StatusOK},
		{role: models.RoleTrainer, wantStatus: http.StatusOK},
		{role: models.RoleTrainee, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			token, err := issuer.Issue(&models.User{ID: "u", Role: tt.role})
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestActorFromUnauthenticated(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Equal(t, models.Actor{}, ActorFrom(c))

	WithActor(c, models.Actor{ID: "a", Role: models.RoleAdmin})
	assert.Equal(t, "a", ActorFrom(c).ID)
}
