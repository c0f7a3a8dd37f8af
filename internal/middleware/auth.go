package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/calgorix23-creator/AttendEase-v2/internal/auth"
	"github.com/calgorix23-creator/AttendEase-v2/internal/models"
	"github.com/labstack/echo/v4"
)

const actorKey = "actor"

type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Authenticate requires a valid bearer token and stores the caller's actor on
// the context.
func Authenticate(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token").SetInternal(err)
			}

			c.Set(actorKey, claims.Actor())
			return next(c)
		}
	}
}

// RequireRole lets the request through only for the given roles. It must run
// after Authenticate.
func RequireRole(roles ...models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !slices.Contains(roles, ActorFrom(c).Role) {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
			}
			return next(c)
		}
	}
}

func RequireStaff() echo.MiddlewareFunc {
	return RequireRole(models.RoleAdmin, models.RoleTrainer)
}

// ActorFrom returns the authenticated actor, or the zero Actor when the route
// is not authenticated.
func ActorFrom(c echo.Context) models.Actor {
	actor, _ := c.Get(actorKey).(models.Actor)
	return actor
}

// WithActor stores actor on c the way Authenticate does.
func WithActor(c echo.Context, actor models.Actor) {
	c.Set(actorKey, actor)
}
