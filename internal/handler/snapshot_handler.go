package handler

import (
	"context"
	"net/http"

	"github.com/calgorix23-creator/AttendEase-v2/internal/engine"
	"github.com/calgorix23-creator/AttendEase-v2/internal/middleware"
	"github.com/calgorix23-creator/AttendEase-v2/internal/models"
	"github.com/labstack/echo/v4"
)

type Snapshotter interface {
	Dump(ctx context.Context) (*engine.State, error)
	Restore(ctx context.Context, state *engine.State) error
}

type SnapshotHandler struct {
	store Snapshotter
}

func NewSnapshotHandler(store Snapshotter) *SnapshotHandler {
	return &SnapshotHandler{store: store}
}

func (h *SnapshotHandler) RegisterRoutes(g *echo.Group) {
	admin := middleware.RequireRole(models.RoleAdmin)
	g.GET("/data", h.Export, admin)
	g.PUT("/data", h.Import, admin)
}

func (h *SnapshotHandler) Export(c echo.Context) error {
	state, err := h.store.Dump(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, state)
}

// Import replaces everything with the posted document once it validates.
func (h *SnapshotHandler) Import(c echo.Context) error {
	var state engine.State
	if err := c.Bind(&state); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid snapshot document")
	}
	if err := h.store.Restore(c.Request().Context(), &state); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
