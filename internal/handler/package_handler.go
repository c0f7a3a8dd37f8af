package handler

import (
	"net/http"

	"github.com/calgorix23-creator/AttendEase-v2/internal/dto"
	"github.com/calgorix23-creator/AttendEase-v2/internal/middleware"
	"github.com/calgorix23-creator/AttendEase-v2/internal/models"
	"github.com/calgorix23-creator/AttendEase-v2/internal/service"
	"github.com/labstack/echo/v4"
)

type PackageHandler struct {
	packages service.PackageService
}

func NewPackageHandler(packages service.PackageService) *PackageHandler {
	return &PackageHandler{packages: packages}
}

func (h *PackageHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/packages", h.ListPackages)
	g.POST("/packages", h.CreatePackage, middleware.RequireRole(models.RoleAdmin))
	g.PUT("/packages/:id", h.UpdatePackage, middleware.RequireRole(models.RoleAdmin))
}

func (h *PackageHandler) ListPackages(c echo.Context) error {
	pkgs, err := h.packages.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pkgs)
}

func (h *PackageHandler) CreatePackage(c echo.Context) error {
	var req dto.PackageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	pkg, err := h.packages.Create(c.Request().Context(), middleware.ActorFrom(c), req.ToModel(""))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, pkg)
}

func (h *PackageHandler) UpdatePackage(c echo.Context) error {
	var req dto.PackageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	pkg, err := h.packages.Update(c.Request().Context(), middleware.ActorFrom(c), req.ToModel(c.Param("id")))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pkg)
}
