package handler

import (
	"net/http"

	"github.com/calgorix23-creator/AttendEase-v2/internal/dto"
	"github.com/calgorix23-creator/AttendEase-v2/internal/middleware"
	"github.com/calgorix23-creator/AttendEase-v2/internal/models"
	"github.com/calgorix23-creator/AttendEase-v2/internal/service"
	"github.com/labstack/echo/v4"
)

type WalletHandler struct {
	wallet    service.WalletService
	purchases service.PurchaseService
}

func NewWalletHandler(wallet service.WalletService, purchases service.PurchaseService) *WalletHandler {
	return &WalletHandler{wallet: wallet, purchases: purchases}
}

func (h *WalletHandler) RegisterRoutes(g *echo.Group) {
	trainees := g.Group("/trainees/:id")
	trainees.GET("/wallet", h.GetWallet)
	trainees.POST("/wallet/adjustments", h.AdjustWallet, middleware.RequireRole(models.RoleAdmin))
	trainees.GET("/payments", h.ListPayments)

	g.POST("/purchases", h.Purchase, middleware.RequireRole(models.RoleTrainee))
}

func (h *WalletHandler) GetWallet(c echo.Context) error {
	wallet, err := h.wallet.Get(c.Request().Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToWalletResponse(wallet))
}

func (h *WalletHandler) AdjustWallet(c echo.Context) error {
	var req dto.AdjustWalletRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Delta == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "delta must not be zero")
	}

	user, err := h.wallet.Adjust(c.Request().Context(), middleware.ActorFrom(c), c.Param("id"), req.Delta, req.Note)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

func (h *WalletHandler) ListPayments(c echo.Context) error {
	payments, err := h.purchases.History(c.Request().Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, payments)
}

// Purchase waits for the simulated payment to settle before answering. A
// client that disconnects early does not stop the purchase.
func (h *WalletHandler) Purchase(c echo.Context) error {
	var req dto.PurchaseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.PackageID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "package_id is required")
	}

	ctx := c.Request().Context()
	pending, err := h.purchases.Purchase(ctx, middleware.ActorFrom(c), req.PackageID)
	if err != nil {
		return httpError(err)
	}

	payment, err := pending.Wait(ctx)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, payment)
}
