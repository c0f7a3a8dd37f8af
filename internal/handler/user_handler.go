package handler

import (
	"net/http"

	"github.com/calgorix23-creator/AttendEase-v2/internal/dto"
	"github.com/calgorix23-creator/AttendEase-v2/internal/middleware"
	"github.com/calgorix23-creator/AttendEase-v2/internal/models"
	"github.com/calgorix23-creator/AttendEase-v2/internal/service"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	users service.UserService
	auth  service.AuthService
}

func NewUserHandler(users service.UserService, auth service.AuthService) *UserHandler {
	return &UserHandler{users: users, auth: auth}
}

// RegisterPublicRoutes mounts the endpoints reachable without a token.
func (h *UserHandler) RegisterPublicRoutes(g *echo.Group) {
	g.POST("/auth/login", h.Login)
	g.POST("/auth/reset-password", h.ResetPassword)
}

func (h *UserHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/me", h.Me)
	g.GET("/users", h.ListUsers, middleware.RequireStaff())
	g.POST("/users", h.CreateUser, middleware.RequireRole(models.RoleAdmin))
}

func (h *UserHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	token, user, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.LoginResponse{Token: token, User: dto.ToUserResponse(user)})
}

func (h *UserHandler) ResetPassword(c echo.Context) error {
	var req dto.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.auth.ResetPassword(c.Request().Context(), req.Email, req.Phone, req.NewPassword); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Password updated."})
}

func (h *UserHandler) Me(c echo.Context) error {
	actor := middleware.ActorFrom(c)
	user, err := h.users.Get(c.Request().Context(), actor, actor.ID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.users.List(c.Request().Context(), middleware.ActorFrom(c), models.Role(c.QueryParam("role")))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToUserResponses(users))
}

func (h *UserHandler) CreateUser(c echo.Context) error {
	var req dto.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, err := h.users.Create(c.Request().Context(), middleware.ActorFrom(c), req.ToModel())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}
