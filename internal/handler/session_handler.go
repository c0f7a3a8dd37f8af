package handler

import (
	"net/http"

	"github.com/calgorix23-creator/AttendEase-v2/internal/dto"
	"github.com/calgorix23-creator/AttendEase-v2/internal/middleware"
	"github.com/calgorix23-creator/AttendEase-v2/internal/repository"
	"github.com/calgorix23-creator/AttendEase-v2/internal/service"
	"github.com/labstack/echo/v4"
)

type SessionHandler struct {
	sessions   service.SessionService
	attendance service.AttendanceService
}

func NewSessionHandler(sessions service.SessionService, attendance service.AttendanceService) *SessionHandler {
	return &SessionHandler{sessions: sessions, attendance: attendance}
}

// RegisterRoutes expects g to be authenticated already.
func (h *SessionHandler) RegisterRoutes(g *echo.Group) {
	sessions := g.Group("/sessions")
	sessions.GET("", h.ListSessions)
	sessions.POST("", h.CreateSession, middleware.RequireStaff())
	sessions.GET("/:id", h.GetSession)
	sessions.PUT("/:id", h.UpdateSession, middleware.RequireStaff())
	sessions.DELETE("/:id", h.DeleteSession, middleware.RequireStaff())

	sessions.GET("/:id/attendance", h.GetRoster)
	sessions.POST("/:id/attendance/toggle", h.ToggleAttendance)
	sessions.POST("/:id/attendance/:traineeId/check-in", h.CheckIn, middleware.RequireStaff())

	g.GET("/trainees/:id/attendance", h.ListTraineeAttendance)
}

func (h *SessionHandler) ListSessions(c echo.Context) error {
	sessions, err := h.sessions.List(c.Request().Context(), repository.SessionFilter{
		TrainerID: c.QueryParam("trainer_id"),
		From:      c.QueryParam("from"),
		To:        c.QueryParam("to"),
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, sessions)
}

func (h *SessionHandler) GetSession(c echo.Context) error {
	session, err := h.sessions.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, session)
}

func (h *SessionHandler) CreateSession(c echo.Context) error {
	var req dto.SessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	session, err := h.sessions.Create(c.Request().Context(), middleware.ActorFrom(c), req.ToModel(""))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, session)
}

func (h *SessionHandler) UpdateSession(c echo.Context) error {
	var req dto.SessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	session, err := h.sessions.Update(c.Request().Context(), middleware.ActorFrom(c), req.ToModel(c.Param("id")))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, session)
}

func (h *SessionHandler) DeleteSession(c echo.Context) error {
	if err := h.sessions.Delete(c.Request().Context(), middleware.ActorFrom(c), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *SessionHandler) GetRoster(c echo.Context) error {
	roster, err := h.attendance.Roster(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToRosterResponse(roster))
}

// ToggleAttendance books or withdraws a trainee. A trainee without a body
// toggles their own registration.
func (h *SessionHandler) ToggleAttendance(c echo.Context) error {
	var req dto.ToggleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	actor := middleware.ActorFrom(c)
	traineeID := req.TraineeID
	if traineeID == "" {
		traineeID = actor.ID
	}

	result, err := h.attendance.Toggle(c.Request().Context(), actor, c.Param("id"), traineeID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *SessionHandler) CheckIn(c echo.Context) error {
	record, err := h.attendance.CheckIn(c.Request().Context(), middleware.ActorFrom(c), c.Param("id"), c.Param("traineeId"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, record)
}

func (h *SessionHandler) ListTraineeAttendance(c echo.Context) error {
	records, err := h.attendance.ListByTrainee(c.Request().Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, records)
}
