package middleware

import (
	"net/http"

	"github.com/calgorix23-creator/AttendEase-v2/internal/engine"
	"github.com/labstack/echo/v4"
)

type errorBody struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Code    engine.Code `json:"code,omitempty"`
}

func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	msg := err.Error()
	code := engine.CodeOf(err)

	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		}
		if he.Internal != nil {
			code = engine.CodeOf(he.Internal)
		}
	}

	_ = c.JSON(status, errorBody{Message: msg, Code: code})
}
