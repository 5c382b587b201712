package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/library-loan-system/internal/library"
)

// domainError translates a core failure into the JSON error response the
// teacher-facing surfaces expect.  Every domain error is a rejected user
// action with an explanatory message; nothing here is fatal.
func domainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, library.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, library.ErrUnavailable):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, library.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage error"})
	}
}
