package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/library-loan-system/internal/library"
	"github.com/iliyamo/library-loan-system/internal/model"
)

// ListStudents handles GET /v1/admin/students.
func (h *AdminHandler) ListStudents(c echo.Context) error {
	students, err := h.Svc.Students(c.Request().Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, students)
}

// CreateStudent handles POST /v1/admin/students.  The borrowed set always
// starts empty regardless of the request body.
func (h *AdminHandler) CreateStudent(c echo.Context) error {
	var body model.Student
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	st, err := h.Svc.AddStudent(c.Request().Context(), body)
	if err != nil {
		if library.IsDomain(err) {
			return domainError(c, err)
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, st)
}

// UpdateStudent handles PATCH /v1/admin/students/:id.  The borrowed set is
// not patchable; it belongs to the loan ledger.
func (h *AdminHandler) UpdateStudent(c echo.Context) error {
	id := c.Param("id")
	var patch model.StudentPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	st, err := h.Svc.UpdateStudent(c.Request().Context(), id, patch)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, st)
}

// DeleteStudent handles DELETE /v1/admin/students/:id.  Refused with 409
// while the student has an active loan.
func (h *AdminHandler) DeleteStudent(c echo.Context) error {
	if err := h.Svc.DeleteStudent(c.Request().Context(), c.Param("id")); err != nil {
		return domainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
