package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/library-loan-system/internal/library"
	"github.com/iliyamo/library-loan-system/internal/model"
)

// AdminHandler serves the administrator view: catalog and roster management,
// loan decisions and bulk import/export.  Role enforcement happens in
// middleware; every method here may assume an ADMIN caller.
type AdminHandler struct {
	Svc *library.Service
}

func NewAdminHandler(svc *library.Service) *AdminHandler {
	if svc == nil {
		panic("nil service passed to NewAdminHandler")
	}
	return &AdminHandler{Svc: svc}
}

// ListBooks handles GET /v1/admin/books.
func (h *AdminHandler) ListBooks(c echo.Context) error {
	books, err := h.Svc.Books(c.Request().Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, books)
}

// CreateBook handles POST /v1/admin/books.  The ID is assigned server-side.
func (h *AdminHandler) CreateBook(c echo.Context) error {
	var body model.Book
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	book, err := h.Svc.AddBook(c.Request().Context(), body)
	if err != nil {
		if library.IsDomain(err) {
			return domainError(c, err)
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, book)
}

// UpdateBook handles PATCH /v1/admin/books/:id with a partial body; absent
// fields keep their stored values.
func (h *AdminHandler) UpdateBook(c echo.Context) error {
	id := c.Param("id")
	var patch model.BookPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	book, err := h.Svc.UpdateBook(c.Request().Context(), id, patch)
	if err != nil {
		if library.IsDomain(err) {
			return domainError(c, err)
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, book)
}

// DeleteBook handles DELETE /v1/admin/books/:id.  Deletion is refused with
// 409 while an active loan references the book.
func (h *AdminHandler) DeleteBook(c echo.Context) error {
	if err := h.Svc.DeleteBook(c.Request().Context(), c.Param("id")); err != nil {
		return domainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
