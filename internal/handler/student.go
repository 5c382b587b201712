package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/library-loan-system/internal/library"
	"github.com/iliyamo/library-loan-system/internal/middleware"
	"github.com/iliyamo/library-loan-system/internal/model"
)

// StudentHandler serves the student-facing view: browse the catalog, inspect
// the own record and loan history, and file borrow/return requests.  JWT and
// role checks have already run in middleware; the subject claim is the
// student ID.
type StudentHandler struct {
	Svc *library.Service
}

func NewStudentHandler(svc *library.Service) *StudentHandler {
	if svc == nil {
		panic("nil service passed to NewStudentHandler")
	}
	return &StudentHandler{Svc: svc}
}

// loanView is a transaction hydrated with a display title.  Dangling book
// references render as "Unknown".
type loanView struct {
	model.Transaction
	BookTitle string `json:"book_title"`
}

// meResp is the student's own record with the borrowed set parsed.
type meResp struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone"`
	BorrowedBooks []string `json:"borrowed_books"`
}

// Catalog handles GET /v1/books.  Every authenticated role may browse.
func (h *StudentHandler) Catalog(c echo.Context) error {
	books, err := h.Svc.Books(c.Request().Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, books)
}

// Me handles GET /v1/me and returns the caller's own student record.
func (h *StudentHandler) Me(c echo.Context) error {
	studentID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	st, err := h.Svc.StudentByID(c.Request().Context(), studentID)
	if err != nil {
		return domainError(c, err)
	}
	ids := st.BorrowedBookIDs()
	if ids == nil {
		ids = []string{}
	}
	return c.JSON(http.StatusOK, meResp{
		ID: st.ID, Name: st.Name, Email: st.Email, Phone: st.Phone,
		BorrowedBooks: ids,
	})
}

// MyLoans handles GET /v1/me/loans: the caller's transactions, most recent
// first, with book titles resolved for display.
func (h *StudentHandler) MyLoans(c echo.Context) error {
	studentID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	txs, err := h.Svc.TransactionsForStudent(ctx, studentID)
	if err != nil {
		return domainError(c, err)
	}
	views := make([]loanView, 0, len(txs))
	for _, tx := range txs {
		views = append(views, loanView{Transaction: tx, BookTitle: h.Svc.BookTitle(ctx, tx.BookID)})
	}
	return c.JSON(http.StatusOK, views)
}

// RequestLoan handles POST /v1/loans.  The body selects the kind of request:
// "issue" files a borrow request, "return" asks to give an issued copy back.
// Conflicting or unmatched requests come back as 409/404.
func (h *StudentHandler) RequestLoan(c echo.Context) error {
	studentID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		BookID string `json:"book_id"`
		Kind   string `json:"kind"` // issue | return
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.BookID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "book_id is required"})
	}

	ctx := c.Request().Context()
	switch strings.ToLower(strings.TrimSpace(body.Kind)) {
	case "issue":
		tx, err := h.Svc.RequestBorrow(ctx, studentID, body.BookID)
		if err != nil {
			return domainError(c, err)
		}
		return c.JSON(http.StatusCreated, tx)
	case "return":
		tx, err := h.Svc.RequestReturn(ctx, studentID, body.BookID)
		if err != nil {
			return domainError(c, err)
		}
		return c.JSON(http.StatusOK, tx)
	}
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "kind must be issue or return"})
}
