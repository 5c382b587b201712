package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/library-loan-system/internal/library"
	"github.com/iliyamo/library-loan-system/internal/model"
	"github.com/iliyamo/library-loan-system/internal/queue"
	queue_publisher "github.com/iliyamo/library-loan-system/internal/service"
)

// EventsEnabled gates the loan.decided feed.  Set from config in main; tests
// leave it off.
var EventsEnabled bool

// adminLoanView hydrates a transaction with student and book display names
// for the admin list; dangling references render as "Unknown".
type adminLoanView struct {
	model.Transaction
	StudentName string `json:"student_name"`
	BookTitle   string `json:"book_title"`
}

// ListLoans handles GET /v1/admin/loans: the full history, most recent
// first.
func (h *AdminHandler) ListLoans(c echo.Context) error {
	ctx := c.Request().Context()
	txs, err := h.Svc.Transactions(ctx)
	if err != nil {
		return domainError(c, err)
	}
	views := make([]adminLoanView, 0, len(txs))
	for _, tx := range txs {
		views = append(views, adminLoanView{
			Transaction: tx,
			StudentName: h.Svc.StudentName(ctx, tx.StudentID),
			BookTitle:   h.Svc.BookTitle(ctx, tx.BookID),
		})
	}
	return c.JSON(http.StatusOK, views)
}

// DecideLoan handles POST /v1/admin/loans/:id/decision with body
// {"action":"approve"|"reject"}.  An unknown transaction ID and a
// transaction no longer in an actionable state are treated as success, so
// double clicks are harmless.  Approving a borrow against an empty shelf is
// a 409 and leaves the request pending.
func (h *AdminHandler) DecideLoan(c echo.Context) error {
	txID := c.Param("id")
	var body struct {
		Action string `json:"action"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	action := strings.ToLower(strings.TrimSpace(body.Action))
	if action != library.ActionApprove && action != library.ActionReject {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "action must be approve or reject"})
	}

	ctx := c.Request().Context()
	tx, err := h.Svc.Decide(ctx, txID, action)
	if err != nil {
		return domainError(c, err)
	}
	if tx == nil {
		// Unknown ID or non-actionable state: deliberate no-op.
		return c.JSON(http.StatusOK, echo.Map{"decided": false})
	}

	if EventsEnabled {
		ev := queue.LoanDecidedEvent{
			TransactionID: tx.ID,
			StudentID:     tx.StudentID,
			StudentName:   h.Svc.StudentName(ctx, tx.StudentID),
			BookID:        tx.BookID,
			BookTitle:     h.Svc.BookTitle(ctx, tx.BookID),
			Action:        action,
			Status:        string(tx.Status),
			DecidedAt:     time.Now().UTC().Format(time.RFC3339),
		}
		// Best effort; a broker outage must not fail the decision.  The
		// request context ends with the response, so publish off it.
		go func() { _ = queue_publisher.PublishLoanDecided(context.Background(), ev) }()
	}

	return c.JSON(http.StatusOK, echo.Map{"decided": true, "transaction": tx})
}
