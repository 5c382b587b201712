package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/library-loan-system/internal/excel"
)

// Bulk data endpoints: spreadsheet export, import and sample downloads.  One
// workbook per collection; the upload control selects the target collection,
// there is no content-based detection.  Import replaces the collection
// wholesale with whatever rows the workbook carries.

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func sendWorkbook(c echo.Context, name string, buf *bytes.Buffer) error {
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, name+".xlsx"))
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ExportCollection handles GET /v1/admin/export/:collection and streams
// books.xlsx, students.xlsx or transactions.xlsx.
func (h *AdminHandler) ExportCollection(c echo.Context) error {
	ctx := c.Request().Context()
	name := c.Param("collection")
	var buf bytes.Buffer

	switch name {
	case "books":
		books, err := h.Svc.Books(ctx)
		if err != nil {
			return domainError(c, err)
		}
		if err := excel.WriteBooks(&buf, books); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "export failed"})
		}
	case "students":
		students, err := h.Svc.Students(ctx)
		if err != nil {
			return domainError(c, err)
		}
		if err := excel.WriteStudents(&buf, students); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "export failed"})
		}
	case "transactions":
		txs, err := h.Svc.Transactions(ctx)
		if err != nil {
			return domainError(c, err)
		}
		if err := excel.WriteTransactions(&buf, txs); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "export failed"})
		}
	default:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown collection"})
	}
	return sendWorkbook(c, name, &buf)
}

// ImportCollection handles POST /v1/admin/import/:collection with a
// multipart "file" field.  The parsed rows replace the whole collection.
func (h *AdminHandler) ImportCollection(c echo.Context) error {
	ctx := c.Request().Context()
	name := c.Param("collection")

	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file is required"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot open upload"})
	}
	defer f.Close()

	switch name {
	case "books":
		books, err := excel.ReadBooks(f)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot parse workbook"})
		}
		if err := h.Svc.SaveBooks(ctx, books); err != nil {
			return domainError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"imported": len(books)})
	case "students":
		students, err := excel.ReadStudents(f)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot parse workbook"})
		}
		if err := h.Svc.SaveStudents(ctx, students); err != nil {
			return domainError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"imported": len(students)})
	case "transactions":
		txs, err := excel.ReadTransactions(f)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot parse workbook"})
		}
		if err := h.Svc.SaveTransactions(ctx, txs); err != nil {
			return domainError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"imported": len(txs)})
	}
	return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown collection"})
}

// SampleCollection handles GET /v1/admin/samples/:collection and returns an
// example workbook showing the expected column layout.
func (h *AdminHandler) SampleCollection(c echo.Context) error {
	name := c.Param("collection")
	var buf bytes.Buffer
	var err error

	switch name {
	case "books":
		err = excel.WriteSampleBooks(&buf)
	case "students":
		err = excel.WriteSampleStudents(&buf)
	case "transactions":
		err = excel.WriteSampleTransactions(&buf)
	default:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown collection"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "sample generation failed"})
	}
	return sendWorkbook(c, name, &buf)
}
