package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/centime/centime-backend/internal/csvimport"
	"github.com/centime/centime-backend/internal/domain"
	"github.com/centime/centime-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// Import payloads above this size are rejected outright.
const maxImportBytes = 10 << 20

// TransferHandler handles CSV import and the export/import endpoints.
type TransferHandler struct {
	importer *service.ImportService
	transfer *service.TransferService
	ledger   *service.LedgerService
}

// NewTransferHandler creates a new TransferHandler
func NewTransferHandler(importer *service.ImportService, transfer *service.TransferService, ledger *service.LedgerService) *TransferHandler {
	return &TransferHandler{importer: importer, transfer: transfer, ledger: ledger}
}

// ImportCSVResponse reports an accepted import
type ImportCSVResponse struct {
	Imported     int                   `json:"imported"`
	Transactions []TransactionResponse `json:"transactions"`
}

// importBody returns the uploaded file when the request is multipart,
// otherwise the raw request body. Both paths are capped at maxImportBytes.
func importBody(c echo.Context) (io.ReadCloser, error) {
	file, err := c.FormFile("file")
	if err != nil {
		return io.NopCloser(io.LimitReader(c.Request().Body, maxImportBytes)), nil
	}
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	return &limitedReadCloser{Reader: io.LimitReader(f, maxImportBytes), closer: f}, nil
}

type limitedReadCloser struct {
	io.Reader
	closer io.Closer
}

func (l *limitedReadCloser) Close() error { return l.closer.Close() }

// ImportCSV handles POST /api/v1/import/csv
func (h *TransferHandler) ImportCSV(c echo.Context) error {
	body, err := importBody(c)
	if err != nil {
		return NewValidationError(c, "Unreadable upload", nil)
	}
	defer body.Close()

	txns, err := h.importer.ImportCSV(body)
	if err != nil {
		var parseErr *csvimport.ParseError
		if errors.As(err, &parseErr) {
			rows := make([]ValidationError, 0, len(parseErr.Rows))
			for _, r := range parseErr.Rows {
				rows = append(rows, ValidationError{
					Field:   fmt.Sprintf("row %d: %s", r.Row, r.Field),
					Message: r.Message,
				})
			}
			return NewParseError(c, "CSV import aborted, no rows were written", rows)
		}
		log.Error().Err(err).Msg("CSV import failed")
		return NewInternalError(c, "CSV import failed")
	}

	out := ImportCSVResponse{Imported: len(txns)}
	for _, t := range txns {
		out.Transactions = append(out.Transactions, toTransactionResponse(t))
	}
	return c.JSON(http.StatusCreated, out)
}

// ExportJSON handles GET /api/v1/export/json
func (h *TransferHandler) ExportJSON(c echo.Context) error {
	export := h.transfer.ExportJSON()
	filename := fmt.Sprintf("budget-manager-export-%s.json", export.ExportDate.Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.JSON(http.StatusOK, export)
}

// ImportJSON handles POST /api/v1/import/json, a full replace of the ledger.
func (h *TransferHandler) ImportJSON(c echo.Context) error {
	body, err := importBody(c)
	if err != nil {
		return NewValidationError(c, "Unreadable upload", nil)
	}
	defer body.Close()

	data, err := io.ReadAll(io.LimitReader(body, maxImportBytes))
	if err != nil {
		return NewValidationError(c, "Unreadable upload", nil)
	}

	if err := h.transfer.ImportJSON(data); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return NewParseError(c, err.Error(), nil)
		}
		log.Error().Err(err).Msg("JSON import failed")
		return NewInternalError(c, "JSON import failed")
	}
	return c.NoContent(http.StatusNoContent)
}

// ExportCSV handles GET /api/v1/export/csv
func (h *TransferHandler) ExportCSV(c echo.Context) error {
	data, err := h.transfer.ExportCSV()
	if err != nil {
		log.Error().Err(err).Msg("CSV export failed")
		return NewInternalError(c, "CSV export failed")
	}

	filename := fmt.Sprintf("transactions-export-%s.csv", time.Now().UTC().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", data)
}

// Reset handles DELETE /api/v1/data, clearing the ledger back to defaults.
func (h *TransferHandler) Reset(c echo.Context) error {
	if err := h.ledger.Reset(); err != nil {
		log.Error().Err(err).Msg("Reset failed")
		return NewInternalError(c, "Reset failed")
	}
	log.Info().Msg("Ledger reset to defaults")
	return c.NoContent(http.StatusNoContent)
}
