package service

import (
	"io"

	"github.com/centime/centime-backend/internal/csvimport"
	"github.com/centime/centime-backend/internal/domain"
	"github.com/rs/zerolog/log"
)

// ImportService runs the CSV ingestion pipeline against the live snapshot.
type ImportService struct {
	ledger *LedgerService
}

// NewImportService creates a new ImportService.
func NewImportService(ledger *LedgerService) *ImportService {
	return &ImportService{ledger: ledger}
}

// ImportCSV parses a bank CSV export, classifies each row with the current
// rules, appends the batch to the snapshot and persists it. The import is a
// single-shot operation: it either completes with the imported sequence or
// fails with a *csvimport.ParseError and nothing is appended.
func (s *ImportService) ImportCSV(r io.Reader) ([]domain.Transaction, error) {
	txns, err := csvimport.Parse(r, s.ledger.Rules(), nowFunc())
	if err != nil {
		return nil, err
	}
	if err := s.ledger.AppendTransactions(txns); err != nil {
		return nil, err
	}

	log.Info().Int("count", len(txns)).Msg("CSV import completed")
	return txns, nil
}
