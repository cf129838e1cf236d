package service

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"

	"github.com/centime/centime-backend/internal/domain"
	"github.com/rs/zerolog/log"
)

// TransferService handles full-ledger JSON export/import and the CSV export.
type TransferService struct {
	ledger *LedgerService
}

// NewTransferService creates a new TransferService.
func NewTransferService(ledger *LedgerService) *TransferService {
	return &TransferService{ledger: ledger}
}

// ExportJSON returns the four collections plus the export instant.
func (s *TransferService) ExportJSON() domain.ExportData {
	snap := s.ledger.Snapshot()
	return domain.ExportData{
		Transactions: snap.Transactions,
		Categories:   snap.Categories,
		Rules:        snap.Rules,
		Budgets:      snap.Budgets,
		ExportDate:   nowFunc().UTC(),
	}
}

// ImportJSON performs a full replace of all four collections from a previous
// export. Payloads missing the transactions or categories keys are rejected
// before any state changes.
func (s *TransferService) ImportJSON(data []byte) error {
	var probe struct {
		Transactions *json.RawMessage `json:"transactions"`
		Categories   *json.RawMessage `json:"categories"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if probe.Transactions == nil || probe.Categories == nil {
		return fmt.Errorf("%w: export file must contain transactions and categories", domain.ErrInvalidInput)
	}

	var export domain.ExportData
	if err := json.Unmarshal(data, &export); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	snap := &domain.Snapshot{
		Transactions: export.Transactions,
		Categories:   export.Categories,
		Rules:        export.Rules,
		Budgets:      export.Budgets,
	}
	if err := s.ledger.Replace(snap); err != nil {
		return err
	}

	log.Info().
		Int("transactions", len(snap.Transactions)).
		Int("categories", len(snap.Categories)).
		Msg("JSON import replaced the ledger")
	return nil
}

// ExportCSV renders the transactions with the French bank-style header.
// encoding/csv quotes fields as needed and doubles embedded quotes.
func (s *TransferService) ExportCSV() ([]byte, error) {
	snap := s.ledger.Snapshot()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Date", "Description", "Montant", "Catégorie", "Notes"}); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for _, t := range snap.Transactions {
		name := "Non catégorisé"
		if c, ok := snap.CategoryByID(t.CategoryID); ok {
			name = c.Name
		}
		row := []string{
			t.Date.String(),
			t.Description,
			t.Amount.String(),
			name,
			t.Notes,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
