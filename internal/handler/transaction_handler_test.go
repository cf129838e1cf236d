package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/centime/centime-backend/internal/service"
	"github.com/centime/centime-backend/internal/testutil"
	"github.com/labstack/echo/v4"
)

// newTestLedger seeds a ledger around the current instant so the
// month-scoped views see the fixture data.
func newTestLedger(t *testing.T) *service.LedgerService {
	t.Helper()
	store := testutil.SeededStore(t, testutil.SampleSnapshot(time.Now()))
	svc, err := service.NewLedgerService(store)
	if err != nil {
		t.Fatalf("NewLedgerService returned error: %v", err)
	}
	return svc
}

func jsonRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	return req
}

func TestGetTransactions_SortedNewestFirst(t *testing.T) {
	e := echo.New()
	handler := NewTransactionHandler(newTestLedger(t))

	req := jsonRequest(http.MethodGet, "/api/v1/transactions", "")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetTransactions(c); err != nil {
		t.Fatalf("GetTransactions returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var out []TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(out) != 5 {
		t.Fatalf("returned %d transactions, want 5", len(out))
	}
	for i := 1; i < len(out); i++ {
		if out[i-1].Date < out[i].Date {
			t.Errorf("transactions not sorted newest first: %s before %s", out[i-1].Date, out[i].Date)
		}
	}
}

func TestCreateTransaction_Success(t *testing.T) {
	e := echo.New()
	handler := NewTransactionHandler(newTestLedger(t))

	req := jsonRequest(http.MethodPost, "/api/v1/transactions",
		`{"date": "2024-06-20", "amount": "-15.50", "description": "PHARMACIE", "category": 5}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("CreateTransaction returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var out TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if out.ID == "" {
		t.Error("response missing id")
	}
	if out.Amount != "-15.50" {
		t.Errorf("amount = %q, want -15.50", out.Amount)
	}
	if out.Category != 5 {
		t.Errorf("category = %d, want 5", out.Category)
	}
}

func TestCreateTransaction_RuleClassification(t *testing.T) {
	e := echo.New()
	handler := NewTransactionHandler(newTestLedger(t))

	// No category in the payload: the carrefour rule applies.
	req := jsonRequest(http.MethodPost, "/api/v1/transactions",
		`{"amount": "-10", "description": "CARREFOUR CITY"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("CreateTransaction returned error: %v", err)
	}

	var out TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if out.Category != 1 {
		t.Errorf("category = %d, want 1 via rule", out.Category)
	}
}

func TestCreateTransaction_InvalidAmount(t *testing.T) {
	e := echo.New()
	handler := NewTransactionHandler(newTestLedger(t))

	req := jsonRequest(http.MethodPost, "/api/v1/transactions", `{"amount": "abc"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	var problem ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("unmarshal problem: %v", err)
	}
	if problem.Type != ErrorTypeValidation {
		t.Errorf("problem type = %q, want validation", problem.Type)
	}
}

func TestCreateTransaction_UnknownCategory(t *testing.T) {
	e := echo.New()
	handler := NewTransactionHandler(newTestLedger(t))

	req := jsonRequest(http.MethodPost, "/api/v1/transactions", `{"amount": "-1", "category": 777}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestUpdateTransaction_Success(t *testing.T) {
	e := echo.New()
	handler := NewTransactionHandler(newTestLedger(t))

	req := jsonRequest(http.MethodPut, "/api/v1/transactions/t1", `{"notes": "vérifié"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("t1")

	if err := handler.UpdateTransaction(c); err != nil {
		t.Fatalf("UpdateTransaction returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var out TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if out.Notes != "vérifié" {
		t.Errorf("notes = %q, want vérifié", out.Notes)
	}
	if out.Description != "CARREFOUR VILLEJUIF" {
		t.Errorf("description = %q, want unchanged", out.Description)
	}
}

func TestUpdateTransaction_NotFound(t *testing.T) {
	e := echo.New()
	handler := NewTransactionHandler(newTestLedger(t))

	req := jsonRequest(http.MethodPut, "/api/v1/transactions/missing", `{}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := handler.UpdateTransaction(c); err != nil {
		t.Fatalf("expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestDeleteTransaction(t *testing.T) {
	e := echo.New()
	ledger := newTestLedger(t)
	handler := NewTransactionHandler(ledger)

	req := jsonRequest(http.MethodDelete, "/api/v1/transactions/t1", "")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("t1")

	if err := handler.DeleteTransaction(c); err != nil {
		t.Fatalf("DeleteTransaction returned error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if len(ledger.Transactions()) != 4 {
		t.Errorf("ledger holds %d transactions, want 4", len(ledger.Transactions()))
	}
}
