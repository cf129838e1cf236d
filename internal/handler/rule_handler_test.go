package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/centime/centime-backend/internal/domain"
	"github.com/labstack/echo/v4"
)

func TestGetRules_MatchOrder(t *testing.T) {
	e := echo.New()
	handler := NewRuleHandler(newTestLedger(t))

	req := jsonRequest(http.MethodGet, "/api/v1/rules", "")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetRules(c); err != nil {
		t.Fatalf("GetRules returned error: %v", err)
	}

	var out []domain.CategoryRule
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(out) != 2 || out[0].ID != "r1" || out[1].ID != "r2" {
		t.Errorf("rules = %+v, want [r1 r2] in match order", out)
	}
}

func TestCreateRule_Success(t *testing.T) {
	e := echo.New()
	handler := NewRuleHandler(newTestLedger(t))

	req := jsonRequest(http.MethodPost, "/api/v1/rules", `{"keyword": "netflix", "categoryId": 4}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateRule(c); err != nil {
		t.Fatalf("CreateRule returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var out domain.CategoryRule
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if out.Keyword != "netflix" || out.CategoryID != 4 || out.ID == "" {
		t.Errorf("rule = %+v, want netflix on category 4 with an id", out)
	}
}

func TestCreateRule_BlankKeyword(t *testing.T) {
	e := echo.New()
	handler := NewRuleHandler(newTestLedger(t))

	req := jsonRequest(http.MethodPost, "/api/v1/rules", `{"keyword": "  ", "categoryId": 4}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateRule(c); err != nil {
		t.Fatalf("expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCreateRule_UnknownCategory(t *testing.T) {
	e := echo.New()
	handler := NewRuleHandler(newTestLedger(t))

	req := jsonRequest(http.MethodPost, "/api/v1/rules", `{"keyword": "x", "categoryId": 777}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateRule(c); err != nil {
		t.Fatalf("expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestDeleteRule(t *testing.T) {
	e := echo.New()
	ledger := newTestLedger(t)
	handler := NewRuleHandler(ledger)

	req := jsonRequest(http.MethodDelete, "/api/v1/rules/r1", "")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("r1")

	if err := handler.DeleteRule(c); err != nil {
		t.Fatalf("DeleteRule returned error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if len(ledger.Rules()) != 1 {
		t.Errorf("%d rules remain, want 1", len(ledger.Rules()))
	}
}

func TestDeleteRule_NotFound(t *testing.T) {
	e := echo.New()
	handler := NewRuleHandler(newTestLedger(t))

	req := jsonRequest(http.MethodDelete, "/api/v1/rules/missing", "")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := handler.DeleteRule(c); err != nil {
		t.Fatalf("expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
