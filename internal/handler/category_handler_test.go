package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/centime/centime-backend/internal/domain"
	"github.com/labstack/echo/v4"
)

func TestGetCategories(t *testing.T) {
	e := echo.New()
	handler := NewCategoryHandler(newTestLedger(t))

	req := jsonRequest(http.MethodGet, "/api/v1/categories", "")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetCategories(c); err != nil {
		t.Fatalf("GetCategories returned error: %v", err)
	}

	var out []domain.Category
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(out) != 9 {
		t.Errorf("returned %d categories, want 9", len(out))
	}
}

func TestCreateCategory_Success(t *testing.T) {
	e := echo.New()
	handler := NewCategoryHandler(newTestLedger(t))

	req := jsonRequest(http.MethodPost, "/api/v1/categories",
		`{"name": "Animaux", "color": "#795548", "icon": "pets"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateCategory(c); err != nil {
		t.Fatalf("CreateCategory returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var out domain.Category
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if out.ID != 10 {
		t.Errorf("new category id = %d, want 10", out.ID)
	}
	if out.Name != "Animaux" {
		t.Errorf("name = %q, want Animaux", out.Name)
	}
}

func TestCreateCategory_BlankName(t *testing.T) {
	e := echo.New()
	handler := NewCategoryHandler(newTestLedger(t))

	req := jsonRequest(http.MethodPost, "/api/v1/categories", `{"name": "  "}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateCategory(c); err != nil {
		t.Fatalf("expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestUpdateCategory_Sentinel(t *testing.T) {
	e := echo.New()
	handler := NewCategoryHandler(newTestLedger(t))

	req := jsonRequest(http.MethodPut, "/api/v1/categories/9", `{"name": "Autre"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(domain.UncategorizedID))

	if err := handler.UpdateCategory(c); err != nil {
		t.Fatalf("expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for sentinel edit", rec.Code)
	}
}

func TestDeleteCategory_CascadesToSentinel(t *testing.T) {
	e := echo.New()
	ledger := newTestLedger(t)
	handler := NewCategoryHandler(ledger)

	req := jsonRequest(http.MethodDelete, "/api/v1/categories/1", "")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := handler.DeleteCategory(c); err != nil {
		t.Fatalf("DeleteCategory returned error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}

	for _, txn := range ledger.Transactions() {
		if txn.CategoryID == 1 {
			t.Errorf("transaction %s still references deleted category", txn.ID)
		}
	}
}

func TestDeleteCategory_InvalidID(t *testing.T) {
	e := echo.New()
	handler := NewCategoryHandler(newTestLedger(t))

	for _, bad := range []string{"abc", "0", "-1"} {
		req := jsonRequest(http.MethodDelete, "/api/v1/categories/"+bad, "")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(bad)

		if err := handler.DeleteCategory(c); err != nil {
			t.Fatalf("expected JSON response, got error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("id %q: status = %d, want 400", bad, rec.Code)
		}
	}
}

func TestDeleteCategory_NotFound(t *testing.T) {
	e := echo.New()
	handler := NewCategoryHandler(newTestLedger(t))

	req := jsonRequest(http.MethodDelete, "/api/v1/categories/777", "")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("777")

	if err := handler.DeleteCategory(c); err != nil {
		t.Fatalf("expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
