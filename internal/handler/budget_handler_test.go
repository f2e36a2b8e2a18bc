package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/centavo-app/centavo-backend/internal/testutil"
)

func TestCreateBudget_Success(t *testing.T) {
	e := testutil.NewEcho()
	svc := testutil.NewBudgetService()
	handler := NewBudgetHandler(svc)

	body := `{"name":"Household","description":"Monthly spend","limit":"1500.00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/budgets", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.CreateBudget(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", rec.Code)
	}

	var response BudgetResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.ID == "" {
		t.Error("Expected a generated budget id")
	}
	if response.Name != "Household" {
		t.Errorf("Expected name 'Household', got %s", response.Name)
	}
	if response.Limit != "1500.00" {
		t.Errorf("Expected limit '1500.00', got %s", response.Limit)
	}
	if response.CategoryCount != 15 {
		t.Errorf("Expected 15 default categories, got %d", response.CategoryCount)
	}
}

func TestCreateBudget_MissingName(t *testing.T) {
	e := testutil.NewEcho()
	svc := testutil.NewBudgetService()
	handler := NewBudgetHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/budgets", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.CreateBudget(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGetBudget_NotFound(t *testing.T) {
	e := testutil.NewEcho()
	svc := testutil.NewBudgetService()
	handler := NewBudgetHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/budgets/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	err := handler.GetBudget(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}

	var problem ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("Failed to unmarshal problem details: %v", err)
	}
	if problem.Type != ErrorTypeNotFound {
		t.Errorf("Expected type %s, got %s", ErrorTypeNotFound, problem.Type)
	}
}

func TestSetLimit_Success(t *testing.T) {
	e := testutil.NewEcho()
	svc := testutil.NewBudgetService()
	handler := NewBudgetHandler(svc)
	budget := testutil.SeedBudget(t, svc)

	body := `{"limit":"2500.00"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/budgets/"+budget.ID+"/limit", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(budget.ID)

	err := handler.SetLimit(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response BudgetResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Limit != "2500.00" {
		t.Errorf("Expected limit '2500.00', got %s", response.Limit)
	}
}

func TestExportImportBudget_RoundTrip(t *testing.T) {
	e := testutil.NewEcho()
	svc := testutil.NewBudgetService()
	handler := NewBudgetHandler(svc)
	budget := testutil.SeedBudget(t, svc)

	// Export
	req := httptest.NewRequest(http.MethodGet, "/api/v1/budgets/"+budget.ID+"/export", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(budget.ID)

	if err := handler.ExportBudget(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	exported := rec.Body.Bytes()

	// Import into a fresh budget
	target := testutil.SeedBudget(t, svc)
	req = httptest.NewRequest(http.MethodPost, "/api/v1/budgets/"+target.ID+"/import", strings.NewReader(string(exported)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(target.ID)

	if err := handler.ImportBudget(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	after, err := svc.GetBudget(target.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if after.TransactionCount != budget.TransactionCount {
		t.Errorf("Expected %d transactions after import, got %d", budget.TransactionCount, after.TransactionCount)
	}
}

func TestImportBudget_MalformedPayload(t *testing.T) {
	e := testutil.NewEcho()
	svc := testutil.NewBudgetService()
	handler := NewBudgetHandler(svc)
	budget := testutil.SeedBudget(t, svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/budgets/"+budget.ID+"/import", strings.NewReader("{not json"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(budget.ID)

	if err := handler.ImportBudget(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
	after, err := svc.GetBudget(budget.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if after.TransactionCount != 3 {
		t.Errorf("Budget should be untouched after failed import, got %d transactions", after.TransactionCount)
	}
}
