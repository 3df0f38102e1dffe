package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"statements/internal/auth"
	"statements/internal/config"
	"statements/internal/core"
	"statements/internal/ledger/memory"
	"statements/internal/statement"
)

const testSheet = "Invoice Wise"

func testRows() []core.LedgerRow {
	return []core.LedgerRow{
		{Customer: "Acme Traders", InvoiceNumber: "INV-001", InvoiceDate: 45000.0, DueAmount: "1,500.00", AmountReceived: "500.00", ReceivedDate: 45010.0},
		{Customer: "Acme Traders", InvoiceNumber: "INV-002", InvoiceDate: 45100.0, DueAmount: "250.00"},
		{Customer: "Blue Dunes", InvoiceNumber: "INV-003", InvoiceDate: 45050.0, DueAmount: "900.00", AmountReceived: "900.00", ReceivedDate: 45060.0},
	}
}

func newTestServer(t *testing.T, password string) *Server {
	t.Helper()

	store := memory.New()
	store.Seed("led-1", testSheet, testRows())

	svc := statement.NewService(store, testSheet)
	gate := auth.NewGate(password, "test-secret")
	cfg := &config.Config{
		Ledgers:      []config.Ledger{{Name: "Main", ID: "led-1"}},
		CompanyName:  "Leeds Gifts",
		BatchWorkers: 2,
	}

	s := NewServer(":0", svc, gate, cfg)
	t.Cleanup(func() { s.rateLimiter.stop() })
	return s
}

func get(s *Server, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestIndexListsCustomers(t *testing.T) {
	s := newTestServer(t, "")

	rec := get(s, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	for _, customer := range []string{"Acme Traders", "Blue Dunes"} {
		if !strings.Contains(body, customer) {
			t.Errorf("index body missing customer %q", customer)
		}
	}
}

func TestStatementPage(t *testing.T) {
	s := newTestServer(t, "")

	rec := get(s, "/statement?ledger=Main&customer=Acme+Traders")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "INV-001") {
		t.Error("statement body missing invoice number")
	}
	// 1500 + 250 due, 500 received
	if !strings.Contains(body, "1,250.00") {
		t.Error("statement body missing closing balance")
	}
}

func TestStatementTotalsRowAlignment(t *testing.T) {
	s := newTestServer(t, "")

	rec := get(s, "/statement?ledger=Main&customer=Acme+Traders")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	footer := strings.Index(body, "Totals")
	if footer < 0 {
		t.Fatal("statement body missing totals row")
	}
	// Footer order follows the column headers: Amount Received (500.00)
	// before Due Amount (1,750.00).
	received := strings.Index(body[footer:], "500.00")
	due := strings.Index(body[footer:], "1,750.00")
	if received < 0 || due < 0 {
		t.Fatalf("totals row missing sums: received at %d, due at %d", received, due)
	}
	if due < received {
		t.Error("due total restated before the received total")
	}
}

func TestStatementUnknownCustomer(t *testing.T) {
	s := newTestServer(t, "")

	rec := get(s, "/statement?ledger=Main&customer=Nobody")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if !strings.Contains(rec.Body.String(), "No transactions found") {
		t.Error("missing empty-result warning")
	}
}

func TestStatementInvalidPeriod(t *testing.T) {
	s := newTestServer(t, "")

	rec := get(s, "/statement?ledger=Main&customer=Acme+Traders&from=2024-06-01&to=2024-01-01")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
}

func TestStatementPDFDownload(t *testing.T) {
	s := newTestServer(t, "")

	rec := get(s, "/statement/pdf?ledger=Main&customer=Acme+Traders")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/pdf" {
		t.Errorf("Content-Type = %q, want application/pdf", got)
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF") {
		t.Error("response body is not a PDF document")
	}
}

func TestStatementXLSXDownload(t *testing.T) {
	s := newTestServer(t, "")

	rec := get(s, "/statement/xlsx?ledger=Main&customer=Acme+Traders")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, ".xlsx") {
		t.Errorf("Content-Disposition = %q, want an .xlsx attachment", got)
	}
}

func TestArchiveDownload(t *testing.T) {
	s := newTestServer(t, "")

	form := url.Values{"ledger": {"Main"}}
	req := httptest.NewRequest(http.MethodPost, "/statements/archive", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "application/zip" {
		t.Errorf("Content-Type = %q, want application/zip", got)
	}
	if !strings.HasPrefix(rec.Body.String(), "PK") {
		t.Error("response body is not a zip archive")
	}
}

func TestArchiveRequiresPost(t *testing.T) {
	s := newTestServer(t, "")

	rec := get(s, "/statements/archive")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}

func TestGateRedirectsToLogin(t *testing.T) {
	s := newTestServer(t, "hunter2")

	rec := get(s, "/statement?ledger=Main&customer=Acme+Traders")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want /login", loc)
	}
}

func TestLoginFlow(t *testing.T) {
	s := newTestServer(t, "hunter2")

	form := url.Values{"password": {"hunter2"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	cookies := rec.Result().Cookies()
	var session *http.Cookie
	for _, c := range cookies {
		if c.Name == auth.CookieName {
			session = c
		}
	}
	if session == nil {
		t.Fatal("no session cookie issued")
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(session)
	rec = httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("authenticated index status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	s := newTestServer(t, "hunter2")

	form := url.Values{"password": {"nope"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t, "hunter2")

	for _, target := range []string{"/healthz", "/readyz"} {
		if rec := get(s, target); rec.Code != http.StatusOK {
			t.Errorf("%s status = %d, want %d", target, rec.Code, http.StatusOK)
		}
	}
}
