package http

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"statements/internal/batch"
	"statements/internal/config"
	"statements/internal/core"
	"statements/internal/render"
	"statements/internal/statement"
)

// ledgerOption is one entry of the ledger picker.
type ledgerOption struct {
	Name     string
	Selected bool
}

// pageData is the shared frame of every rendered page: branding, the
// ledger picker state and the statement request echoed back into the
// form.
type pageData struct {
	CompanyName string
	TagLine     string

	Ledgers   []ledgerOption
	Ledger    string
	Customers []string
	Customer  string
	From      string
	To        string

	Warning string

	// Statement holds the aggregated summary when one was requested.
	Statement *render.SummaryData

	// Query re-applies the current selection to the download links.
	Query string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	data := s.newPageData(r)
	s.renderPage(w, r, "index.html", http.StatusOK, data)
}

// handleStatement aggregates and renders the on-screen summary.
func (s *Server) handleStatement(w http.ResponseWriter, r *http.Request) {
	data := s.newPageData(r)

	if data.Customer == "" {
		data.Warning = "Select a customer to view a statement."
		s.renderPage(w, r, "statement.html", http.StatusOK, data)
		return
	}

	st, err := s.aggregate(r, data)
	if err != nil {
		slog.WarnContext(r.Context(), "Statement request failed",
			"ledger", data.Ledger, "customer", data.Customer, "error", err)
		data.Warning = warningFor(err)
		s.renderPage(w, r, "statement.html", statusFor(err), data)
		return
	}

	summary := render.Summary(st, time.Now())
	data.Statement = &summary
	s.renderPage(w, r, "statement.html", http.StatusOK, data)
}

// handleStatementPDF streams the printable statement.
func (s *Server) handleStatementPDF(w http.ResponseWriter, r *http.Request) {
	data := s.newPageData(r)

	st, err := s.aggregate(r, data)
	if err != nil {
		slog.WarnContext(r.Context(), "PDF request failed",
			"ledger", data.Ledger, "customer", data.Customer, "error", err)
		http.Error(w, warningFor(err), statusFor(err))
		return
	}

	doc, err := render.PDF(st, s.branding, time.Now())
	if err != nil {
		slog.ErrorContext(r.Context(), "PDF render failed", "customer", data.Customer, "error", err)
		http.Error(w, "Failed to generate the PDF document.", http.StatusInternalServerError)
		return
	}

	serveDownload(w, attachmentName(st.Customer, "pdf"), "application/pdf", doc)
}

// handleStatementXLSX streams the spreadsheet export.
func (s *Server) handleStatementXLSX(w http.ResponseWriter, r *http.Request) {
	data := s.newPageData(r)

	st, err := s.aggregate(r, data)
	if err != nil {
		slog.WarnContext(r.Context(), "XLSX request failed",
			"ledger", data.Ledger, "customer", data.Customer, "error", err)
		http.Error(w, warningFor(err), statusFor(err))
		return
	}

	doc, err := render.XLSX(st)
	if err != nil {
		slog.ErrorContext(r.Context(), "XLSX render failed", "customer", data.Customer, "error", err)
		http.Error(w, "Failed to generate the Excel document.", http.StatusInternalServerError)
		return
	}

	serveDownload(w, attachmentName(st.Customer, "xlsx"),
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", doc)
}

// handleArchive generates one PDF per customer with an outstanding
// balance and streams them as a zip.
func (s *Server) handleArchive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid request format.", http.StatusBadRequest)
		return
	}

	led, ok := s.ledgerByName(strings.TrimSpace(r.Form.Get("ledger")))
	if !ok {
		http.Error(w, "Unknown ledger.", http.StatusBadRequest)
		return
	}

	rows, err := s.svc.Rows(r.Context(), led.ID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Archive rows fetch failed", "ledger", led.Name, "error", err)
		http.Error(w, warningFor(err), statusFor(err))
		return
	}

	res, err := batch.Run(r.Context(), rows, batch.Options{
		LedgerName: led.Name,
		Branding:   s.branding,
		Workers:    s.batchWorkers,
	})
	if err != nil {
		slog.ErrorContext(r.Context(), "Archive generation failed", "ledger", led.Name, "error", err)
		http.Error(w, warningFor(err), statusFor(err))
		return
	}

	slog.InfoContext(r.Context(), "Archive generated",
		"ledger", led.Name, "generated", res.Generated, "skipped", res.Skipped)

	name := fmt.Sprintf("Customer_Statements_%s_%s.zip",
		sanitizeFilename(led.Name), time.Now().Format(core.DisplayDateLayout))
	serveDownload(w, name, "application/zip", res.Archive)
}

// handleLogin shows the password form and issues the session cookie.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !s.gate.Enabled() || s.gate.Authenticated(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := struct {
		CompanyName string
		TagLine     string
		Error       string
	}{CompanyName: s.branding.CompanyName, TagLine: s.branding.TagLine}

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid request format.", http.StatusBadRequest)
			return
		}
		token, err := s.gate.Login(r.Form.Get("password"))
		if err == nil {
			s.gate.SetCookie(w, token)
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		slog.WarnContext(r.Context(), "Login attempt rejected")
		data.Error = "Incorrect password."
		w.WriteHeader(http.StatusUnauthorized)
	}

	if err := s.templates.ExecuteTemplate(w, "login.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Login template execution failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// aggregate resolves the selected ledger and period and builds the
// statement for the requested customer.
func (s *Server) aggregate(r *http.Request, data *pageData) (*statement.Statement, error) {
	led, ok := s.ledgerByName(data.Ledger)
	if !ok {
		return nil, core.ErrSourceUnavailable
	}
	period, err := parsePeriod(r)
	if err != nil {
		return nil, err
	}
	return s.svc.Statement(r.Context(), led.ID, data.Customer, period)
}

// newPageData reads the request selection and loads the customer list
// of the selected ledger. Source failures downgrade to a warning so the
// page still renders.
func (s *Server) newPageData(r *http.Request) *pageData {
	data := &pageData{
		CompanyName: s.branding.CompanyName,
		TagLine:     s.branding.TagLine,
		Customer:    strings.TrimSpace(r.URL.Query().Get("customer")),
		From:        strings.TrimSpace(r.URL.Query().Get("from")),
		To:          strings.TrimSpace(r.URL.Query().Get("to")),
	}

	selected := strings.TrimSpace(r.URL.Query().Get("ledger"))
	if _, ok := s.ledgerByName(selected); !ok && len(s.ledgers) > 0 {
		selected = s.ledgers[0].Name
	}
	data.Ledger = selected

	for _, led := range s.ledgers {
		data.Ledgers = append(data.Ledgers, ledgerOption{
			Name:     led.Name,
			Selected: led.Name == selected,
		})
	}

	if len(s.ledgers) == 0 {
		data.Warning = "No ledgers are configured."
		return data
	}

	led, _ := s.ledgerByName(selected)
	customers, err := s.svc.Customers(r.Context(), led.ID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Customer list failed", "ledger", led.Name, "error", err)
		data.Warning = warningFor(err)
	}
	data.Customers = customers

	data.Query = selectionQuery(data)
	return data
}

func (s *Server) ledgerByName(name string) (config.Ledger, bool) {
	for _, led := range s.ledgers {
		if led.Name == name {
			return led, true
		}
	}
	return config.Ledger{}, false
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, name string, status int, data *pageData) {
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution failed", "template", name, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// warningFor maps domain errors to the banner text shown to the user.
func warningFor(err error) string {
	switch {
	case errors.Is(err, core.ErrNoRows):
		return "No transactions found for the selected customer and period."
	case errors.Is(err, core.ErrInvalidPeriod):
		return "The start date must not be after the end date."
	case errors.Is(err, core.ErrSourceUnavailable):
		return "The ledger could not be reached. Please try again later."
	default:
		return "Something went wrong preparing the statement."
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrNoRows):
		return http.StatusNotFound
	case errors.Is(err, core.ErrInvalidPeriod):
		return http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrSourceUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
