package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nexsys-labs/billing/internal/common"
	"github.com/nexsys-labs/billing/internal/server/models"
)

// CreateInvoiceRequest is the POST /invoices body. The invoice number is
// never accepted from the caller; the server assigns it.
type CreateInvoiceRequest struct {
	Customer string            `json:"customer"`
	Date     string            `json:"date"`
	Items    []models.LineItem `json:"items"`
	Total    float64           `json:"total"`
}

// handleCreate handles POST /invoices.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	draft := &models.Invoice{
		Customer: req.Customer,
		Date:     req.Date,
		Items:    req.Items,
		// req.Total is advisory only, Create recomputes it
	}

	inv, err := s.invoices.Create(r.Context(), draft)
	if err != nil {
		s.logger.Error(r.Context(), "invoice creation failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, inv)
}

// handleList handles GET /invoices, ordered by invoice number descending.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	all, err := s.invoices.List(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "invoice listing failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if all == nil {
		all = []*models.Invoice{}
	}
	writeJSON(w, http.StatusOK, all)
}

// handleGet handles GET /invoices/{number}.
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.ParseInt(chi.URLParam(r, "number"), 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid invoice number")
		return
	}

	inv, err := s.invoices.Get(r.Context(), number)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeJSONError(w, http.StatusNotFound, "Invoice not found")
			return
		}
		s.logger.Error(r.Context(), "invoice lookup failed", "error", err, "number", number)
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, inv)
}

// handleHealth handles GET /healthz, the client's connectivity probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ErrorResponse is the uniform error body: {"error": message}.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
