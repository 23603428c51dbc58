package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bhagyagroups/frontoffice/internal/httpx"
	"github.com/bhagyagroups/frontoffice/internal/models"
	"github.com/bhagyagroups/frontoffice/internal/pdf"
	"github.com/bhagyagroups/frontoffice/internal/services"
	"github.com/bhagyagroups/frontoffice/internal/store"
)

type DocumentHandler struct {
	Store *store.Store
	Svc   *services.LedgerService
}

func NewDocumentHandler(st *store.Store, svc *services.LedgerService) *DocumentHandler {
	return &DocumentHandler{Store: st, Svc: svc}
}

type documentItemReq struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type documentReq struct {
	Type          string            `json:"type"`
	ClientName    string            `json:"client_name"`
	ClientAddress string            `json:"client_address"`
	Items         []documentItemReq `json:"items"`
}

func parseDocumentType(s string) (models.DocumentType, bool) {
	switch models.DocumentType(s) {
	case models.DocumentInvoice:
		return models.DocumentInvoice, true
	case models.DocumentEstimate:
		return models.DocumentEstimate, true
	}
	return "", false
}

// buildDraft assembles a draft from the requested item refs against the
// given inventory. Unknown products and non-positive quantities are
// silently skipped; repeated product ids merge into one line.
func (h *DocumentHandler) buildDraft(req documentReq, products []models.Product) models.Draft {
	draft := models.Draft{ClientName: req.ClientName, ClientAddress: req.ClientAddress}
	for _, it := range req.Items {
		h.Svc.AddLineItem(&draft, products, it.ProductID, it.Quantity)
	}
	return draft
}

// List: GET /documents – saved documents, most recent first
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	docs := h.Store.Documents()
	httpx.JSON(w, http.StatusOK, map[string]any{"items": docs, "total": len(docs)})
}

// Get: GET /documents/view?id=...
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	doc, ok := h.Store.FindDocument(id)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, doc)
}

// Create: POST /documents – finalizes a draft as an invoice or estimate.
// The draft is built, numbered, totalled, and saved in one transaction;
// a validation failure leaves counters, stock, and the document list
// untouched.
func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req documentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	typ, ok := parseDocumentType(req.Type)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_type", map[string]string{"type": "must_be_Invoice_or_Estimate"})
		return
	}
	doc, err := h.Store.Finalize(func(products []models.Product, c models.Counters) (models.Document, []models.Product, models.Counters, error) {
		draft := h.buildDraft(req, products)
		return h.Svc.FinalizeDocument(draft, typ, products, c)
	})
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", verr.Violations)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "document_save_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, doc)
}

// Preview: POST /documents/preview – totals for an in-progress draft.
// Allocates no number and writes nothing.
func (h *DocumentHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req documentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	draft := h.buildDraft(req, h.Store.Products())
	totals := h.Svc.ComputeTotals(draft.LineItems)
	httpx.JSON(w, http.StatusOK, map[string]any{
		"items":     draft.LineItems,
		"subtotal":  totals.Subtotal,
		"gstAmount": totals.GSTAmount,
		"total":     totals.Total,
	})
}

// PDF: GET /documents/pdf?id=... – renders the saved document for download.
func (h *DocumentHandler) PDF(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	doc, ok := h.Store.FindDocument(id)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	data, err := pdf.DocumentPDF(doc)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "pdf_generation_failed", nil)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.Number+`.pdf"`)
	if _, werr := w.Write(data); werr != nil {
		_ = werr
	}
}
