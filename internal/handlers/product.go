package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/bhagyagroups/frontoffice/internal/httpx"
	"github.com/bhagyagroups/frontoffice/internal/models"
	"github.com/bhagyagroups/frontoffice/internal/store"
	"github.com/bhagyagroups/frontoffice/internal/validation"
)

type ProductHandler struct {
	Store *store.Store
}

func NewProductHandler(st *store.Store) *ProductHandler { return &ProductHandler{Store: st} }

// List: GET /products – full inventory, or only in-stock items with ?available=1
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	var products []models.Product
	if v := r.URL.Query().Get("available"); v == "1" || strings.EqualFold(v, "true") {
		products = h.Store.AvailableProducts()
	} else {
		products = h.Store.Products()
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": products, "total": len(products)})
}

// Create: POST /products – JSON body {name, price, stock}
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name  string  `json:"name"`
		Price float64 `json:"price"`
		Stock int     `json:"stock"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("name", input.Name, v)
	validation.NonNegativeFloat("price", input.Price, v)
	validation.NonNegativeInt("stock", input.Stock, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	p, err := h.Store.AddProduct(strings.TrimSpace(input.Name), input.Price, input.Stock)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "product_create_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, p)
}

// Update: POST /products/update – replaces the product with the same id.
// An unknown id is accepted and changes nothing, mirroring the store
// contract.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input models.Product
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("id", input.ID, v)
	validation.Required("name", input.Name, v)
	validation.NonNegativeFloat("price", input.Price, v)
	validation.NonNegativeInt("stock", input.Stock, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	if err := h.Store.UpdateProduct(input); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "product_update_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, input)
}

// Delete: POST /products/delete?id=... (id also accepted in the JSON body)
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodDelete {
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		var input struct {
			ID string `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&input); err == nil {
			id = input.ID
		}
	}
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Store.DeleteProduct(id); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "delete_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": id})
}
