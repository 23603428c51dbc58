package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bhagyagroups/frontoffice/internal/models"
	"github.com/bhagyagroups/frontoffice/internal/store"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := store.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store.New(db)
}

func createProduct(t *testing.T, h *ProductHandler, body string) models.Product {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var p models.Product
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return p
}

func TestProductCreateAndList(t *testing.T) {
	h := NewProductHandler(setupTestStore(t))
	p := createProduct(t, h, `{"name":"Widget","price":10,"stock":5}`)
	if p.ID == "" || p.Name != "Widget" || p.Price != 10 || p.Stock != 5 {
		t.Fatalf("unexpected product: %+v", p)
	}

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	w := httptest.NewRecorder()
	h.List(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var list struct {
		Items []models.Product `json:"items"`
		Total int              `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if list.Total != 1 || len(list.Items) != 1 || list.Items[0].ID != p.ID {
		t.Errorf("unexpected list: %+v", list)
	}
}

func TestProductCreateValidation(t *testing.T) {
	h := NewProductHandler(setupTestStore(t))
	cases := []string{
		`{"name":"","price":10,"stock":5}`,
		`{"name":"Widget","price":-1,"stock":5}`,
		`{"name":"Widget","price":10,"stock":-2}`,
	}
	for _, body := range cases {
		req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		h.Create(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: expected 400 got %d", body, w.Code)
		}
	}
}

func TestProductListAvailableFilter(t *testing.T) {
	h := NewProductHandler(setupTestStore(t))
	createProduct(t, h, `{"name":"InStock","price":5,"stock":2}`)
	createProduct(t, h, `{"name":"SoldOut","price":5,"stock":0}`)

	req := httptest.NewRequest(http.MethodGet, "/products?available=1", nil)
	w := httptest.NewRecorder()
	h.List(w, req)
	var list struct {
		Items []models.Product `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list.Items) != 1 || list.Items[0].Name != "InStock" {
		t.Errorf("unexpected filtered list: %+v", list.Items)
	}
}

func TestProductUpdateAndDelete(t *testing.T) {
	st := setupTestStore(t)
	h := NewProductHandler(st)
	p := createProduct(t, h, `{"name":"Widget","price":10,"stock":5}`)

	body := fmt.Sprintf(`{"id":%q,"name":"Widget XL","price":15,"stock":4}`, p.ID)
	req := httptest.NewRequest(http.MethodPost, "/products/update", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Update(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("update: expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	got := st.Products()
	if len(got) != 1 || got[0].Name != "Widget XL" || got[0].Stock != 4 {
		t.Errorf("update not applied: %+v", got)
	}

	req = httptest.NewRequest(http.MethodPost, "/products/delete?id="+p.ID, nil)
	w = httptest.NewRecorder()
	h.Delete(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200 got %d", w.Code)
	}
	if got := st.Products(); len(got) != 0 {
		t.Errorf("delete not applied: %+v", got)
	}
}

func TestProductDeleteRequiresID(t *testing.T) {
	h := NewProductHandler(setupTestStore(t))
	req := httptest.NewRequest(http.MethodPost, "/products/delete", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	h.Delete(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 got %d", w.Code)
	}
}
