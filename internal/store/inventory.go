package store

import (
	"github.com/bhagyagroups/frontoffice/internal/models"

	"github.com/google/uuid"
)

func newProductID() string { return "prod_" + uuid.NewString() }

// AddProduct assigns a fresh ID and appends the product to the inventory.
// Callers guarantee name is non-empty and price/stock are non-negative.
func (s *Store) AddProduct(name string, price float64, stock int) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := models.Product{ID: newProductID(), Name: name, Price: price, Stock: stock}
	products := []models.Product{}
	load(s.db, keyProducts, &products)
	products = append(products, p)
	if err := save(s.db, keyProducts, products); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// UpdateProduct replaces the product with the same ID. Unknown IDs are a
// no-op, not an error.
func (s *Store) UpdateProduct(p models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	products := []models.Product{}
	load(s.db, keyProducts, &products)
	changed := false
	for i := range products {
		if products[i].ID == p.ID {
			products[i] = p
			changed = true
			break
		}
	}
	if !changed {
		return nil
	}
	return save(s.db, keyProducts, products)
}

// DeleteProduct removes the product with the given ID. Historical documents
// keep their own snapshots, so no referential check is needed.
func (s *Store) DeleteProduct(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	products := []models.Product{}
	load(s.db, keyProducts, &products)
	kept := products[:0]
	for _, p := range products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(products) {
		return nil
	}
	return save(s.db, keyProducts, kept)
}

// AvailableProducts lists products with stock remaining.
func (s *Store) AvailableProducts() []models.Product {
	available := []models.Product{}
	for _, p := range s.Products() {
		if p.Stock > 0 {
			available = append(available, p)
		}
	}
	return available
}
