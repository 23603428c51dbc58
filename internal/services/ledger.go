package services

import (
	"fmt"
	"time"

	"github.com/bhagyagroups/frontoffice/internal/models"
	"github.com/bhagyagroups/frontoffice/internal/validation"

	"github.com/google/uuid"
)

// GSTRate is the fixed tax rate applied to every document subtotal.
const GSTRate = 0.18

// LedgerService holds the document computation logic: line-item
// aggregation, totals, number allocation, and finalization with stock
// decrement. It never touches storage; callers pass state in and persist
// the returned state atomically.
type LedgerService struct {
	now func() time.Time
}

func NewLedgerService() *LedgerService { return &LedgerService{now: time.Now} }

// Totals are the frozen amounts of a document. Summed as float64 with no
// intermediate rounding; display rounding is a presentation concern.
type Totals struct {
	Subtotal  float64
	GSTAmount float64
	Total     float64
}

// ValidationError reports why a draft could not be finalized. No state has
// been touched when it is returned.
type ValidationError struct {
	Violations validation.Violations
}

func (e *ValidationError) Error() string { return "validation failed" }

// ComputeTotals sums the draft lines and applies GST. Order of items does
// not affect the result beyond float rounding.
func (s *LedgerService) ComputeTotals(items []models.LineItem) Totals {
	var subtotal float64
	for _, it := range items {
		subtotal += it.Price * float64(it.Quantity)
	}
	gst := subtotal * GSTRate
	return Totals{Subtotal: subtotal, GSTAmount: gst, Total: subtotal + gst}
}

// AddLineItem adds quantity of the given product to the draft. An unknown
// product or a non-positive quantity is a no-op. A line for the same
// product merges quantities rather than adding a second entry; stock
// sufficiency is deliberately not checked here.
func (s *LedgerService) AddLineItem(draft *models.Draft, products []models.Product, productID string, quantity int) {
	if quantity <= 0 {
		return
	}
	var product *models.Product
	for i := range products {
		if products[i].ID == productID {
			product = &products[i]
			break
		}
	}
	if product == nil {
		return
	}
	for i := range draft.LineItems {
		if draft.LineItems[i].ProductID == productID {
			draft.LineItems[i].Quantity += quantity
			return
		}
	}
	draft.LineItems = append(draft.LineItems, models.LineItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  quantity,
	})
}

// RemoveLineItem drops the line for the given product; no-op when absent.
func (s *LedgerService) RemoveLineItem(draft *models.Draft, productID string) {
	for i, it := range draft.LineItems {
		if it.ProductID == productID {
			draft.LineItems = append(draft.LineItems[:i], draft.LineItems[i+1:]...)
			return
		}
	}
}

// AllocateNumber formats the next document number for the given type and
// returns the advanced counters. Invoice and estimate sequences are
// independent; callers persist the returned counters together with the
// document so no number is ever observed twice.
func (s *LedgerService) AllocateNumber(t models.DocumentType, c models.Counters) (string, models.Counters) {
	if t == models.DocumentInvoice {
		number := fmt.Sprintf("INV-%04d", c.Invoice)
		c.Invoice++
		return number, c
	}
	number := fmt.Sprintf("EST-%04d", c.Estimate)
	c.Estimate++
	return number, c
}

// FinalizeDocument turns a draft into a frozen document. It fails with a
// ValidationError when the client name is empty or the draft has no lines,
// returning the inputs unchanged. On success it returns the new document,
// the inventory after stock decrement (invoices only; estimates never
// touch stock), and the advanced counters. The caller must persist all
// three in one transaction.
func (s *LedgerService) FinalizeDocument(draft models.Draft, t models.DocumentType, products []models.Product, c models.Counters) (models.Document, []models.Product, models.Counters, error) {
	v := validation.Violations{}
	validation.Required("clientName", draft.ClientName, v)
	if len(draft.LineItems) == 0 {
		v["items"] = "required"
	}
	if !v.Empty() {
		return models.Document{}, products, c, &ValidationError{Violations: v}
	}

	totals := s.ComputeTotals(draft.LineItems)
	number, c := s.AllocateNumber(t, c)
	items := make([]models.LineItem, len(draft.LineItems))
	copy(items, draft.LineItems)

	doc := models.Document{
		ID:            "doc_" + uuid.NewString(),
		Type:          t,
		Number:        number,
		ClientName:    draft.ClientName,
		ClientAddress: draft.ClientAddress,
		Date:          s.now().Format("2006-01-02"),
		Items:         items,
		Subtotal:      totals.Subtotal,
		GSTAmount:     totals.GSTAmount,
		Total:         totals.Total,
	}

	if t == models.DocumentInvoice {
		updated := make([]models.Product, len(products))
		copy(updated, products)
		for _, it := range items {
			for i := range updated {
				if updated[i].ID == it.ProductID {
					// stock may go negative; over-invoicing is allowed
					updated[i].Stock -= it.Quantity
					break
				}
			}
		}
		return doc, updated, c, nil
	}
	return doc, products, c, nil
}
