package models

// Product is the live inventory record. Identity is the ID assigned at
// creation; name/price/stock are mutated in place by edits and by stock
// decrement on invoicing.
type Product struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

// LineItem snapshots a product's name and price at the moment it is added
// to a draft. Later product edits or deletes never rewrite saved documents.
type LineItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type DocumentType string

const (
	DocumentInvoice  DocumentType = "Invoice"
	DocumentEstimate DocumentType = "Estimate"
)

// Document is a finalized invoice or estimate. Created once, never edited:
// totals are frozen at save time and are not recomputed afterwards.
type Document struct {
	ID            string       `json:"id"`
	Type          DocumentType `json:"type"`
	Number        string       `json:"number"`
	ClientName    string       `json:"clientName"`
	ClientAddress string       `json:"clientAddress"`
	Date          string       `json:"date"` // YYYY-MM-DD
	Items         []LineItem   `json:"items"`
	Subtotal      float64      `json:"subtotal"`
	GSTAmount     float64      `json:"gstAmount"`
	Total         float64      `json:"total"`
}

// Draft is the in-progress document being composed. It is transient: never
// persisted, discarded after a successful save.
type Draft struct {
	ClientName    string
	ClientAddress string
	LineItems     []LineItem
}

// Counters hold the next number to allocate per document type. Both start
// at 1 so the first documents are INV-0001 and EST-0001.
type Counters struct {
	Invoice  int
	Estimate int
}
