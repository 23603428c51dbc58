package store

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/bhagyagroups/frontoffice/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Persisted keys. Values are JSON-encoded, matching the key/value layout
// the data was originally kept in, so old exports load unchanged.
const (
	keyProducts        = "products"
	keyDocuments       = "documents"
	keyInvoiceCounter  = "invoice-counter"
	keyEstimateCounter = "estimate-counter"
)

// Entry is a single persisted key with a JSON-encoded value.
type Entry struct {
	Key       string `gorm:"primaryKey;size:64"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}

// Store owns all persisted state: products, documents, and the per-type
// document counters. Every mutation is a read-modify-write of one or more
// keys; the mutex keeps those sequences exclusive so counter allocation
// and stock decrement never interleave between requests.
type Store struct {
	mu sync.Mutex
	db *gorm.DB
}

func New(db *gorm.DB) *Store { return &Store{db: db} }

// Migrate creates the entries table when it does not exist yet.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Entry{})
}

// load decodes the value under key into out. A missing key or a corrupt
// value leaves out untouched and reports false: callers fall back to the
// default for that key rather than failing.
func load(db *gorm.DB, key string, out any) bool {
	var e Entry
	if err := db.First(&e, "key = ?", key).Error; err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(e.Value), out); err != nil {
		return false
	}
	return true
}

func save(db *gorm.DB, key string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	e := Entry{Key: key, Value: string(body), UpdatedAt: time.Now()}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error; err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Products returns the live inventory. Empty slice when nothing is stored.
func (s *Store) Products() []models.Product {
	products := []models.Product{}
	load(s.db, keyProducts, &products)
	return products
}

// Documents returns all saved documents, most recent first.
func (s *Store) Documents() []models.Document {
	docs := []models.Document{}
	load(s.db, keyDocuments, &docs)
	return docs
}

// Counters returns the next invoice and estimate numbers; both default
// to 1 when never persisted.
func (s *Store) Counters() models.Counters {
	c := models.Counters{Invoice: 1, Estimate: 1}
	load(s.db, keyInvoiceCounter, &c.Invoice)
	load(s.db, keyEstimateCounter, &c.Estimate)
	return c
}

// Finalize runs fn with the current inventory and counters and persists
// its result in a single transaction: the new document is prepended to the
// document list, the returned inventory replaces the stored one, and both
// counters are written back. When fn fails nothing is written, so a
// rejected draft never bumps a counter or touches stock. The lock keeps
// two saves from consuming the same counter value.
func (s *Store) Finalize(fn func(products []models.Product, c models.Counters) (models.Document, []models.Product, models.Counters, error)) (models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var doc models.Document
	err := s.db.Transaction(func(tx *gorm.DB) error {
		products := []models.Product{}
		load(tx, keyProducts, &products)
		c := models.Counters{Invoice: 1, Estimate: 1}
		load(tx, keyInvoiceCounter, &c.Invoice)
		load(tx, keyEstimateCounter, &c.Estimate)

		d, updated, uc, err := fn(products, c)
		if err != nil {
			return err
		}
		doc = d

		docs := []models.Document{}
		load(tx, keyDocuments, &docs)
		docs = append([]models.Document{d}, docs...)
		if err := save(tx, keyDocuments, docs); err != nil {
			return err
		}
		if err := save(tx, keyProducts, updated); err != nil {
			return err
		}
		if err := save(tx, keyInvoiceCounter, uc.Invoice); err != nil {
			return err
		}
		return save(tx, keyEstimateCounter, uc.Estimate)
	})
	return doc, err
}

// Ping verifies database connectivity for health checks.
func (s *Store) Ping() error {
	return s.db.Exec("SELECT 1").Error
}
