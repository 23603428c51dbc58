package store

import "github.com/bhagyagroups/frontoffice/internal/models"

// FindDocument looks up a saved document by ID.
func (s *Store) FindDocument(id string) (models.Document, bool) {
	for _, d := range s.Documents() {
		if d.ID == id {
			return d, true
		}
	}
	return models.Document{}, false
}
