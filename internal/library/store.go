// Package library persists book records as one JSON document per book
// under the user data directory.
package library

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/zenreader/zen-t/pkg/models"
)

// Store manages the on-disk library. One file per book, named by the
// book id. Writes replace the whole record; there is no partial
// update, so a record is always internally consistent.
type Store struct {
	dir string
	mu  sync.RWMutex
}

// DefaultDir returns XDG_DATA_HOME/zen-t or ~/.local/share/zen-t.
func DefaultDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "zen-t")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "zen-t")
}

// Open creates the library directory if needed and returns a store
// over it.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating library dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory the store writes to.
func (s *Store) Dir() string { return s.dir }

func (s *Store) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// Put writes one book record, replacing any existing record with the
// same id. The record is validated first so a malformed book never
// reaches disk.
func (s *Store) Put(book *models.Book) error {
	if err := book.Validate(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(book, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding book %s: %w", book.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.WriteFile(s.path(book.ID), data, 0644); err != nil {
		return fmt.Errorf("writing book %s: %w", book.ID, err)
	}
	return nil
}

// Get reads one book record by id.
func (s *Store) Get(id string) (*models.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(id))
	if err != nil {
		return nil, fmt.Errorf("reading book %s: %w", id, err)
	}
	var book models.Book
	if err := json.Unmarshal(data, &book); err != nil {
		return nil, fmt.Errorf("decoding book %s: %w", id, err)
	}
	return &book, nil
}

// All returns every readable book record, newest first by date added.
// Unreadable or malformed files are skipped rather than failing the
// whole listing.
func (s *Store) All() ([]*models.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("listing library: %w", err)
	}

	books := make([]*models.Book, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, e.Name()))
		if err != nil {
			continue
		}
		var book models.Book
		if err := json.Unmarshal(data, &book); err != nil {
			continue
		}
		if book.ID == "" {
			continue
		}
		books = append(books, &book)
	}

	sort.SliceStable(books, func(i, j int) bool {
		return books[i].DateAdded.After(books[j].DateAdded)
	})
	return books, nil
}

// Delete removes one book record.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path(id)); err != nil {
		return fmt.Errorf("deleting book %s: %w", id, err)
	}
	return nil
}

// ExportJSON writes the entire library as a single JSON array, the
// backup format that ImportJSON reads back.
func (s *Store) ExportJSON(path string) error {
	books, err := s.All()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(books, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding backup: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing backup: %w", err)
	}
	return nil
}

// ImportJSON reads a backup file and inserts its records, replacing
// existing books with the same id. Records missing an id, title, or
// chapters are skipped. Returns the number of books imported.
func (s *Store) ImportJSON(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading backup: %w", err)
	}
	var books []models.Book
	if err := json.Unmarshal(data, &books); err != nil {
		return 0, fmt.Errorf("decoding backup: %w", err)
	}

	count := 0
	for i := range books {
		b := &books[i]
		if b.ID == "" || b.Title == "" || len(b.Chapters) == 0 {
			continue
		}
		if err := s.Put(b); err != nil {
			continue
		}
		count++
	}
	return count, nil
}
