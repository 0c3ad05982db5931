// Package memory keeps the book catalog in process memory.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/buker/go-records/internal/idgen"
	"github.com/buker/go-records/internal/models"
	"github.com/buker/go-records/internal/store"
)

// BookStore is a mutex-guarded, insertion-ordered slice of books.
type BookStore struct {
	mu    sync.RWMutex
	books []models.Book
	ids   *idgen.Sequence
}

var _ store.BookStore = (*BookStore)(nil)

// NewBookStore returns a store holding a copy of seed. New ids start above the highest seeded id.
func NewBookStore(seed []models.Book) *BookStore {
	books := make([]models.Book, len(seed))
	copy(books, seed)

	ids := idgen.NewSequence()
	for _, b := range books {
		ids.Observe(b.ID)
	}
	return &BookStore{books: books, ids: ids}
}

// List returns every book in collection order.
func (s *BookStore) List(_ context.Context) ([]models.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Book, len(s.books))
	copy(out, s.books)
	return out, nil
}

// Get returns the book with the given id.
func (s *BookStore) Get(_ context.Context, id int64) (models.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.books[i], nil
	}
	return models.Book{}, fmt.Errorf("book %d: %w", id, store.ErrNotFound)
}

// FilterByRating returns the books with the given rating, in collection order.
func (s *BookStore) FilterByRating(_ context.Context, rating int) ([]models.Book, error) {
	return s.filter(func(b models.Book) bool { return b.Rating == rating }), nil
}

// FilterByPublishedDate returns the books published in year, in collection order.
func (s *BookStore) FilterByPublishedDate(_ context.Context, year int) ([]models.Book, error) {
	return s.filter(func(b models.Book) bool { return b.PublishedDate == year }), nil
}

// Create stamps book with the next id and appends it.
func (s *BookStore) Create(_ context.Context, book models.Book) (models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	book.ID = s.ids.Next()
	s.books = append(s.books, book)
	return book, nil
}

// Replace overwrites the book with the given id in place.
func (s *BookStore) Replace(_ context.Context, id int64, book models.Book) (models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return models.Book{}, fmt.Errorf("book %d: %w", id, store.ErrNotFound)
	}
	book.ID = id
	s.books[i] = book
	return book, nil
}

// Delete removes the book with the given id, keeping the order of the rest.
func (s *BookStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("book %d: %w", id, store.ErrNotFound)
	}
	s.books = append(s.books[:i], s.books[i+1:]...)
	return nil
}

// Count returns the number of books.
func (s *BookStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.books), nil
}

// indexOf must be called with mu held.
func (s *BookStore) indexOf(id int64) int {
	for i := range s.books {
		if s.books[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *BookStore) filter(match func(models.Book) bool) []models.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Book{}
	for _, b := range s.books {
		if match(b) {
			out = append(out, b)
		}
	}
	return out
}
