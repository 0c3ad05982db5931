// Package store defines the collections the services read and mutate.
//
// Implementations live in sub-packages: memory (books), gormstore and
// mongostore (todos). Every implementation reports a missing record with
// ErrNotFound, wrapped or not, so callers test it with errors.Is.
package store

import (
	"context"
	"errors"

	"github.com/buker/go-records/internal/models"
)

// ErrNotFound is returned when no record carries the requested id.
var ErrNotFound = errors.New("record not found")

// BookStore is an ordered collection of books.
type BookStore interface {
	List(ctx context.Context) ([]models.Book, error)
	Get(ctx context.Context, id int64) (models.Book, error)
	FilterByRating(ctx context.Context, rating int) ([]models.Book, error)
	FilterByPublishedDate(ctx context.Context, year int) ([]models.Book, error)
	// Create assigns the next id to book, appends it and returns the stored copy.
	Create(ctx context.Context, book models.Book) (models.Book, error)
	// Replace overwrites every field of the book with the given id. The id is kept.
	Replace(ctx context.Context, id int64, book models.Book) (models.Book, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

// TodoStore is a persisted collection of todos ordered by id.
type TodoStore interface {
	List(ctx context.Context) ([]models.Todo, error)
	Get(ctx context.Context, id int64) (models.Todo, error)
	Filter(ctx context.Context, filter models.TodoFilter) ([]models.Todo, error)
	Create(ctx context.Context, todo models.Todo) (models.Todo, error)
	Replace(ctx context.Context, id int64, todo models.Todo) (models.Todo, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
	Close(ctx context.Context) error
}
