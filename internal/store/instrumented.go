package store

import (
	"context"
	"errors"

	"github.com/buker/go-records/internal/models"
)

// Recorder receives one call per store operation.
type Recorder interface {
	Observe(service, op, result string)
	SetSize(service string, n int)
}

func result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

// InstrumentBooks wraps s so every call is reported to rec.
func InstrumentBooks(s BookStore, rec Recorder) BookStore {
	return &instrumentedBooks{next: s, rec: rec}
}

type instrumentedBooks struct {
	next BookStore
	rec  Recorder
}

func (i *instrumentedBooks) observe(ctx context.Context, op string, err error, mutated bool) {
	i.rec.Observe(models.BookEntity, op, result(err))
	if mutated && err == nil {
		if n, cerr := i.next.Count(ctx); cerr == nil {
			i.rec.SetSize(models.BookEntity, n)
		}
	}
}

func (i *instrumentedBooks) List(ctx context.Context) ([]models.Book, error) {
	out, err := i.next.List(ctx)
	i.observe(ctx, "list", err, false)
	return out, err
}

func (i *instrumentedBooks) Get(ctx context.Context, id int64) (models.Book, error) {
	out, err := i.next.Get(ctx, id)
	i.observe(ctx, "get", err, false)
	return out, err
}

func (i *instrumentedBooks) FilterByRating(ctx context.Context, rating int) ([]models.Book, error) {
	out, err := i.next.FilterByRating(ctx, rating)
	i.observe(ctx, "filter", err, false)
	return out, err
}

func (i *instrumentedBooks) FilterByPublishedDate(ctx context.Context, year int) ([]models.Book, error) {
	out, err := i.next.FilterByPublishedDate(ctx, year)
	i.observe(ctx, "filter", err, false)
	return out, err
}

func (i *instrumentedBooks) Create(ctx context.Context, book models.Book) (models.Book, error) {
	out, err := i.next.Create(ctx, book)
	i.observe(ctx, "create", err, true)
	return out, err
}

func (i *instrumentedBooks) Replace(ctx context.Context, id int64, book models.Book) (models.Book, error) {
	out, err := i.next.Replace(ctx, id, book)
	i.observe(ctx, "replace", err, false)
	return out, err
}

func (i *instrumentedBooks) Delete(ctx context.Context, id int64) error {
	err := i.next.Delete(ctx, id)
	i.observe(ctx, "delete", err, true)
	return err
}

func (i *instrumentedBooks) Count(ctx context.Context) (int, error) {
	return i.next.Count(ctx)
}

// InstrumentTodos wraps s so every call is reported to rec.
func InstrumentTodos(s TodoStore, rec Recorder) TodoStore {
	return &instrumentedTodos{next: s, rec: rec}
}

type instrumentedTodos struct {
	next TodoStore
	rec  Recorder
}

func (i *instrumentedTodos) observe(ctx context.Context, op string, err error, mutated bool) {
	i.rec.Observe(models.TodoEntity, op, result(err))
	if mutated && err == nil {
		if n, cerr := i.next.Count(ctx); cerr == nil {
			i.rec.SetSize(models.TodoEntity, n)
		}
	}
}

func (i *instrumentedTodos) List(ctx context.Context) ([]models.Todo, error) {
	out, err := i.next.List(ctx)
	i.observe(ctx, "list", err, false)
	return out, err
}

func (i *instrumentedTodos) Get(ctx context.Context, id int64) (models.Todo, error) {
	out, err := i.next.Get(ctx, id)
	i.observe(ctx, "get", err, false)
	return out, err
}

func (i *instrumentedTodos) Filter(ctx context.Context, filter models.TodoFilter) ([]models.Todo, error) {
	out, err := i.next.Filter(ctx, filter)
	i.observe(ctx, "filter", err, false)
	return out, err
}

func (i *instrumentedTodos) Create(ctx context.Context, todo models.Todo) (models.Todo, error) {
	out, err := i.next.Create(ctx, todo)
	i.observe(ctx, "create", err, true)
	return out, err
}

func (i *instrumentedTodos) Replace(ctx context.Context, id int64, todo models.Todo) (models.Todo, error) {
	out, err := i.next.Replace(ctx, id, todo)
	i.observe(ctx, "replace", err, false)
	return out, err
}

func (i *instrumentedTodos) Delete(ctx context.Context, id int64) error {
	err := i.next.Delete(ctx, id)
	i.observe(ctx, "delete", err, true)
	return err
}

func (i *instrumentedTodos) Count(ctx context.Context) (int, error) {
	return i.next.Count(ctx)
}

func (i *instrumentedTodos) Close(ctx context.Context) error {
	return i.next.Close(ctx)
}
