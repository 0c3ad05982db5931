package books_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/buker/go-records/internal/books"
	"github.com/buker/go-records/internal/models"
	"github.com/buker/go-records/internal/store"
	"github.com/buker/go-records/internal/store/memory"
	"github.com/buker/go-records/internal/validate"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter() *gin.Engine {
	return books.NewRouter(books.RouterConfig{
		Store: memory.NewBookStore(models.SeedBooks()),
	})
}

func do(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBooks(t *testing.T, w *httptest.ResponseRecorder) []models.Book {
	t.Helper()
	var out []models.Book
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode books: %v (%s)", err, w.Body.String())
	}
	return out
}

func intPtr(i int) *int { return &i }

func validRequest() models.BookRequest {
	return models.BookRequest{
		Title:         "A new book",
		Author:        "CodeWithRuby",
		Description:   "A new description of a book",
		Rating:        intPtr(5),
		PublishedDate: 2012,
	}
}

func TestBookHandler_GetBooks(t *testing.T) {
	r := newRouter()

	w := do(r, http.MethodGet, "/books", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status OK, got %d", w.Code)
	}
	if got := decodeBooks(t, w); len(got) != 6 {
		t.Errorf("expected 6 seeded books, got %d", len(got))
	}
}

func TestBookHandler_CreateBook(t *testing.T) {
	r := newRouter()

	w := do(r, http.MethodPost, "/create-book", validRequest())
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status Created, got %d: %s", w.Code, w.Body.String())
	}

	var created models.Book
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if created.ID != 7 || created.Title != "A new book" {
		t.Errorf("unexpected created book %+v", created)
	}

	list := decodeBooks(t, do(r, http.MethodGet, "/books", nil))
	if len(list) != 7 || list[6].ID != 7 {
		t.Errorf("expected 7 books ending with id 7, got %+v", list)
	}
}

func TestBookHandler_CreateBookIgnoresClientID(t *testing.T) {
	r := newRouter()

	body := map[string]any{
		"id":             1,
		"title":          "Sneaky",
		"author":         "Someone",
		"description":    "Tries to pick an id",
		"rating":         3,
		"published_date": 2001,
	}
	w := do(r, http.MethodPost, "/create-book", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status Created, got %d", w.Code)
	}

	var created models.Book
	_ = json.Unmarshal(w.Body.Bytes(), &created)
	if created.ID != 7 {
		t.Errorf("expected assigned id 7, got %d", created.ID)
	}
}

func TestBookHandler_CreateBookValidation(t *testing.T) {
	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Rating six", func() any { b := validRequest(); b.Rating = intPtr(6); return b }(), http.StatusUnprocessableEntity},
		{"Missing rating", map[string]any{
			"title":          "Some book",
			"author":         "Ann",
			"description":    "d",
			"published_date": 2000,
		}, http.StatusUnprocessableEntity},
		{"One letter author", func() any { b := validRequest(); b.Author = "A"; return b }(), http.StatusUnprocessableEntity},
		{"Short title", func() any { b := validRequest(); b.Title = "ab"; return b }(), http.StatusUnprocessableEntity},
		{"Future year", func() any { b := validRequest(); b.PublishedDate = 2030; return b }(), http.StatusUnprocessableEntity},
		{"Empty object", map[string]any{}, http.StatusUnprocessableEntity},
		{"Wrong type", map[string]any{"title": 12}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter()

			w := do(r, http.MethodPost, "/create-book", tt.body)
			if w.Code != tt.status {
				t.Fatalf("expected status %d, got %d: %s", tt.status, w.Code, w.Body.String())
			}

			if list := decodeBooks(t, do(r, http.MethodGet, "/books", nil)); len(list) != 6 {
				t.Errorf("collection changed: %d books", len(list))
			}
		})
	}
}

func TestBookHandler_ValidationReportsFields(t *testing.T) {
	r := newRouter()
	b := validRequest()
	b.Rating = intPtr(6)

	w := do(r, http.MethodPost, "/create-book", b)

	var resp books.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Fields["rating"] != "lte=5" {
		t.Errorf("expected rating field error, got %+v", resp)
	}
}

func TestBookHandler_MalformedJSON(t *testing.T) {
	r := newRouter()

	req := httptest.NewRequest(http.MethodPost, "/create-book", bytes.NewReader([]byte("{")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status BadRequest, got %d", w.Code)
	}
}

func TestBookHandler_GetBook(t *testing.T) {
	r := newRouter()

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"Existing", "/books/3", http.StatusOK},
		{"Missing", "/books/99", http.StatusNotFound},
		{"Zero id", "/books/0", http.StatusUnprocessableEntity},
		{"Not a number", "/books/abc", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodGet, tt.path, nil)
			if w.Code != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, w.Code)
			}
		})
	}
}

func TestBookHandler_DeleteThenGet(t *testing.T) {
	r := newRouter()

	w := do(r, http.MethodDelete, "/delete-book?book_id=3", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status OK, got %d", w.Code)
	}

	if w := do(r, http.MethodGet, "/books/3", nil); w.Code != http.StatusNotFound {
		t.Errorf("expected status NotFound after delete, got %d", w.Code)
	}

	if w := do(r, http.MethodDelete, "/delete-book?book_id=3", nil); w.Code != http.StatusNotFound {
		t.Errorf("expected status NotFound on second delete, got %d", w.Code)
	}

	if w := do(r, http.MethodDelete, "/delete-book", nil); w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected status UnprocessableEntity without book_id, got %d", w.Code)
	}
}

func TestBookHandler_DeleteByPath(t *testing.T) {
	r := newRouter()

	if w := do(r, http.MethodDelete, "/books/5", nil); w.Code != http.StatusOK {
		t.Fatalf("expected status OK, got %d", w.Code)
	}
	if list := decodeBooks(t, do(r, http.MethodGet, "/books", nil)); len(list) != 5 {
		t.Errorf("expected 5 books, got %d", len(list))
	}
}

func TestBookHandler_Filters(t *testing.T) {
	r := newRouter()

	tests := []struct {
		name  string
		path  string
		count int
	}{
		{"Rating on collection", "/books?book_rating=5", 2},
		{"Rating on collection with slash", "/books/?book_rating=5", 2},
		{"Collection with slash", "/books/", 6},
		{"Rating on filter route", "/book/?book_rating=1", 1},
		{"Year", "/book/?published_date=1998", 1},
		{"Year on collection", "/books?published_date=2020", 1},
		{"No match", "/book/?book_rating=0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodGet, tt.path, nil)
			if w.Code != http.StatusOK {
				t.Fatalf("expected status OK, got %d", w.Code)
			}
			if got := decodeBooks(t, w); len(got) != tt.count {
				t.Errorf("expected %d books, got %d", tt.count, len(got))
			}
		})
	}

	if w := do(r, http.MethodGet, "/book/", nil); w.Code != http.StatusBadRequest {
		t.Errorf("expected status BadRequest without filter, got %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/book/?book_rating=high", nil); w.Code != http.StatusBadRequest {
		t.Errorf("expected status BadRequest for non-integer rating, got %d", w.Code)
	}
}

func TestBookHandler_CreateBookKeepsZeroRating(t *testing.T) {
	r := newRouter()
	b := validRequest()
	b.Rating = intPtr(0)

	w := do(r, http.MethodPost, "/create-book", b)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status Created, got %d: %s", w.Code, w.Body.String())
	}
	var created models.Book
	_ = json.Unmarshal(w.Body.Bytes(), &created)
	if created.Rating != 0 {
		t.Errorf("expected rating 0, got %d", created.Rating)
	}
}

func TestNewRouter_SharesBindingValidator(t *testing.T) {
	newRouter()
	first, ok := binding.Validator.(*validate.Validator)
	if !ok {
		t.Fatalf("expected *validate.Validator, got %T", binding.Validator)
	}

	newRouter()
	if second := binding.Validator.(*validate.Validator); second != first {
		t.Error("expected the binding validator to be installed once")
	}
}

func TestBookHandler_UpdateBook(t *testing.T) {
	r := newRouter()

	update := models.BookUpdateRequest{ID: 2, BookRequest: validRequest()}
	update.Title = "Be Faster"

	if w := do(r, http.MethodPut, "/books/book_update", update); w.Code != http.StatusOK {
		t.Fatalf("expected status OK, got %d: %s", w.Code, w.Body.String())
	}

	var got models.Book
	_ = json.Unmarshal(do(r, http.MethodGet, "/books/2", nil).Body.Bytes(), &got)
	if got.ID != 2 || got.Title != "Be Faster" {
		t.Errorf("unexpected book after update %+v", got)
	}

	update.ID = 99
	if w := do(r, http.MethodPut, "/books/book_update", update); w.Code != http.StatusNotFound {
		t.Errorf("expected status NotFound, got %d", w.Code)
	}

	if w := do(r, http.MethodPut, "/books/book_update", validRequest()); w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected status UnprocessableEntity without id, got %d", w.Code)
	}
}

func TestBookHandler_Session(t *testing.T) {
	r := newRouter()

	w := do(r, http.MethodPost, "/create-book", validRequest())
	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie")
	}

	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	sw := httptest.NewRecorder()
	r.ServeHTTP(sw, req)

	var resp books.SessionResponse
	if err := json.Unmarshal(sw.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Created != 1 || resp.LastID != 7 {
		t.Errorf("unexpected session %+v", resp)
	}
}

func TestBookHandler_Gzip(t *testing.T) {
	r := newRouter()

	req := httptest.NewRequest(http.MethodGet, "/books", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Header().Get("Content-Encoding") != "gzip" {
		t.Errorf("expected gzip response, got %q", w.Header().Get("Content-Encoding"))
	}
}

func TestBookHandler_Swagger(t *testing.T) {
	r := books.NewRouter(books.RouterConfig{
		Store:       memory.NewBookStore(nil),
		SwaggerHost: "localhost:8080",
	})

	w := do(r, http.MethodGet, "/swagger/doc.json", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status OK, got %d", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte(`"/create-book"`)) {
		t.Error("expected create-book path in swagger document")
	}
}

type failingStore struct {
	store.BookStore
}

func (failingStore) List(context.Context) ([]models.Book, error) {
	return nil, errors.New("disk on fire")
}

func TestBookHandler_StoreFailure(t *testing.T) {
	r := books.NewRouter(books.RouterConfig{Store: failingStore{}})

	if w := do(r, http.MethodGet, "/books", nil); w.Code != http.StatusInternalServerError {
		t.Errorf("expected status InternalServerError, got %d", w.Code)
	}
}
