// Package books serves the in-memory book catalog over gin.
package books

import (
	"errors"
	"net/http"
	"strconv"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/buker/go-records/internal/models"
	"github.com/buker/go-records/internal/store"
	"github.com/buker/go-records/internal/validate"
)

const (
	sessionCreated = "created"
	sessionLastID  = "last_id"
)

// Handler holds the store every book endpoint reads or mutates.
type Handler struct {
	Store store.BookStore
}

type bookURI struct {
	ID int64 `uri:"book_id" validate:"gt=0"`
}

type bookQuery struct {
	ID int64 `form:"book_id" validate:"required,gt=0"`
}

// ListBooks godoc
// @Summary List books
// @Description Return every book in catalog order. book_rating or published_date narrow the list.
// @Tags books
// @Produce json
// @Param book_rating query int false "Rating to match"
// @Param published_date query int false "Publication year to match"
// @Success 200 {array} models.Book
// @Failure 400 {object} ErrorResponse
// @Router /books [get]
func (h *Handler) handleGetBooks(c *gin.Context) {
	if _, ok := c.GetQuery("book_rating"); ok {
		h.handleFilterBooks(c)
		return
	}
	if _, ok := c.GetQuery("published_date"); ok {
		h.handleFilterBooks(c)
		return
	}

	books, err := h.Store.List(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

// FilterBooks godoc
// @Summary Filter books
// @Description Return the books whose rating or publication year matches, in catalog order.
// @Tags books
// @Produce json
// @Param book_rating query int false "Rating to match"
// @Param published_date query int false "Publication year to match"
// @Success 200 {array} models.Book
// @Failure 400 {object} ErrorResponse
// @Router /book/ [get]
func (h *Handler) handleFilterBooks(c *gin.Context) {
	var (
		books []models.Book
		err   error
	)

	switch {
	case c.Query("book_rating") != "":
		rating, perr := strconv.Atoi(c.Query("book_rating"))
		if perr != nil {
			respondError(c, http.StatusBadRequest, "book_rating must be an integer")
			return
		}
		books, err = h.Store.FilterByRating(c.Request.Context(), rating)
	case c.Query("published_date") != "":
		year, perr := strconv.Atoi(c.Query("published_date"))
		if perr != nil {
			respondError(c, http.StatusBadRequest, "published_date must be an integer")
			return
		}
		books, err = h.Store.FilterByPublishedDate(c.Request.Context(), year)
	default:
		respondError(c, http.StatusBadRequest, "book_rating or published_date is required")
		return
	}

	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

// GetBook godoc
// @Summary Get a book
// @Tags books
// @Produce json
// @Param book_id path int true "Book id"
// @Success 200 {object} models.Book
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /books/{book_id} [get]
func (h *Handler) handleGetBook(c *gin.Context) {
	var uri bookURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondBindError(c, err)
		return
	}

	book, err := h.Store.Get(c.Request.Context(), uri.ID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// CreateBook godoc
// @Summary Create a book
// @Description Validate the payload, assign the next id and append the book to the catalog.
// @Tags books
// @Accept json
// @Produce json
// @Param book body models.BookRequest true "Book to create"
// @Success 201 {object} models.Book
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /create-book [post]
func (h *Handler) handleCreateBook(c *gin.Context) {
	var req models.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	book, err := h.Store.Create(c.Request.Context(), req.Book(0))
	if err != nil {
		respondStoreError(c, err)
		return
	}

	rememberCreated(c, book.ID)
	log.WithField("id", book.ID).Info("Book added")
	c.JSON(http.StatusCreated, book)
}

// UpdateBook godoc
// @Summary Replace a book
// @Description Overwrite every field of the book named by the id in the payload.
// @Tags books
// @Accept json
// @Produce json
// @Param book body models.BookUpdateRequest true "Replacement book"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /books/book_update [put]
func (h *Handler) handleUpdateBook(c *gin.Context) {
	var req models.BookUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if _, err := h.Store.Replace(c.Request.Context(), req.ID, req.Book(req.ID)); err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Msg: "Book was updated"})
}

// DeleteBook godoc
// @Summary Delete a book
// @Tags books
// @Produce json
// @Param book_id query int true "Book id"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /delete-book [delete]
func (h *Handler) handleDeleteBookQuery(c *gin.Context) {
	var q bookQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}
	h.deleteBook(c, q.ID)
}

// DeleteBookByPath godoc
// @Summary Delete a book
// @Tags books
// @Produce json
// @Param book_id path int true "Book id"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Router /books/{book_id} [delete]
func (h *Handler) handleDeleteBookPath(c *gin.Context) {
	var uri bookURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondBindError(c, err)
		return
	}
	h.deleteBook(c, uri.ID)
}

func (h *Handler) deleteBook(c *gin.Context, id int64) {
	if err := h.Store.Delete(c.Request.Context(), id); err != nil {
		respondStoreError(c, err)
		return
	}
	log.WithField("id", id).Info("Book deleted")
	c.JSON(http.StatusOK, MessageResponse{Msg: "Book was deleted"})
}

// Session godoc
// @Summary Session counters
// @Description How many books this client created and the id of the last one.
// @Tags session
// @Produce json
// @Success 200 {object} SessionResponse
// @Router /session [get]
func handleSession(c *gin.Context) {
	session := sessions.Default(c)
	resp := SessionResponse{}
	if v, ok := session.Get(sessionCreated).(int); ok {
		resp.Created = v
	}
	if v, ok := session.Get(sessionLastID).(int64); ok {
		resp.LastID = v
	}
	c.JSON(http.StatusOK, resp)
}

func rememberCreated(c *gin.Context, id int64) {
	session := sessions.Default(c)
	var count int
	if v, ok := session.Get(sessionCreated).(int); ok {
		count = v
	}
	count++
	session.Set(sessionCreated, count)
	session.Set(sessionLastID, id)
	if err := session.Save(); err != nil {
		log.Warnf("Could not save session: %v", err)
	}
}

// MessageResponse is returned by mutating endpoints with no record body.
type MessageResponse struct {
	Msg string `json:"msg"`
}

// ErrorResponse describes a rejected request.
type ErrorResponse struct {
	Msg    string            `json:"msg"`
	Fields map[string]string `json:"fields,omitempty"`
}

// SessionResponse reports per-client counters.
type SessionResponse struct {
	Created int   `json:"created"`
	LastID  int64 `json:"last_id"`
}

func respondError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Msg: msg})
}

func respondBindError(c *gin.Context, err error) {
	var verr *validate.Error
	if errors.As(err, &verr) {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, ErrorResponse{Msg: "validation failed", Fields: verr.Fields})
		return
	}
	log.Debugf("Rejected request body: %v", err)
	respondError(c, http.StatusBadRequest, err.Error())
}

func respondStoreError(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Book not found")
		return
	}
	log.Errorf("Book store failure: %v", err)
	if hub := sentrygin.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
	}
	respondError(c, http.StatusInternalServerError, "internal error")
}
