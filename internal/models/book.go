package models

// Book - Model of a catalog entry
type Book struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	Description   string `json:"description"`
	Rating        int    `json:"rating"`
	PublishedDate int    `json:"published_date"`
}

// BookRequest is the write payload for a book. The id is never taken from it on create.
type BookRequest struct {
	Title         string `json:"title" validate:"min=3" example:"A new book"`
	Author        string `json:"author" validate:"min=2" example:"CodeWithRuby"`
	Description   string `json:"description" validate:"min=1,max=100" example:"A new description of a book"`
	Rating        *int   `json:"rating" validate:"required,gte=0,lte=5" example:"5"`
	PublishedDate int    `json:"published_date" validate:"gt=1900,lt=2025" example:"2012"`
}

// BookUpdateRequest carries the id of the book being replaced alongside its new fields.
type BookUpdateRequest struct {
	ID int64 `json:"id" validate:"required,gt=0" example:"1"`
	BookRequest
}

// Book maps a validated request onto a Book with the given id.
func (r BookRequest) Book(id int64) Book {
	b := Book{
		ID:            id,
		Title:         r.Title,
		Author:        r.Author,
		Description:   r.Description,
		PublishedDate: r.PublishedDate,
	}
	if r.Rating != nil {
		b.Rating = *r.Rating
	}
	return b
}

// SeedBooks returns the sample catalog a fresh book service starts with.
func SeedBooks() []Book {
	return []Book{
		{ID: 1, Title: "Computer Science Pro", Author: "CodeWithRuby", Description: "A very nice book!", Rating: 5, PublishedDate: 2012},
		{ID: 2, Title: "Be Fast With FastAPI", Author: "CodeWithRuby", Description: "A great book!", Rating: 4, PublishedDate: 2020},
		{ID: 3, Title: "Master Endpoints", Author: "CodeWithRuby", Description: "A awesome book!", Rating: 5, PublishedDate: 2019},
		{ID: 4, Title: "HP1", Author: "Author 1", Description: "Book Description", Rating: 3, PublishedDate: 1997},
		{ID: 5, Title: "HP2", Author: "Author 2", Description: "Book Description", Rating: 1, PublishedDate: 1998},
		{ID: 6, Title: "HP3", Author: "Author 3", Description: "Book Description", Rating: 2, PublishedDate: 1999},
	}
}

const (
	BookEntity = "book"
)
