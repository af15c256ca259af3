package books

import (
	"time"

	"github.com/bookloft/bookloft/pkg/models"
)

// BookSummary is the list representation of a book. It omits the content
// reference; covers are rendered as server-relative /uploads URLs.
type BookSummary struct {
	ID         int       `json:"id"`
	Title      string    `json:"title"`
	BookNumber string    `json:"book_number"`
	BookName   string    `json:"book_name"`
	BookType   string    `json:"book_type"`
	Price      float64   `json:"price"`
	Author     string    `json:"author"`
	Publisher  string    `json:"publisher"`
	CoverImage *string   `json:"cover_image"`
	UploadTime time.Time `json:"upload_time"`
}

// BookDetail additionally exposes the content asset's servable URL.
type BookDetail struct {
	BookSummary
	FilePath string `json:"file_path"`
}

const uploadsPrefix = "/uploads/"

func newBookSummary(b *models.Book) BookSummary {
	var cover *string
	if b.CoverPath != nil && *b.CoverPath != "" {
		url := uploadsPrefix + *b.CoverPath
		cover = &url
	}

	return BookSummary{
		ID:         b.ID,
		Title:      b.Title,
		BookNumber: b.BookNumber,
		BookName:   b.BookName,
		BookType:   b.BookType,
		Price:      b.Price,
		Author:     b.Author,
		Publisher:  b.Publisher,
		CoverImage: cover,
		UploadTime: b.CreatedAt,
	}
}

func newBookDetail(b *models.Book) BookDetail {
	return BookDetail{
		BookSummary: newBookSummary(b),
		FilePath:    uploadsPrefix + b.FilePath,
	}
}
