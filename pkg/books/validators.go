package books

import "mime/multipart"

// UploadBookPayload represents the multipart form for uploading a book. The
// content file arrives under the "file" key and the optional cover under
// "cover_image"; both land in FormFiles.
type UploadBookPayload struct {
	UserID     int     `form:"user_id" validate:"required"`
	Title      string  `form:"title"`
	BookNumber string  `form:"book_number"`
	BookName   string  `form:"book_name"`
	BookType   string  `form:"book_type"`
	Price      float64 `form:"price" validate:"gte=0"`
	Author     string  `form:"author"`
	Publisher  string  `form:"publisher"`

	FormFiles map[string]*multipart.FileHeader `form:"-" json:"-"`
}

// ListBooksQuery represents the query parameters for listing books.
type ListBooksQuery struct {
	UserID *int `query:"user_id"`
}

// ListBooksResponse is the success body for GET /api/books.
type ListBooksResponse struct {
	Status  string        `json:"status"`
	Results []BookSummary `json:"results"`
}

// RetrieveBookResponse is the success body for GET /api/books/:id.
type RetrieveBookResponse struct {
	Status string     `json:"status"`
	Result BookDetail `json:"result"`
}

// UploadBookResponse is the success body for POST /api/books.
type UploadBookResponse struct {
	Status string `json:"status"`
	BookID int    `json:"book_id"`
}

// BookContentResponse is the success body for GET /api/books/:id/content.
type BookContentResponse struct {
	Status  string `json:"status"`
	Content string `json:"content"`
}

// StatusResponse is the bare success body for DELETE /api/books/:id.
type StatusResponse struct {
	Status string `json:"status"`
}
