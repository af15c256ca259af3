package books

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/bookloft/bookloft/pkg/errcodes"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	bookService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListBooksQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	books, err := h.bookService.List(ctx, params.UserID)
	if err != nil {
		return err
	}

	results := make([]BookSummary, 0, len(books))
	for _, b := range books {
		results = append(results, newBookSummary(b))
	}

	return c.JSON(http.StatusOK, ListBooksResponse{
		Status:  "success",
		Results: results,
	})
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	book, err := h.bookService.Retrieve(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, RetrieveBookResponse{
		Status: "success",
		Result: newBookDetail(book),
	})
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := UploadBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	fileHeader, ok := params.FormFiles["file"]
	if !ok {
		return errcodes.ValidationError("No file uploaded")
	}

	content, err := readFormFile(fileHeader)
	if err != nil {
		return errors.WithStack(err)
	}

	opts := UploadBookOptions{
		UserID:     params.UserID,
		Filename:   fileHeader.Filename,
		Content:    content,
		Title:      params.Title,
		BookNumber: params.BookNumber,
		BookName:   params.BookName,
		BookType:   params.BookType,
		Price:      params.Price,
		Author:     params.Author,
		Publisher:  params.Publisher,
	}

	if coverHeader, ok := params.FormFiles["cover_image"]; ok && coverHeader.Filename != "" {
		cover, err := readFormFile(coverHeader)
		if err != nil {
			return errors.WithStack(err)
		}
		opts.CoverFilename = coverHeader.Filename
		opts.Cover = cover
	}

	book, err := h.bookService.Upload(ctx, opts)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, UploadBookResponse{
		Status: "success",
		BookID: book.ID,
	})
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	if err := h.bookService.Delete(ctx, id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, StatusResponse{Status: "success"})
}

func (h *handler) content(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	content, err := h.bookService.Content(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, BookContentResponse{
		Status:  "success",
		Content: content,
	})
}

func readFormFile(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}
