package books

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"time"

	"github.com/bookloft/bookloft/pkg/assets"
	"github.com/bookloft/bookloft/pkg/config"
	"github.com/bookloft/bookloft/pkg/errcodes"
	"github.com/bookloft/bookloft/pkg/models"
	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// UploadBookOptions carries everything needed to create a book: the content
// file, an optional cover, and caller-supplied metadata.
type UploadBookOptions struct {
	UserID        int
	Filename      string
	Content       []byte
	CoverFilename string
	Cover         []byte

	Title      string
	BookNumber string
	BookName   string
	BookType   string
	Price      float64
	Author     string
	Publisher  string
}

// Service orchestrates upload validation, asset storage, and record
// bookkeeping. It is the one place where the record/file consistency
// invariants are enforced.
type Service struct {
	store  store
	assets *assets.Manager
	cfg    *config.Config
}

func NewService(db *bun.DB, manager *assets.Manager, cfg *config.Config) *Service {
	return &Service{
		store:  store{db: db},
		assets: manager,
		cfg:    cfg,
	}
}

// Upload validates the content file, stores the assets, and creates the book
// record. All validation happens before any file or row is written. If the
// record insert fails after files were written, cleanup is attempted but an
// orphaned file is accepted over a half-created book.
func (svc *Service) Upload(ctx context.Context, opts UploadBookOptions) (*models.Book, error) {
	if len(opts.Content) == 0 {
		return nil, errcodes.UnsupportedFormat("Uploaded file is empty.")
	}
	if !svc.acceptedExtension(opts.Filename) {
		return nil, errcodes.UnsupportedFormat("Only " + strings.Join(svc.cfg.BookExtensions, ", ") + " files are supported.")
	}

	exists, err := svc.store.ownerExists(ctx, opts.UserID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errcodes.ValidationError("Unknown user_id")
	}

	hasCover := opts.CoverFilename != "" && len(opts.Cover) > 0
	if hasCover && !strings.HasPrefix(mimetype.Detect(opts.Cover).String(), "image/") {
		return nil, errcodes.UnsupportedFormat("Cover must be an image file.")
	}

	var coverRef *string
	if hasCover {
		ref, err := svc.assets.Store(assets.KindCover, opts.CoverFilename, opts.Cover)
		if err != nil {
			return nil, err
		}
		coverRef = &ref
	}

	contentRef, err := svc.assets.Store(assets.KindContent, opts.Filename, opts.Content)
	if err != nil {
		// The cover is already on disk. Cleanup is best-effort; an orphaned
		// cover is acceptable.
		if coverRef != nil {
			svc.assets.Remove(*coverRef)
		}
		return nil, err
	}

	now := time.Now()
	book := &models.Book{
		CreatedAt:  now,
		UpdatedAt:  now,
		UserID:     opts.UserID,
		Title:      opts.Title,
		BookNumber: opts.BookNumber,
		BookName:   opts.BookName,
		BookType:   opts.BookType,
		Price:      opts.Price,
		Author:     opts.Author,
		Publisher:  opts.Publisher,
		CoverPath:  coverRef,
		FilePath:   contentRef,
	}
	if book.Title == "" {
		book.Title = opts.Filename
	}
	if book.BookType == "" {
		book.BookType = models.BookTypeDefault
	}
	if book.Author == "" {
		book.Author = models.BookAuthorDefault
	}

	if err := svc.store.create(ctx, book); err != nil {
		svc.assets.Remove(contentRef)
		if coverRef != nil {
			svc.assets.Remove(*coverRef)
		}
		return nil, err
	}

	return book, nil
}

// Retrieve gets a book by ID.
func (svc *Service) Retrieve(ctx context.Context, id int) (*models.Book, error) {
	book, err := svc.store.retrieve(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Book")
		}
		return nil, err
	}
	return book, nil
}

// List returns all books, optionally filtered by owner.
func (svc *Service) List(ctx context.Context, userID *int) ([]*models.Book, error) {
	return svc.store.list(ctx, userID)
}

// Delete removes the book's assets (best-effort) and then the record. The
// record is deleted even when asset removal fails; orphaned files are logged,
// not reconciled.
func (svc *Service) Delete(ctx context.Context, id int) error {
	book, err := svc.Retrieve(ctx, id)
	if err != nil {
		return err
	}

	svc.assets.Remove(book.FilePath)
	if book.CoverPath != nil {
		svc.assets.Remove(*book.CoverPath)
	}

	deleted, err := svc.store.delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		// Lost a race with a concurrent delete.
		return errcodes.NotFound("Book")
	}

	return nil
}

// Content returns the book's text content. A record whose content file is
// missing from storage is a consistency violation: reported as a missing
// asset, not auto-repaired.
func (svc *Service) Content(ctx context.Context, id int) (string, error) {
	book, err := svc.Retrieve(ctx, id)
	if err != nil {
		return "", err
	}

	data, err := svc.assets.Read(book.FilePath)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

func (svc *Service) acceptedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, accepted := range svc.cfg.BookExtensions {
		if ext == strings.ToLower(accepted) {
			return true
		}
	}
	return false
}
