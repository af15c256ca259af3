package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	// BookTypeDefault is the catalog category used when an upload doesn't
	// specify one.
	BookTypeDefault = "Other"
	// BookAuthorDefault is the placeholder used when an upload doesn't name an
	// author.
	BookAuthorDefault = "Unknown"
)

type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID         int       `bun:",pk,nullzero" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	UserID     int       `bun:",nullzero" json:"user_id"`
	Title      string    `bun:",nullzero" json:"title"`
	BookNumber string    `json:"book_number"`
	BookName   string    `json:"book_name"`
	BookType   string    `bun:",nullzero" json:"book_type"`
	Price      float64   `json:"price"`
	Author     string    `bun:",nullzero" json:"author"`
	Publisher  string    `json:"publisher"`

	// CoverPath and FilePath are references relative to the upload root
	// (e.g. "covers/huozhe.jpg", "books/huozhe.txt"). They are storage
	// details and are never serialized directly; responses render them as
	// /uploads/<ref> URLs.
	CoverPath *string `json:"-"`
	FilePath  string  `bun:",nullzero" json:"-"`
}
