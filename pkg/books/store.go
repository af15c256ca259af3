package books

import (
	"context"

	"github.com/bookloft/bookloft/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// store is the thin CRUD layer over book records. No joins, no transactions
// beyond single-row atomicity; cross-cutting invariants live in Service.
type store struct {
	db *bun.DB
}

func (st *store) create(ctx context.Context, book *models.Book) error {
	_, err := st.db.NewInsert().Model(book).Exec(ctx)
	return errors.WithStack(err)
}

func (st *store) retrieve(ctx context.Context, id int) (*models.Book, error) {
	book := &models.Book{}
	err := st.db.NewSelect().
		Model(book).
		Where("b.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return book, nil
}

func (st *store) list(ctx context.Context, userID *int) ([]*models.Book, error) {
	books := []*models.Book{}

	query := st.db.NewSelect().
		Model(&books).
		Order("b.id ASC")

	if userID != nil {
		query = query.Where("b.user_id = ?", *userID)
	}

	if err := query.Scan(ctx); err != nil {
		return nil, errors.WithStack(err)
	}

	return books, nil
}

// delete removes the record by id and reports whether a row existed.
func (st *store) delete(ctx context.Context, id int) (bool, error) {
	res, err := st.db.NewDelete().
		Model((*models.Book)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return false, errors.WithStack(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, errors.WithStack(err)
	}

	return affected > 0, nil
}

func (st *store) ownerExists(ctx context.Context, userID int) (bool, error) {
	exists, err := st.db.NewSelect().
		Model((*models.User)(nil)).
		Where("id = ?", userID).
		Exists(ctx)
	return exists, errors.WithStack(err)
}
