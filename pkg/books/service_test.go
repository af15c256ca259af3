package books

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"testing"

	"github.com/bookloft/bookloft/pkg/assets"
	"github.com/bookloft/bookloft/pkg/config"
	"github.com/bookloft/bookloft/pkg/errcodes"
	"github.com/bookloft/bookloft/pkg/migrations"
	"github.com/bookloft/bookloft/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func newTestService(t *testing.T) (*Service, *assets.Manager, *bun.DB) {
	t.Helper()

	db := newTestDB(t)

	manager, err := assets.NewManager(t.TempDir())
	require.NoError(t, err)

	cfg := &config.Config{
		BookExtensions: []string{".txt"},
		MaxUploadBytes: 16 * 1024 * 1024,
	}

	return NewService(db, manager, cfg), manager, db
}

func createTestUser(ctx context.Context, t *testing.T, db *bun.DB, username string) *models.User {
	t.Helper()

	user := &models.User{Username: username, PasswordHash: "x"}
	_, err := db.NewInsert().Model(user).Exec(ctx)
	require.NoError(t, err)

	return user
}

// A one-pixel GIF; enough for content sniffing to call it an image.
var gifBytes = []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00\x00\x00\x00\xff\xff\xff,\x00\x00\x00\x00\x01\x00\x01\x00\x00\x02\x02D\x01\x00;")

func TestServiceUpload_RoundTrip(t *testing.T) {
	t.Parallel()

	svc, manager, db := newTestService(t)
	ctx := context.Background()

	user := createTestUser(ctx, t, db, "test")

	book, err := svc.Upload(ctx, UploadBookOptions{
		UserID:   user.ID,
		Filename: "huozhe.txt",
		Content:  []byte("活着的全部内容"),
		BookName: "活着",
		Author:   "余华",
	})
	require.NoError(t, err)

	assert.NotZero(t, book.ID)
	assert.Equal(t, user.ID, book.UserID)
	assert.Nil(t, book.CoverPath)
	assert.Equal(t, "books/huozhe.txt", book.FilePath)
	assert.Equal(t, "活着", book.BookName)
	// author was provided, so the default doesn't apply
	assert.Equal(t, "余华", book.Author)

	got, err := svc.Retrieve(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, book.FilePath, got.FilePath)

	data, err := manager.Read(got.FilePath)
	require.NoError(t, err)
	assert.Equal(t, []byte("活着的全部内容"), data)
}

func TestServiceUpload_AppliesDefaults(t *testing.T) {
	t.Parallel()

	svc, _, db := newTestService(t)
	ctx := context.Background()

	user := createTestUser(ctx, t, db, "test")

	book, err := svc.Upload(ctx, UploadBookOptions{
		UserID:   user.ID,
		Filename: "plain.txt",
		Content:  []byte("words"),
	})
	require.NoError(t, err)

	assert.Equal(t, "plain.txt", book.Title)
	assert.Equal(t, models.BookTypeDefault, book.BookType)
	assert.Equal(t, models.BookAuthorDefault, book.Author)
	assert.Zero(t, book.Price)
}

func TestServiceUpload_WithCover(t *testing.T) {
	t.Parallel()

	svc, manager, db := newTestService(t)
	ctx := context.Background()

	user := createTestUser(ctx, t, db, "test")

	book, err := svc.Upload(ctx, UploadBookOptions{
		UserID:        user.ID,
		Filename:      "huozhe.txt",
		Content:       []byte("content"),
		CoverFilename: "huozhe.gif",
		Cover:         gifBytes,
	})
	require.NoError(t, err)

	require.NotNil(t, book.CoverPath)
	assert.Equal(t, "covers/huozhe.gif", *book.CoverPath)

	data, err := manager.Read(*book.CoverPath)
	require.NoError(t, err)
	assert.Equal(t, gifBytes, data)
}

func TestServiceUpload_RejectsUnsupportedFormat(t *testing.T) {
	t.Parallel()

	svc, manager, db := newTestService(t)
	ctx := context.Background()

	user := createTestUser(ctx, t, db, "test")

	for name, opts := range map[string]UploadBookOptions{
		"wrong extension": {UserID: user.ID, Filename: "book.pdf", Content: []byte("x")},
		"no extension":    {UserID: user.ID, Filename: "book", Content: []byte("x")},
		"empty content":   {UserID: user.ID, Filename: "book.txt", Content: nil},
		"non-image cover": {
			UserID: user.ID, Filename: "book.txt", Content: []byte("x"),
			CoverFilename: "cover.jpg", Cover: []byte("not an image"),
		},
	} {
		_, err := svc.Upload(ctx, opts)

		var e *errcodes.Error
		require.ErrorAs(t, err, &e, "case: %s", name)
		assert.Equal(t, http.StatusBadRequest, e.HTTPCode, "case: %s", name)
		assert.Equal(t, "unsupported_format", e.Code, "case: %s", name)
	}

	// No record and no asset was created by any of the failed uploads.
	count, err := db.NewSelect().Model((*models.Book)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = manager.Read("books/book.txt")
	require.Error(t, err)
}

func TestServiceUpload_CaseInsensitiveExtension(t *testing.T) {
	t.Parallel()

	svc, _, db := newTestService(t)
	ctx := context.Background()

	user := createTestUser(ctx, t, db, "test")

	book, err := svc.Upload(ctx, UploadBookOptions{
		UserID:   user.ID,
		Filename: "SHOUTING.TXT",
		Content:  []byte("x"),
	})
	require.NoError(t, err)
	assert.Equal(t, "books/SHOUTING.TXT", book.FilePath)
}

func TestServiceUpload_UnknownOwner(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Upload(ctx, UploadBookOptions{
		UserID:   42,
		Filename: "book.txt",
		Content:  []byte("x"),
	})

	var e *errcodes.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, http.StatusBadRequest, e.HTTPCode)
}

func TestServiceDelete_RemovesRecordAndAssets(t *testing.T) {
	t.Parallel()

	svc, manager, db := newTestService(t)
	ctx := context.Background()

	user := createTestUser(ctx, t, db, "test")

	book, err := svc.Upload(ctx, UploadBookOptions{
		UserID:        user.ID,
		Filename:      "huozhe.txt",
		Content:       []byte("content"),
		CoverFilename: "huozhe.gif",
		Cover:         gifBytes,
	})
	require.NoError(t, err)

	err = svc.Delete(ctx, book.ID)
	require.NoError(t, err)

	_, err = svc.Retrieve(ctx, book.ID)
	require.ErrorIs(t, err, errcodes.NotFound("Book"))

	_, err = manager.Read(book.FilePath)
	require.ErrorIs(t, err, errcodes.NotFound("Asset"))
	_, err = manager.Read(*book.CoverPath)
	require.ErrorIs(t, err, errcodes.NotFound("Asset"))
}

func TestServiceDelete_NotFound(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)

	err := svc.Delete(context.Background(), 999)
	require.ErrorIs(t, err, errcodes.NotFound("Book"))
}

func TestServiceDelete_MissingAssetIsNotFatal(t *testing.T) {
	t.Parallel()

	svc, manager, db := newTestService(t)
	ctx := context.Background()

	user := createTestUser(ctx, t, db, "test")

	book, err := svc.Upload(ctx, UploadBookOptions{
		UserID:   user.ID,
		Filename: "huozhe.txt",
		Content:  []byte("content"),
	})
	require.NoError(t, err)

	// Simulate an out-of-band deletion of the backing file. The record is
	// still deleted.
	abs, err := manager.Resolve(book.FilePath)
	require.NoError(t, err)
	require.NoError(t, os.Remove(abs))

	err = svc.Delete(ctx, book.ID)
	require.NoError(t, err)

	_, err = svc.Retrieve(ctx, book.ID)
	require.ErrorIs(t, err, errcodes.NotFound("Book"))
}

func TestServiceList_FiltersByOwner(t *testing.T) {
	t.Parallel()

	svc, _, db := newTestService(t)
	ctx := context.Background()

	alice := createTestUser(ctx, t, db, "alice")
	bob := createTestUser(ctx, t, db, "bob")

	for _, upload := range []struct {
		userID   int
		filename string
	}{
		{alice.ID, "a1.txt"},
		{alice.ID, "a2.txt"},
		{bob.ID, "b1.txt"},
	} {
		_, err := svc.Upload(ctx, UploadBookOptions{
			UserID:   upload.userID,
			Filename: upload.filename,
			Content:  []byte("x"),
		})
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	aliceBooks, err := svc.List(ctx, &alice.ID)
	require.NoError(t, err)
	require.Len(t, aliceBooks, 2)
	for _, b := range aliceBooks {
		assert.Equal(t, alice.ID, b.UserID)
	}

	bobBooks, err := svc.List(ctx, &bob.ID)
	require.NoError(t, err)
	require.Len(t, bobBooks, 1)
	assert.Equal(t, "b1.txt", bobBooks[0].Title)
}

func TestServiceContent(t *testing.T) {
	t.Parallel()

	svc, manager, db := newTestService(t)
	ctx := context.Background()

	user := createTestUser(ctx, t, db, "test")

	book, err := svc.Upload(ctx, UploadBookOptions{
		UserID:   user.ID,
		Filename: "huozhe.txt",
		Content:  []byte("活着的全部内容"),
	})
	require.NoError(t, err)

	content, err := svc.Content(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "活着的全部内容", content)

	// A record whose file vanished reports the missing asset instead of
	// repairing or hiding it.
	abs, err := manager.Resolve(book.FilePath)
	require.NoError(t, err)
	require.NoError(t, os.Remove(abs))

	_, err = svc.Content(ctx, book.ID)
	require.ErrorIs(t, err, errcodes.NotFound("Asset"))

	_, err = svc.Content(ctx, 999)
	require.ErrorIs(t, err, errcodes.NotFound("Book"))
}

func TestServiceUpload_SameNameLastWriterWins(t *testing.T) {
	t.Parallel()

	svc, manager, db := newTestService(t)
	ctx := context.Background()

	user := createTestUser(ctx, t, db, "test")

	first, err := svc.Upload(ctx, UploadBookOptions{
		UserID:   user.ID,
		Filename: "same.txt",
		Content:  []byte("first"),
	})
	require.NoError(t, err)

	second, err := svc.Upload(ctx, UploadBookOptions{
		UserID:   user.ID,
		Filename: "same.txt",
		Content:  []byte("second"),
	})
	require.NoError(t, err)

	// Both records exist, but they share a file: last writer wins.
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.FilePath, second.FilePath)

	data, err := manager.Read(first.FilePath)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), data)
}
