package db

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sqlmock "github.com/zhashkevych/go-sqlxmock"

	"github.com/SimplyAvi/Dynable-live-sub000/tagger/core"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.Newx()
	require.NoError(t, err)

	return &DB{
		log:  newTestLogger(),
		conn: conn,
	}, mock
}

func TestCanonicals(t *testing.T) {
	storage, mock := newMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "name", "aliases"}).
		AddRow(1, "flour", "{all-purpose flour}").
		AddRow(2, "milk", "{}")

	mock.ExpectQuery(`SELECT id, name, aliases`).
		WillReturnRows(rows)

	got, err := storage.Canonicals(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "flour", got[0].Name)
	assert.Equal(t, []string{"all-purpose flour"}, got[0].Aliases)
}

func TestProducts_Untagged(t *testing.T) {
	storage, mock := newMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "description", "brand_owner", "canonical_tag", "tag_confidence", "allergens"}).
		AddRow(10, "All-Purpose Flour", "Gold Medal", nil, "none", "{gluten,wheat}")

	mock.ExpectQuery(`WHERE canonical_tag IS NULL`).
		WillReturnRows(rows)

	got, err := storage.Products(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, core.Product{
		ID:            10,
		Description:   "All-Purpose Flour",
		BrandOwner:    "Gold Medal",
		TagConfidence: core.ConfidenceNone,
		Allergens:     []string{"gluten", "wheat"},
	}, got[0])
}

func TestProducts_Tagged(t *testing.T) {
	storage, mock := newMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "description", "brand_owner", "canonical_tag", "tag_confidence", "allergens"}).
		AddRow(11, "Whole Milk", "DairyPure", "milk", "confident", "{dairy}")

	mock.ExpectQuery(`WHERE canonical_tag IS NOT NULL`).
		WillReturnRows(rows)

	got, err := storage.TaggedProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "milk", got[0].CanonicalTag)
	assert.Equal(t, core.ConfidenceConfident, got[0].TagConfidence)
}

func TestSetTag(t *testing.T) {
	storage, mock := newMockDB(t)

	mock.ExpectExec(`UPDATE products`).
		WithArgs(int64(10), "flour", "confident").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := storage.SetTag(context.Background(), 10, "flour", core.ConfidenceConfident)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetTag_SameValuesIsNoop(t *testing.T) {
	storage, mock := newMockDB(t)

	// zero rows affected, still no error
	mock.ExpectExec(`UPDATE products`).
		WithArgs(int64(10), "flour", "confident").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := storage.SetTag(context.Background(), 10, "flour", core.ConfidenceConfident)
	require.NoError(t, err)
}

func TestClearTag(t *testing.T) {
	storage, mock := newMockDB(t)

	mock.ExpectExec(`UPDATE products`).
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, storage.ClearTag(context.Background(), 10))
}

func TestSetTag_NonRetryableError(t *testing.T) {
	storage, mock := newMockDB(t)

	mock.ExpectExec(`UPDATE products`).
		WithArgs(int64(10), "flour", "confident").
		WillReturnError(assert.AnError)

	err := storage.SetTag(context.Background(), 10, "flour", core.ConfidenceConfident)
	require.ErrorIs(t, err, assert.AnError)
}
