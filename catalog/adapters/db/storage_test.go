package db

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sqlmock "github.com/zhashkevych/go-sqlxmock"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.Newx()
	require.NoError(t, err)

	return &DB{
		log:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		conn: conn,
	}, mock
}

func TestProductsByTag(t *testing.T) {
	storage, mock := newMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "description", "brand_owner", "canonical_tag", "tag_confidence", "allergens"}).
		AddRow(2, "2% Milk", "Generic", "milk", "confident", "{dairy}").
		AddRow(1, "Whole Milk", "DairyPure", "milk", "verified", "{dairy}")

	mock.ExpectQuery(`FROM products`).
		WithArgs("milk").
		WillReturnRows(rows)

	got, err := storage.ProductsByTag(context.Background(), "milk")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2% Milk", got[0].Description)
	assert.Equal(t, []string{"dairy"}, got[0].Allergens)
	assert.Equal(t, "milk", got[1].CanonicalTag)
}

func TestSubstitutes(t *testing.T) {
	storage, mock := newMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "canonical_id", "substitute_name", "notes"}).
		AddRow(1, 5, "almond milk", "nut allergen").
		AddRow(2, 5, "oat milk", nil)

	mock.ExpectQuery(`FROM ingredient_substitutes`).
		WithArgs("milk").
		WillReturnRows(rows)

	got, err := storage.Substitutes(context.Background(), "milk")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "almond milk", got[0].Name)
	assert.Equal(t, "nut allergen", got[0].Notes)
	assert.Empty(t, got[1].Notes)
}

func TestHasProductWithTag(t *testing.T) {
	storage, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("milk").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := storage.HasProductWithTag(context.Background(), "milk")
	require.NoError(t, err)
	assert.True(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductsByTag_QueryError(t *testing.T) {
	storage, mock := newMockDB(t)

	mock.ExpectQuery(`FROM products`).
		WithArgs("milk").
		WillReturnError(assert.AnError)

	_, err := storage.ProductsByTag(context.Background(), "milk")
	require.ErrorIs(t, err, assert.AnError)
}
