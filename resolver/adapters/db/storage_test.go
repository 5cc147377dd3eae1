package db

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sqlmock "github.com/zhashkevych/go-sqlxmock"

	"github.com/SimplyAvi/Dynable-live-sub000/resolver/core"
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

func TestMappingByName(t *testing.T) {
	storage, mock := newMockDB(t)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "messy_name", "canonical_id"}).
		AddRow(4, "rapidrise yeast", 2)

	mock.ExpectQuery(`SELECT id, messy_name, canonical_id`).
		WithArgs("rapidrise yeast").
		WillReturnRows(rows)

	got, err := storage.MappingByName(ctx, "rapidrise yeast")
	require.NoError(t, err)
	assert.Equal(t, core.Mapping{ID: 4, MessyName: "rapidrise yeast", CanonicalID: 2}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMappingByName_NotFound(t *testing.T) {
	storage, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT id, messy_name, canonical_id`).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"id", "messy_name", "canonical_id"}))

	_, err := storage.MappingByName(context.Background(), "nope")
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestMappingsContaining(t *testing.T) {
	storage, mock := newMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "messy_name", "canonical_id"}).
		AddRow(1, "dry yeast", 2).
		AddRow(2, "instant dry yeast packets", 2)

	mock.ExpectQuery(`SELECT id, messy_name, canonical_id`).
		WithArgs("yeast").
		WillReturnRows(rows)

	got, err := storage.MappingsContaining(context.Background(), "yeast")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "dry yeast", got[0].MessyName)
}

func TestCanonicalByNameOrAlias(t *testing.T) {
	storage, mock := newMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "name", "aliases", "allergens"}).
		AddRow(3, "flour", "{all-purpose flour,plain flour}", "{gluten,wheat}")

	mock.ExpectQuery(`FROM canonical_ingredients`).
		WithArgs("all-purpose flour").
		WillReturnRows(rows)

	got, err := storage.CanonicalByNameOrAlias(context.Background(), "all-purpose flour")
	require.NoError(t, err)
	assert.Equal(t, core.Canonical{
		ID:        3,
		Name:      "flour",
		Aliases:   []string{"all-purpose flour", "plain flour"},
		Allergens: []string{"gluten", "wheat"},
	}, got)
}

func TestCanonicalByNameOrAlias_NotFound(t *testing.T) {
	storage, mock := newMockDB(t)

	mock.ExpectQuery(`FROM canonical_ingredients`).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "aliases", "allergens"}))

	_, err := storage.CanonicalByNameOrAlias(context.Background(), "nope")
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestAddMapping_Idempotent(t *testing.T) {
	storage, mock := newMockDB(t)

	// second insert touches zero rows, still no error
	mock.ExpectExec(`INSERT INTO messy_ingredient_mappings`).
		WithArgs("dry yeast", int64(2)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO messy_ingredient_mappings`).
		WithArgs("dry yeast", int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, storage.AddMapping(context.Background(), "dry yeast", 2))
	require.NoError(t, storage.AddMapping(context.Background(), "dry yeast", 2))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCanonical(t *testing.T) {
	storage, mock := newMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "name", "aliases", "allergens"}).
		AddRow(42, "dragon fruit syrup", "{}", "{}")

	mock.ExpectQuery(`INSERT INTO canonical_ingredients`).
		WithArgs("dragon fruit syrup").
		WillReturnRows(rows)

	got, err := storage.CreateCanonical(context.Background(), "dragon fruit syrup")
	require.NoError(t, err)
	assert.EqualValues(t, 42, got.ID)
	assert.Empty(t, got.Aliases)
}

func TestQueryError(t *testing.T) {
	storage, mock := newMockDB(t)

	mock.ExpectQuery(`FROM canonical_ingredients`).
		WithArgs("flour").
		WillReturnError(assert.AnError)

	_, err := storage.CanonicalByNameOrAlias(context.Background(), "flour")
	require.ErrorIs(t, err, assert.AnError)
	require.NoError(t, mock.ExpectationsWereMet())
}
