package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockItemRepository creates a GormItemRepository with a mocked SQL connection
func newMockItemRepository(t *testing.T) (*GormItemRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormItemRepository(gormDB), mock, mockDB
}

func TestGormItemRepository_FindByID(t *testing.T) {
	t.Run("finds existing item", func(t *testing.T) {
		repo, mock, mockDB := newMockItemRepository(t)
		defer mockDB.Close()

		now := time.Now()
		rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at", "name", "deletion_id"}).
			AddRow(int64(1), now, now, "Widget", nil)

		mock.ExpectQuery(`SELECT \* FROM "items" WHERE id = \$1`).
			WithArgs(int64(1), 1).
			WillReturnRows(rows)

		item, err := repo.FindByID(context.Background(), 1)

		assert.NoError(t, err)
		require.NotNil(t, item)
		assert.Equal(t, int64(1), item.ID)
		assert.Equal(t, "Widget", item.Name)
		assert.False(t, item.IsDeleted())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns domain error for unknown id", func(t *testing.T) {
		repo, mock, mockDB := newMockItemRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "items" WHERE id = \$1`).
			WithArgs(int64(99), 1).
			WillReturnError(gorm.ErrRecordNotFound)

		item, err := repo.FindByID(context.Background(), 99)

		assert.Nil(t, item)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormItemRepository_FindActiveByID(t *testing.T) {
	t.Run("derives count from ledger rows", func(t *testing.T) {
		repo, mock, mockDB := newMockItemRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"id", "name", "count"}).
			AddRow(int64(1), "Widget", int64(12))

		mock.ExpectQuery(`SELECT items.id, items.name, COALESCE\(SUM\(item_assignments.assigned_count\), 0\) AS count FROM "items"`).
			WithArgs(int64(1), 1).
			WillReturnRows(rows)

		row, err := repo.FindActiveByID(context.Background(), 1)

		assert.NoError(t, err)
		require.NotNil(t, row)
		assert.Equal(t, int64(12), row.Count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("treats deleted item as not found", func(t *testing.T) {
		repo, mock, mockDB := newMockItemRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT items.id, items.name, COALESCE\(SUM\(item_assignments.assigned_count\), 0\) AS count FROM "items"`).
			WithArgs(int64(2), 1).
			WillReturnError(gorm.ErrRecordNotFound)

		row, err := repo.FindActiveByID(context.Background(), 2)

		assert.Nil(t, row)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormItemRepository_FindAllActive(t *testing.T) {
	repo, mock, mockDB := newMockItemRepository(t)
	defer mockDB.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "count"}).
		AddRow(int64(1), "Widget", int64(5)).
		AddRow(int64(2), "Gadget", int64(0))

	mock.ExpectQuery(`SELECT items.id, items.name, COALESCE\(SUM\(item_assignments.assigned_count\), 0\) AS count FROM "items"`).
		WillReturnRows(rows)

	items, err := repo.FindAllActive(context.Background())

	assert.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Widget", items[0].Name)
	assert.Equal(t, int64(0), items[1].Count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormItemRepository_FindAllDeleted(t *testing.T) {
	repo, mock, mockDB := newMockItemRepository(t)
	defer mockDB.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "count", "deletion_id", "comment"}).
		AddRow(int64(3), "Broken widget", int64(2), int64(7), "damaged stock")

	mock.ExpectQuery(`SELECT items.id, items.name, COALESCE\(SUM\(item_assignments.assigned_count\), 0\) AS count, items.deletion_id, deletions.comment FROM "items"`).
		WillReturnRows(rows)

	items, err := repo.FindAllDeleted(context.Background())

	assert.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(7), items[0].DeletionID)
	assert.Equal(t, "damaged stock", items[0].Comment)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormItemRepository_SearchActiveByName(t *testing.T) {
	repo, mock, mockDB := newMockItemRepository(t)
	defer mockDB.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "count"}).
		AddRow(int64(1), "Widget", int64(5))

	mock.ExpectQuery(`SELECT items.id, items.name, COALESCE\(SUM\(item_assignments.assigned_count\), 0\) AS count FROM "items"`).
		WithArgs("%wid%", 10).
		WillReturnRows(rows)

	items, err := repo.SearchActiveByName(context.Background(), "wid", 10)

	assert.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Widget", items[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormItemRepository_Save(t *testing.T) {
	t.Run("inserts new item", func(t *testing.T) {
		repo, mock, mockDB := newMockItemRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`INSERT INTO "items"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

		item, err := inventory.NewItem("Widget")
		require.NoError(t, err)

		err = repo.Save(context.Background(), item)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), item.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("updates existing item", func(t *testing.T) {
		repo, mock, mockDB := newMockItemRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "items" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		item, err := inventory.NewItem("Widget")
		require.NoError(t, err)
		item.ID = 1

		err = repo.Save(context.Background(), item)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
