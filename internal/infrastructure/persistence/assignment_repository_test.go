package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stockroom/backend/internal/domain/ledger"
	"github.com/stockroom/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockAssignmentRepository(t *testing.T) (*GormAssignmentRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormAssignmentRepository(gormDB), mock, mockDB
}

func TestGormAssignmentRepository_Save(t *testing.T) {
	t.Run("inserts ledger row", func(t *testing.T) {
		repo, mock, mockDB := newMockAssignmentRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`INSERT INTO "item_assignments"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

		assignment, err := ledger.NewShipmentAssignment(3, 9, -5)
		require.NoError(t, err)

		err = repo.Save(context.Background(), assignment)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), assignment.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("translates balance violation into domain error", func(t *testing.T) {
		repo, mock, mockDB := newMockAssignmentRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`INSERT INTO "item_assignments"`).
			WillReturnError(errors.New("pq: assigned count larger than available count"))

		assignment, err := ledger.NewShipmentAssignment(3, 9, -500)
		require.NoError(t, err)

		err = repo.Save(context.Background(), assignment)

		assert.ErrorIs(t, err, shared.ErrAssignedCountExceedsAvailable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormAssignmentRepository_UpdateCountByShipmentAndItem(t *testing.T) {
	t.Run("updates matching row", func(t *testing.T) {
		repo, mock, mockDB := newMockAssignmentRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "item_assignments" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		updated, err := repo.UpdateCountByShipmentAndItem(context.Background(), 9, 3, -7)

		assert.NoError(t, err)
		assert.True(t, updated)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports no match", func(t *testing.T) {
		repo, mock, mockDB := newMockAssignmentRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "item_assignments" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		updated, err := repo.UpdateCountByShipmentAndItem(context.Background(), 9, 99, -7)

		assert.NoError(t, err)
		assert.False(t, updated)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("translates balance violation into domain error", func(t *testing.T) {
		repo, mock, mockDB := newMockAssignmentRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "item_assignments" SET`).
			WillReturnError(errors.New("pq: assigned count larger than available count"))

		updated, err := repo.UpdateCountByShipmentAndItem(context.Background(), 9, 3, -500)

		assert.False(t, updated)
		assert.ErrorIs(t, err, shared.ErrAssignedCountExceedsAvailable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormAssignmentRepository_DeleteByShipmentAndItem(t *testing.T) {
	t.Run("deletes matching row", func(t *testing.T) {
		repo, mock, mockDB := newMockAssignmentRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`DELETE FROM "item_assignments" WHERE shipment_id = \$1 AND item_id = \$2`).
			WithArgs(int64(9), int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		deleted, err := repo.DeleteByShipmentAndItem(context.Background(), 9, 3)

		assert.NoError(t, err)
		assert.True(t, deleted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports no match", func(t *testing.T) {
		repo, mock, mockDB := newMockAssignmentRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`DELETE FROM "item_assignments" WHERE shipment_id = \$1 AND item_id = \$2`).
			WithArgs(int64(9), int64(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		deleted, err := repo.DeleteByShipmentAndItem(context.Background(), 9, 99)

		assert.NoError(t, err)
		assert.False(t, deleted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormAssignmentRepository_SumByItem(t *testing.T) {
	repo, mock, mockDB := newMockAssignmentRepository(t)
	defer mockDB.Close()

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(assigned_count\), 0\) FROM "item_assignments" WHERE item_id = \$1`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(int64(12)))

	sum, err := repo.SumByItem(context.Background(), 3)

	assert.NoError(t, err)
	assert.Equal(t, int64(12), sum)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormExternalAssignmentRepository_Delete(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	dialector := postgres.New(postgres.Config{Conn: mockDB, DriverName: "postgres"})
	gormDB, err := gorm.Open(dialector, &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	repo := NewGormExternalAssignmentRepository(gormDB)

	t.Run("deletes anchor", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM "external_item_assignments" WHERE id = \$1`).
			WithArgs(int64(4)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		deleted, err := repo.Delete(context.Background(), 4)

		assert.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("translates cascade balance violation", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM "external_item_assignments" WHERE id = \$1`).
			WithArgs(int64(5)).
			WillReturnError(errors.New("pq: assigned count larger than available count"))

		deleted, err := repo.Delete(context.Background(), 5)

		assert.False(t, deleted)
		assert.ErrorIs(t, err, shared.ErrAssignedCountExceedsAvailable)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
