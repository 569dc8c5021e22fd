package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/fieldserve/backend/internal/domain/customer"
)

func newMockActivationEmailRepository(t *testing.T) (*GormActivationEmailRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormActivationEmailRepository(gormDB), mock, mockDB
}

func TestGormActivationEmailRepository_Append(t *testing.T) {
	t.Run("inserts record and assigns id", func(t *testing.T) {
		repo, mock, mockDB := newMockActivationEmailRepository(t)
		defer mockDB.Close()

		issuedAt := time.Now().UTC()
		record, err := customer.NewActivationEmailRecord("ident-1", "203.0.113.9", "curl/8.0", issuedAt)
		require.NoError(t, err)

		mock.ExpectQuery(`INSERT INTO "activation_emails"`).
			WithArgs("ident-1", issuedAt, "203.0.113.9", "curl/8.0").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

		err = repo.Append(context.Background(), record)

		assert.NoError(t, err)
		assert.Equal(t, int64(42), record.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormActivationEmailRepository_CountSince(t *testing.T) {
	t.Run("counts rows inside the window", func(t *testing.T) {
		repo, mock, mockDB := newMockActivationEmailRepository(t)
		defer mockDB.Close()

		cutoff := time.Now().UTC().Add(-time.Hour)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "activation_emails" WHERE customer_id = \$1 AND issued_at >= \$2`).
			WithArgs("ident-1", cutoff).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		count, err := repo.CountSince(context.Background(), "ident-1", cutoff)

		assert.NoError(t, err)
		assert.Equal(t, int64(2), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("propagates query errors", func(t *testing.T) {
		repo, mock, mockDB := newMockActivationEmailRepository(t)
		defer mockDB.Close()

		cutoff := time.Now().UTC().Add(-time.Hour)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "activation_emails"`).
			WillReturnError(assert.AnError)

		count, err := repo.CountSince(context.Background(), "ident-1", cutoff)

		assert.Error(t, err)
		assert.Equal(t, int64(0), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
