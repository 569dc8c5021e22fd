package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/fieldserve/backend/internal/domain/shared"
)

// newMockCustomerRepository creates a GormCustomerRepository with a mocked SQL connection
func newMockCustomerRepository(t *testing.T) (*GormCustomerRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormCustomerRepository(gormDB), mock, mockDB
}

func customerRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "name_normalized", "phone", "classification",
		"home_address_id", "is_admin", "is_technician", "activated", "version",
	})
}

func TestNewGormCustomerRepository(t *testing.T) {
	t.Run("creates repository with valid DB", func(t *testing.T) {
		repo, _, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		assert.NotNil(t, repo)
		assert.NotNil(t, repo.db)
	})
}

func TestGormCustomerRepository_FindByID(t *testing.T) {
	t.Run("finds existing customer", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		rows := customerRows().
			AddRow("ident-1", "Maria Santos", "maria santos", "5551234567", "residential",
				nil, false, false, true, 1)

		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("ident-1", 1).
			WillReturnRows(rows)

		found, err := repo.FindByID(context.Background(), "ident-1")

		assert.NoError(t, err)
		assert.NotNil(t, found)
		assert.Equal(t, "ident-1", found.ID)
		assert.Equal(t, "Maria Santos", found.Name)
		assert.True(t, found.Activated)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing customer", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("ident-missing", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		found, err := repo.FindByID(context.Background(), "ident-missing")

		assert.Error(t, err)
		assert.Nil(t, found)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCustomerRepository_FindByIDs(t *testing.T) {
	t.Run("returns empty slice for empty input", func(t *testing.T) {
		repo, _, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		found, err := repo.FindByIDs(context.Background(), nil)

		assert.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("finds multiple customers", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		rows := customerRows().
			AddRow("ident-1", "Maria Santos", "maria santos", "5551234567", "residential",
				nil, false, false, true, 1).
			AddRow("ident-2", "Joe Brown", "joe brown", "5559876543", "commercial",
				nil, true, true, true, 1)

		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE id IN \(\$1,\$2\)`).
			WithArgs("ident-1", "ident-2").
			WillReturnRows(rows)

		found, err := repo.FindByIDs(context.Background(), []string{"ident-1", "ident-2"})

		assert.NoError(t, err)
		assert.Len(t, found, 2)
		assert.Equal(t, "Joe Brown", found[1].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCustomerRepository_FindByPhoneFragment(t *testing.T) {
	t.Run("returns empty slice for empty digits", func(t *testing.T) {
		repo, _, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		found, err := repo.FindByPhoneFragment(context.Background(), "")

		assert.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("matches stored numbers containing the digits", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		rows := customerRows().
			AddRow("ident-1", "Maria Santos", "maria santos", "5551234567", "residential",
				nil, false, false, true, 1)

		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE phone LIKE \$1 OR \(phone <> '' AND \$2 LIKE '%' \|\| phone \|\| '%'\)`).
			WithArgs("%1234%", "1234").
			WillReturnRows(rows)

		found, err := repo.FindByPhoneFragment(context.Background(), "1234")

		assert.NoError(t, err)
		assert.Len(t, found, 1)
		assert.Equal(t, "5551234567", found[0].Phone)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCustomerRepository_FindByNameTokens(t *testing.T) {
	t.Run("returns empty slice for no tokens", func(t *testing.T) {
		repo, _, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		found, err := repo.FindByNameTokens(context.Background(), nil)

		assert.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("chains one LIKE clause per token", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		rows := customerRows().
			AddRow("ident-1", "Maria Santos", "maria santos", "5551234567", "residential",
				nil, false, false, true, 1)

		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE name_normalized LIKE \$1 AND name_normalized LIKE \$2`).
			WithArgs("%maria%", "%santos%").
			WillReturnRows(rows)

		found, err := repo.FindByNameTokens(context.Background(), []string{"maria", "santos"})

		assert.NoError(t, err)
		assert.Len(t, found, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCustomerRepository_FindAll(t *testing.T) {
	t.Run("applies pagination and default ordering", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		rows := customerRows().
			AddRow("ident-1", "Alice Green", "alice green", "5550001111", "residential",
				nil, false, false, true, 1)

		mock.ExpectQuery(`SELECT \* FROM "customers" ORDER BY name_normalized ASC LIMIT \$1`).
			WithArgs(20).
			WillReturnRows(rows)

		found, err := repo.FindAll(context.Background(), shared.Filter{Page: 1, PageSize: 20})

		assert.NoError(t, err)
		assert.Len(t, found, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("applies search across name and phone", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE \(name_normalized LIKE \$1 OR phone LIKE \$2\) ORDER BY name_normalized ASC`).
			WithArgs("%green%", "%green%").
			WillReturnRows(customerRows())

		found, err := repo.FindAll(context.Background(), shared.Filter{Search: "Green"})

		assert.NoError(t, err)
		assert.Empty(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCustomerRepository_Count(t *testing.T) {
	t.Run("counts with classification filter", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "customers" WHERE classification = \$1`).
			WithArgs("commercial").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		count, err := repo.Count(context.Background(), shared.Filter{
			Filters: map[string]interface{}{"classification": "commercial"},
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(3), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCustomerRepository_Delete(t *testing.T) {
	t.Run("deletes existing customer", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`DELETE FROM "customers" WHERE id = \$1`).
			WithArgs("ident-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), "ident-1")

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when nothing deleted", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`DELETE FROM "customers" WHERE id = \$1`).
			WithArgs("ident-missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), "ident-missing")

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
