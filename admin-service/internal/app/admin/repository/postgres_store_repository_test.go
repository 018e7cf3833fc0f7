package repository

import (
	"context"
	"database/sql"
	"testing"

	"wayfarer/admin-service/internal/app/admin/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type PostgresStoreRepositorySuite struct {
	suite.Suite
	db    *sql.DB
	mock  sqlmock.Sqlmock
	store StoreRepository
}

func (s *PostgresStoreRepositorySuite) SetupTest() {
	db, mock, err := sqlmock.New()
	s.Require().NoError(err)
	s.db = db
	s.mock = mock

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	s.Require().NoError(err)

	s.store = NewPostgresStoreRepository(gormDB)
}

func (s *PostgresStoreRepositorySuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
	s.db.Close()
}

func (s *PostgresStoreRepositorySuite) expectLoadKey(key string, value []byte) {
	rows := sqlmock.NewRows([]string{"key", "value"})
	if value != nil {
		rows.AddRow(key, value)
	}
	s.mock.ExpectQuery(`SELECT \* FROM "store_entries" WHERE key = \$1`).
		WithArgs(key, 1).
		WillReturnRows(rows)
}

func (s *PostgresStoreRepositorySuite) TestLoad_EmptyTable() {
	s.expectLoadKey(LocationsStoreKey, nil)
	s.expectLoadKey(ReviewsStoreKey, nil)

	locations, reviews, err := s.store.Load(context.Background())

	s.Require().NoError(err)
	s.Empty(locations)
	s.Empty(reviews)
}

func (s *PostgresStoreRepositorySuite) TestLoad_DecodesStoredCollections() {
	s.expectLoadKey(LocationsStoreKey, []byte(`[{"id":1,"name":"Central Park","category":"attraction"}]`))
	s.expectLoadKey(ReviewsStoreKey, []byte(`[{"id":10,"locationId":1,"rating":5,"status":"approved"}]`))

	locations, reviews, err := s.store.Load(context.Background())

	s.Require().NoError(err)
	s.Require().Len(locations, 1)
	s.Require().Len(reviews, 1)
	s.Equal("Central Park", locations[0].Name)
	s.Equal(entity.ReviewStatusApproved, reviews[0].Status)
}

func (s *PostgresStoreRepositorySuite) TestLoad_CorruptedValueTreatedAsEmpty() {
	s.expectLoadKey(LocationsStoreKey, []byte(`{not json`))
	s.expectLoadKey(ReviewsStoreKey, []byte(`[]`))

	locations, reviews, err := s.store.Load(context.Background())

	s.Require().NoError(err)
	s.Empty(locations)
	s.Empty(reviews)
}

func (s *PostgresStoreRepositorySuite) TestSave_UpsertsBothRows() {
	s.mock.ExpectBegin()
	s.mock.ExpectExec(`INSERT INTO "store_entries" .+ ON CONFLICT \("key"\) DO UPDATE`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	s.mock.ExpectCommit()

	err := s.store.Save(context.Background(),
		[]entity.Location{{ID: 1, Name: "Central Park"}},
		[]entity.Review{{ID: 10, LocationID: 1}},
	)

	s.NoError(err)
}

func (s *PostgresStoreRepositorySuite) TestClear_DeletesBothRows() {
	s.mock.ExpectBegin()
	s.mock.ExpectExec(`DELETE FROM "store_entries" WHERE key IN`).
		WithArgs(LocationsStoreKey, ReviewsStoreKey).
		WillReturnResult(sqlmock.NewResult(0, 2))
	s.mock.ExpectCommit()

	s.NoError(s.store.Clear(context.Background()))
}

func TestPostgresStoreRepositorySuite(t *testing.T) {
	suite.Run(t, new(PostgresStoreRepositorySuite))
}
