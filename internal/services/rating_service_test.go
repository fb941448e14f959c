package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stayserve/marketplace-backend/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRatingService(t *testing.T) (*RatingService, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	postgresDB := &database.PostgresDB{DB: sqlxDB}

	service := NewRatingService(
		database.NewBookingRepository(postgresDB),
		database.NewProviderRepository(postgresDB),
		discardLogger(),
	)

	cleanup := func() { db.Close() }
	return service, mock, cleanup
}

func TestRecompute(t *testing.T) {
	service, mock, cleanup := setupRatingService(t)
	defer cleanup()

	mock.ExpectQuery("review->>'rating'").WithArgs("prov-1").
		WillReturnRows(sqlmock.NewRows([]string{"rating"}).AddRow(5).AddRow(4).AddRow(4))
	// (5+4+4)/3 = 4.333..., stored rounded to one decimal
	mock.ExpectExec("UPDATE providers SET average_rating").
		WithArgs("prov-1", 4.3, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, service.Recompute("prov-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecompute_RoundsHalfUp(t *testing.T) {
	service, mock, cleanup := setupRatingService(t)
	defer cleanup()

	// (5+4)/2 = 4.5, stays 4.5; (5+4+4+4)/4 = 4.25 rounds to 4.3
	mock.ExpectQuery("review->>'rating'").WithArgs("prov-1").
		WillReturnRows(sqlmock.NewRows([]string{"rating"}).AddRow(5).AddRow(4).AddRow(4).AddRow(4))
	mock.ExpectExec("UPDATE providers SET average_rating").
		WithArgs("prov-1", 4.3, 4).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, service.Recompute("prov-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecompute_NoReviewsResetsToZero(t *testing.T) {
	service, mock, cleanup := setupRatingService(t)
	defer cleanup()

	mock.ExpectQuery("review->>'rating'").WithArgs("prov-1").
		WillReturnRows(sqlmock.NewRows([]string{"rating"}))
	mock.ExpectExec("UPDATE providers SET average_rating").
		WithArgs("prov-1", 0.0, 0).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, service.Recompute("prov-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecompute_QueryFailure(t *testing.T) {
	service, mock, cleanup := setupRatingService(t)
	defer cleanup()

	mock.ExpectQuery("review->>'rating'").WithArgs("prov-1").
		WillReturnError(assert.AnError)

	err := service.Recompute("prov-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prov-1")
}
