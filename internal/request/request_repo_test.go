package request_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"go-workforce/internal/request"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRequestRepoTest(t *testing.T) (request.Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger:               logger.Discard,
		DisableAutomaticPing: true,
	})
	assert.NoError(t, err)

	return request.NewRepository(gdb), mock
}

func requestRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "requester_id", "creator_id", "last_modifier_id",
		"type", "status", "description", "start_date", "end_date",
	})
}

// The overlap predicate is deliberately asymmetric: an existing request
// ending exactly on the candidate's start date does not collide, one
// starting exactly on the candidate's end date does.
const overlapPredicate = `SELECT * FROM "time_off_requests" ` +
	`WHERE requester_id = $1 AND status <> $2 ` +
	`AND NOT (end_date <= $3 OR start_date > $4)`

func TestRequestRepository_FindOverlapping(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2022, 12, 12, 0, 0, 0, 0, time.UTC)
	end := time.Date(2022, 12, 14, 0, 0, 0, 0, time.UTC)

	t.Run("collision at the candidate's end date surfaces", func(t *testing.T) {
		repo, mock := setupRequestRepoTest(t)

		// an existing request starting exactly on `end` is inside the
		// predicate: start_date > $4 is strict, equality stays in
		mock.ExpectQuery(regexp.QuoteMeta(overlapPredicate)).
			WillReturnRows(requestRows().AddRow(
				uint(3), uint(1), uint(1), uint(1),
				request.TypePaid, request.StatusAwaiting, "Conference",
				end, end.AddDate(0, 0, 2),
			))

		got, err := repo.FindOverlapping(ctx, 1, start, end, nil)

		assert.NoError(t, err)
		assert.NotNil(t, got)
		assert.Equal(t, uint(3), got.ID)
		assert.Equal(t, end, got.StartDate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("touching at the candidate's start date stays clear", func(t *testing.T) {
		repo, mock := setupRequestRepoTest(t)

		// an existing request ending exactly on `start` falls out of the
		// predicate: end_date <= $3 excludes equality, so the database
		// returns nothing
		mock.ExpectQuery(regexp.QuoteMeta(overlapPredicate)).
			WillReturnRows(requestRows())

		got, err := repo.FindOverlapping(ctx, 1, start, end, nil)

		assert.NoError(t, err)
		assert.Nil(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("editing excludes the request itself", func(t *testing.T) {
		repo, mock := setupRequestRepoTest(t)

		mock.ExpectQuery(regexp.QuoteMeta(overlapPredicate + ` AND id <> $5`)).
			WillReturnRows(requestRows())

		exclude := uint(7)
		got, err := repo.FindOverlapping(ctx, 1, start, end, &exclude)

		assert.NoError(t, err)
		assert.Nil(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
