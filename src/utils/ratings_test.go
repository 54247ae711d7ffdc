package utils

import (
	"acs/src/db"
	"acs/src/types"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestCreateRatingRejectsOutOfRange(t *testing.T) {
	var validationErr *types.ValidationError

	_, err := CreateRating("BK-NICE-AAAAA", "PA-EARH-AAAAA", 6, "")
	assert.ErrorAs(t, err, &validationErr)

	_, err = CreateRating("BK-NICE-AAAAA", "PA-EARH-AAAAA", 0, "")
	assert.ErrorAs(t, err, &validationErr)
}

func TestCreateRatingRejectsDuplicate(t *testing.T) {
	gdb, mock := newMockDB(t)
	db.NewDB(gdb)
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery(`SELECT .* FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "operator_id", "quote_id"}).
			AddRow(7, "BK-NICE-AAAAA", 3, 4))
	mock.ExpectQuery(`SELECT .* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code"}).AddRow(3, "OP-ACME-AAAAA"))
	mock.ExpectQuery(`SELECT .* FROM "quotes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code"}).AddRow(4, "QT-ACME-AAAAA"))
	mock.ExpectQuery(`SELECT .* FROM "passengers"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "ratings"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	_, err := CreateRating("BK-NICE-AAAAA", "PA-EARH-AAAAA", 5, "great flight")
	var validationErr *types.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Contains(t, err.Error(), "already exists")
}
