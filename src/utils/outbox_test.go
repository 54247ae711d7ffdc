package utils

import (
	"acs/src/types"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestAppendOutboxEventLocksParentBeforeSequencing(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "outbox_events"`).
		WithArgs("RQ-SMIT-AAAAA-email-%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`INSERT INTO "outbox_events"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("6ba7b810-9dad-11d1-80b4-00c04fd430c8"))
	mock.ExpectCommit()

	err := gdb.Transaction(func(tx *gorm.DB) error {
		return AppendOutboxEvent(tx, types.NOTIFY_QUOTE_RECEIVED, "client@example.com", "RQ-SMIT-AAAAA", types.JSONB{
			"request": "RQ-SMIT-AAAAA",
		})
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
