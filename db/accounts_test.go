package db

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestAddAccountsSeen(t *testing.T) {
	assert := assert.New(t)

	db, mock, err := sqlmock.New()
	ctx := context.Background()
	assert.NoError(err, "unable to open the mock database connection")
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO subscription_accounts_seen .* ON CONFLICT \\(user_id, address\\) DO NOTHING").
		WithArgs(testUserID, "0x1111", testUserID, "0x2222").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectRollback()

	tx, err := db.Begin()
	assert.NoError(err, "unable to begin a transaction")
	assert.NoError(AddAccountsSeen(ctx, tx, testUserID, []string{"0x1111", "0x2222"}))
	_ = tx.Rollback()

	assert.NoError(mock.ExpectationsWereMet(), "not all mock expectations were met")
}

func TestListAccountsSeen(t *testing.T) {
	assert := assert.New(t)

	db, mock, err := sqlmock.New()
	ctx := context.Background()
	assert.NoError(err, "unable to open the mock database connection")
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT address FROM subscription_accounts_seen WHERE user_id = .* ORDER BY seq").
		WithArgs(testUserID).
		WillReturnRows(sqlmock.NewRows([]string{"address"}).AddRow("0x1111"))
	mock.ExpectRollback()

	tx, err := db.Begin()
	assert.NoError(err, "unable to begin a transaction")
	addresses, err := ListAccountsSeen(ctx, tx, testUserID)
	assert.NoError(err)
	assert.Equal([]string{"0x1111"}, addresses)
	_ = tx.Rollback()

	assert.NoError(mock.ExpectationsWereMet(), "not all mock expectations were met")
}
