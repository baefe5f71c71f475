package db

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/vriveraPeersyst/metamask-extension/model"
)

func TestLoadState(t *testing.T) {
	assert := assert.New(t)

	db, mock, err := sqlmock.New()
	ctx := context.Background()
	assert.NoError(err, "unable to open the mock database connection")
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM users WHERE username =").
		WithArgs("ipcdev").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(testUserID))
	mock.ExpectQuery("SELECT .* FROM notification_preferences").
		WithArgs(testUserID).
		WillReturnRows(
			sqlmock.NewRows([]string{"feature_seen", "services_enabled", "feature_announcements_enabled"}).
				AddRow(true, true, false),
		)
	mock.ExpectQuery("SELECT n.id, .* FROM notifications n").
		WithArgs(testUserID, false).
		WillReturnRows(
			sqlmock.NewRows([]string{"id", "name", "is_read", "address", "chain_id", "time_created", "payload"}).
				AddRow("n1", "eth_received", false, "", 0, getTestTimestamp(), nil),
		)
	mock.ExpectQuery("SELECT notification_id FROM read_notifications").
		WithArgs(testUserID).
		WillReturnRows(sqlmock.NewRows([]string{"notification_id"}))
	mock.ExpectQuery("SELECT address FROM subscription_accounts_seen").
		WithArgs(testUserID).
		WillReturnRows(sqlmock.NewRows([]string{"address"}).AddRow("0x1111"))
	mock.ExpectRollback()

	tx, err := db.Begin()
	assert.NoError(err, "unable to begin a transaction")
	state, err := LoadState(ctx, tx, "ipcdev")
	assert.NoError(err)
	_ = tx.Rollback()

	assert.True(state.Metamask.IsMetamaskNotificationsFeatureSeen)
	assert.True(state.Metamask.IsNotificationServicesEnabled)
	assert.False(state.Metamask.IsFeatureAnnouncementsEnabled)
	assert.Equal([]model.Notification{
		{ID: "n1", Type: model.TypeEthReceived, CreatedAt: getTestTimestamp()},
	}, state.Metamask.MetamaskNotificationsList)
	assert.Equal([]string{}, state.Metamask.MetamaskNotificationsReadList)
	assert.Equal([]string{"0x1111"}, state.Metamask.SubscriptionAccountsSeen)
	assert.False(state.Metamask.IsFetchingMetamaskNotifications)

	assert.NoError(mock.ExpectationsWereMet(), "not all mock expectations were met")
}

func TestLoadStateUnknownUser(t *testing.T) {
	assert := assert.New(t)

	db, mock, err := sqlmock.New()
	ctx := context.Background()
	assert.NoError(err, "unable to open the mock database connection")
	defer db.Close()

	// No other queries should be run and the user must not be created.
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM users WHERE username =").
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	tx, err := db.Begin()
	assert.NoError(err, "unable to begin a transaction")
	state, err := LoadState(ctx, tx, "nobody")
	assert.NoError(err)
	_ = tx.Rollback()

	assert.Equal(emptyState(), state)
	assert.Empty(state.Metamask.MetamaskNotificationsList)

	assert.NoError(mock.ExpectationsWereMet(), "not all mock expectations were met")
}
