package db

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/vriveraPeersyst/metamask-extension/model"
)

func TestGetPreferences(t *testing.T) {
	assert := assert.New(t)

	db, mock, err := sqlmock.New()
	ctx := context.Background()
	assert.NoError(err, "unable to open the mock database connection")
	defer db.Close()

	columns := []string{"feature_seen", "services_enabled", "feature_announcements_enabled"}
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT feature_seen, services_enabled, feature_announcements_enabled FROM notification_preferences").
		WithArgs(testUserID).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(true, false, true))
	mock.ExpectRollback()

	tx, err := db.Begin()
	assert.NoError(err, "unable to begin a transaction")
	prefs, err := GetPreferences(ctx, tx, testUserID)
	assert.NoError(err)
	assert.Equal(&model.Preferences{FeatureSeen: true, FeatureAnnouncementsEnabled: true}, prefs)
	_ = tx.Rollback()

	assert.NoError(mock.ExpectationsWereMet(), "not all mock expectations were met")
}

func TestGetPreferencesDefaults(t *testing.T) {
	assert := assert.New(t)

	db, mock, err := sqlmock.New()
	ctx := context.Background()
	assert.NoError(err, "unable to open the mock database connection")
	defer db.Close()

	columns := []string{"feature_seen", "services_enabled", "feature_announcements_enabled"}
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM notification_preferences").
		WithArgs(testUserID).
		WillReturnRows(sqlmock.NewRows(columns))
	mock.ExpectRollback()

	tx, err := db.Begin()
	assert.NoError(err, "unable to begin a transaction")
	prefs, err := GetPreferences(ctx, tx, testUserID)
	assert.NoError(err)
	assert.Equal(&model.Preferences{}, prefs)
	_ = tx.Rollback()

	assert.NoError(mock.ExpectationsWereMet(), "not all mock expectations were met")
}

func TestSavePreferences(t *testing.T) {
	assert := assert.New(t)

	db, mock, err := sqlmock.New()
	ctx := context.Background()
	assert.NoError(err, "unable to open the mock database connection")
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO notification_preferences .* ON CONFLICT \\(user_id\\) DO UPDATE SET").
		WithArgs(testUserID, true, true, false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	tx, err := db.Begin()
	assert.NoError(err, "unable to begin a transaction")
	prefs := &model.Preferences{FeatureSeen: true, ServicesEnabled: true}
	assert.NoError(SavePreferences(ctx, tx, testUserID, prefs))
	_ = tx.Rollback()

	assert.NoError(mock.ExpectationsWereMet(), "not all mock expectations were met")
}
