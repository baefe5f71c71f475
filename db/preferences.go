package db

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/vriveraPeersyst/metamask-extension/model"

	sq "github.com/Masterminds/squirrel"
)

// GetPreferences returns the feature flags for a user. All flags are off for users who have
// never saved any preferences.
func GetPreferences(ctx context.Context, tx *sql.Tx, userID string) (*model.Preferences, error) {
	wrapMsg := "unable to get notification preferences"

	query, args, err := statementBuilder.
		Select("feature_seen", "services_enabled", "feature_announcements_enabled").
		From("notification_preferences").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, wrapMsg)
	}

	var prefs model.Preferences
	err = tx.QueryRowContext(ctx, query, args...).Scan(
		&prefs.FeatureSeen,
		&prefs.ServicesEnabled,
		&prefs.FeatureAnnouncementsEnabled,
	)
	if err == sql.ErrNoRows {
		return &model.Preferences{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, wrapMsg)
	}

	return &prefs, nil
}

// SavePreferences stores the feature flags for a user, replacing any flags stored earlier.
func SavePreferences(ctx context.Context, tx *sql.Tx, userID string, prefs *model.Preferences) error {
	wrapMsg := "unable to save notification preferences"

	statement, args, err := statementBuilder.
		Insert("notification_preferences").
		Columns("user_id", "feature_seen", "services_enabled", "feature_announcements_enabled").
		Values(userID, prefs.FeatureSeen, prefs.ServicesEnabled, prefs.FeatureAnnouncementsEnabled).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET " +
			"feature_seen = EXCLUDED.feature_seen, " +
			"services_enabled = EXCLUDED.services_enabled, " +
			"feature_announcements_enabled = EXCLUDED.feature_announcements_enabled").
		ToSql()
	if err != nil {
		return errors.Wrap(err, wrapMsg)
	}

	if _, err = tx.ExecContext(ctx, statement, args...); err != nil {
		return errors.Wrap(err, wrapMsg)
	}

	return nil
}
