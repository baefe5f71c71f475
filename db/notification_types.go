package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pkg/errors"

	sq "github.com/Masterminds/squirrel"
)

// GetNotificationTypeID obtains the ID of the notification type with the given name. An error
// is returned if the database can't be queried or the notification type doesn't exist.
func GetNotificationTypeID(ctx context.Context, tx *sql.Tx, notificationType string) (string, error) {
	wrapMsg := fmt.Sprintf("unable to get the notification type ID for `%s`", notificationType)

	// Build the SQL query and arguments.
	query, args, err := statementBuilder.
		Select("id::text").
		From("notification_types").
		Where(sq.Eq{"name": notificationType}).
		ToSql()
	if err != nil {
		return "", errors.Wrap(err, wrapMsg)
	}

	// Query the database.
	var id string
	err = tx.QueryRowContext(ctx, query, args...).Scan(&id)
	if err != nil {
		return "", errors.Wrap(err, wrapMsg)
	}

	return id, nil
}

// RegisterNotificationType adds a notification type to the database and returns its ID.
func RegisterNotificationType(ctx context.Context, tx *sql.Tx, notificationType string) (string, error) {
	wrapMsg := fmt.Sprintf("unable to register notification type `%s`", notificationType)

	// Build the insert statement.
	statement, args, err := statementBuilder.
		Insert("notification_types").
		Columns("name").
		Values(notificationType).
		Suffix("RETURNING id::text").
		ToSql()
	if err != nil {
		return "", errors.Wrap(err, wrapMsg)
	}

	// Execute the statement.
	var id string
	err = tx.QueryRowContext(ctx, statement, args...).Scan(&id)
	if err != nil {
		return "", errors.Wrap(err, wrapMsg)
	}

	return id, nil
}

// GetOrRegisterNotificationType obtains the ID of a notification type, registering the type
// first if it hasn't been seen before.
func GetOrRegisterNotificationType(ctx context.Context, tx *sql.Tx, notificationType string) (string, error) {
	id, err := GetNotificationTypeID(ctx, tx, notificationType)
	if err == nil {
		return id, nil
	}
	if errors.Cause(err) == sql.ErrNoRows {
		return RegisterNotificationType(ctx, tx, notificationType)
	}
	return "", err
}
