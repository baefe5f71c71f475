package db

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/vriveraPeersyst/metamask-extension/model"

	sq "github.com/Masterminds/squirrel"
)

// CountUnreadNotifications counts the number of notifications for the user that haven't been marked as read.
func CountUnreadNotifications(ctx context.Context, tx *sql.Tx, userID string) (int64, error) {
	wrapMsg := "unable to count unread notifications"
	var total int64

	// Build the statement to count the unread notifications.
	statement, args, err := statementBuilder.
		Select("count(*)").
		From("notifications").
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Eq{"deleted": false}).
		Where(sq.Eq{"is_read": false}).
		ToSql()
	if err != nil {
		return 0, errors.Wrap(err, wrapMsg)
	}

	// Execute the statement.
	err = tx.QueryRowContext(ctx, statement, args...).Scan(&total)
	if err != nil {
		return 0, errors.Wrap(err, wrapMsg)
	}

	return total, nil
}

// SaveNotification saves a single notification into the database. Notification IDs are only
// unique per user, since announcements share an ID across users. Saving a notification whose
// ID is already present for the same user has no effect.
func SaveNotification(ctx context.Context, tx *sql.Tx, userID string, notification *model.Notification) error {
	wrapMsg := "unable to save notification"

	// Get the notification type ID.
	notificationTypeID, err := GetOrRegisterNotificationType(ctx, tx, string(notification.Type))
	if err != nil {
		return errors.Wrap(err, wrapMsg)
	}

	// Optional columns are stored as nulls.
	address := sql.NullString{String: notification.Address, Valid: notification.Address != ""}
	chainID := sql.NullInt64{Int64: notification.ChainID, Valid: notification.ChainID != 0}
	var payload interface{}
	if len(notification.Data) > 0 {
		payload = string(notification.Data)
	}

	// Build the statement to insert the notification.
	statement, args, err := statementBuilder.
		Insert("notifications").
		Columns(
			"id",
			"notification_type_id",
			"user_id",
			"is_read",
			"deleted",
			"address",
			"chain_id",
			"time_created",
			"payload").
		Values(
			notification.ID,
			notificationTypeID,
			userID,
			notification.IsRead,
			false,
			address,
			chainID,
			notification.CreatedAt,
			payload).
		Suffix("ON CONFLICT (user_id, id) DO NOTHING").
		ToSql()
	if err != nil {
		return errors.Wrap(err, wrapMsg)
	}

	if _, err = tx.ExecContext(ctx, statement, args...); err != nil {
		return errors.Wrap(err, wrapMsg)
	}

	return nil
}

// ListNotifications returns the notifications that have not been deleted for a user, newest first.
func ListNotifications(ctx context.Context, tx *sql.Tx, userID string) ([]model.Notification, error) {
	wrapMsg := "unable to list notifications"

	// Build the query.
	query, args, err := statementBuilder.
		Select(
			"n.id",
			"t.name",
			"n.is_read",
			"COALESCE(n.address, '')",
			"COALESCE(n.chain_id, 0)",
			"n.time_created",
			"n.payload").
		From("notifications n").
		Join("notification_types t ON n.notification_type_id = t.id").
		Where(sq.Eq{"n.user_id": userID}).
		Where(sq.Eq{"n.deleted": false}).
		OrderBy("n.time_created DESC", "n.id").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, wrapMsg)
	}

	// Query the database.
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, wrapMsg)
	}
	defer rows.Close()

	// Build the list.
	notifications := make([]model.Notification, 0)
	for rows.Next() {
		var notification model.Notification
		var payload []byte
		err = rows.Scan(
			&notification.ID,
			&notification.Type,
			&notification.IsRead,
			&notification.Address,
			&notification.ChainID,
			&notification.CreatedAt,
			&payload,
		)
		if err != nil {
			return nil, errors.Wrap(err, wrapMsg)
		}
		if len(payload) > 0 {
			notification.Data = json.RawMessage(payload)
		}
		notifications = append(notifications, notification)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, wrapMsg)
	}

	return notifications, nil
}

// MarkNotificationsAsRead flags the given notifications as read and adds their IDs to the
// user's read list. IDs that don't refer to a stored notification, such as feature
// announcements, are still added to the read list.
func MarkNotificationsAsRead(ctx context.Context, tx *sql.Tx, userID string, ids []string) error {
	wrapMsg := "unable to mark notifications as read"

	if len(ids) == 0 {
		return nil
	}

	// Build the statement to update the stored notifications.
	statement, args, err := statementBuilder.
		Update("notifications").
		Set("is_read", true).
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return errors.Wrap(err, wrapMsg)
	}
	if _, err = tx.ExecContext(ctx, statement, args...); err != nil {
		return errors.Wrap(err, wrapMsg)
	}

	// Build the statement to add the IDs to the read list.
	builder := statementBuilder.
		Insert("read_notifications").
		Columns("user_id", "notification_id")
	for _, id := range ids {
		builder = builder.Values(userID, id)
	}
	statement, args, err = builder.Suffix("ON CONFLICT (user_id, notification_id) DO NOTHING").ToSql()
	if err != nil {
		return errors.Wrap(err, wrapMsg)
	}
	if _, err = tx.ExecContext(ctx, statement, args...); err != nil {
		return errors.Wrap(err, wrapMsg)
	}

	return nil
}

// ListReadNotificationIDs returns the user's read list in the order the IDs were added.
func ListReadNotificationIDs(ctx context.Context, tx *sql.Tx, userID string) ([]string, error) {
	wrapMsg := "unable to list read notifications"

	query, args, err := statementBuilder.
		Select("notification_id").
		From("read_notifications").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("seq").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, wrapMsg)
	}

	ids, err := queryStrings(ctx, tx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, wrapMsg)
	}

	return ids, nil
}

// ResetReadNotifications removes feature announcements from the user's read list and marks the
// user's stored announcements as unread again. Read list entries for other stored
// notifications are kept, so they stay consistent with those notifications' read flags.
func ResetReadNotifications(ctx context.Context, tx *sql.Tx, userID string) error {
	wrapMsg := "unable to reset read notifications"

	// Announcements aren't always stored, so every read list entry that doesn't belong to a
	// stored notification of some other type is removed.
	statement, args, err := statementBuilder.
		Delete("read_notifications").
		Where(sq.Eq{"user_id": userID}).
		Where("notification_id NOT IN ("+
			"SELECT n.id FROM notifications n "+
			"JOIN notification_types t ON n.notification_type_id = t.id "+
			"WHERE n.user_id = ? AND t.name <> ?)",
			userID, string(model.TypeFeaturesAnnouncement)).
		ToSql()
	if err != nil {
		return errors.Wrap(err, wrapMsg)
	}
	if _, err = tx.ExecContext(ctx, statement, args...); err != nil {
		return errors.Wrap(err, wrapMsg)
	}

	// Mark announcements as unread.
	statement, args, err = statementBuilder.
		Update("notifications").
		Set("is_read", false).
		Where(sq.Eq{"user_id": userID}).
		Where("notification_type_id IN (SELECT id FROM notification_types WHERE name = ?)",
			string(model.TypeFeaturesAnnouncement)).
		ToSql()
	if err != nil {
		return errors.Wrap(err, wrapMsg)
	}
	if _, err = tx.ExecContext(ctx, statement, args...); err != nil {
		return errors.Wrap(err, wrapMsg)
	}

	return nil
}

// queryStrings runs a query that returns a single text column and collects the values.
func queryStrings(ctx context.Context, tx *sql.Tx, query string, args ...interface{}) ([]string, error) {
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := make([]string, 0)
	for rows.Next() {
		var value string
		if err = rows.Scan(&value); err != nil {
			return nil, err
		}
		values = append(values, value)
	}

	return values, rows.Err()
}
