package db

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
)

// AddUser adds a user to the `users` table, returning the ID assigned to the user.
func AddUser(ctx context.Context, tx *sql.Tx, user string) (string, error) {
	wrapMsg := fmt.Sprintf("unable to add `%s` to the users table", user)

	// Build the query.
	statement, args, err := statementBuilder.
		Insert("users").Columns("username").
		Values(user).
		Suffix("RETURNING id").
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

// LookupUserID returns the user ID for `user`. The second return value is false if the user
// has never been recorded.
func LookupUserID(ctx context.Context, tx *sql.Tx, user string) (string, bool, error) {
	wrapMsg := fmt.Sprintf("unable to look up the user ID for `%s`", user)

	// Build the query.
	statement, args, err := statementBuilder.
		Select("id").From("users").
		Where(sq.Eq{"username": user}).
		ToSql()
	if err != nil {
		return "", false, errors.Wrap(err, wrapMsg)
	}

	// Query the database.
	var id string
	err = tx.QueryRowContext(ctx, statement, args...).Scan(&id)
	switch {
	case err == sql.ErrNoRows:
		return "", false, nil
	case err != nil:
		return "", false, errors.Wrap(err, wrapMsg)
	default:
		return id, true, nil
	}
}

// GetUserID obtains the user ID for `user`, adding the user to the `users` table if necessary.
func GetUserID(ctx context.Context, tx *sql.Tx, user string) (string, error) {
	id, found, err := LookupUserID(ctx, tx, user)
	if err != nil {
		return "", err
	}
	if found {
		return id, nil
	}
	return AddUser(ctx, tx, user)
}
