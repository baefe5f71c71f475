package db

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	sq "github.com/Masterminds/squirrel"
)

// AddAccountsSeen records accounts as seen for a user. Accounts that were seen before keep
// their original position.
func AddAccountsSeen(ctx context.Context, tx *sql.Tx, userID string, addresses []string) error {
	wrapMsg := "unable to record accounts seen"

	if len(addresses) == 0 {
		return nil
	}

	builder := statementBuilder.
		Insert("subscription_accounts_seen").
		Columns("user_id", "address")
	for _, address := range addresses {
		builder = builder.Values(userID, address)
	}
	statement, args, err := builder.Suffix("ON CONFLICT (user_id, address) DO NOTHING").ToSql()
	if err != nil {
		return errors.Wrap(err, wrapMsg)
	}

	if _, err = tx.ExecContext(ctx, statement, args...); err != nil {
		return errors.Wrap(err, wrapMsg)
	}

	return nil
}

// ListAccountsSeen lists the accounts seen for a user in the order they were first seen.
func ListAccountsSeen(ctx context.Context, tx *sql.Tx, userID string) ([]string, error) {
	wrapMsg := "unable to list accounts seen"

	query, args, err := statementBuilder.
		Select("address").
		From("subscription_accounts_seen").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("seq").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, wrapMsg)
	}

	addresses, err := queryStrings(ctx, tx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, wrapMsg)
	}

	return addresses, nil
}
