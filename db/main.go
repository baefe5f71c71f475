package db

import (
	"context"
	"database/sql"

	"github.com/cyverse-de/dbutil"
	"github.com/pkg/errors"

	sq "github.com/Masterminds/squirrel"
)

// InitDatabase establishes a database connection and verifies that the database can be reached.
func InitDatabase(ctx context.Context, driverName, databaseURI string) (*sql.DB, error) {
	wrapMsg := "unable to initialize the database"

	// Create a database connector to establish the connection.
	connector, err := dbutil.NewDefaultConnector("1m")
	if err != nil {
		return nil, errors.Wrap(err, wrapMsg)
	}

	// Establish the database connection.
	db, err := connector.Connect(driverName, databaseURI)
	if err != nil {
		return nil, errors.Wrap(err, wrapMsg)
	}

	// Make sure the connection is usable.
	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, wrapMsg)
	}

	return db, nil
}

// statementBuilder is the squirrel statement builder used for all queries in this package.
var statementBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
