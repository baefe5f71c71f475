package handlers

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/streadway/amqp"
)

// The routing keys of the messages that update notification state.
const (
	ReceivedKey     = "notifications.received"
	ReadKey         = "notifications.read"
	ResetReadKey    = "notifications.read.reset"
	PreferencesKey  = "notifications.preferences"
	AccountsSeenKey = "notifications.accounts.seen"
)

// MessageHandler describes the interface used to handle AMQP messages.
type MessageHandler interface {
	HandleMessage(ctx context.Context, delivery amqp.Delivery) error
}

// InitMessageHandlers returns a map from routing key to message handler.
func InitMessageHandlers(db *sql.DB) map[string]MessageHandler {
	return map[string]MessageHandler{
		ReceivedKey:     NewReceived(db),
		ReadKey:         NewRead(db),
		ResetReadKey:    NewResetRead(db),
		PreferencesKey:  NewPreferences(db),
		AccountsSeenKey: NewAccountsSeen(db),
	}
}

// parseBody decodes the JSON body of a delivery and verifies that it names a user.
func parseBody(delivery amqp.Delivery, request interface{ user() string }) error {
	err := json.Unmarshal(delivery.Body, request)
	if err != nil {
		return NewUnrecoverableError("unable to parse message body: %s", err.Error())
	}
	if request.user() == "" {
		return NewUnrecoverableError("no user specified in message")
	}
	return nil
}

// inTransaction calls fn inside a database transaction, committing the transaction if fn
// succeeds. Errors returned by fn are passed through unchanged.
func inTransaction(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return NewRecoverableError("unable to begin a database transaction: %s", err.Error())
	}
	defer tx.Rollback()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return NewRecoverableError("unable to commit the database transaction: %s", err.Error())
	}

	return nil
}
