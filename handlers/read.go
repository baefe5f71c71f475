package handlers

import (
	"context"
	"database/sql"

	"github.com/streadway/amqp"
	"github.com/vriveraPeersyst/metamask-extension/db"
)

// ReadRequest represents a deserialized request to mark notifications as read.
type ReadRequest struct {
	User string   `json:"user"`
	IDs  []string `json:"ids"`
}

func (r *ReadRequest) user() string { return r.User }

// Read is a message handler that marks notifications as read.
type Read struct {
	db *sql.DB
}

// NewRead returns a new handler for mark-as-read requests.
func NewRead(db *sql.DB) *Read {
	return &Read{db: db}
}

// HandleMessage handles a single AMQP delivery.
func (h *Read) HandleMessage(ctx context.Context, delivery amqp.Delivery) error {
	var request ReadRequest
	if err := parseBody(delivery, &request); err != nil {
		return err
	}
	for _, id := range request.IDs {
		if id == "" {
			return NewUnrecoverableError("empty notification ID in mark-as-read request")
		}
	}

	return inTransaction(ctx, h.db, func(tx *sql.Tx) error {
		userID, err := db.GetUserID(ctx, tx, request.User)
		if err != nil {
			return NewUnrecoverableError(err.Error())
		}
		if err = db.MarkNotificationsAsRead(ctx, tx, userID, request.IDs); err != nil {
			return NewUnrecoverableError(err.Error())
		}
		return nil
	})
}

// ResetReadRequest represents a deserialized request to reset a user's read list.
type ResetReadRequest struct {
	User string `json:"user"`
}

func (r *ResetReadRequest) user() string { return r.User }

// ResetRead is a message handler that removes feature announcements from a user's read list
// and marks them as unread. It backs the developer option for resetting announcements.
type ResetRead struct {
	db *sql.DB
}

// NewResetRead returns a new handler for read list reset requests.
func NewResetRead(db *sql.DB) *ResetRead {
	return &ResetRead{db: db}
}

// HandleMessage handles a single AMQP delivery.
func (h *ResetRead) HandleMessage(ctx context.Context, delivery amqp.Delivery) error {
	var request ResetReadRequest
	if err := parseBody(delivery, &request); err != nil {
		return err
	}

	return inTransaction(ctx, h.db, func(tx *sql.Tx) error {
		userID, found, err := db.LookupUserID(ctx, tx, request.User)
		if err != nil {
			return NewUnrecoverableError(err.Error())
		}

		// There's nothing to reset for a user we've never seen.
		if !found {
			return nil
		}

		if err = db.ResetReadNotifications(ctx, tx, userID); err != nil {
			return NewUnrecoverableError(err.Error())
		}
		return nil
	})
}
