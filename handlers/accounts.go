package handlers

import (
	"context"
	"database/sql"
	"strings"

	"github.com/streadway/amqp"
	"github.com/vriveraPeersyst/metamask-extension/common"
	"github.com/vriveraPeersyst/metamask-extension/db"
)

// AccountsSeenRequest represents a deserialized request to record accounts as seen.
type AccountsSeenRequest struct {
	User      string   `json:"user"`
	Addresses []string `json:"addresses"`
}

func (r *AccountsSeenRequest) user() string { return r.User }

// AccountsSeen is a message handler that records the accounts that may enable notification
// subscriptions.
type AccountsSeen struct {
	db *sql.DB
}

// NewAccountsSeen returns a new handler for accounts-seen messages.
func NewAccountsSeen(db *sql.DB) *AccountsSeen {
	return &AccountsSeen{db: db}
}

// HandleMessage handles a single AMQP delivery.
func (h *AccountsSeen) HandleMessage(ctx context.Context, delivery amqp.Delivery) error {
	var request AccountsSeenRequest
	if err := parseBody(delivery, &request); err != nil {
		return err
	}

	// Addresses are compared case-insensitively, so they're stored in lower case.
	addresses := make([]string, len(request.Addresses))
	for i, address := range request.Addresses {
		if err := common.ValidateAccountAddress(address); err != nil {
			return NewUnrecoverableError(err.Error())
		}
		addresses[i] = strings.ToLower(address)
	}

	return inTransaction(ctx, h.db, func(tx *sql.Tx) error {
		userID, err := db.GetUserID(ctx, tx, request.User)
		if err != nil {
			return NewUnrecoverableError(err.Error())
		}
		if err = db.AddAccountsSeen(ctx, tx, userID, addresses); err != nil {
			return NewUnrecoverableError(err.Error())
		}
		return nil
	})
}
