package handlers

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
	"github.com/vriveraPeersyst/metamask-extension/common"
	"github.com/vriveraPeersyst/metamask-extension/db"
	"github.com/vriveraPeersyst/metamask-extension/model"
)

// ReceivedRequest represents a deserialized request to add a notification to a user's list.
type ReceivedRequest struct {
	User         string             `json:"user"`
	Notification model.Notification `json:"notification"`
}

func (r *ReceivedRequest) user() string { return r.User }

// Received is a message handler for notifications produced by the notification processing pipeline.
type Received struct {
	db *sql.DB
}

// NewReceived returns a new handler for received notifications.
func NewReceived(db *sql.DB) *Received {
	return &Received{db: db}
}

// HandleMessage handles a single AMQP delivery.
func (h *Received) HandleMessage(ctx context.Context, delivery amqp.Delivery) error {

	// Parse the message body.
	var request ReceivedRequest
	if err := parseBody(delivery, &request); err != nil {
		return err
	}

	// Fill in anything the producer left out.
	notification := &request.Notification
	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now().UTC()
	}
	if err := notification.Validate(); err != nil {
		return NewUnrecoverableError("invalid notification: %s", err.Error())
	}

	return inTransaction(ctx, h.db, func(tx *sql.Tx) error {
		userID, err := db.GetUserID(ctx, tx, request.User)
		if err != nil {
			return NewUnrecoverableError(err.Error())
		}

		// Store the notification in the database.
		if err = db.SaveNotification(ctx, tx, userID, notification); err != nil {
			return NewUnrecoverableError(err.Error())
		}

		// The count is only reported, so a failure here doesn't fail the message.
		unread, err := db.CountUnreadNotifications(ctx, tx, userID)
		if err != nil {
			common.Log.Warnf("unable to count unread notifications for %s: %s", request.User, err)
			return nil
		}
		common.Log.WithFields(logrus.Fields{
			"user":         request.User,
			"notification": notification.ID,
			"type":         notification.Type,
			"unread":       unread,
		}).Debug("notification recorded")

		return nil
	})
}
