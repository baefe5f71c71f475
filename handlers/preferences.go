package handlers

import (
	"context"
	"database/sql"

	"github.com/streadway/amqp"
	"github.com/vriveraPeersyst/metamask-extension/db"
)

// PreferencesRequest represents a deserialized request to update a user's feature flags. Flags
// that are omitted keep their current values.
type PreferencesRequest struct {
	User                        string `json:"user"`
	FeatureSeen                 *bool  `json:"feature_seen"`
	ServicesEnabled             *bool  `json:"services_enabled"`
	FeatureAnnouncementsEnabled *bool  `json:"feature_announcements_enabled"`
}

func (r *PreferencesRequest) user() string { return r.User }

// Preferences is a message handler for feature flag updates.
type Preferences struct {
	db *sql.DB
}

// NewPreferences returns a new handler for feature flag updates.
func NewPreferences(db *sql.DB) *Preferences {
	return &Preferences{db: db}
}

// HandleMessage handles a single AMQP delivery.
func (h *Preferences) HandleMessage(ctx context.Context, delivery amqp.Delivery) error {
	var request PreferencesRequest
	if err := parseBody(delivery, &request); err != nil {
		return err
	}

	return inTransaction(ctx, h.db, func(tx *sql.Tx) error {
		userID, err := db.GetUserID(ctx, tx, request.User)
		if err != nil {
			return NewUnrecoverableError(err.Error())
		}

		prefs, err := db.GetPreferences(ctx, tx, userID)
		if err != nil {
			return NewUnrecoverableError(err.Error())
		}
		if request.FeatureSeen != nil {
			prefs.FeatureSeen = *request.FeatureSeen
		}
		if request.ServicesEnabled != nil {
			prefs.ServicesEnabled = *request.ServicesEnabled
		}
		if request.FeatureAnnouncementsEnabled != nil {
			prefs.FeatureAnnouncementsEnabled = *request.FeatureAnnouncementsEnabled
		}

		if err = db.SavePreferences(ctx, tx, userID, prefs); err != nil {
			return NewUnrecoverableError(err.Error())
		}
		return nil
	})
}
