package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pkg/errors"
	"github.com/vriveraPeersyst/metamask-extension/model"
)

// emptyState returns the state of a user with no stored notification data.
func emptyState() *model.State {
	return &model.State{
		Metamask: model.NotificationServicesState{
			MetamaskNotificationsList:              []model.Notification{},
			MetamaskNotificationsReadList:          []string{},
			SubscriptionAccountsSeen:               []string{},
			IsUpdatingMetamaskNotificationsAccount: []string{},
		},
	}
}

// LoadState assembles the notification state snapshot for a user. Unknown users get an empty
// snapshot and are not added to the database.
func LoadState(ctx context.Context, tx *sql.Tx, user string) (*model.State, error) {
	wrapMsg := fmt.Sprintf("unable to load the notification state for `%s`", user)

	userID, found, err := LookupUserID(ctx, tx, user)
	if err != nil {
		return nil, errors.Wrap(err, wrapMsg)
	}
	state := emptyState()
	if !found {
		return state, nil
	}

	prefs, err := GetPreferences(ctx, tx, userID)
	if err != nil {
		return nil, errors.Wrap(err, wrapMsg)
	}
	state.Metamask.IsMetamaskNotificationsFeatureSeen = prefs.FeatureSeen
	state.Metamask.IsNotificationServicesEnabled = prefs.ServicesEnabled
	state.Metamask.IsFeatureAnnouncementsEnabled = prefs.FeatureAnnouncementsEnabled

	if state.Metamask.MetamaskNotificationsList, err = ListNotifications(ctx, tx, userID); err != nil {
		return nil, errors.Wrap(err, wrapMsg)
	}
	if state.Metamask.MetamaskNotificationsReadList, err = ListReadNotificationIDs(ctx, tx, userID); err != nil {
		return nil, errors.Wrap(err, wrapMsg)
	}
	if state.Metamask.SubscriptionAccountsSeen, err = ListAccountsSeen(ctx, tx, userID); err != nil {
		return nil, errors.Wrap(err, wrapMsg)
	}

	return state, nil
}
