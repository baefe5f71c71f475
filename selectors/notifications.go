// Package selectors derives the values that notification consumers need from a
// notification state snapshot. Every function here is a pure read of the state it is
// given: nothing is cached and nothing in the state is modified.
package selectors

import "github.com/vriveraPeersyst/metamask-extension/model"

// IsNotificationsEnabled returns true if the notifications feature has been seen.
func IsNotificationsEnabled(state model.State) bool {
	return state.Metamask.IsMetamaskNotificationsFeatureSeen
}

// SelectIsMetamaskNotificationsEnabled is used both as the "feature seen" check and as the
// "enabled" check. It deliberately reads the feature seen flag, not the services flag.
func SelectIsMetamaskNotificationsEnabled(state model.State) bool {
	return state.Metamask.IsMetamaskNotificationsFeatureSeen
}

// IsNotificationServicesEnabled returns the notification services flag.
func IsNotificationServicesEnabled(state model.State) bool {
	return state.Metamask.IsNotificationServicesEnabled
}

// GetNotificationList returns the notification list in stored order.
func GetNotificationList(state model.State) []model.Notification {
	return state.Metamask.MetamaskNotificationsList
}

// GetReadList returns the IDs of the notifications that have been marked as read.
func GetReadList(state model.State) []string {
	return state.Metamask.MetamaskNotificationsReadList
}

// GetUnreadCount counts the notifications in the list that are not marked as read. Only the
// IsRead field of each notification is consulted; the read list is not.
func GetUnreadCount(state model.State) int {
	count := 0
	for _, notification := range state.Metamask.MetamaskNotificationsList {
		if !notification.IsRead {
			count++
		}
	}
	return count
}

// IsFeatureAnnouncementsEnabled returns the feature announcements flag.
func IsFeatureAnnouncementsEnabled(state model.State) bool {
	return state.Metamask.IsFeatureAnnouncementsEnabled
}

// GetValidNotificationAccounts returns the accounts that may enable notification subscriptions.
func GetValidNotificationAccounts(state model.State) []string {
	return state.Metamask.SubscriptionAccountsSeen
}

// IsBackupAndSyncUpdateLoading returns the backup and sync progress flag.
func IsBackupAndSyncUpdateLoading(state model.State) bool {
	return state.Metamask.IsBackupAndSyncUpdateLoading
}

// IsFetchingNotifications returns true while notifications are being fetched.
func IsFetchingNotifications(state model.State) bool {
	return state.Metamask.IsFetchingMetamaskNotifications
}

// IsUpdatingNotifications returns true while notification settings are being updated.
func IsUpdatingNotifications(state model.State) bool {
	return state.Metamask.IsUpdatingMetamaskNotifications
}

// GetUpdatingNotificationAccounts returns the accounts whose subscriptions are being updated.
func GetUpdatingNotificationAccounts(state model.State) []string {
	return state.Metamask.IsUpdatingMetamaskNotificationsAccount
}

// IsCheckingAccountsPresence returns the account presence check flag.
func IsCheckingAccountsPresence(state model.State) bool {
	return state.Metamask.IsCheckingAccountsPresence
}
