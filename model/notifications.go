package model

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

// TriggerType identifies the kind of event a notification describes.
type TriggerType string

// The notification types produced by the notification services pipeline.
const (
	TypeEthSent                     TriggerType = "eth_sent"
	TypeEthReceived                 TriggerType = "eth_received"
	TypeERC20Sent                   TriggerType = "erc20_sent"
	TypeERC20Received               TriggerType = "erc20_received"
	TypeERC721Sent                  TriggerType = "erc721_sent"
	TypeERC721Received              TriggerType = "erc721_received"
	TypeERC1155Sent                 TriggerType = "erc1155_sent"
	TypeERC1155Received             TriggerType = "erc1155_received"
	TypeSwapCompleted               TriggerType = "metamask_swap_completed"
	TypeRocketpoolStakeCompleted    TriggerType = "rocketpool_stake_completed"
	TypeRocketpoolUnstakeCompleted  TriggerType = "rocketpool_unstake_completed"
	TypeLidoStakeCompleted          TriggerType = "lido_stake_completed"
	TypeLidoWithdrawalRequested     TriggerType = "lido_withdrawal_requested"
	TypeLidoWithdrawalCompleted     TriggerType = "lido_withdrawal_completed"
	TypeLidoStakeReadyToBeWithdrawn TriggerType = "lido_stake_ready_to_be_withdrawn"
	TypeFeaturesAnnouncement        TriggerType = "features_announcement"
	TypeSnap                        TriggerType = "snap"
)

// Notification represents a single notification as it appears in a user's notification list.
type Notification struct {
	ID        string          `json:"id"`
	Type      TriggerType     `json:"type"`
	CreatedAt time.Time       `json:"createdAt"`
	IsRead    bool            `json:"isRead"`
	Address   string          `json:"address,omitempty"`
	ChainID   int64           `json:"chainId,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// Validate returns an error if the notification is missing a required field.
func (n *Notification) Validate() error {
	if n.ID == "" {
		return errors.New("notification ID is required")
	}
	if n.Type == "" {
		return errors.New("notification type is required")
	}
	return nil
}

// NotificationServicesState holds the raw notification state for a single user.
type NotificationServicesState struct {
	IsMetamaskNotificationsFeatureSeen bool           `json:"isMetamaskNotificationsFeatureSeen"`
	IsNotificationServicesEnabled      bool           `json:"isNotificationServicesEnabled"`
	IsFeatureAnnouncementsEnabled      bool           `json:"isFeatureAnnouncementsEnabled"`
	MetamaskNotificationsList          []Notification `json:"metamaskNotificationsList"`
	MetamaskNotificationsReadList      []string       `json:"metamaskNotificationsReadList"`
	SubscriptionAccountsSeen           []string       `json:"subscriptionAccountsSeen"`

	// Progress flags. These are never persisted, so a snapshot loaded from the
	// database always has them unset.
	IsBackupAndSyncUpdateLoading           bool     `json:"isBackupAndSyncUpdateLoading"`
	IsFetchingMetamaskNotifications        bool     `json:"isFetchingMetamaskNotifications"`
	IsUpdatingMetamaskNotifications        bool     `json:"isUpdatingMetamaskNotifications"`
	IsUpdatingMetamaskNotificationsAccount []string `json:"isUpdatingMetamaskNotificationsAccount"`
	IsCheckingAccountsPresence             bool     `json:"isCheckingAccountsPresence"`
}

// State is the snapshot that selectors read from.
type State struct {
	Metamask NotificationServicesState `json:"metamask"`
}

// Preferences are the feature flags stored for a user.
type Preferences struct {
	FeatureSeen                 bool
	ServicesEnabled             bool
	FeatureAnnouncementsEnabled bool
}
