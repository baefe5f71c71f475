// Package api serves the values derived from a user's notification state over HTTP. Every
// request loads a fresh snapshot from the database and runs the selectors over it.
package api

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/vriveraPeersyst/metamask-extension/common"
	"github.com/vriveraPeersyst/metamask-extension/db"
	"github.com/vriveraPeersyst/metamask-extension/model"
	"github.com/vriveraPeersyst/metamask-extension/selectors"
)

// Server is the HTTP server for the notification state API.
type Server struct {
	router *gin.Engine
	db     *sql.DB
}

// NewServer creates a server that reads state from database and exposes the metrics in gatherer.
func NewServer(database *sql.DB, gatherer prometheus.Gatherer) *Server {
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{router: router, db: database}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": common.ServiceName})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	notifications := router.Group("/notifications/:user")
	{
		notifications.GET("", s.stateHandler(listResponse))
		notifications.GET("/unread-count", s.stateHandler(unreadCountResponse))
		notifications.GET("/read", s.stateHandler(readListResponse))
		notifications.GET("/accounts", s.stateHandler(accountsResponse))
		notifications.GET("/status", s.stateHandler(statusResponse))
	}

	return s
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// shutdownTimeout is how long in-flight requests get to finish once the server is stopping.
const shutdownTimeout = 5 * time.Second

// ListenAndServe listens on the given address and serves requests until the server fails or
// the context is canceled. Cancellation shuts the server down gracefully and returns nil.
func (s *Server) ListenAndServe(ctx context.Context, listenAddress string) error {
	server := &http.Server{
		Addr:    listenAddress,
		Handler: s.router,
	}

	// Serve in the background so that cancellation can be observed.
	errs := make(chan error, 1)
	go func() {
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return errors.Wrap(err, "unable to serve the API")
	case <-ctx.Done():
	}

	common.Log.Info("shutting down the API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "unable to shut down the API server")
	}
	if err := <-errs; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "unable to serve the API")
	}

	return nil
}

// loadState reads the current notification state snapshot for a user.
func (s *Server) loadState(ctx context.Context, user string) (*model.State, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, errors.Wrap(err, "unable to begin a database transaction")
	}
	defer tx.Rollback()

	state, err := db.LoadState(ctx, tx, user)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "unable to commit the database transaction")
	}

	return state, nil
}

// stateHandler returns a gin handler that loads the state for the user named in the path and
// responds with whatever respond derives from it.
func (s *Server) stateHandler(respond func(model.State) gin.H) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.Param("user")

		state, err := s.loadState(c.Request.Context(), user)
		if err != nil {
			common.Log.WithFields(logrus.Fields{"user": user}).Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to load the notification state"})
			return
		}

		c.JSON(http.StatusOK, respond(*state))
	}
}

func listResponse(state model.State) gin.H {
	return gin.H{
		"notifications": selectors.GetNotificationList(state),
		"unread_count":  selectors.GetUnreadCount(state),
	}
}

func unreadCountResponse(state model.State) gin.H {
	return gin.H{"unread_count": selectors.GetUnreadCount(state)}
}

func readListResponse(state model.State) gin.H {
	return gin.H{"read": selectors.GetReadList(state)}
}

func accountsResponse(state model.State) gin.H {
	return gin.H{"accounts": selectors.GetValidNotificationAccounts(state)}
}

func statusResponse(state model.State) gin.H {
	return gin.H{
		"notifications_enabled":          selectors.IsNotificationsEnabled(state),
		"metamask_notifications_enabled": selectors.SelectIsMetamaskNotificationsEnabled(state),
		"notification_services_enabled":  selectors.IsNotificationServicesEnabled(state),
		"feature_announcements_enabled":  selectors.IsFeatureAnnouncementsEnabled(state),
		"fetching_notifications":         selectors.IsFetchingNotifications(state),
		"updating_notifications":         selectors.IsUpdatingNotifications(state),
		"updating_notification_accounts": selectors.GetUpdatingNotificationAccounts(state),
		"checking_accounts_presence":     selectors.IsCheckingAccountsPresence(state),
		"backup_and_sync_update_loading": selectors.IsBackupAndSyncUpdateLoading(state),
	}
}
