package handlerset

import (
	"context"
	"sort"

	"github.com/cyverse-de/messaging/v9"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
	"github.com/vriveraPeersyst/metamask-extension/common"
	"github.com/vriveraPeersyst/metamask-extension/handlers"
)

// The outcomes recorded for each delivery.
const (
	outcomeSuccess     = "success"
	outcomeRequeued    = "requeued"
	outcomeRejected    = "rejected"
	outcomeUnsupported = "unsupported"
)

// AMQPClient describes the parts of messaging.Client that a handler set uses.
type AMQPClient interface {
	AddConsumer(exchange, exchangeType, queue, key string, handler messaging.MessageHandler, prefetchCount int)
	Listen()
	Close()
}

// newClient creates the AMQP client. The client reconnects on its own if the broker
// connection drops.
var newClient = func(uri string) (AMQPClient, error) {
	return messaging.NewClient(uri, true)
}

// HandlerSet represents a set of AMQP message handlers.
type HandlerSet struct {
	settings   *common.AMQPSettings
	handlerFor map[string]handlers.MessageHandler
	processed  *prometheus.CounterVec
	amqpClient AMQPClient
}

// New creates a new handler set. The counters it maintains are registered with registerer.
func New(
	amqpSettings *common.AMQPSettings,
	handlerFor map[string]handlers.MessageHandler,
	registerer prometheus.Registerer,
) (*HandlerSet, error) {
	wrapMsg := "unable to create the message handler set"

	processed := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "notification_state",
			Name:      "messages_processed_total",
			Help:      "The number of AMQP messages processed, by routing key and outcome.",
		},
		[]string{"routing_key", "outcome"},
	)
	if err := registerer.Register(processed); err != nil {
		return nil, errors.Wrap(err, wrapMsg)
	}

	// Build and return the handler set.
	handlerSet := HandlerSet{
		settings:   amqpSettings,
		handlerFor: handlerFor,
		processed:  processed,
	}
	return &handlerSet, nil
}

// Connect creates the AMQP client and registers a consumer on the configured queue for the
// routing key of every handler in the set.
func (hs *HandlerSet) Connect() error {
	s := hs.settings

	// Create the AMQP client.
	amqpClient, err := newClient(s.URI)
	if err != nil {
		return errors.Wrap(err, "unable to connect to the AMQP broker")
	}
	hs.amqpClient = amqpClient

	// Register the consumers in a stable order.
	keys := make([]string, 0, len(hs.handlerFor))
	for key := range hs.handlerFor {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		amqpClient.AddConsumer(s.ExchangeName, s.ExchangeType, s.QueueName, key, hs.HandleDelivery, s.PrefetchCount)
	}

	return nil
}

// Listen starts consuming deliveries and blocks until the context is canceled.
func (hs *HandlerSet) Listen(ctx context.Context) error {
	if hs.amqpClient == nil {
		return errors.New("the handler set is not connected")
	}

	go hs.amqpClient.Listen()
	<-ctx.Done()

	return nil
}

// HandleDelivery passes a delivery to the handler for its routing key and acknowledges it.
// Successful messages are acked, messages that failed with a recoverable error are requeued,
// and all others are rejected.
func (hs *HandlerSet) HandleDelivery(ctx context.Context, delivery amqp.Delivery) {
	log := common.Log.WithFields(logrus.Fields{
		"routing_key":  delivery.RoutingKey,
		"delivery_tag": delivery.DeliveryTag,
	})

	handler, ok := hs.handlerFor[delivery.RoutingKey]
	if !ok {
		log.Warn("no handler for routing key")
		hs.settle(log, delivery, outcomeUnsupported, delivery.Reject(false))
		return
	}

	err := handler.HandleMessage(ctx, delivery)
	switch {
	case err == nil:
		hs.settle(log, delivery, outcomeSuccess, delivery.Ack(false))
	case handlers.IsRecoverable(err):
		log.Warnf("requeueing message: %s", err)
		hs.settle(log, delivery, outcomeRequeued, delivery.Nack(false, true))
	default:
		log.Errorf("rejecting message: %s", err)
		hs.settle(log, delivery, outcomeRejected, delivery.Reject(false))
	}
}

// settle records the outcome of a delivery and logs acknowledgement failures.
func (hs *HandlerSet) settle(log *logrus.Entry, delivery amqp.Delivery, outcome string, ackErr error) {
	hs.processed.WithLabelValues(delivery.RoutingKey, outcome).Inc()
	if ackErr != nil {
		log.Errorf("unable to acknowledge message: %s", ackErr)
	}
}

// Close closes a message handler set.
func (hs *HandlerSet) Close() {
	if hs.amqpClient != nil {
		hs.amqpClient.Close()
	}
}
