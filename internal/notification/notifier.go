package notification

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"foodorder/internal/domain"
	"foodorder/internal/infrastructure/metrics"
)

// Routing keys of the domain events.
const (
	EventOrderPlaced    = "order.placed"
	EventOrderCancelled = "order.cancelled"
	EventOrderDelivered = "order.delivered"
	EventUserRegistered = "user.registered"
)

const sendTimeout = 10 * time.Second

type Mailer interface {
	Send(ctx context.Context, mail Mail) error
}

type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

// Notifier dispatches mails and events in the background. Delivery failures are logged and counted, never returned.
type Notifier struct {
	mailer    Mailer
	publisher EventPublisher
	logger    *zap.Logger
	wg        sync.WaitGroup
}

// NewNotifier accepts nil channels; a nil channel is skipped.
func NewNotifier(mailer Mailer, publisher EventPublisher, logger *zap.Logger) *Notifier {
	return &Notifier{mailer: mailer, publisher: publisher, logger: logger}
}

type orderEvent struct {
	OrderID        uint      `json:"orderId"`
	Email          string    `json:"email"`
	OrderStatus    string    `json:"orderStatus"`
	DeliveryStatus string    `json:"deliveryStatus"`
	Cost           string    `json:"cost"`
	TransactionID  int64     `json:"transactionId,omitempty"`
	OccurredAt     time.Time `json:"occurredAt"`
}

func newOrderEvent(o domain.Order) orderEvent {
	return orderEvent{
		OrderID:        o.OrderID,
		Email:          o.Email,
		OrderStatus:    o.OrderStatus,
		DeliveryStatus: o.DeliveryStatus,
		Cost:           o.Cost.String(),
		OccurredAt:     time.Now().UTC(),
	}
}

func (n *Notifier) OrderPlaced(ctx context.Context, order domain.Order, payment domain.Payment) {
	html, err := render(orderPlacedTmpl, orderPlacedData{
		OrderID: order.OrderID,
		Details: joinDetails(order.OrderDetails),
		Amount:  payment.Amount.String(),
	})
	logger := n.loggerFor(ctx)
	n.mail(logger, payment.Email, SubjectOrderPlaced, html, err)

	event := newOrderEvent(order)
	event.TransactionID = payment.TransactionID
	n.publish(logger, EventOrderPlaced, event)
}

func (n *Notifier) OrderCancelled(ctx context.Context, order domain.Order, to string) {
	html, err := render(orderCancelledTmpl, orderCancelledData{OrderID: order.OrderID})
	logger := n.loggerFor(ctx)
	n.mail(logger, to, SubjectOrderCancelled, html, err)
	n.publish(logger, EventOrderCancelled, newOrderEvent(order))
}

func (n *Notifier) OrderDelivered(ctx context.Context, order domain.Order) {
	n.publish(n.loggerFor(ctx), EventOrderDelivered, newOrderEvent(order))
}

func (n *Notifier) UserRegistered(ctx context.Context, user domain.User) {
	html, err := render(welcomeTmpl, welcomeData{Username: user.Username})
	logger := n.loggerFor(ctx)
	n.mail(logger, user.Email, SubjectWelcome, html, err)
	n.publish(logger, EventUserRegistered, map[string]string{
		"username": user.Username,
		"email":    user.Email,
		"role":     user.Role,
	})
}

// loggerFor tags the notifier's log lines with the request id carried by ctx.
func (n *Notifier) loggerFor(ctx context.Context) *zap.Logger {
	if id := middleware.GetReqID(ctx); id != "" {
		return n.logger.With(zap.String("traceId", id))
	}
	return n.logger
}

// Wait blocks until every dispatched notification finished.
func (n *Notifier) Wait() {
	n.wg.Wait()
}

func (n *Notifier) mail(logger *zap.Logger, to, subject, html string, renderErr error) {
	if n.mailer == nil {
		return
	}
	if renderErr != nil {
		logger.Warn("rendering mail failed", zap.String("subject", subject), zap.Error(renderErr))
		metrics.NotificationFailures.WithLabelValues("mail").Inc()
		return
	}

	n.dispatch(func(ctx context.Context) {
		if err := n.mailer.Send(ctx, Mail{To: to, Subject: subject, HTML: html}); err != nil {
			logger.Warn("sending mail failed", zap.String("to", to), zap.String("subject", subject), zap.Error(err))
			metrics.NotificationFailures.WithLabelValues("mail").Inc()
			return
		}
		logger.Info("mail sent", zap.String("to", to), zap.String("subject", subject))
	})
}

func (n *Notifier) publish(logger *zap.Logger, routingKey string, payload interface{}) {
	if n.publisher == nil {
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		logger.Warn("encoding event failed", zap.String("routingKey", routingKey), zap.Error(err))
		metrics.NotificationFailures.WithLabelValues("amqp").Inc()
		return
	}

	n.dispatch(func(ctx context.Context) {
		if err := n.publisher.Publish(ctx, routingKey, body); err != nil {
			logger.Warn("publishing event failed", zap.String("routingKey", routingKey), zap.Error(err))
			metrics.NotificationFailures.WithLabelValues("amqp").Inc()
		}
	})
}

// dispatch detaches from the request context so notifications outlive the request.
func (n *Notifier) dispatch(fn func(ctx context.Context)) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()
		fn(ctx)
	}()
}
