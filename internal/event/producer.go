package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vinylvault/storefront/internal/domain"
	pkgkafka "github.com/vinylvault/storefront/pkg/kafka"
	"github.com/vinylvault/storefront/pkg/logger"
)

// Kafka topics for cart events.
var (
	TopicCartItemAdded   = pkgkafka.Topic("cart", "item_added")
	TopicCartItemRemoved = pkgkafka.Topic("cart", "item_removed")
)

// AggregateTypeSession is the aggregate every storefront event belongs to.
const AggregateTypeSession = "session"

// SourceStorefrontService identifies events emitted by this service.
const SourceStorefrontService = "storefront-service"

// CartItemData is the payload of both cart events.
type CartItemData struct {
	SessionID  string `json:"session_id"`
	Position   int    `json:"position"`
	RecordID   int    `json:"record_id"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	Price      int64  `json:"price"`
	CartLength int    `json:"cart_length"`
	CartTotal  int64  `json:"cart_total"`
}

// Publisher emits cart events.
type Publisher interface {
	PublishItemAdded(ctx context.Context, sessionID string, position int, record domain.Record, cart domain.Cart) error
	PublishItemRemoved(ctx context.Context, sessionID string, position int, record domain.Record, cart domain.Cart) error
}

// EventWriter is the subset of *pkgkafka.Producer used here.
type EventWriter interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Producer publishes cart events to Kafka.
type Producer struct {
	kafka  EventWriter
	logger *slog.Logger
}

// NewProducer creates a cart event producer on top of w.
func NewProducer(w EventWriter, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  w,
		logger: logger,
	}
}

// PublishItemAdded publishes a cart.item_added event.
func (p *Producer) PublishItemAdded(ctx context.Context, sessionID string, position int, record domain.Record, cart domain.Cart) error {
	return p.publish(ctx, TopicCartItemAdded, sessionID, position, record, cart)
}

// PublishItemRemoved publishes a cart.item_removed event.
func (p *Producer) PublishItemRemoved(ctx context.Context, sessionID string, position int, record domain.Record, cart domain.Cart) error {
	return p.publish(ctx, TopicCartItemRemoved, sessionID, position, record, cart)
}

func (p *Producer) publish(ctx context.Context, topic, sessionID string, position int, record domain.Record, cart domain.Cart) error {
	data := CartItemData{
		SessionID:  sessionID,
		Position:   position,
		RecordID:   record.ID,
		Title:      record.Title,
		Artist:     record.Artist,
		Price:      record.Price,
		CartLength: cart.Len(),
		CartTotal:  cart.Total(),
	}

	event, err := pkgkafka.NewEvent(topic, AggregateTypeSession, sessionID, SourceStorefrontService, data,
		pkgkafka.WithCorrelationID(logger.CorrelationIDFromContext(ctx)),
	)
	if err != nil {
		return err
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published cart event",
		slog.String("topic", topic),
		slog.String("session_id", sessionID),
		slog.Int("record_id", record.ID),
	)
	return nil
}

// Noop discards every event. It is used when no Kafka brokers are configured.
type Noop struct{}

func (Noop) PublishItemAdded(context.Context, string, int, domain.Record, domain.Cart) error {
	return nil
}

func (Noop) PublishItemRemoved(context.Context, string, int, domain.Record, domain.Cart) error {
	return nil
}
