package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// TopicPrefix namespaces every topic produced by the storefront.
const TopicPrefix = "storefront"

// Topic builds a fully qualified topic name, e.g. Topic("cart", "item_added")
// yields "storefront.cart.item_added".
func Topic(domain, action string) string {
	return TopicPrefix + "." + domain + "." + action
}

// Message header keys.
const (
	HeaderEventType     = "event_type"
	HeaderSource        = "source"
	HeaderCorrelationID = "correlation_id"
)

// Event is the JSON envelope written as the value of every message.
type Event struct {
	EventID       string            `json:"event_id"`
	EventType     string            `json:"event_type"`
	AggregateID   string            `json:"aggregate_id"`
	AggregateType string            `json:"aggregate_type"`
	Version       int               `json:"version"`
	Timestamp     time.Time         `json:"timestamp"`
	Source        string            `json:"source"`
	CorrelationID string            `json:"correlation_id,omitempty"`
	Data          json.RawMessage   `json:"data"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// Option customizes an Event built by NewEvent.
type Option func(*Event)

// WithCorrelationID tags the event with the request's correlation ID. Empty
// IDs are ignored.
func WithCorrelationID(id string) Option {
	return func(e *Event) {
		if id != "" {
			e.CorrelationID = id
		}
	}
}

// WithMetadata adds a free-form key to the envelope.
func WithMetadata(key, value string) Option {
	return func(e *Event) {
		if e.Metadata == nil {
			e.Metadata = make(map[string]string)
		}
		e.Metadata[key] = value
	}
}

// At overrides the event timestamp.
func At(t time.Time) Option {
	return func(e *Event) {
		e.Timestamp = t.UTC()
	}
}

// NewEvent builds an envelope around data, which is marshaled eagerly so that
// encoding errors surface before anything is written.
func NewEvent(eventType, aggregateType, aggregateID, source string, data any, opts ...Option) (*Event, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}

	e := &Event{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		AggregateID:   aggregateID,
		AggregateType: aggregateType,
		Version:       1,
		Timestamp:     time.Now().UTC(),
		Source:        source,
		Data:          raw,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Message encodes the event for topic. The aggregate ID is the key so that
// events of one session land on the same partition in order.
func (e *Event) Message(topic string) (kafka.Message, error) {
	value, err := json.Marshal(e)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal event: %w", err)
	}

	headers := []kafka.Header{
		{Key: HeaderEventType, Value: []byte(e.EventType)},
		{Key: HeaderSource, Value: []byte(e.Source)},
	}
	if e.CorrelationID != "" {
		headers = append(headers, kafka.Header{Key: HeaderCorrelationID, Value: []byte(e.CorrelationID)})
	}

	return kafka.Message{
		Topic:   topic,
		Key:     []byte(e.AggregateID),
		Value:   value,
		Headers: headers,
		Time:    e.Timestamp,
	}, nil
}

// DecodeMessage reads an envelope back out of a message value.
func DecodeMessage(msg kafka.Message) (*Event, error) {
	var e Event
	if err := json.Unmarshal(msg.Value, &e); err != nil {
		return nil, fmt.Errorf("decode event from %s: %w", msg.Topic, err)
	}
	return &e, nil
}

// UnmarshalData decodes the payload into target.
func (e *Event) UnmarshalData(target any) error {
	return json.Unmarshal(e.Data, target)
}
