// Package orderreader consumes incoming order requests off Kafka.
// Grounded on the teacher's usecase/order-reader consumer: same
// kafka-go reader shape and logging discipline, but decoding JSON
// instead of the teacher's protobuf payload, the proto module that
// defines PlaceOrderPayload lives in a sibling module this repository
// does not carry, and order requests already round-trip cleanly as
// JSON without it.
package orderreader

import (
	"context"
	"encoding/json"

	"github.com/kesslerquant/matchbook/internal/config"
	"github.com/kesslerquant/matchbook/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// PlaceOrderRequest is the wire shape of an incoming order, decoded
// off the order topic.
type PlaceOrderRequest struct {
	OrderID    string `json:"order_id"`
	Instrument string `json:"instrument"`
	Side       string `json:"side"`
	Type       string `json:"type"`
	Quantity   int64  `json:"quantity"`
	Price      string `json:"price"`
	Timestamp  int64  `json:"timestamp"`
	AgentID    string `json:"agent_id"`
}

// Reader consumes PlaceOrderRequests from the order topic.
type Reader struct {
	kafkaReader *kafka.Reader
	logger      *logger.Logger
}

// NewReader creates a new Kafka-backed order reader.
func NewReader(cfg config.KafkaConfig, log *logger.Logger) *Reader {
	kafkaReader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.OrderTopic,
		GroupID:     cfg.GroupID,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.LastOffset,
	})

	return &Reader{
		kafkaReader: kafkaReader,
		logger:      log,
	}
}

func (r *Reader) logError(err error, operation string) {
	r.logger.Error(err,
		logger.Field{Key: "error", Value: err.Error()},
		logger.Field{Key: "operation", Value: operation},
	)
}

// ReadMessage reads and decodes the next order request from the
// topic. The returned kafka.Message is for CommitMessages bookkeeping
// only; callers should not inspect its Value directly.
func (r *Reader) ReadMessage(ctx context.Context) (kafka.Message, *PlaceOrderRequest, error) {
	msg, err := r.kafkaReader.ReadMessage(ctx)
	if err != nil {
		r.logError(err, "ReadMessage")
		return kafka.Message{}, nil, err
	}

	var req PlaceOrderRequest
	if err := json.Unmarshal(msg.Value, &req); err != nil {
		r.logError(err, "UnmarshalOrder")
		return kafka.Message{}, nil, err
	}

	r.logger.Info("read order request",
		logger.Field{Key: "orderID", Value: req.OrderID},
		logger.Field{Key: "instrument", Value: req.Instrument},
		logger.Field{Key: "side", Value: req.Side},
		logger.Field{Key: "type", Value: req.Type},
		logger.Field{Key: "quantity", Value: req.Quantity},
	)

	return msg, &req, nil
}

// CommitMessages acknowledges msgs as processed.
func (r *Reader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	if err := r.kafkaReader.CommitMessages(ctx, msgs...); err != nil {
		r.logError(err, "CommitMessages")
		return err
	}
	return nil
}

// Close releases the underlying Kafka connection.
func (r *Reader) Close() error {
	if err := r.kafkaReader.Close(); err != nil {
		r.logError(err, "Close")
		return err
	}
	return nil
}
