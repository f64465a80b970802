// Package matchpublisher publishes executed trades to Kafka. Grounded
// on the teacher's usecase/match-publisher: same kafka-go writer
// shape, JSON instead of the uncopied protobuf payload type.
package matchpublisher

import (
	"context"
	"encoding/json"

	"github.com/kesslerquant/matchbook/internal/config"
	"github.com/kesslerquant/matchbook/internal/orderbook"
	"github.com/kesslerquant/matchbook/pkg/errors"
	"github.com/kesslerquant/matchbook/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// TradeEvent is the wire shape of an executed trade, published to the
// trade topic for downstream consumers (PnL, analytics, agents).
type TradeEvent struct {
	ID          string `json:"id"`
	Instrument  string `json:"instrument"`
	BuyOrderID  string `json:"buy_order_id"`
	SellOrderID string `json:"sell_order_id"`
	BuyAgentID  string `json:"buy_agent_id"`
	SellAgentID string `json:"sell_agent_id"`
	Price       string `json:"price"`
	Quantity    int64  `json:"quantity"`
	Timestamp   int64  `json:"timestamp"`
}

// ToTradeEvent converts a matched orderbook.Trade into its wire form.
func ToTradeEvent(trade orderbook.Trade) TradeEvent {
	return TradeEvent{
		ID:          trade.ID,
		Instrument:  trade.Instrument,
		BuyOrderID:  trade.BuyOrderID,
		SellOrderID: trade.SellOrderID,
		BuyAgentID:  trade.BuyAgentID,
		SellAgentID: trade.SellAgentID,
		Price:       trade.Price.String(),
		Quantity:    trade.Quantity,
		Timestamp:   trade.Timestamp,
	}
}

// Publisher publishes TradeEvents to the trade topic.
type Publisher struct {
	kafkaWriter *kafka.Writer
	logger      *logger.Logger
}

// NewPublisher creates a new Kafka-backed trade publisher.
func NewPublisher(cfg config.KafkaConfig, log *logger.Logger) *Publisher {
	kafkaWriter := kafka.NewWriter(kafka.WriterConfig{
		Brokers: cfg.Brokers,
		Topic:   cfg.TradeTopic,
	})

	return &Publisher{
		kafkaWriter: kafkaWriter,
		logger:      log,
	}
}

// PublishTrade publishes a single executed trade.
func (p *Publisher) PublishTrade(ctx context.Context, trade orderbook.Trade) error {
	event := ToTradeEvent(trade)
	buf, err := json.Marshal(event)
	if err != nil {
		return errors.NewErrorDetails("failed to marshal trade event", string(errors.KafkaWriteError), "trade")
	}

	if err := p.kafkaWriter.WriteMessages(ctx, kafka.Message{Value: buf}); err != nil {
		p.logger.Error(err,
			logger.Field{Key: "error", Value: err.Error()},
			logger.Field{Key: "tradeID", Value: trade.ID},
		)
		return errors.NewErrorDetails("failed to publish trade event", string(errors.KafkaWriteError), "trade")
	}
	return nil
}

// Close releases the underlying Kafka connection.
func (p *Publisher) Close() error {
	return p.kafkaWriter.Close()
}
