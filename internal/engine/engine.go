// Package engine wires the order book to its Kafka and Redis
// collaborators: it reads order requests off the order topic, submits
// them to an orderbook.OrderBook, publishes the resulting trades to
// the trade topic, and periodically snapshots book state to Redis so
// a restart doesn't need to replay the order topic from the start.
//
// Grounded on the teacher's matching-service internal/app/engine:
// same two-goroutine shape (order processor, snapshot manager) and
// graceful-shutdown discipline via context.CancelFunc + sync.WaitGroup,
// generalized from the teacher's float64 order book to this package's
// decimal-priced one and from its Kafka-offset snapshot throttle to a
// trades-processed counter (this engine commits via consumer group,
// it does not track offsets itself).
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/kesslerquant/matchbook/internal/config"
	"github.com/kesslerquant/matchbook/internal/matchpublisher"
	"github.com/kesslerquant/matchbook/internal/orderbook"
	"github.com/kesslerquant/matchbook/internal/orderreader"
	"github.com/kesslerquant/matchbook/internal/snapshot"
	"github.com/kesslerquant/matchbook/pkg/logger"
	"github.com/kesslerquant/matchbook/pkg/util"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// orderTypeCancel is a wire-level pseudo order type: it carries an
// OrderID to cancel rather than a new order to submit. The orderbook
// package itself has no notion of a cancel "order", cancellation is
// its own operation; this is purely a Kafka framing convenience so
// submissions and cancellations share one topic and one envelope.
const orderTypeCancel = "CANCEL"

// Engine is the process-level driver around an orderbook.OrderBook.
type Engine struct {
	book       *orderbook.OrderBook
	reader     *orderreader.Reader
	publisher  *matchpublisher.Publisher
	snapshots  *snapshot.Store
	logger     *logger.Logger
	instrument string

	snapshotInterval   time.Duration
	snapshotTradeDelta int64

	mu                  sync.Mutex
	tradesSinceSnapshot int64

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates an Engine whose snapshot cadence comes from
// cfg.EngineConfig, restoring book's state from the snapshot store if
// one exists.
func New(book *orderbook.OrderBook, reader *orderreader.Reader, publisher *matchpublisher.Publisher, snapshots *snapshot.Store, log *logger.Logger, cfg *config.Config) *Engine {
	return NewWithOptions(book, reader, publisher, snapshots, log, cfg, &Options{
		SnapshotInterval:   cfg.SnapshotInterval,
		SnapshotTradeDelta: cfg.SnapshotTradeDelta,
	})
}

// NewWithOptions is New with an explicit snapshot cadence in place of
// cfg.EngineConfig.
func NewWithOptions(book *orderbook.OrderBook, reader *orderreader.Reader, publisher *matchpublisher.Publisher, snapshots *snapshot.Store, log *logger.Logger, cfg *config.Config, opts *Options) *Engine {
	e := &Engine{
		book:               book,
		reader:             reader,
		publisher:          publisher,
		snapshots:          snapshots,
		logger:             log,
		instrument:         cfg.Instrument,
		snapshotInterval:   opts.SnapshotInterval,
		snapshotTradeDelta: opts.SnapshotTradeDelta,
	}

	if err := e.restore(context.Background()); err != nil {
		e.logger.GetZap().Fatal("failed to restore snapshot", zap.Error(err))
	}

	return e
}

// Start launches the order processor and snapshot manager goroutines.
func (e *Engine) Start(ctx context.Context) {
	e.ctx, e.cancel = context.WithCancel(ctx)

	e.wg.Add(2)
	go e.runOrderProcessor()
	go e.runSnapshotManager()

	e.logger.Info("engine started", logger.NewField("instrument", e.instrument))
}

// Stop cancels both goroutines and waits for them to exit, or returns
// ctx's error if it is cancelled first.
func (e *Engine) Stop(ctx context.Context) error {
	if e.cancel != nil {
		e.cancel()
	}

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		e.logger.Info("engine stopped")
		return nil
	case <-ctx.Done():
		e.logger.Warn("engine stop timed out")
		return ctx.Err()
	}
}

func (e *Engine) runOrderProcessor() {
	defer e.wg.Done()
	e.logger.Info("order processor starting", logger.NewField("instrument", e.instrument))

	for {
		select {
		case <-e.ctx.Done():
			e.logger.Info("order processor shutting down")
			if err := e.reader.Close(); err != nil {
				e.logger.Error(err)
			}
			return
		default:
		}

		msg, req, err := e.reader.ReadMessage(e.ctx)
		if err != nil {
			if e.ctx.Err() != nil {
				continue
			}
			e.logger.ErrorContext(e.ctx, err, logger.NewField("action", "read_order_request"))
			time.Sleep(100 * time.Millisecond)
			continue
		}

		reqCtx := util.WithRequestID(e.ctx, req.OrderID)
		if err := e.processRequest(reqCtx, req); err != nil {
			e.logger.ErrorContext(reqCtx, err,
				logger.NewField("action", "process_order_request"),
				logger.NewField("orderID", req.OrderID),
			)
		}

		if err := e.reader.CommitMessages(e.ctx, msg); err != nil {
			e.logger.ErrorContext(e.ctx, err, logger.NewField("action", "commit_order_message"))
		}
	}
}

func (e *Engine) processRequest(ctx context.Context, req *orderreader.PlaceOrderRequest) error {
	if req.Type == orderTypeCancel {
		cancelled := e.book.Cancel(req.OrderID)
		e.logger.DebugContext(ctx, "cancel request processed",
			logger.NewField("orderID", req.OrderID),
			logger.NewField("cancelled", cancelled),
		)
		return nil
	}

	price := decimal.Zero
	if req.Price != "" {
		parsed, err := decimal.NewFromString(req.Price)
		if err != nil {
			return err
		}
		price = parsed
	}

	order := orderbook.NewOrder(
		req.Instrument,
		orderbook.Side(req.Side),
		orderbook.OrderType(req.Type),
		req.Quantity,
		price,
		req.Timestamp,
		req.AgentID,
	)

	trades, err := e.book.Submit(order, req.Timestamp)
	if err != nil {
		return err
	}
	if len(trades) == 0 {
		return nil
	}

	e.recordTrades(int64(len(trades)))
	for _, trade := range trades {
		if err := e.publisher.PublishTrade(ctx, trade); err != nil {
			e.logger.ErrorContext(ctx, err, logger.NewField("tradeID", trade.ID))
		}
	}
	return nil
}

func (e *Engine) runSnapshotManager() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.snapshotInterval)
	defer ticker.Stop()
	e.logger.Info("snapshot manager starting")

	for {
		select {
		case <-e.ctx.Done():
			e.logger.Info("snapshot manager shutting down")
			return
		case <-ticker.C:
			e.logBookState()
			if e.shouldSnapshot() {
				e.takeSnapshot()
			}
		}
	}
}

// logBookState writes a single structured log line summarizing
// top-of-book so operators have an observable view of book state
// without standing up a query API.
func (e *Engine) logBookState() {
	fields := []logger.Field{logger.NewField("instrument", e.instrument)}

	if bid, ok := e.book.BestBid(); ok {
		fields = append(fields, logger.NewField("bestBid", bid.Price.String()), logger.NewField("bestBidQty", bid.Quantity))
	}
	if ask, ok := e.book.BestAsk(); ok {
		fields = append(fields, logger.NewField("bestAsk", ask.Price.String()), logger.NewField("bestAskQty", ask.Quantity))
	}
	if spread, ok := e.book.Spread(); ok {
		fields = append(fields, logger.NewField("spread", spread.String()))
	}

	e.logger.Info("book state", fields...)
}

func (e *Engine) shouldSnapshot() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tradesSinceSnapshot >= e.snapshotTradeDelta
}

func (e *Engine) recordTrades(n int64) {
	e.mu.Lock()
	e.tradesSinceSnapshot += n
	e.mu.Unlock()
}

func (e *Engine) takeSnapshot() {
	e.mu.Lock()
	captured := e.tradesSinceSnapshot
	e.mu.Unlock()

	snap := snapshot.FromOrderBook(e.book, captured)
	if err := e.snapshots.Save(e.ctx, snap); err != nil {
		e.logger.ErrorContext(e.ctx, err, logger.NewField("action", "save_snapshot"))
		return
	}

	e.mu.Lock()
	e.tradesSinceSnapshot = 0
	e.mu.Unlock()

	e.logger.Info("snapshot saved",
		logger.NewField("instrument", e.instrument),
		logger.NewField("orders", len(snap.Orders)),
	)
}

func (e *Engine) restore(ctx context.Context) error {
	snap, err := e.snapshots.Load(ctx)
	if err != nil {
		return err
	}
	if snap == nil {
		return nil
	}

	e.book.Restore(snap.ToOrders())
	e.logger.Info("orderbook restored from snapshot",
		logger.NewField("instrument", e.instrument),
		logger.NewField("orders", len(snap.Orders)),
	)
	return nil
}
