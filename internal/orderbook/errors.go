package orderbook

import (
	"github.com/kesslerquant/matchbook/pkg/errors"
)

// InvalidOrder reports a caller-contract violation on submission: bad
// quantity, unknown side/type, a negative or non-finite price, or an
// empty instrument. These are rejected cleanly rather than panicking ,
// the caller made a mistake, the book did not.
func InvalidOrder(reason, field string) error {
	return errors.NewErrorDetails(reason, string(errors.GeneralBadRequestError), field)
}

// validate checks the caller-contract preconditions on order. It does
// not consult book state, only the order's own fields.
func validate(order *Order) error {
	if order.Instrument == "" {
		return InvalidOrder("instrument must not be empty", "instrument")
	}
	if order.Side != SideBuy && order.Side != SideSell {
		return InvalidOrder("side must be BUY or SELL", "side")
	}
	switch order.Type {
	case OrderTypeLimit, OrderTypeMarket, OrderTypeIOC, OrderTypeFOK:
	default:
		return InvalidOrder("type must be one of LIMIT, MARKET, IOC, FOK", "type")
	}
	if order.Quantity <= 0 {
		return InvalidOrder("quantity must be positive", "quantity")
	}
	if order.Remaining != order.Quantity {
		return InvalidOrder("remaining must equal quantity on submission", "remaining")
	}
	if order.Type != OrderTypeMarket {
		if order.Price.IsNegative() {
			return InvalidOrder("price must not be negative", "price")
		}
	}
	return nil
}
