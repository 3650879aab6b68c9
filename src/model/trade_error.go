package model

import (
	"fmt"
)

// OrderTerminatedError signals that an order reached a terminal non-FILLED
// status, observed via the user data stream or an order status poll.
type OrderTerminatedError struct {
	OrderId int64
	Status  string
	Reason  string
}

func (e OrderTerminatedError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("order #%d %s", e.OrderId, e.Status)
	}

	return fmt.Sprintf("order #%d %s. Reason: %s", e.OrderId, e.Status, e.Reason)
}
