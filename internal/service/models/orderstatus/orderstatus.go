package orderstatus

import (
	"database/sql/driver"
	"errors"
)

// Status is the fulfillment state of an order. The set is closed: menu
// categories are admin-extensible strings, order statuses are not.
type Status string

const (
	StatusConfirmed      Status = "confirmed"
	StatusPreparing      Status = "preparing"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
)

var (
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// rank orders statuses along the delivery progression.
var rank = map[Status]int{
	StatusConfirmed:      0,
	StatusPreparing:      1,
	StatusOutForDelivery: 2,
	StatusDelivered:      3,
}

func (s Status) String() string {
	return string(s)
}

func (s Status) Value() (driver.Value, error) {
	return s.String(), nil
}

// ParseStatus parses a status string.
func ParseStatus(s string) (Status, error) {
	switch s {
	case StatusConfirmed.String():
		return StatusConfirmed, nil
	case StatusPreparing.String():
		return StatusPreparing, nil
	case StatusOutForDelivery.String():
		return StatusOutForDelivery, nil
	case StatusDelivered.String():
		return StatusDelivered, nil
	default:
		return "", ErrInvalidStatus
	}
}

// CanTransitionTo reports whether moving from s to next is allowed.
// Progression is forward-only; re-setting the current status is allowed so
// that retried updates stay harmless.
func (s Status) CanTransitionTo(next Status) bool {
	from, ok := rank[s]
	if !ok {
		return false
	}
	to, ok := rank[next]
	if !ok {
		return false
	}

	return to >= from
}
