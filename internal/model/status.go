package model

import "strings"

// Status is the lifecycle state of an order. Updates may move an order to
// any valid status, backwards included, as long as it has not been
// delivered.
type Status string

const (
	StatusPending        Status = "pending"
	StatusPreparing      Status = "preparing"
	StatusOutForDelivery Status = "out-for-delivery"
	StatusDelivered      Status = "delivered"
)

var statuses = []Status{StatusPending, StatusPreparing, StatusOutForDelivery, StatusDelivered}

func Statuses() []Status {
	return append([]Status(nil), statuses...)
}

func (s Status) Valid() bool {
	for _, v := range statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Final reports whether the order can no longer change.
func (s Status) Final() bool {
	return s == StatusDelivered
}

func (s Status) String() string {
	return string(s)
}

// StatusList renders the valid statuses as "a, b, c".
func StatusList() string {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
