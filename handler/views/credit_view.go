package views

import (
	"pledge/core"
)

// Credit credit record view with recent repayment events
type Credit struct {
	core.CreditRecord
	Events []*core.CreditEvent `json:"events,omitempty"`
}
