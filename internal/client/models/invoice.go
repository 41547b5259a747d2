// Package models holds the client-side invoice types: drafts composed by
// the user and the durable queue records awaiting server confirmation.
package models

import "time"

// LineItem mirrors the server's line item. Quantities and prices are
// sanitized by the CLI input layer before a draft is built, so negative or
// unparsable input is already zero by the time it gets here.
type LineItem struct {
	Name  string  `json:"name"`
	Qty   int64   `json:"qty"`
	Price float64 `json:"price"`
}

// Subtotal returns qty * price for the item.
func (li LineItem) Subtotal() float64 {
	return float64(li.Qty) * li.Price
}

// Draft is an invoice as composed, before any number is assigned.
type Draft struct {
	Customer string     `json:"customer"`
	Date     string     `json:"date"`
	Items    []LineItem `json:"items"`
	Total    float64    `json:"total"`
}

// ComputeTotal returns the sum of item subtotals.
func ComputeTotal(items []LineItem) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Subtotal()
	}
	return sum
}

// QueuedInvoice is a durable queue record for an invoice created while the
// server was unreachable. LocalNumber is provisional display identity only;
// the server re-assigns the real number during reconciliation, after which
// the record is marked synced and carries ServerNumber.
type QueuedInvoice struct {
	ID           string // uuid, stable across sync attempts
	LocalNumber  int64
	Customer     string
	Date         string
	Items        []LineItem
	Total        float64
	CreatedAt    time.Time
	Synced       bool
	ServerNumber int64 // valid only when Synced
}

// Identity is the tagged invoice identity shown to the user: provisional
// until the server acknowledges, confirmed after.
type Identity struct {
	Confirmed bool
	Number    int64
}

// Identity returns the record's current display identity.
func (q *QueuedInvoice) Identity() Identity {
	if q.Synced {
		return Identity{Confirmed: true, Number: q.ServerNumber}
	}
	return Identity{Confirmed: false, Number: q.LocalNumber}
}
