// Package models holds the invoice domain types shared by the server
// repositories, services and HTTP layer.
package models

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// LineItem is a single billed position on an invoice.
//
// Qty and Price carry a deliberate leniency policy inherited from the
// billing form: negative or non-numeric raw input collapses to zero instead
// of failing the request. See UnmarshalJSON.
type LineItem struct {
	Name  string  `json:"name"`
	Qty   int64   `json:"qty"`
	Price float64 `json:"price"`
}

// Subtotal returns qty * price for the item.
func (li LineItem) Subtotal() float64 {
	return float64(li.Qty) * li.Price
}

// lineItemWire mirrors LineItem but accepts qty/price as any JSON value so
// string and junk inputs can be coerced rather than rejected.
type lineItemWire struct {
	Name  string          `json:"name"`
	Qty   json.RawMessage `json:"qty"`
	Price json.RawMessage `json:"price"`
}

// UnmarshalJSON decodes a line item, clamping invalid or negative numeric
// input to zero. The policy is intentional: the composing form never blocks
// on a bad number, it just zeroes it out.
func (li *LineItem) UnmarshalJSON(data []byte) error {
	var w lineItemWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	li.Name = w.Name
	li.Qty = coerceInt(w.Qty)
	li.Price = coerceFloat(w.Price)
	return nil
}

// coerceFloat parses a raw JSON value as a non-negative float64.
// Numbers, quoted numbers and null are accepted; anything unparsable or
// negative becomes 0.
func coerceFloat(raw json.RawMessage) float64 {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return 0
	}
	s = strings.Trim(s, `"`)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// coerceInt parses a raw JSON value as a non-negative integer quantity.
// Fractional quantities are truncated the way the form's parseInt did.
func coerceInt(raw json.RawMessage) int64 {
	v := coerceFloat(raw)
	return int64(v)
}

// Invoice is a persisted billing record. Records are append-only: once
// stored they are never updated or deleted.
type Invoice struct {
	InvoiceNumber int64      `json:"invoiceNumber"`
	Customer      string     `json:"customer"`
	Date          string     `json:"date"`
	Items         []LineItem `json:"items"`
	Total         float64    `json:"total"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// ComputeTotal returns the sum of item subtotals. The stored Total is always
// this value, never the caller-supplied one.
func ComputeTotal(items []LineItem) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Subtotal()
	}
	return sum
}

// Normalize recomputes the invoice total from its items.
func (inv *Invoice) Normalize() {
	inv.Total = ComputeTotal(inv.Items)
}
