// Package receipt implements the payment-receipt side of the business:
// a cart of priced program enrolments plus PDF rendering of the final
// itemised receipt.
//
// Pricing is two-tier by age category only — every program costs the
// same within a tier. The cart is plain explicit state owned by its
// caller; nothing in this package persists anything.
package receipt

import (
	"errors"
	"fmt"
	"time"

	"github.com/spacbotltd/spacbot-api/internal/types"
)

// Age categories as they appear on the enrolment form.
const (
	CategoryBelow13     = "Below 13"
	CategoryAtOrAbove13 = "13 and Above"
)

// Payment status strings printed on the receipt.
const (
	StatusFullyPaid   = "Fully Paid"
	StatusPartPayment = "Part Payment"
)

// ErrUnknownAgeCategory is returned when an item names a category
// outside the two-tier table.
var ErrUnknownAgeCategory = errors.New("unknown age category")

// Pricing is the two-tier fee table in GHS.
type Pricing struct {
	Below13     float64
	AtOrAbove13 float64
}

// PriceFor returns the fee for an age category. The program being
// enrolled is irrelevant to the price.
func (p Pricing) PriceFor(category string) (float64, error) {
	switch category {
	case CategoryBelow13:
		return p.Below13, nil
	case CategoryAtOrAbove13:
		return p.AtOrAbove13, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAgeCategory, category)
	}
}

// Cart accumulates receipt line items. Zero value is not usable — build
// one with NewCart so it carries the fee table.
type Cart struct {
	pricing Pricing
	items   []types.ReceiptLineItem
}

// NewCart returns an empty cart priced from the given table.
func NewCart(pricing Pricing) *Cart {
	return &Cart{pricing: pricing}
}

// Add prices one program enrolment and appends it as a line item.
// Quantity is always 1; the line total equals the unit price.
func (c *Cart) Add(program, ageCategory string) (types.ReceiptLineItem, error) {
	price, err := c.pricing.PriceFor(ageCategory)
	if err != nil {
		return types.ReceiptLineItem{}, err
	}

	item := types.ReceiptLineItem{
		Name:  program,
		Qty:   1,
		Price: price,
		Total: price,
	}
	c.items = append(c.items, item)
	return item, nil
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = nil
}

// Empty reports whether the cart has no items.
func (c *Cart) Empty() bool {
	return len(c.items) == 0
}

// Items returns a copy of the line items, so callers cannot mutate the
// cart's internal slice.
func (c *Cart) Items() []types.ReceiptLineItem {
	out := make([]types.ReceiptLineItem, len(c.items))
	copy(out, c.items)
	return out
}

// GrandTotal sums the line totals.
func (c *Cart) GrandTotal() float64 {
	var sum float64
	for _, item := range c.items {
		sum += item.Total
	}
	return sum
}

// Summarize computes the three summary figures printed under the table.
// The balance never goes negative — an overpayment still reads as fully
// paid with a zero balance.
func Summarize(items []types.ReceiptLineItem, amountPaid float64) (grandTotal, balance float64, status string) {
	for _, item := range items {
		grandTotal += item.Total
	}

	balance = grandTotal - amountPaid
	if balance <= 0 {
		balance = 0
	}

	status = StatusPartPayment
	if balance == 0 {
		status = StatusFullyPaid
	}
	return grandTotal, balance, status
}

// ID derives the receipt identifier from the generation time, to second
// precision: R-20260314103000. Two receipts generated within the same
// second share an ID; at this volume that has never mattered.
func ID(now time.Time) string {
	return "R-" + now.Format("20060102150405")
}
