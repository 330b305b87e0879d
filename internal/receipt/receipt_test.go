package receipt

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/spacbotltd/spacbot-api/internal/types"
)

var testPricing = Pricing{Below13: 1000, AtOrAbove13: 1500}

func TestPriceForIgnoresProgram(t *testing.T) {
	// The fee depends on the age category alone — adding different
	// programs in the same category must always yield the tier price.
	for _, program := range []string{"Arduino", "Python", "Scratch", "AI"} {
		cart := NewCart(testPricing)

		item, err := cart.Add(program, CategoryBelow13)
		if err != nil {
			t.Fatalf("Add(%q, Below 13) error = %v", program, err)
		}
		if item.Price != 1000 {
			t.Errorf("Add(%q, Below 13) price = %v, want 1000", program, item.Price)
		}

		item, err = cart.Add(program, CategoryAtOrAbove13)
		if err != nil {
			t.Fatalf("Add(%q, 13 and Above) error = %v", program, err)
		}
		if item.Price != 1500 {
			t.Errorf("Add(%q, 13 and Above) price = %v, want 1500", program, item.Price)
		}
	}
}

func TestPriceForUnknownCategory(t *testing.T) {
	_, err := testPricing.PriceFor("Teenager")
	if !errors.Is(err, ErrUnknownAgeCategory) {
		t.Errorf("PriceFor(Teenager) error = %v, want ErrUnknownAgeCategory", err)
	}
}

func TestCartLifecycle(t *testing.T) {
	cart := NewCart(testPricing)

	if !cart.Empty() {
		t.Error("new cart should be empty")
	}

	if _, err := cart.Add("Arduino", CategoryAtOrAbove13); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if _, err := cart.Add("Scratch", CategoryBelow13); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if cart.Empty() {
		t.Error("cart with items reports Empty()")
	}
	if got := len(cart.Items()); got != 2 {
		t.Errorf("Items() len = %d, want 2", got)
	}
	if got := cart.GrandTotal(); got != 2500 {
		t.Errorf("GrandTotal() = %v, want 2500", got)
	}

	// Items returns a copy; mutating it must not touch the cart.
	items := cart.Items()
	items[0].Total = 0
	if got := cart.GrandTotal(); got != 2500 {
		t.Errorf("GrandTotal() after mutating copy = %v, want 2500", got)
	}

	cart.Clear()
	if !cart.Empty() {
		t.Error("cart not empty after Clear()")
	}
	if got := cart.GrandTotal(); got != 0 {
		t.Errorf("GrandTotal() after Clear() = %v, want 0", got)
	}
}

func TestSummarize(t *testing.T) {
	arduino := []types.ReceiptLineItem{{Name: "Arduino", Qty: 1, Price: 1500, Total: 1500}}

	tests := []struct {
		name       string
		items      []types.ReceiptLineItem
		amountPaid float64
		wantTotal  float64
		wantBal    float64
		wantStatus string
	}{
		{"part payment", arduino, 1000, 1500, 500, StatusPartPayment},
		{"fully paid", arduino, 1500, 1500, 0, StatusFullyPaid},
		{"overpaid clamps to zero", arduino, 2000, 1500, 0, StatusFullyPaid},
		{"empty items", nil, 0, 0, 0, StatusFullyPaid},
		{"empty items with payment", nil, 300, 0, 0, StatusFullyPaid},
		{
			"multiple items",
			[]types.ReceiptLineItem{
				{Name: "Arduino", Qty: 1, Price: 1500, Total: 1500},
				{Name: "Scratch", Qty: 1, Price: 1000, Total: 1000},
			},
			2000, 2500, 500, StatusPartPayment,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, bal, status := Summarize(tt.items, tt.amountPaid)
			if total != tt.wantTotal {
				t.Errorf("grandTotal = %v, want %v", total, tt.wantTotal)
			}
			if bal != tt.wantBal {
				t.Errorf("balance = %v, want %v", bal, tt.wantBal)
			}
			if status != tt.wantStatus {
				t.Errorf("status = %q, want %q", status, tt.wantStatus)
			}
		})
	}
}

func TestID(t *testing.T) {
	now := time.Date(2026, time.March, 14, 10, 30, 45, 0, time.UTC)
	if got := ID(now); got != "R-20260314103045" {
		t.Errorf("ID() = %q, want R-20260314103045", got)
	}
}

func TestRender(t *testing.T) {
	now := time.Date(2026, time.March, 14, 10, 30, 45, 0, time.UTC)

	tests := []struct {
		name string
		d    Details
	}{
		{
			"with items",
			Details{
				StudentName:   "Ama Mensah",
				PaymentMethod: "Mobile Money",
				Items: []types.ReceiptLineItem{
					{Name: "Arduino", Qty: 1, Price: 1500, Total: 1500},
				},
				AmountPaid: 1000,
			},
		},
		{
			"empty items renders gracefully",
			Details{StudentName: "Ama Mensah", PaymentMethod: "Cash"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Render(tt.d, now)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if len(out) == 0 {
				t.Fatal("Render() returned empty output")
			}
			if !bytes.HasPrefix(out, []byte("%PDF")) {
				t.Errorf("Render() output does not start with %%PDF: %q", out[:8])
			}
		})
	}
}

func TestRenderSameItemsIsRepeatable(t *testing.T) {
	// Re-rendering the same in-memory list must not error and must keep
	// producing a document; totals are pure functions of the inputs.
	d := Details{
		StudentName:   "Kofi",
		PaymentMethod: "Cash",
		Items:         []types.ReceiptLineItem{{Name: "Robotics", Qty: 1, Price: 1000, Total: 1000}},
		AmountPaid:    1000,
	}
	now := time.Date(2026, time.January, 2, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 2; i++ {
		if _, err := Render(d, now); err != nil {
			t.Fatalf("Render() pass %d error = %v", i+1, err)
		}
	}
}
