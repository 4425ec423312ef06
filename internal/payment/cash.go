// Package payment simulates the cash register.  From the box office's point
// of view payment is atomic: Collect either returns a Result for the full
// amount due or ErrCancelled, and nothing in between is observable.
package payment

import (
	"context"
	"errors"

	"github.com/iliyamo/cinema-box-office/internal/model"
)

// ErrCancelled is returned when the operator abandons the payment.
var ErrCancelled = errors.New("payment cancelled")

// CancelTender is the tender that abandons the payment.
const CancelTender model.Cents = -100 // "-1"

// Result describes a completed payment.
type Result struct {
	Due    model.Cents // amount that had to be collected
	Paid   model.Cents // cash handed over in total
	Change model.Cents // Paid - Due
}

// Collector takes payment for an amount due.
type Collector interface {
	Collect(ctx context.Context, due model.Cents) (Result, error)
}

// CashSource supplies the tenders typed in at the register.
type CashSource interface {
	// Tender returns the next amount entered.  due and paid describe the
	// state of the drawer so the source can show the remaining balance.  An
	// error means input is no longer available.
	Tender(due, paid model.Cents) (string, error)
	// Rejected reports a tender that was not accepted.
	Rejected(input string)
}

// CashDrawer collects cash tender by tender until the amount due is
// covered.  Invalid or non-positive tenders are ignored; the cancel tender
// ("-1") abandons the payment.
type CashDrawer struct {
	src CashSource
}

// NewCashDrawer returns a CashDrawer reading tenders from src.
func NewCashDrawer(src CashSource) *CashDrawer {
	if src == nil {
		panic("nil cash source passed to NewCashDrawer")
	}
	return &CashDrawer{src: src}
}

// Collect implements Collector.  An input error from the source is treated
// as a cancellation so no sale is recorded for money that was never
// confirmed.
func (d *CashDrawer) Collect(ctx context.Context, due model.Cents) (Result, error) {
	var paid model.Cents
	for paid < due {
		if err := ctx.Err(); err != nil {
			return Result{}, errors.Join(ErrCancelled, err)
		}
		input, err := d.src.Tender(due, paid)
		if err != nil {
			return Result{}, errors.Join(ErrCancelled, err)
		}
		amount, err := model.ParseAmount(input)
		if err != nil {
			d.src.Rejected(input)
			continue
		}
		if amount == CancelTender {
			return Result{}, ErrCancelled
		}
		if amount <= 0 {
			d.src.Rejected(input)
			continue
		}
		paid += amount
	}
	return Result{Due: due, Paid: paid, Change: paid - due}, nil
}
