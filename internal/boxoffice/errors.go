// Package boxoffice ties the seat inventory, allocation engine, cash
// register, ledger and sale events into the operations the counter runs:
// selling a batch of seats, closing a shift and reviewing the day.
package boxoffice

import "errors"

// ErrPendingWrite is returned together with a completed Sale when the
// ledger could not record it.  The sale stands; the ledger line is queued
// and retried before the next write and before cashout.
var ErrPendingWrite = errors.New("sale recorded in memory only; ledger write pending")

// ErrEmptySale is returned when a checkout carries no seats.
var ErrEmptySale = errors.New("no seats selected")

// ErrNoSuchShowtime is returned for a showtime index outside the schedule.
var ErrNoSuchShowtime = errors.New("no such showtime")
