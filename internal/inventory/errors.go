// Package inventory owns the seat availability table for every showtime.
// It is the single source of truth for whether a seat is free, held by a
// checkout in progress, or sold.
package inventory

import "errors"

// ErrSeatOutOfRange is returned when a mutation addresses a seat or
// showtime outside the matrix.
var ErrSeatOutOfRange = errors.New("seat out of range")

// ErrDuplicateSeat is returned when the same seat appears twice in one
// mutation.  Committing it would hide a double count.
var ErrDuplicateSeat = errors.New("duplicate seat in set")

// ErrSeatSold is returned when a mutation touches a seat that is already
// sold.
var ErrSeatSold = errors.New("seat already sold")

// ErrSeatHeld is returned when a hold is requested for a seat another
// checkout already holds.
var ErrSeatHeld = errors.New("seat already held")

// ErrSeatNotHeld is returned when releasing a seat that is not held.
var ErrSeatNotHeld = errors.New("seat not held")
