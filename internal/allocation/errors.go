// Package allocation turns a ticket request into a concrete, priced set of
// seats, either by assigning the first free seats automatically or by
// validating seat codes picked by the buyer.
//
// Every rejection of a manually entered seat code is one of the sentinel
// errors below, wrapped with the offending code, so callers can tell the
// reasons apart with errors.Is.
package allocation

import "errors"

// ErrMalformedCode is returned when a seat code is not a row letter
// followed by a positive seat number.
var ErrMalformedCode = errors.New("invalid seat code")

// ErrNoSuchSeat is returned when a well-formed code lies outside the hall.
var ErrNoSuchSeat = errors.New("no such seat")

// ErrWrongClass is returned when a seat belongs to a different ticket class
// than the one requested.
var ErrWrongClass = errors.New("seat is in another class")

// ErrSeatTaken is returned when the seat is already sold (or held by a
// checkout in progress) for the showtime.
var ErrSeatTaken = errors.New("seat taken")

// ErrDuplicateSeat is returned when the seat was already picked earlier in
// the same request.
var ErrDuplicateSeat = errors.New("seat already chosen")

// ErrInsufficientSeats is returned by AutoAssign when the class does not
// have enough free seats left.
var ErrInsufficientSeats = errors.New("not enough seats available")

// ErrInvalidRequest is returned when a request names an unknown class,
// an unknown showtime or a non-positive quantity.
var ErrInvalidRequest = errors.New("invalid allocation request")
