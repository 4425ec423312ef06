package allocation

import (
	"fmt"

	"github.com/iliyamo/cinema-box-office/internal/inventory"
	"github.com/iliyamo/cinema-box-office/internal/model"
	"github.com/iliyamo/cinema-box-office/internal/pricing"
)

// Request describes the demand of one buyer: how many seats of which class
// for which showtime.
type Request struct {
	Quantity int             // seats wanted, at least 1
	Class    model.SeatClass // VIP or Regular
	Showtime int             // showtime index
}

// Engine allocates seats against an inventory matrix.  It reads the matrix
// but never mutates it: allocations are proposals until the box office
// commits them.
type Engine struct {
	inv    *inventory.Matrix
	prices pricing.PriceList
}

// NewEngine constructs an Engine over the given matrix and price list.
func NewEngine(inv *inventory.Matrix, prices pricing.PriceList) *Engine {
	if inv == nil {
		panic("nil inventory passed to NewEngine")
	}
	return &Engine{inv: inv, prices: prices}
}

// Prices returns the price list used for selections.
func (e *Engine) Prices() pricing.PriceList { return e.prices }

func (e *Engine) validRequest(req Request) error {
	if req.Quantity < 1 || !req.Class.Valid() || req.Showtime < 0 || req.Showtime >= e.inv.Showtimes() {
		return fmt.Errorf("%w: quantity=%d class=%s showtime=%d", ErrInvalidRequest, req.Quantity, req.Class, req.Showtime)
	}
	return nil
}

// Available returns the number of free seats in the class's rows for the
// request's showtime.
func (e *Engine) Available(class model.SeatClass, showtime int) int {
	from, to := class.RowRange(e.inv.Rows())
	return e.inv.CountAvailable(showtime, from, to)
}

// CheckAvailability reports whether the class has at least req.Quantity
// free seats for the showtime.  It reserves nothing; callers gate both
// allocation methods on it.
func (e *Engine) CheckAvailability(req Request) bool {
	if e.validRequest(req) != nil {
		return false
	}
	return e.Available(req.Class, req.Showtime) >= req.Quantity
}

func (e *Engine) selection(ref model.SeatRef, class model.SeatClass) model.SeatSelection {
	return model.SeatSelection{
		SeatRef:  ref,
		RowLabel: model.RowLabel(ref.Row),
		Class:    class,
		Price:    e.prices.ForClass(class),
	}
}

// AutoAssign takes the first req.Quantity free seats of the class, scanning
// rows in increasing order and seats left to right.  Given the same matrix
// state it always returns the same seats in the same order.  When the class
// cannot satisfy the request it returns ErrInsufficientSeats and no seats.
func (e *Engine) AutoAssign(req Request) ([]model.SeatSelection, error) {
	if err := e.validRequest(req); err != nil {
		return nil, err
	}
	from, to := req.Class.RowRange(e.inv.Rows())
	out := make([]model.SeatSelection, 0, req.Quantity)
	for r := from; r < to; r++ {
		for c := 0; c < e.inv.Cols(); c++ {
			if !e.inv.IsAvailable(req.Showtime, r, c) {
				continue
			}
			out = append(out, e.selection(model.SeatRef{Row: r, Col: c}, req.Class))
			if len(out) == req.Quantity {
				return out, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: wanted %d %s seats, %d free", ErrInsufficientSeats, req.Quantity, req.Class, len(out))
}

// Validate checks one manually entered seat code for the request.  Checks
// run in a fixed order and the first failure is returned:
//
//  1. the code parses                      (ErrMalformedCode)
//  2. the seat exists in the hall          (ErrNoSuchSeat)
//  3. the seat belongs to the class        (ErrWrongClass)
//  4. the seat is free for the showtime    (ErrSeatTaken)
//  5. the seat is not already in chosen    (ErrDuplicateSeat)
//
// On success the seat is returned priced for its class.
func (e *Engine) Validate(req Request, code string, chosen []model.SeatSelection) (model.SeatSelection, error) {
	if req.Showtime < 0 || req.Showtime >= e.inv.Showtimes() || !req.Class.Valid() {
		return model.SeatSelection{}, fmt.Errorf("%w: class=%s showtime=%d", ErrInvalidRequest, req.Class, req.Showtime)
	}
	ref, err := ParseSeatCode(code)
	if err != nil {
		return model.SeatSelection{}, err
	}
	if ref.Row < 0 || ref.Col < 0 || ref.Row >= e.inv.Rows() || ref.Col >= e.inv.Cols() {
		return model.SeatSelection{}, fmt.Errorf("%w: %s", ErrNoSuchSeat, ref.Code())
	}
	switch seatClass := model.ClassOfRow(ref.Row); {
	case req.Class == model.ClassVIP && seatClass != model.ClassVIP:
		return model.SeatSelection{}, fmt.Errorf("%w: %s is not a VIP seat", ErrWrongClass, ref.Code())
	case req.Class != model.ClassVIP && seatClass == model.ClassVIP:
		return model.SeatSelection{}, fmt.Errorf("%w: %s is a VIP seat", ErrWrongClass, ref.Code())
	}
	if !e.inv.IsAvailable(req.Showtime, ref.Row, ref.Col) {
		return model.SeatSelection{}, fmt.Errorf("%w: %s", ErrSeatTaken, ref.Code())
	}
	for _, c := range chosen {
		if c.SeatRef == ref {
			return model.SeatSelection{}, fmt.Errorf("%w: %s", ErrDuplicateSeat, ref.Code())
		}
	}
	return e.selection(ref, req.Class), nil
}

// SeatCodeSource supplies seat codes for manual selection.  It is usually
// backed by an operator prompt.
type SeatCodeSource interface {
	// SeatCode returns the code entered for the given ticket (1-based).  An
	// error means input is no longer available and ends the selection.
	SeatCode(ordinal, total int) (string, error)
	// Reject reports why a code was refused; the same ordinal is asked for
	// again afterwards.
	Reject(ordinal int, code string, reason error)
	// Accept reports a code that was taken for the given ticket.
	Accept(ordinal int, seat model.SeatSelection)
}

// ManualSelect collects req.Quantity valid, distinct seats from src.  A
// rejected code never aborts the batch; the same ticket is asked for again.
// Only an error from the source stops the loop early.
func (e *Engine) ManualSelect(req Request, src SeatCodeSource) ([]model.SeatSelection, error) {
	if err := e.validRequest(req); err != nil {
		return nil, err
	}
	chosen := make([]model.SeatSelection, 0, req.Quantity)
	for len(chosen) < req.Quantity {
		ordinal := len(chosen) + 1
		code, err := src.SeatCode(ordinal, req.Quantity)
		if err != nil {
			return nil, err
		}
		seat, err := e.Validate(req, code, chosen)
		if err != nil {
			src.Reject(ordinal, code, err)
			continue
		}
		chosen = append(chosen, seat)
		src.Accept(ordinal, seat)
	}
	return chosen, nil
}
