package inventory

import (
	"fmt"

	"github.com/iliyamo/cinema-box-office/internal/model"
)

// Matrix is the 3-dimensional availability table (showtime x row x column).
// A Matrix is created once per process and handed to every component that
// needs seat state; nothing else keeps its own copy of availability.
//
// Matrix is not safe for concurrent use.  The box office runs a single
// control flow, so reads and mutations are totally ordered by program order.
type Matrix struct {
	showtimes int
	rows      int
	cols      int
	seats     []model.SeatStatus // flattened [showtime][row][col]
}

// New allocates a matrix with every seat Available.  All dimensions must be
// positive.
func New(showtimes, rows, cols int) *Matrix {
	if showtimes <= 0 || rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("inventory: invalid dimensions %dx%dx%d", showtimes, rows, cols))
	}
	return &Matrix{
		showtimes: showtimes,
		rows:      rows,
		cols:      cols,
		seats:     make([]model.SeatStatus, showtimes*rows*cols),
	}
}

// Reset sets every seat of every showtime back to Available.
func (m *Matrix) Reset() {
	for i := range m.seats {
		m.seats[i] = model.SeatAvailable
	}
}

// Showtimes returns the number of showtimes tracked.
func (m *Matrix) Showtimes() int { return m.showtimes }

// Rows returns the number of rows per showtime.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of seats per row.
func (m *Matrix) Cols() int { return m.cols }

// CapacityPerShowtime returns the number of seats in one showtime's chart.
func (m *Matrix) CapacityPerShowtime() int { return m.rows * m.cols }

// Capacity returns the number of seats across all showtimes.
func (m *Matrix) Capacity() int { return len(m.seats) }

// Contains reports whether the coordinates address a seat in the matrix.
func (m *Matrix) Contains(showtime, row, col int) bool {
	return showtime >= 0 && showtime < m.showtimes &&
		row >= 0 && row < m.rows &&
		col >= 0 && col < m.cols
}

func (m *Matrix) index(showtime, row, col int) int {
	return (showtime*m.rows+row)*m.cols + col
}

// Status returns the state of one seat.  Coordinates must be in range;
// callers validate them first.
func (m *Matrix) Status(showtime, row, col int) model.SeatStatus {
	return m.seats[m.index(showtime, row, col)]
}

// IsSold reports whether the seat has been sold.  Held seats are not sold.
func (m *Matrix) IsSold(showtime, row, col int) bool {
	return m.Status(showtime, row, col) == model.SeatSold
}

// IsAvailable reports whether the seat can be offered to a buyer.
func (m *Matrix) IsAvailable(showtime, row, col int) bool {
	return m.Status(showtime, row, col) == model.SeatAvailable
}

// CountSold returns the number of sold seats across all showtimes.
func (m *Matrix) CountSold() int {
	n := 0
	for _, s := range m.seats {
		if s == model.SeatSold {
			n++
		}
	}
	return n
}

// CountSoldIn returns the number of sold seats for one showtime.
func (m *Matrix) CountSoldIn(showtime int) int {
	n := 0
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			if m.IsSold(showtime, r, c) {
				n++
			}
		}
	}
	return n
}

// CountAvailable returns the number of Available seats in the half-open
// row range [fromRow, toRow) of a showtime.
func (m *Matrix) CountAvailable(showtime, fromRow, toRow int) int {
	n := 0
	for r := max(fromRow, 0); r < min(toRow, m.rows); r++ {
		for c := 0; c < m.cols; c++ {
			if m.IsAvailable(showtime, r, c) {
				n++
			}
		}
	}
	return n
}

// check validates a seat set against the matrix and returns the flattened
// indices.  accept decides which current states are allowed.
func (m *Matrix) check(showtime int, seats []model.SeatRef, accept func(model.SeatStatus) error) ([]int, error) {
	idx := make([]int, 0, len(seats))
	seen := make(map[model.SeatRef]struct{}, len(seats))
	for _, s := range seats {
		if !m.Contains(showtime, s.Row, s.Col) {
			return nil, fmt.Errorf("%w: showtime %d seat %s", ErrSeatOutOfRange, showtime, s.Code())
		}
		if _, ok := seen[s]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSeat, s.Code())
		}
		seen[s] = struct{}{}
		i := m.index(showtime, s.Row, s.Col)
		if err := accept(m.seats[i]); err != nil {
			return nil, fmt.Errorf("%w: %s", err, s.Code())
		}
		idx = append(idx, i)
	}
	return idx, nil
}

func (m *Matrix) set(idx []int, status model.SeatStatus) {
	for _, i := range idx {
		m.seats[i] = status
	}
}

// Hold moves every seat in the set from Available to Held.  The operation
// is all-or-nothing: when any seat cannot be held nothing changes.
func (m *Matrix) Hold(showtime int, seats []model.SeatRef) error {
	idx, err := m.check(showtime, seats, func(s model.SeatStatus) error {
		switch s {
		case model.SeatSold:
			return ErrSeatSold
		case model.SeatHeld:
			return ErrSeatHeld
		}
		return nil
	})
	if err != nil {
		return err
	}
	m.set(idx, model.SeatHeld)
	return nil
}

// Release returns held seats to Available.  Every seat must currently be
// held; otherwise nothing changes.
func (m *Matrix) Release(showtime int, seats []model.SeatRef) error {
	idx, err := m.check(showtime, seats, func(s model.SeatStatus) error {
		if s != model.SeatHeld {
			return ErrSeatNotHeld
		}
		return nil
	})
	if err != nil {
		return err
	}
	m.set(idx, model.SeatAvailable)
	return nil
}

// Commit marks every seat in the set Sold.  Seats may be Available or Held.
// Commit is all-or-nothing: an out-of-range seat, a seat listed twice or a
// seat that is already sold aborts the whole commit without mutation.
func (m *Matrix) Commit(showtime int, seats []model.SeatRef) error {
	idx, err := m.check(showtime, seats, func(s model.SeatStatus) error {
		if s == model.SeatSold {
			return ErrSeatSold
		}
		return nil
	})
	if err != nil {
		return err
	}
	m.set(idx, model.SeatSold)
	return nil
}
