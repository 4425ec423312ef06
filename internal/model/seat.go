package model

import "fmt"

// SeatClass describes the ticket class a seat belongs to.  The front row
// of the hall is VIP; every other row is Regular.
type SeatClass int

const (
	ClassVIP     SeatClass = iota + 1 // row A only
	ClassRegular                      // rows B and beyond
)

// String returns the short class tag printed on receipts.
func (c SeatClass) String() string {
	switch c {
	case ClassVIP:
		return "VIP"
	case ClassRegular:
		return "REG"
	default:
		return fmt.Sprintf("SeatClass(%d)", int(c))
	}
}

// Valid reports whether c is one of the known classes.
func (c SeatClass) Valid() bool {
	return c == ClassVIP || c == ClassRegular
}

// RowRange returns the half-open row interval [from, to) owned by the class
// in a hall with the given number of rows.
func (c SeatClass) RowRange(rows int) (from, to int) {
	if c == ClassVIP {
		return 0, min(1, rows)
	}
	return min(1, rows), rows
}

// ClassOfRow returns the class a row belongs to.
func ClassOfRow(row int) SeatClass {
	if row == 0 {
		return ClassVIP
	}
	return ClassRegular
}

// SeatStatus is the availability state of one seat for one showtime.
//
// Transitions:
//
//	Available -> Held      (a checkout reserved the seat while payment runs)
//	Held      -> Available (payment was cancelled)
//	Available -> Sold, Held -> Sold (payment confirmed)
//
// Sold is terminal.
type SeatStatus uint8

const (
	SeatAvailable SeatStatus = iota
	SeatHeld
	SeatSold
)

// String returns the upper-case status name.
func (s SeatStatus) String() string {
	switch s {
	case SeatAvailable:
		return "AVAILABLE"
	case SeatHeld:
		return "HELD"
	case SeatSold:
		return "SOLD"
	default:
		return fmt.Sprintf("SeatStatus(%d)", uint8(s))
	}
}

// SeatRef addresses a seat within one showtime's chart.
type SeatRef struct {
	Row int // 0-based row index; row 0 is A
	Col int // 0-based column index; column 0 is seat 1
}

// Code returns the operator-facing seat code, e.g. "A1".
func (r SeatRef) Code() string {
	return fmt.Sprintf("%s%d", RowLabel(r.Row), r.Col+1)
}

// TicketCode returns the zero-padded code printed on tickets, e.g. "A-01".
func (r SeatRef) TicketCode() string {
	return fmt.Sprintf("%s-%02d", RowLabel(r.Row), r.Col+1)
}

// SeatSelection is a priced seat proposed by the allocation engine.  It is
// not seat state: it becomes durable only once the inventory commits it.
type SeatSelection struct {
	SeatRef
	RowLabel string    // display letter of the row
	Class    SeatClass // class the seat was sold under
	Price    Cents     // price charged for this seat
}

// Refs strips the selections down to their coordinates.
func Refs(selections []SeatSelection) []SeatRef {
	refs := make([]SeatRef, 0, len(selections))
	for _, s := range selections {
		refs = append(refs, s.SeatRef)
	}
	return refs
}

// Codes returns the seat codes of the selections in order.
func Codes(selections []SeatSelection) []string {
	codes := make([]string, 0, len(selections))
	for _, s := range selections {
		codes = append(codes, s.Code())
	}
	return codes
}
