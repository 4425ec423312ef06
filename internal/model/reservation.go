package model

import (
	"time"

	"github.com/google/uuid"
)

// Transaction records one completed sale.  It is appended to the sales
// ledger after the seats are committed and is never modified afterwards.
type Transaction struct {
	ID         uuid.UUID // unique per sale
	RecordedAt time.Time // commit time, local, second precision
	Showtime   int       // index of the showtime the tickets were sold for
	Tickets    int       // seats sold
	Total      Cents     // grand total, tickets plus concessions
}

// Ticket is one printed admission.  Each sold seat gets its own number so
// tickets can be told apart at the door.
type Ticket struct {
	Number   string        // short unique number printed on the ticket
	Seat     SeatSelection // the admitted seat
	Showtime Showtime      // screening the ticket is valid for
}
