// Package queue defines message payloads exchanged over the message broker.
package queue

// SaleCommittedEvent is published after a sale has been committed to the
// seat inventory.  It carries enough information for downstream consumers
// to audit the sale without reading the box office ledger.
type SaleCommittedEvent struct {
	TransactionID    string   `json:"transaction_id"`
	Showtime         int      `json:"showtime"`
	ShowtimeLabel    string   `json:"showtime_label"`
	MovieTitle       string   `json:"movie_title"`
	Seats            []string `json:"seats"`
	Tickets          int      `json:"tickets"`
	TicketsCents     int64    `json:"tickets_cents"`
	ConcessionsCents int64    `json:"concessions_cents"`
	TotalCents       int64    `json:"total_cents"`
	PaidCents        int64    `json:"paid_cents"`
	ChangeCents      int64    `json:"change_cents"`
	CommittedAt      string   `json:"committed_at"`
	// Pending is true when the sale could not yet be written to the ledger.
	Pending bool `json:"pending,omitempty"`
}
