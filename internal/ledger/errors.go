// Package ledger keeps the append-only sales log and the shift archive.
// These sentinel values allow higher layers such as the box office to
// distinguish between failure scenarios.  For example, ErrUnavailable
// signals that a file could not be opened or written, which the box office
// treats as "sale completed, durable write pending", while
// ErrMalformedEntry signals that the log contains a line that cannot be
// reconciled and must be inspected before the shift can be closed.
package ledger

import "errors"

// ErrUnavailable is returned when the sales log or the archive cannot be
// opened, read or written.
var ErrUnavailable = errors.New("ledger unavailable")

// ErrMalformedEntry is returned when a line of the sales log or a block of
// the archive does not match the record format.
var ErrMalformedEntry = errors.New("malformed ledger entry")
