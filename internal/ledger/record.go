package ledger

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/cinema-box-office/internal/model"
)

// TimeLayout is the timestamp format used in the sales log and archive.
const TimeLayout = "2006-01-02 15:04:05"

const fieldSep = " | "

// FormatEntry renders a transaction as one sales log line (without the
// trailing newline):
//
//	2026-10-18 14:03:11 | txn=6f1c2a4e-... | showtime=0 | tickets=2 | total=PHP 1400.00
//
// Fields are fixed in number and order so the line stays human readable and
// can be parsed back without guessing.
func FormatEntry(txn model.Transaction) string {
	return strings.Join([]string{
		txn.RecordedAt.Format(TimeLayout),
		"txn=" + txn.ID.String(),
		"showtime=" + strconv.Itoa(txn.Showtime),
		"tickets=" + strconv.Itoa(txn.Tickets),
		"total=" + txn.Total.Display(),
	}, fieldSep)
}

// ParseEntry parses a line produced by FormatEntry.  Timestamps are read in
// the local time zone, matching how they were written.
func ParseEntry(line string) (model.Transaction, error) {
	parts := strings.Split(strings.TrimRight(line, "\r\n"), fieldSep)
	if len(parts) != 5 {
		return model.Transaction{}, fmt.Errorf("%w: expected 5 fields, got %d", ErrMalformedEntry, len(parts))
	}
	var (
		txn model.Transaction
		err error
	)
	if txn.RecordedAt, err = time.ParseInLocation(TimeLayout, parts[0], time.Local); err != nil {
		return model.Transaction{}, fmt.Errorf("%w: timestamp %q", ErrMalformedEntry, parts[0])
	}
	raw, err := field(parts[1], "txn")
	if err != nil {
		return model.Transaction{}, err
	}
	if txn.ID, err = uuid.Parse(raw); err != nil {
		return model.Transaction{}, fmt.Errorf("%w: txn %q", ErrMalformedEntry, raw)
	}
	if txn.Showtime, err = intField(parts[2], "showtime", 0); err != nil {
		return model.Transaction{}, err
	}
	if txn.Tickets, err = intField(parts[3], "tickets", 1); err != nil {
		return model.Transaction{}, err
	}
	raw, err = field(parts[4], "total")
	if err != nil {
		return model.Transaction{}, err
	}
	if !strings.HasPrefix(raw, model.CurrencyCode+" ") {
		return model.Transaction{}, fmt.Errorf("%w: total %q lacks currency", ErrMalformedEntry, raw)
	}
	if txn.Total, err = model.ParseAmount(raw); err != nil || txn.Total < 0 {
		return model.Transaction{}, fmt.Errorf("%w: total %q", ErrMalformedEntry, raw)
	}
	return txn, nil
}

func field(part, key string) (string, error) {
	k, v, ok := strings.Cut(part, "=")
	if !ok || k != key || v == "" {
		return "", fmt.Errorf("%w: expected %s=..., got %q", ErrMalformedEntry, key, part)
	}
	return v, nil
}

func intField(part, key string, minimum int) (int, error) {
	raw, err := field(part, key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < minimum {
		return 0, fmt.Errorf("%w: %s %q", ErrMalformedEntry, key, raw)
	}
	return n, nil
}
