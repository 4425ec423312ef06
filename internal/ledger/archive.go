package ledger

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/iliyamo/cinema-box-office/internal/model"
)

// Archive block markers.
const (
	openPrefix   = "=== SHIFT OPENED ["
	openSuffix   = "] ==="
	closePrefix  = "=== SHIFT CLOSED ["
	closeCashout = "] | CASHOUT: "
	closeSuffix  = " ==="
)

// Outcome is the terminal state reached by a cashout.
type Outcome int

const (
	// DrawerEmpty means the log held no revenue; no file was touched.
	DrawerEmpty Outcome = iota
	// Declined means the operator did not confirm; no file was touched.
	Declined
	// Closed means the log was archived and cleared.
	Closed
)

// String returns a short description of the outcome.
func (o Outcome) String() string {
	switch o {
	case DrawerEmpty:
		return "drawer empty"
	case Declined:
		return "cashout cancelled"
	case Closed:
		return "shift closed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// CashoutResult reports what a cashout did.
type CashoutResult struct {
	Outcome  Outcome
	Total    model.Cents // revenue found in the log
	Entries  int         // transactions in the log
	ClosedAt time.Time   // zero unless Outcome is Closed
}

// Cashout closes the current shift.  It sums the sales log; when the total
// is zero nothing happens.  Otherwise confirm is asked with the total and,
// only if it returns true, the log is appended to the archive between a
// shift-opened and a shift-closed marker and then emptied.
//
// A malformed log aborts the cashout before confirm is called, so the
// drawer is never closed on a total that skipped lines.  If the archive
// cannot be written the log is left untouched.  If the archive was written
// but the log could not be cleared, the next confirmed cashout finds the
// log already archived and only clears it.
func (l *Ledger) Cashout(confirm func(total model.Cents) bool) (CashoutResult, error) {
	content, err := readFile(l.salesPath)
	if err != nil {
		return CashoutResult{}, err
	}
	lines := splitLines(content)
	entries, err := parseEntries(lines)
	if err != nil {
		return CashoutResult{}, err
	}
	res := CashoutResult{Total: sum(entries), Entries: len(entries)}
	if res.Total == 0 {
		res.Outcome = DrawerEmpty
		return res, nil
	}
	if !confirm(res.Total) {
		res.Outcome = Declined
		return res, nil
	}

	closedAt := l.now()
	last, archived, err := l.lastShiftHolds(lines)
	if err != nil {
		return CashoutResult{}, err
	}
	if archived {
		// A previous cashout archived this log but could not clear it.
		closedAt = last.Closed
	} else if err := l.archive(content, entries[0].RecordedAt, closedAt, res.Total); err != nil {
		return CashoutResult{}, err
	}
	if err := os.Truncate(l.salesPath, 0); err != nil {
		return CashoutResult{}, fmt.Errorf("%w: shift archived but %s not cleared: %w", ErrUnavailable, l.salesPath, err)
	}
	res.Outcome = Closed
	res.ClosedAt = closedAt
	return res, nil
}

// lastShiftHolds reports whether the newest archived shift consists of
// exactly lines.  An unreadable block layout counts as no match.
func (l *Ledger) lastShiftHolds(lines []string) (Shift, bool, error) {
	shifts, err := l.Shifts()
	if errors.Is(err, ErrMalformedEntry) || len(shifts) == 0 {
		return Shift{}, false, nil
	}
	if err != nil {
		return Shift{}, false, err
	}
	last := shifts[len(shifts)-1]
	return last, slices.Equal(last.Lines, lines), nil
}

func (l *Ledger) archive(content []byte, opened, closed time.Time, total model.Cents) error {
	var b strings.Builder
	b.WriteString(openPrefix + opened.Format(TimeLayout) + openSuffix + "\n")
	b.Write(content)
	if len(content) > 0 && content[len(content)-1] != '\n' {
		b.WriteByte('\n')
	}
	b.WriteString(closePrefix + closed.Format(TimeLayout) + closeCashout + total.Display() + closeSuffix + "\n")

	f, err := openAppend(l.archivePath)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(b.String()); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: write %s: %w", ErrUnavailable, l.archivePath, err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: sync %s: %w", ErrUnavailable, l.archivePath, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", ErrUnavailable, l.archivePath, err)
	}
	return nil
}

// Shift is one closed shift read back from the archive.
type Shift struct {
	Opened time.Time   // timestamp of the first sale of the shift
	Closed time.Time   // when the cashout was confirmed
	Total  model.Cents // cash handed over at close
	Lines  []string    // verbatim sales log lines of the shift
}

// Shifts reads every closed shift from the archive in the order they were
// closed.  A missing archive yields no shifts.
func (l *Ledger) Shifts() ([]Shift, error) {
	content, err := readFile(l.archivePath)
	if err != nil {
		return nil, err
	}
	var (
		shifts []Shift
		cur    *Shift
	)
	for i, line := range splitLines(content) {
		switch {
		case strings.HasPrefix(line, openPrefix):
			if cur != nil {
				return nil, fmt.Errorf("line %d: %w: shift opened twice", i+1, ErrMalformedEntry)
			}
			ts, err := parseMarker(line, openPrefix, openSuffix)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
			cur = &Shift{Opened: ts}
		case strings.HasPrefix(line, closePrefix):
			if cur == nil {
				return nil, fmt.Errorf("line %d: %w: shift closed before it opened", i+1, ErrMalformedEntry)
			}
			if err := parseClose(line, cur); err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
			shifts = append(shifts, *cur)
			cur = nil
		case cur != nil:
			cur.Lines = append(cur.Lines, line)
		case strings.TrimSpace(line) != "":
			return nil, fmt.Errorf("line %d: %w: text outside a shift", i+1, ErrMalformedEntry)
		}
	}
	if cur != nil {
		return nil, fmt.Errorf("%w: last shift never closed", ErrMalformedEntry)
	}
	return shifts, nil
}

func parseMarker(line, prefix, suffix string) (time.Time, error) {
	raw := strings.TrimSuffix(strings.TrimPrefix(line, prefix), suffix)
	ts, err := time.ParseInLocation(TimeLayout, raw, time.Local)
	if err != nil || !strings.HasSuffix(line, suffix) {
		return time.Time{}, fmt.Errorf("%w: marker %q", ErrMalformedEntry, line)
	}
	return ts, nil
}

func parseClose(line string, s *Shift) error {
	body := strings.TrimSuffix(strings.TrimPrefix(line, closePrefix), closeSuffix)
	rawTime, rawTotal, ok := strings.Cut(body, closeCashout)
	if !ok || !strings.HasSuffix(line, closeSuffix) {
		return fmt.Errorf("%w: marker %q", ErrMalformedEntry, line)
	}
	ts, err := time.ParseInLocation(TimeLayout, rawTime, time.Local)
	if err != nil {
		return fmt.Errorf("%w: marker %q", ErrMalformedEntry, line)
	}
	total, err := model.ParseAmount(rawTotal)
	if err != nil {
		return fmt.Errorf("%w: marker %q", ErrMalformedEntry, line)
	}
	s.Closed = ts
	s.Total = total
	return nil
}
