package ledger

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/iliyamo/cinema-box-office/internal/model"
)

// Ledger provides access to the sales log and the shift archive files.
// The sales log holds one line per transaction since the last cashout; the
// archive receives a copy of the log every time a shift is closed.
//
// Both files are append-only with one exception: a confirmed cashout
// truncates the sales log after its content has been archived.
type Ledger struct {
	salesPath   string
	archivePath string
	now         func() time.Time
}

// New returns a Ledger bound to the given files.  A nil clock defaults to
// time.Now.  The files are created lazily on first write.
func New(salesPath, archivePath string, now func() time.Time) *Ledger {
	if now == nil {
		now = time.Now
	}
	return &Ledger{salesPath: salesPath, archivePath: archivePath, now: now}
}

// SalesPath returns the path of the sales log.
func (l *Ledger) SalesPath() string { return l.salesPath }

// ArchivePath returns the path of the archive.
func (l *Ledger) ArchivePath() string { return l.archivePath }

func openAppend(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: mkdir %s: %w", ErrUnavailable, dir, err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrUnavailable, path, err)
	}
	return f, nil
}

// Append writes one transaction to the end of the sales log.  Failure to
// open or write the file is returned wrapped in ErrUnavailable; the caller
// decides what happens to the sale.
func (l *Ledger) Append(txn model.Transaction) error {
	f, err := openAppend(l.salesPath)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(FormatEntry(txn) + "\n"); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: write %s: %w", ErrUnavailable, l.salesPath, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", ErrUnavailable, l.salesPath, err)
	}
	return nil
}

// readFile returns the content of path; a missing file reads as empty.
func readFile(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrUnavailable, path, err)
	}
	return b, nil
}

func splitLines(content []byte) []string {
	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(content))
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines
}

// ReadAll returns the raw lines of the sales log without their trailing
// newlines.  A missing log yields no lines and no error.
func (l *Ledger) ReadAll() ([]string, error) {
	b, err := readFile(l.salesPath)
	if err != nil {
		return nil, err
	}
	return splitLines(b), nil
}

func parseEntries(lines []string) ([]model.Transaction, error) {
	out := make([]model.Transaction, 0, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		txn, err := ParseEntry(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		out = append(out, txn)
	}
	return out, nil
}

// Entries parses every line of the sales log.  Blank lines are skipped; any
// other line that does not parse fails the whole read with
// ErrMalformedEntry and its line number.
func (l *Ledger) Entries() ([]model.Transaction, error) {
	lines, err := l.ReadAll()
	if err != nil {
		return nil, err
	}
	return parseEntries(lines)
}

// Revenue sums the totals of every transaction in the sales log.
func (l *Ledger) Revenue() (model.Cents, error) {
	entries, err := l.Entries()
	if err != nil {
		return 0, err
	}
	return sum(entries), nil
}

func sum(entries []model.Transaction) model.Cents {
	var total model.Cents
	for _, e := range entries {
		total += e.Total
	}
	return total
}
