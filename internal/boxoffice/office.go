package boxoffice

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/cinema-box-office/internal/allocation"
	"github.com/iliyamo/cinema-box-office/internal/inventory"
	"github.com/iliyamo/cinema-box-office/internal/ledger"
	"github.com/iliyamo/cinema-box-office/internal/model"
	"github.com/iliyamo/cinema-box-office/internal/payment"
	"github.com/iliyamo/cinema-box-office/internal/pricing"
	"github.com/iliyamo/cinema-box-office/internal/queue"
	"github.com/iliyamo/cinema-box-office/internal/utils"
)

// Options configures an Office.  Ledger is required; every other field has
// a default.
type Options struct {
	Showtimes      []model.Showtime  // defaults to model.DefaultShowtimes
	Inventory      *inventory.Matrix // defaults to a fresh DefaultRows x DefaultCols hall per showtime
	Prices         pricing.PriceList // defaults to pricing.DefaultPriceList
	Menu           pricing.Menu      // defaults to pricing.DefaultMenu
	Ledger         *ledger.Ledger
	Publisher      queue.Publisher // defaults to queue.NopPublisher
	PublishTimeout time.Duration   // bound on one sale event publish
	PassphraseHash string          // bcrypt hash of the admin passphrase
	Logger         *log.Logger
	Now            func() time.Time
}

// Office is the box office counter.  It is not safe for concurrent use; the
// console drives it from a single control flow.
type Office struct {
	showtimes      []model.Showtime
	inv            *inventory.Matrix
	engine         *allocation.Engine
	menu           pricing.Menu
	ledger         *ledger.Ledger
	publisher      queue.Publisher
	publishTimeout time.Duration
	passphraseHash string
	logger         *log.Logger
	now            func() time.Time

	// pending holds committed sales the ledger has not accepted yet, oldest
	// first.
	pending []model.Transaction
}

// New builds an Office from opts.  Each showtime's Index must equal its
// position in the schedule.  The inventory is reset so every seat of every
// showtime starts Available.
func New(opts Options) (*Office, error) {
	if opts.Ledger == nil {
		return nil, errors.New("boxoffice: ledger is required")
	}
	if len(opts.Showtimes) == 0 {
		opts.Showtimes = model.DefaultShowtimes()
	}
	for i, st := range opts.Showtimes {
		if st.Index != i {
			return nil, fmt.Errorf("boxoffice: showtime %q has index %d, want %d", st.Label, st.Index, i)
		}
	}
	if opts.Inventory == nil {
		opts.Inventory = inventory.New(len(opts.Showtimes), model.DefaultRows, model.DefaultCols)
	}
	if opts.Inventory.Showtimes() != len(opts.Showtimes) {
		return nil, fmt.Errorf("boxoffice: inventory has %d showtimes, schedule has %d",
			opts.Inventory.Showtimes(), len(opts.Showtimes))
	}
	if opts.Prices == (pricing.PriceList{}) {
		opts.Prices = pricing.DefaultPriceList()
	}
	if len(opts.Menu) == 0 {
		opts.Menu = pricing.DefaultMenu()
	}
	if opts.Publisher == nil {
		opts.Publisher = queue.NopPublisher{}
	}
	if opts.PublishTimeout <= 0 {
		opts.PublishTimeout = 3 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	opts.Inventory.Reset()

	return &Office{
		showtimes:      append([]model.Showtime(nil), opts.Showtimes...),
		inv:            opts.Inventory,
		engine:         allocation.NewEngine(opts.Inventory, opts.Prices),
		menu:           opts.Menu,
		ledger:         opts.Ledger,
		publisher:      opts.Publisher,
		publishTimeout: opts.PublishTimeout,
		passphraseHash: opts.PassphraseHash,
		logger:         opts.Logger,
		now:            opts.Now,
	}, nil
}

// Showtimes returns the day's schedule.
func (o *Office) Showtimes() []model.Showtime {
	return append([]model.Showtime(nil), o.showtimes...)
}

// Showtime returns the showtime with the given index.
func (o *Office) Showtime(i int) (model.Showtime, error) {
	if i < 0 || i >= len(o.showtimes) {
		return model.Showtime{}, fmt.Errorf("%w: %d", ErrNoSuchShowtime, i)
	}
	return o.showtimes[i], nil
}

// Inventory returns the seat matrix for read-only display.
func (o *Office) Inventory() *inventory.Matrix { return o.inv }

// Engine returns the allocation engine bound to the inventory.
func (o *Office) Engine() *allocation.Engine { return o.engine }

// Menu returns the concession menu.
func (o *Office) Menu() pricing.Menu { return o.menu }

// Quote prices a seat selection plus a concession order.
func (o *Office) Quote(seats []model.SeatSelection, order *pricing.ConcessionOrder) pricing.Quote {
	return pricing.QuoteOrder(seats, order)
}

// Sale is the outcome of a successful checkout.
type Sale struct {
	Transaction model.Transaction
	Showtime    model.Showtime
	Quote       pricing.Quote
	Payment     payment.Result
	Tickets     []model.Ticket
}

// Checkout sells the quoted seats for a showtime.  The seats are held while
// collector takes payment; a cancelled payment releases them and nothing is
// recorded.  Once paid the seats are committed Sold and the transaction is
// written to the ledger.
//
// When the ledger cannot be written the sale still completes: the returned
// Sale is valid and the error wraps ErrPendingWrite.
func (o *Office) Checkout(ctx context.Context, showtime int, quote pricing.Quote, collector payment.Collector) (*Sale, error) {
	st, err := o.Showtime(showtime)
	if err != nil {
		return nil, err
	}
	if len(quote.Seats) == 0 {
		return nil, ErrEmptySale
	}
	refs := model.Refs(quote.Seats)
	if err := o.inv.Hold(showtime, refs); err != nil {
		return nil, fmt.Errorf("hold seats: %w", err)
	}

	paid, err := collector.Collect(ctx, quote.GrandTotal)
	if err != nil {
		if rerr := o.inv.Release(showtime, refs); rerr != nil {
			o.logger.Printf("boxoffice: release after failed payment: %v", rerr)
		}
		o.logger.Printf("boxoffice: checkout for %s abandoned: %v", st, err)
		return nil, err
	}
	if err := o.inv.Commit(showtime, refs); err != nil {
		// Held seats are never sold by anyone else, so this is a bug.
		_ = o.inv.Release(showtime, refs)
		return nil, fmt.Errorf("commit seats: %w", err)
	}

	txn := model.Transaction{
		ID:         uuid.New(),
		RecordedAt: o.now().Truncate(time.Second),
		Showtime:   showtime,
		Tickets:    len(quote.Seats),
		Total:      quote.GrandTotal,
	}
	sale := &Sale{
		Transaction: txn,
		Showtime:    st,
		Quote:       quote,
		Payment:     paid,
		Tickets:     issueTickets(st, quote.Seats),
	}
	o.logger.Printf("boxoffice: sold %d seats %v for %s, total %s (txn=%s)",
		txn.Tickets, model.Codes(quote.Seats), st, txn.Total.Display(), txn.ID)

	writeErr := o.record(txn)
	if writeErr != nil {
		o.logger.Printf("boxoffice: %v", writeErr)
	}
	o.publish(ctx, sale, writeErr != nil)
	return sale, writeErr
}

func issueTickets(st model.Showtime, seats []model.SeatSelection) []model.Ticket {
	tickets := make([]model.Ticket, 0, len(seats))
	for _, s := range seats {
		tickets = append(tickets, model.Ticket{
			Number:   ticketNumber(),
			Seat:     s,
			Showtime: st,
		})
	}
	return tickets
}

// ticketNumber returns the first block of a random UUID, upper-cased.
func ticketNumber() string {
	id := uuid.NewString()
	return strings.ToUpper(id[:strings.IndexByte(id, '-')])
}

// record appends txn to the ledger behind any earlier pending writes.
func (o *Office) record(txn model.Transaction) error {
	if err := o.FlushPending(); err != nil {
		o.pending = append(o.pending, txn)
		return err
	}
	if err := o.ledger.Append(txn); err != nil {
		o.pending = append(o.pending, txn)
		return fmt.Errorf("%w: txn %s: %w", ErrPendingWrite, txn.ID, err)
	}
	return nil
}

// FlushPending retries queued ledger writes in order.  It stops at the
// first failure, keeping that write and the ones behind it queued.
func (o *Office) FlushPending() error {
	for len(o.pending) > 0 {
		if err := o.ledger.Append(o.pending[0]); err != nil {
			return fmt.Errorf("%w: %d sales not yet recorded: %w", ErrPendingWrite, len(o.pending), err)
		}
		o.logger.Printf("boxoffice: recorded pending txn %s", o.pending[0].ID)
		o.pending = o.pending[1:]
	}
	return nil
}

// PendingWrites returns the sales the ledger has not accepted yet.
func (o *Office) PendingWrites() []model.Transaction {
	return append([]model.Transaction(nil), o.pending...)
}

func (o *Office) publish(ctx context.Context, sale *Sale, pending bool) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), o.publishTimeout)
	defer cancel()
	ev := queue.SaleCommittedEvent{
		TransactionID:    sale.Transaction.ID.String(),
		Showtime:         sale.Transaction.Showtime,
		ShowtimeLabel:    sale.Showtime.String(),
		MovieTitle:       model.MovieTitle,
		Seats:            model.Codes(sale.Quote.Seats),
		Tickets:          sale.Transaction.Tickets,
		TicketsCents:     int64(sale.Quote.TicketsTotal),
		ConcessionsCents: int64(sale.Quote.ConcessionsTotal),
		TotalCents:       int64(sale.Quote.GrandTotal),
		PaidCents:        int64(sale.Payment.Paid),
		ChangeCents:      int64(sale.Payment.Change),
		CommittedAt:      sale.Transaction.RecordedAt.Format(ledger.TimeLayout),
		Pending:          pending,
	}
	if err := o.publisher.PublishSaleCommitted(ctx, ev); err != nil {
		o.logger.Printf("boxoffice: sale event for txn %s not published: %v", ev.TransactionID, err)
	}
}

// Authenticate reports whether passphrase unlocks the admin menu.
func (o *Office) Authenticate(passphrase string) bool {
	ok := o.passphraseHash != "" && utils.VerifyPassword(o.passphraseHash, passphrase)
	if !ok {
		o.logger.Printf("boxoffice: admin login rejected")
	}
	return ok
}

// SalesLog returns the raw lines of the current shift's sales log.
func (o *Office) SalesLog() ([]string, error) {
	return o.ledger.ReadAll()
}

// Cashout closes the shift.  Pending sales are written first; if they
// still cannot be recorded the cashout is refused so the archived total
// never misses a sale.
func (o *Office) Cashout(confirm func(total model.Cents) bool) (ledger.CashoutResult, error) {
	if err := o.FlushPending(); err != nil {
		return ledger.CashoutResult{}, err
	}
	res, err := o.ledger.Cashout(confirm)
	if err != nil {
		o.logger.Printf("boxoffice: cashout failed: %v", err)
		return res, err
	}
	o.logger.Printf("boxoffice: cashout %s, total %s over %d sales", res.Outcome, res.Total.Display(), res.Entries)
	return res, nil
}

// Shifts returns the closed shifts in the archive.
func (o *Office) Shifts() ([]ledger.Shift, error) {
	return o.ledger.Shifts()
}
