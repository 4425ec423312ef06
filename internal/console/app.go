package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/iliyamo/cinema-box-office/internal/allocation"
	"github.com/iliyamo/cinema-box-office/internal/boxoffice"
	"github.com/iliyamo/cinema-box-office/internal/ledger"
	"github.com/iliyamo/cinema-box-office/internal/model"
	"github.com/iliyamo/cinema-box-office/internal/payment"
	"github.com/iliyamo/cinema-box-office/internal/pricing"
)

// App runs the interactive box office: a role menu leading to the guest
// kiosk or the manager console.
type App struct {
	office *boxoffice.Office
	prompt *Prompter
	render *Renderer
	out    io.Writer
	logger *log.Logger
}

// NewApp wires an App.  A nil logger discards diagnostics.
func NewApp(office *boxoffice.Office, prompt *Prompter, render *Renderer, out io.Writer, logger *log.Logger) *App {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &App{office: office, prompt: prompt, render: render, out: out, logger: logger}
}

func (a *App) print(s string) { fmt.Fprint(a.out, s) }

// Run drives the menus until the operator exits or input ends.  Closed
// input is a normal way to stop and returns nil.
func (a *App) Run(ctx context.Context) error {
	a.print(a.render.Header("WELCOME TO THE CINEMA") + a.render.Info(model.MovieTitle))
	err := a.roles(ctx)
	if errors.Is(err, io.EOF) {
		a.logger.Printf("console: input closed, exiting")
		err = nil
	}
	if err == nil {
		a.print(a.render.Header("SHALOOM!"))
	}
	return err
}

func (a *App) roles(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		a.print(a.render.Menu("IDENTITY VERIFICATION", "Who approaches the gate?", []string{
			"Guest (Buy Tickets)",
			"Cinema Manager (Admin)",
			"Exit System",
		}))
		role, err := a.prompt.Int("Select Identity > ", 1, 3)
		if err != nil {
			return err
		}
		switch role {
		case 1:
			err = a.guest(ctx)
		case 2:
			err = a.admin()
		case 3:
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (a *App) guest(ctx context.Context) error {
	for {
		a.print(a.render.Menu("TICKET KIOSK", "", []string{
			"Buy Tickets",
			"Movie Info",
			"Watch Movie",
			"Return to Start",
		}))
		choice, err := a.prompt.Int("Select an option > ", 1, 4)
		if err != nil {
			return err
		}
		switch choice {
		case 1:
			err = a.buy(ctx)
		case 2:
			a.print(a.render.MovieInfo(a.office.Engine().Prices()))
			err = a.prompt.Pause("[Press Enter to return]")
		case 3:
			err = a.watch()
		case 4:
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (a *App) selectShowtime() (model.Showtime, error) {
	showtimes := a.office.Showtimes()
	a.print(a.render.Menu("SELECT SHOWTIME", "", ShowtimeOptions(showtimes)))
	n, err := a.prompt.Int("Select Time > ", 1, len(showtimes))
	if err != nil {
		return model.Showtime{}, err
	}
	return showtimes[n-1], nil
}

// buy runs one sale.  Rejections (not enough seats, cancelled payment) end
// the sale and return nil; only closed input is an error.
func (a *App) buy(ctx context.Context) error {
	st, err := a.selectShowtime()
	if err != nil {
		return err
	}
	inv := a.office.Inventory()
	prices := a.office.Engine().Prices()
	a.print(a.render.SeatMap(inv, st, prices))

	a.print(a.render.Menu("SELECT TICKET CLASS", "", ClassOptions(prices, inv.Rows())))
	c, err := a.prompt.Int("Select Class > ", 1, 2)
	if err != nil {
		return err
	}
	class := model.ClassVIP
	if c == 2 {
		class = model.ClassRegular
	}

	a.print(a.render.Header("TICKET COUNTER"))
	perShow := inv.CapacityPerShowtime()
	qty, err := a.prompt.Int(fmt.Sprintf("How many tickets? (1-%d): ", perShow), 1, perShow)
	if err != nil {
		return err
	}
	req := allocation.Request{Quantity: qty, Class: class, Showtime: st.Index}
	if !a.office.Engine().CheckAvailability(req) {
		a.print(a.render.Error("Sorry! Not enough seats available in this class."))
		return nil
	}

	a.print("  1. Auto-Assign Best Seats\n  2. Select Seats Manually\n")
	method, err := a.prompt.Int("Choose Method > ", 1, 2)
	if err != nil {
		return err
	}
	var seats []model.SeatSelection
	if method == 1 {
		seats, err = a.office.Engine().AutoAssign(req)
		if err != nil {
			a.print(a.render.Error(err.Error()))
			return nil
		}
		a.print(a.render.Info(fmt.Sprintf("Assigned seats: %v", model.Codes(seats))))
	} else {
		a.print(a.render.Header("MANUAL SEAT SELECTION"))
		if class == model.ClassVIP {
			a.print(a.render.Info("Mode: VIP (Select seats in Row A)"))
		} else {
			a.print(a.render.Info(fmt.Sprintf("Mode: REGULAR (Select seats in Rows B-%s)", model.RowLabel(inv.Rows()-1))))
		}
		seats, err = a.office.Engine().ManualSelect(req, seatPrompt{a})
		if err != nil {
			return err
		}
	}

	order, err := a.concessions()
	if err != nil {
		return err
	}
	quote := a.office.Quote(seats, order)

	a.print(a.render.Header("PAYMENT GATEWAY"))
	sale, err := a.office.Checkout(ctx, st.Index, quote, payment.NewCashDrawer(cashPrompt{a}))
	switch {
	case errors.Is(err, io.EOF):
		return err
	case errors.Is(err, payment.ErrCancelled):
		a.print(a.render.Error("[Transaction Cancelled]"))
		return nil
	case sale == nil:
		a.print(a.render.Error("Sale failed: " + err.Error()))
		return nil
	}

	a.print(a.render.Success(fmt.Sprintf("Payment Successful! Change: %s", sale.Payment.Change.Display())))
	for i, t := range sale.Tickets {
		a.print(a.render.Ticket(t, i+1, len(sale.Tickets)))
	}
	a.print(a.render.Receipt(sale))
	if errors.Is(err, boxoffice.ErrPendingWrite) {
		a.print(a.render.Warn("Warning: the sales log could not be written. The sale is kept and will be recorded on the next attempt."))
	}
	return a.prompt.Pause("[Press Enter to Finish]")
}

func (a *App) concessions() (*pricing.ConcessionOrder, error) {
	a.print(a.render.Menu("EXTRAS", "Would you like to visit the Concession Stand?", []string{
		"Yes (Buy Food/Drinks)",
		"No (Proceed to Checkout)",
	}))
	want, err := a.prompt.Int("Select > ", 1, 2)
	if err != nil || want == 2 {
		return nil, err
	}
	menu := a.office.Menu()
	order := &pricing.ConcessionOrder{}
	for {
		a.print(a.render.ConcessionMenu(menu, order.Total()))
		choice, err := a.prompt.Int("Select Item > ", 1, len(menu)+1)
		if err != nil {
			return nil, err
		}
		if choice == len(menu)+1 {
			return order, nil
		}
		it, err := menu.Lookup(choice)
		if err != nil {
			continue
		}
		order.Add(it)
	}
}

func (a *App) watch() error {
	st, err := a.selectShowtime()
	if err != nil {
		return err
	}
	stats := a.office.Stats()
	a.print(a.render.NowScreening(stats.Showtimes[st.Index], stats.Sold))
	return a.prompt.Pause("[Press Enter to leave the cinema]")
}

func (a *App) admin() error {
	a.print(a.render.Header("SECURITY CHECK") + a.render.Error("ENTER PASSPHRASE"))
	pass, err := a.prompt.Secret("Passphrase: ")
	if err != nil {
		return err
	}
	if !a.office.Authenticate(pass) {
		a.print(a.render.Error("ACCESS DENIED. INTRUDER DETECTED."))
		return nil
	}
	a.print(a.render.Success("Access Granted"))

	for {
		a.print(a.render.Menu("MANAGER CONSOLE", "", []string{
			"View Current Sales",
			"Cashout (Close Shift)",
			"Shift Archives",
			"Logout",
		}))
		choice, err := a.prompt.Int("Command > ", 1, 4)
		if err != nil {
			return err
		}
		switch choice {
		case 1:
			err = a.viewSales()
		case 2:
			err = a.cashout()
		case 3:
			err = a.archives()
		case 4:
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (a *App) viewSales() error {
	if len(a.office.PendingWrites()) > 0 {
		if err := a.office.FlushPending(); err != nil {
			a.print(a.render.Warn(err.Error()))
		}
	}
	lines, err := a.office.SalesLog()
	if err != nil {
		a.print(a.render.Error("Sales log unavailable: " + err.Error()))
	} else {
		a.print(a.render.SalesLog(lines))
	}
	a.print(a.render.Stats(a.office.Stats()))
	return a.prompt.Pause("[Press Enter to return]")
}

func (a *App) cashout() error {
	var inputErr error
	res, err := a.office.Cashout(func(total model.Cents) bool {
		a.print(a.render.CashoutTotal(total))
		n, err := a.prompt.Int("Confirm Cashout? (1 = Yes, 0 = Cancel): ", 0, 1)
		if err != nil {
			inputErr = err
			return false
		}
		return n == 1
	})
	if inputErr != nil {
		return inputErr
	}
	switch {
	case err != nil:
		a.print(a.render.Error("Cashout failed: " + err.Error()))
	case res.Outcome == ledger.DrawerEmpty:
		a.print(a.render.Header("SHIFT CLOSURE") + a.render.Warn("Drawer is empty."))
	case res.Outcome == ledger.Declined:
		a.print(a.render.Error("Cashout Cancelled."))
	default:
		a.print(a.render.Success("Shift Closed. Funds Secured."))
		a.print(a.render.Info(fmt.Sprintf("%s over %d sales moved to the archive.", res.Total.Display(), res.Entries)))
	}
	return a.prompt.Pause("[Press Enter to return]")
}

func (a *App) archives() error {
	shifts, err := a.office.Shifts()
	if err != nil {
		a.print(a.render.Error("Archive unavailable: " + err.Error()))
	} else {
		a.print(a.render.Shifts(shifts))
	}
	return a.prompt.Pause("[Press Enter to return]")
}
