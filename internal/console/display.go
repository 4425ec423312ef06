// Package console is the text front end of the box office: prompts that
// read operator input and a lipgloss renderer for everything printed.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/iliyamo/cinema-box-office/internal/boxoffice"
	"github.com/iliyamo/cinema-box-office/internal/inventory"
	"github.com/iliyamo/cinema-box-office/internal/ledger"
	"github.com/iliyamo/cinema-box-office/internal/model"
	"github.com/iliyamo/cinema-box-office/internal/pricing"
)

const (
	screenWidth = 56
	leaderWidth = 42
)

// Palette.
var (
	colorMagenta = lipgloss.Color("5")
	colorYellow  = lipgloss.Color("3")
	colorCyan    = lipgloss.Color("6")
	colorGreen   = lipgloss.Color("2")
	colorRed     = lipgloss.Color("1")
	colorWhite   = lipgloss.Color("7")
)

// Renderer turns box office state into printable text.  It never mutates
// anything it is given.
type Renderer struct {
	plain bool

	frame     lipgloss.Style
	title     lipgloss.Style
	accent    lipgloss.Style
	vip       lipgloss.Style
	text      lipgloss.Style
	available lipgloss.Style
	sold      lipgloss.Style
	held      lipgloss.Style
	good      lipgloss.Style
	bad       lipgloss.Style
	warn      lipgloss.Style
}

// NewRenderer returns a Renderer for out.  With noColor set, or when out is
// not a terminal, output carries no escape sequences and sold seats are
// drawn as [--].
func NewRenderer(out io.Writer, noColor bool) *Renderer {
	lr := lipgloss.NewRenderer(out)
	if noColor {
		lr.SetColorProfile(termenv.Ascii)
	}
	plain := lr.ColorProfile() == termenv.Ascii
	st := func(c lipgloss.Color) lipgloss.Style { return lr.NewStyle().Foreground(c) }
	return &Renderer{
		plain: plain,
		frame: lr.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colorMagenta).
			Width(screenWidth).
			Align(lipgloss.Center),
		title:     st(colorYellow).Bold(true),
		accent:    st(colorCyan),
		vip:       st(colorYellow),
		text:      st(colorWhite),
		available: st(colorGreen),
		sold:      st(colorRed),
		held:      st(colorYellow),
		good:      st(colorGreen).Bold(true),
		bad:       st(colorRed).Bold(true),
		warn:      st(colorYellow),
	}
}

// Header renders a screen title in a framed box.
func (r *Renderer) Header(title string) string {
	return r.frame.Render(r.title.Render(title)) + "\n"
}

// Menu renders a header followed by numbered options starting at 1.
func (r *Renderer) Menu(title, question string, options []string) string {
	var b strings.Builder
	b.WriteString(r.Header(title))
	if question != "" {
		b.WriteString(r.accent.Render(question) + "\n")
	}
	for i, opt := range options {
		fmt.Fprintf(&b, "  %s\n", r.text.Render(fmt.Sprintf("%d. %s", i+1, opt)))
	}
	return b.String()
}

// Error, Warn, Success and Info render one-line messages.
func (r *Renderer) Error(msg string) string   { return r.bad.Render(msg) + "\n" }
func (r *Renderer) Warn(msg string) string    { return r.warn.Render(msg) + "\n" }
func (r *Renderer) Success(msg string) string { return r.good.Render(msg) + "\n" }
func (r *Renderer) Info(msg string) string    { return r.accent.Render(msg) + "\n" }

// leader joins a label and an amount with a dotted leader.
func leader(label, amount string) string {
	dots := leaderWidth - len(label) - len(amount) - 2
	if dots < 3 {
		dots = 3
	}
	return label + " " + strings.Repeat(".", dots) + " " + amount
}

// ShowtimeOptions returns menu entries for the schedule.
func ShowtimeOptions(showtimes []model.Showtime) []string {
	opts := make([]string, 0, len(showtimes))
	for _, s := range showtimes {
		opts = append(opts, s.String())
	}
	return opts
}

// SeatMap draws the hall for one showtime: Available seats in green, Sold
// in red, seats held by a checkout in progress in yellow.
func (r *Renderer) SeatMap(inv *inventory.Matrix, st model.Showtime, prices pricing.PriceList) string {
	var b strings.Builder
	b.WriteString(r.Header("SEAT AVAILABILITY"))
	b.WriteString(r.accent.Render(fmt.Sprintf("%s  |  %s", model.MovieTitle, st)) + "\n")
	b.WriteString(r.accent.Render("["+centre("S C R E E N", screenWidth-2)+"]") + "\n\n")

	for row := 0; row < inv.Rows(); row++ {
		label := fmt.Sprintf("Row %-8s", model.RowLabel(row))
		labelStyle := r.text
		if model.ClassOfRow(row) == model.ClassVIP {
			label = fmt.Sprintf("Row %-8s", model.RowLabel(row)+" (VIP)")
			labelStyle = r.vip
		}
		b.WriteString(labelStyle.Render(label))
		for col := 0; col < inv.Cols(); col++ {
			code := model.SeatRef{Row: row, Col: col}.Code()
			b.WriteString(" " + r.seat(code, inv.Status(st.Index, row, col)))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString("Status:  " + r.available.Render("[Available]") + "  " + r.sold.Render(r.soldCell("Sold Out")) + "\n")
	b.WriteString("Pricing: " + r.vip.Render("VIP "+prices.VIP.Display()) + "  " + r.text.Render("REG "+prices.Regular.Display()) + "\n")
	return b.String()
}

func (r *Renderer) soldCell(code string) string {
	if r.plain {
		return "[" + strings.Repeat("-", len(code)) + "]"
	}
	return "[" + code + "]"
}

func (r *Renderer) seat(code string, status model.SeatStatus) string {
	switch status {
	case model.SeatSold:
		return r.sold.Render(r.soldCell(code))
	case model.SeatHeld:
		return r.held.Render("[" + code + "]")
	default:
		return r.available.Render("[" + code + "]")
	}
}

func centre(s string, width int) string {
	pad := width - len(s)
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad/2) + s + strings.Repeat(" ", pad-pad/2)
}

// ClassOptions returns the ticket class menu entries.
func ClassOptions(prices pricing.PriceList, rows int) []string {
	last := model.RowLabel(rows - 1)
	return []string{
		"VIP EXPERIENCE (Row A) - " + prices.VIP.Display(),
		fmt.Sprintf("REGULAR SEATING (Row B-%s) - %s", last, prices.Regular.Display()),
	}
}

// ConcessionMenu renders the concession stand with the running total.
func (r *Renderer) ConcessionMenu(menu pricing.Menu, running model.Cents) string {
	var b strings.Builder
	b.WriteString(r.Header("CONCESSION STAND"))
	for i, it := range menu {
		b.WriteString("  " + r.vip.Render(leader(fmt.Sprintf("%d. %s", i+1, it.Name), it.Price.Display())) + "\n")
	}
	b.WriteString("  " + r.available.Render(fmt.Sprintf("%d. Finish Order", len(menu)+1)) + "\n\n")
	b.WriteString(r.accent.Render("Current Extra Total: "+running.Display()) + "\n")
	return b.String()
}

// PaymentStatus renders the register state between tenders.
func (r *Renderer) PaymentStatus(due, paid model.Cents) string {
	return fmt.Sprintf("Total Due: %s\nAmount Paid: %s\n%s\n",
		r.vip.Render(due.Display()), r.available.Render(paid.Display()), r.sold.Render("Remaining: "+(due-paid).Display()))
}

// Ticket renders one admission ticket.  VIP tickets get a gold frame.
func (r *Renderer) Ticket(t model.Ticket, n, total int) string {
	border := colorMagenta
	titleStyle := r.vip
	tag := "[ STD ADMIT  ]"
	if t.Seat.Class == model.ClassVIP {
		border = colorYellow
		titleStyle = r.sold
		tag = "[ VIP ACCESS ]"
	}
	body := strings.Join([]string{
		titleStyle.Render(model.MovieTitle),
		"TICKET #" + t.Number,
		strings.Repeat("-", 40),
		"Seat: " + r.accent.Render(t.Seat.TicketCode()) + "     Price: " + r.available.Render(t.Seat.Price.Display()),
		t.Showtime.String(),
		tag,
	}, "\n")
	box := r.frame.
		Border(lipgloss.NormalBorder()).
		BorderForeground(border).
		Width(44).
		Render(body)
	return fmt.Sprintf("Printing Ticket %d of %d...\n%s\n", n, total, box)
}

// Receipt renders the summary of a completed sale.
func (r *Renderer) Receipt(sale *boxoffice.Sale) string {
	var b strings.Builder
	b.WriteString(r.Header("RECEIPT"))
	b.WriteString(r.good.Render("Booking Confirmed!") + "\n\n")
	for _, s := range sale.Quote.Seats {
		b.WriteString("  " + r.text.Render(leader(fmt.Sprintf("Seat %s (%s)", s.TicketCode(), s.Class), s.Price.Display())) + "\n")
	}
	if len(sale.Quote.Concessions) > 0 || sale.Quote.ConcessionsTotal > 0 {
		b.WriteString("\n")
		for _, it := range sale.Quote.Concessions {
			b.WriteString("  " + r.accent.Render(leader(it.Name, it.Price.Display())) + "\n")
		}
		b.WriteString("  " + r.accent.Render(leader("CONCESSIONS/EXTRAS", sale.Quote.ConcessionsTotal.Display())) + "\n")
	}
	b.WriteString(strings.Repeat("-", leaderWidth+2) + "\n")
	b.WriteString("  " + r.title.Render(leader("GRAND TOTAL", sale.Quote.GrandTotal.Display())) + "\n")
	b.WriteString("  " + leader("CASH", sale.Payment.Paid.Display()) + "\n")
	b.WriteString("  " + leader("CHANGE", sale.Payment.Change.Display()) + "\n\n")
	b.WriteString(fmt.Sprintf("  %s  |  %s\n", sale.Showtime, sale.Transaction.RecordedAt.Format(ledger.TimeLayout)))
	b.WriteString("  txn " + sale.Transaction.ID.String() + "\n")
	return b.String()
}

// MovieInfo renders the feature description.
func (r *Renderer) MovieInfo(prices pricing.PriceList) string {
	var b strings.Builder
	b.WriteString(r.Header("MOVIE INFORMATION"))
	for _, l := range []string{
		"Title: " + model.MovieTitle,
		"Genre: Fantasy / Musical",
		"Runtime: 2h 15m",
		"Rating: R-16",
		fmt.Sprintf("VIP: %s | REG: %s", prices.VIP.Display(), prices.Regular.Display()),
	} {
		b.WriteString(r.vip.Render(l) + "\n")
	}
	b.WriteString("\n" + r.accent.Render("Synopsis:") + "\n")
	b.WriteString(r.text.Render(strings.Join([]string{
		"Wicked tells the untold story of Elphaba, a misunderstood",
		"green-skinned girl who forms an unlikely friendship with",
		"the popular Glinda. As Elphaba uncovers corruption in Oz",
		"and stands up for justice, she becomes labeled the Wicked Witch,",
		"revealing that heroes and villains aren't always what they seem.",
	}, "\n")) + "\n")
	return b.String()
}

// NowScreening renders the audience for one showtime.
func (r *Renderer) NowScreening(st boxoffice.ShowtimeStats, totalSold int) string {
	var b strings.Builder
	b.WriteString(r.Header("NOW SCREENING"))
	b.WriteString(r.accent.Render("WELCOME TO THE WICKED MOVIE") + "\n\n")
	b.WriteString(r.vip.Render(fmt.Sprintf("%s: %d of %d seats filled", st.Showtime, st.Sold, st.Capacity)) + "\n")
	b.WriteString(r.vip.Render(fmt.Sprintf("Total Sold Today: %d tickets", totalSold)) + "\n\n")
	b.WriteString("The lights are dimming...\n")
	b.WriteString("The projector hums...\n")
	b.WriteString(r.bad.Render(model.MovieTitle+" IS NOW PLAYING...") + "\n")
	return b.String()
}

// SalesLog renders the raw sales log of the current shift.
func (r *Renderer) SalesLog(lines []string) string {
	var b strings.Builder
	b.WriteString(r.Header("ADMIN: SALES LOG"))
	if len(lines) == 0 {
		b.WriteString(r.warn.Render("No sales history found.") + "\n")
		return b.String()
	}
	for _, l := range lines {
		b.WriteString(r.accent.Render(l) + "\n")
	}
	return b.String()
}

// Stats renders seat and revenue figures for the day.
func (r *Renderer) Stats(s boxoffice.Stats) string {
	var b strings.Builder
	b.WriteString("\n")
	for _, st := range s.Showtimes {
		fmt.Fprintf(&b, "  %-24s sold %2d/%d   VIP free %d   REG free %d\n",
			st.Showtime, st.Sold, st.Capacity, st.VIPAvailable, st.RegularAvailable)
	}
	fmt.Fprintf(&b, "  Seats sold: %d of %d\n", s.Sold, s.Capacity)
	if s.RevenueErr != nil {
		b.WriteString(r.Error("  Revenue unavailable: " + s.RevenueErr.Error()))
	} else {
		b.WriteString("  " + r.good.Render("Revenue this shift: "+s.Revenue.Display()) + "\n")
	}
	if s.Pending > 0 {
		b.WriteString(r.Warn(fmt.Sprintf("  %d sale(s) not yet written to the sales log", s.Pending)))
	}
	return b.String()
}

// CashoutTotal renders the drawer total offered for confirmation.
func (r *Renderer) CashoutTotal(total model.Cents) string {
	return r.Header("SHIFT CLOSURE") + "Total Cash in Drawer:\n" + r.good.Render(total.Display()) + "\n"
}

// Shifts renders the shift archive.
func (r *Renderer) Shifts(shifts []ledger.Shift) string {
	var b strings.Builder
	b.WriteString(r.Header("ARCHIVES"))
	if len(shifts) == 0 {
		b.WriteString(r.warn.Render("No closed shifts yet.") + "\n")
		return b.String()
	}
	var grand model.Cents
	for i, s := range shifts {
		fmt.Fprintf(&b, "  %2d. %s -> %s  %3d sales  %s\n", i+1,
			s.Opened.Format(ledger.TimeLayout), s.Closed.Format(ledger.TimeLayout),
			len(s.Lines), r.available.Render(s.Total.Display()))
		grand += s.Total
	}
	b.WriteString("  " + r.title.Render("Archived total: "+grand.Display()) + "\n")
	return b.String()
}
