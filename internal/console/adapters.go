package console

import (
	"errors"
	"fmt"

	"github.com/iliyamo/cinema-box-office/internal/allocation"
	"github.com/iliyamo/cinema-box-office/internal/model"
)

// seatPrompt asks the operator for seat codes during manual selection.
type seatPrompt struct{ a *App }

func (s seatPrompt) SeatCode(ordinal, total int) (string, error) {
	return s.a.prompt.Line(fmt.Sprintf("Enter Seat for Ticket %d of %d: ", ordinal, total))
}

func (s seatPrompt) Reject(_ int, code string, reason error) {
	s.a.print(s.a.render.Error("  " + rejectMessage(code, reason)))
}

func (s seatPrompt) Accept(ordinal int, seat model.SeatSelection) {
	s.a.print(s.a.render.Success(fmt.Sprintf("  Ticket %d: seat %s (%s)", ordinal, seat.Code(), seat.Class)))
}

// rejectMessage is the short reason shown for a refused seat code.
func rejectMessage(code string, err error) string {
	switch {
	case errors.Is(err, allocation.ErrMalformedCode):
		return fmt.Sprintf("Invalid: %q", code)
	case errors.Is(err, allocation.ErrNoSuchSeat):
		return "No such seat: " + code
	case errors.Is(err, allocation.ErrSeatTaken):
		return "Taken: " + code
	case errors.Is(err, allocation.ErrDuplicateSeat):
		return "Duplicate: " + code
	default:
		// Wrong-class errors already name the seat and the class.
		return err.Error()
	}
}

// cashPrompt reads tenders at the register.
type cashPrompt struct{ a *App }

func (c cashPrompt) Tender(due, paid model.Cents) (string, error) {
	c.a.print(c.a.render.PaymentStatus(due, paid))
	return c.a.prompt.Line("Enter cash (or -1 to cancel): ")
}

func (c cashPrompt) Rejected(input string) {
	c.a.print(c.a.render.Error(fmt.Sprintf("  %q is not a cash amount", input)))
}
