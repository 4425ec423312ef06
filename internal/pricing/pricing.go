// Package pricing holds the box office price list, the concession menu and
// the arithmetic that turns a seat selection plus snacks into a grand total.
package pricing

import (
	"errors"
	"fmt"

	"github.com/iliyamo/cinema-box-office/internal/model"
)

// ErrNoSuchItem is returned when a menu choice does not exist.
var ErrNoSuchItem = errors.New("no such menu item")

// Default seat prices.
const (
	DefaultVIPPrice     model.Cents = 70000 // PHP 700.00
	DefaultRegularPrice model.Cents = 45000 // PHP 450.00
)

// PriceList holds the fixed per-seat price of each class.
type PriceList struct {
	VIP     model.Cents
	Regular model.Cents
}

// DefaultPriceList returns the standard prices.
func DefaultPriceList() PriceList {
	return PriceList{VIP: DefaultVIPPrice, Regular: DefaultRegularPrice}
}

// ForClass returns the seat price for a class.
func (p PriceList) ForClass(c model.SeatClass) model.Cents {
	if c == model.ClassVIP {
		return p.VIP
	}
	return p.Regular
}

// Item is one product sold at the concession stand.
type Item struct {
	Name  string      // display name
	Price model.Cents // unit price
}

// Menu is the ordered list of concession items.  Menu choices are 1-based.
type Menu []Item

// DefaultMenu returns the concession stand menu.
func DefaultMenu() Menu {
	return Menu{
		{Name: "Salted Popcorn", Price: 15000},
		{Name: "Large Soda", Price: 8000},
		{Name: "Mineral Water", Price: 4000},
		{Name: "Wicked T-Shirt", Price: 50000},
	}
}

// Lookup returns the item for a 1-based menu choice.
func (m Menu) Lookup(choice int) (Item, error) {
	if choice < 1 || choice > len(m) {
		return Item{}, fmt.Errorf("%w: %d", ErrNoSuchItem, choice)
	}
	return m[choice-1], nil
}

// ConcessionOrder accumulates concession items for one sale.  The zero
// value is an empty order.
type ConcessionOrder struct {
	items []Item
	total model.Cents
}

// Add appends one item to the order.
func (o *ConcessionOrder) Add(it Item) {
	o.items = append(o.items, it)
	o.total += it.Price
}

// Items returns the items added so far in order.
func (o *ConcessionOrder) Items() []Item {
	return append([]Item(nil), o.items...)
}

// Total returns the sum of all added items.
func (o *ConcessionOrder) Total() model.Cents {
	return o.total
}

// TicketsTotal sums the price of every selected seat.
func TicketsTotal(selections []model.SeatSelection) model.Cents {
	var total model.Cents
	for _, s := range selections {
		total += s.Price
	}
	return total
}

// Quote is the priced summary of a sale before payment.
type Quote struct {
	Seats            []model.SeatSelection
	Concessions      []Item
	TicketsTotal     model.Cents
	ConcessionsTotal model.Cents
	GrandTotal       model.Cents
}

// NewQuote prices a selection together with a concessions total.  There are
// no taxes or discounts: the grand total is tickets plus concessions.
func NewQuote(selections []model.SeatSelection, concessions model.Cents) Quote {
	tickets := TicketsTotal(selections)
	return Quote{
		Seats:            selections,
		TicketsTotal:     tickets,
		ConcessionsTotal: concessions,
		GrandTotal:       tickets + concessions,
	}
}

// QuoteOrder prices a selection together with a concession order.  A nil
// order means no concessions.
func QuoteOrder(selections []model.SeatSelection, order *ConcessionOrder) Quote {
	if order == nil {
		return NewQuote(selections, 0)
	}
	q := NewQuote(selections, order.Total())
	q.Concessions = order.Items()
	return q
}
