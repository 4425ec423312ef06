package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-box-office/internal/model"
)

func TestForClass(t *testing.T) {
	p := DefaultPriceList()
	assert.Equal(t, model.Cents(70000), p.ForClass(model.ClassVIP))
	assert.Equal(t, model.Cents(45000), p.ForClass(model.ClassRegular))
}

func TestGrandTotalToTheCent(t *testing.T) {
	p := DefaultPriceList()
	seats := []model.SeatSelection{
		{SeatRef: model.SeatRef{Row: 0, Col: 0}, RowLabel: "A", Class: model.ClassVIP, Price: p.VIP},
		{SeatRef: model.SeatRef{Row: 0, Col: 1}, RowLabel: "A", Class: model.ClassVIP, Price: p.VIP},
	}
	var order ConcessionOrder
	popcorn, err := DefaultMenu().Lookup(1)
	require.NoError(t, err)
	order.Add(popcorn)

	q := NewQuote(seats, order.Total())
	assert.Equal(t, model.Cents(140000), q.TicketsTotal)
	assert.Equal(t, model.Cents(15000), q.ConcessionsTotal)
	assert.Equal(t, model.Cents(155000), q.GrandTotal)
	assert.Equal(t, "PHP 1550.00", q.GrandTotal.Display())
}

func TestConcessionOrder(t *testing.T) {
	menu := DefaultMenu()
	var order ConcessionOrder
	assert.Equal(t, model.Cents(0), order.Total())

	for _, choice := range []int{2, 3, 3, 4} {
		it, err := menu.Lookup(choice)
		require.NoError(t, err)
		order.Add(it)
	}
	assert.Equal(t, model.Cents(8000+4000+4000+50000), order.Total())
	assert.Len(t, order.Items(), 4)
	assert.Equal(t, "Large Soda", order.Items()[0].Name)
}

func TestMenuLookupOutOfRange(t *testing.T) {
	menu := DefaultMenu()
	_, err := menu.Lookup(0)
	assert.ErrorIs(t, err, ErrNoSuchItem)
	_, err = menu.Lookup(len(menu) + 1)
	assert.ErrorIs(t, err, ErrNoSuchItem)
}

func TestEmptySelectionQuote(t *testing.T) {
	q := NewQuote(nil, 0)
	assert.Equal(t, model.Cents(0), q.GrandTotal)
}

func TestQuoteOrder(t *testing.T) {
	seats := []model.SeatSelection{{Class: model.ClassRegular, Price: DefaultRegularPrice}}
	var order ConcessionOrder
	order.Add(Item{Name: "Salted Popcorn", Price: 15000})

	q := QuoteOrder(seats, &order)
	assert.Equal(t, model.Cents(60000), q.GrandTotal)
	require.Len(t, q.Concessions, 1)
	assert.Equal(t, "Salted Popcorn", q.Concessions[0].Name)

	q = QuoteOrder(seats, nil)
	assert.Equal(t, model.Cents(45000), q.GrandTotal)
	assert.Empty(t, q.Concessions)
}
