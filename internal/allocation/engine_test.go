package allocation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-box-office/internal/inventory"
	"github.com/iliyamo/cinema-box-office/internal/model"
	"github.com/iliyamo/cinema-box-office/internal/pricing"
)

func newEngine() (*Engine, *inventory.Matrix) {
	inv := inventory.New(4, model.DefaultRows, model.DefaultCols)
	return NewEngine(inv, pricing.DefaultPriceList()), inv
}

func TestCheckAvailability(t *testing.T) {
	e, inv := newEngine()

	assert.True(t, e.CheckAvailability(Request{Quantity: 6, Class: model.ClassVIP, Showtime: 0}))
	assert.False(t, e.CheckAvailability(Request{Quantity: 7, Class: model.ClassVIP, Showtime: 0}))
	assert.True(t, e.CheckAvailability(Request{Quantity: 18, Class: model.ClassRegular, Showtime: 2}))
	assert.False(t, e.CheckAvailability(Request{Quantity: 19, Class: model.ClassRegular, Showtime: 2}))

	require.NoError(t, inv.Commit(0, []model.SeatRef{{Row: 0, Col: 0}, {Row: 0, Col: 5}}))
	assert.True(t, e.CheckAvailability(Request{Quantity: 4, Class: model.ClassVIP, Showtime: 0}))
	assert.False(t, e.CheckAvailability(Request{Quantity: 5, Class: model.ClassVIP, Showtime: 0}))
	// other showtimes are independent
	assert.True(t, e.CheckAvailability(Request{Quantity: 6, Class: model.ClassVIP, Showtime: 1}))

	assert.False(t, e.CheckAvailability(Request{Quantity: 0, Class: model.ClassVIP, Showtime: 0}))
	assert.False(t, e.CheckAvailability(Request{Quantity: 1, Class: model.ClassVIP, Showtime: 4}))
	assert.False(t, e.CheckAvailability(Request{Quantity: 1, Showtime: 0}))
}

func TestAutoAssignFirstFreeSeats(t *testing.T) {
	e, inv := newEngine()

	got, err := e.AutoAssign(Request{Quantity: 2, Class: model.ClassVIP, Showtime: 0})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, model.SeatRef{Row: 0, Col: 0}, got[0].SeatRef)
	assert.Equal(t, model.SeatRef{Row: 0, Col: 1}, got[1].SeatRef)
	for _, s := range got {
		assert.Equal(t, model.Cents(70000), s.Price)
		assert.Equal(t, "A", s.RowLabel)
		assert.Equal(t, model.ClassVIP, s.Class)
	}

	require.NoError(t, inv.Commit(0, []model.SeatRef{{Row: 1, Col: 0}, {Row: 1, Col: 2}}))
	got, err = e.AutoAssign(Request{Quantity: 6, Class: model.ClassRegular, Showtime: 0})
	require.NoError(t, err)
	want := []model.SeatRef{{Row: 1, Col: 1}, {Row: 1, Col: 3}, {Row: 1, Col: 4}, {Row: 1, Col: 5}, {Row: 2, Col: 0}, {Row: 2, Col: 1}}
	assert.Equal(t, want, model.Refs(got))
	for _, s := range got {
		assert.Equal(t, model.Cents(45000), s.Price)
	}
}

func TestAutoAssignIsDeterministic(t *testing.T) {
	e, inv := newEngine()
	require.NoError(t, inv.Commit(2, []model.SeatRef{{Row: 2, Col: 3}}))

	req := Request{Quantity: 10, Class: model.ClassRegular, Showtime: 2}
	first, err := e.AutoAssign(req)
	require.NoError(t, err)
	second, err := e.AutoAssign(req)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAutoAssignRespectsClassAndUniqueness(t *testing.T) {
	for _, class := range []model.SeatClass{model.ClassVIP, model.ClassRegular} {
		e, inv := newEngine()
		require.NoError(t, inv.Commit(1, []model.SeatRef{{Row: 0, Col: 1}, {Row: 3, Col: 3}}))
		qty := e.Available(class, 1)
		req := Request{Quantity: qty, Class: class, Showtime: 1}
		require.True(t, e.CheckAvailability(req))

		got, err := e.AutoAssign(req)
		require.NoError(t, err)
		assert.Len(t, got, qty)
		seen := map[model.SeatRef]bool{}
		for _, s := range got {
			assert.False(t, seen[s.SeatRef], "seat %s repeated", s.Code())
			seen[s.SeatRef] = true
			assert.Equal(t, class, model.ClassOfRow(s.Row))
			assert.False(t, inv.IsSold(1, s.Row, s.Col))
		}
	}
}

func TestAutoAssignInsufficient(t *testing.T) {
	e, inv := newEngine()
	require.NoError(t, inv.Commit(3, []model.SeatRef{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}}))

	got, err := e.AutoAssign(Request{Quantity: 4, Class: model.ClassVIP, Showtime: 3})
	assert.ErrorIs(t, err, ErrInsufficientSeats)
	assert.Nil(t, got)

	_, err = e.AutoAssign(Request{Quantity: -1, Class: model.ClassVIP, Showtime: 3})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestAutoAssignSkipsHeldSeats(t *testing.T) {
	e, inv := newEngine()
	require.NoError(t, inv.Hold(0, []model.SeatRef{{Row: 0, Col: 0}}))

	got, err := e.AutoAssign(Request{Quantity: 1, Class: model.ClassVIP, Showtime: 0})
	require.NoError(t, err)
	assert.Equal(t, model.SeatRef{Row: 0, Col: 1}, got[0].SeatRef)
}

func TestValidateRejectionReasons(t *testing.T) {
	e, inv := newEngine()
	require.NoError(t, inv.Commit(0, []model.SeatRef{{Row: 0, Col: 2}, {Row: 2, Col: 2}}))
	vip := Request{Quantity: 2, Class: model.ClassVIP, Showtime: 0}
	reg := Request{Quantity: 2, Class: model.ClassRegular, Showtime: 0}
	chosenVIP := []model.SeatSelection{{SeatRef: model.SeatRef{Row: 0, Col: 0}, RowLabel: "A", Class: model.ClassVIP, Price: 70000}}

	cases := []struct {
		name   string
		req    Request
		code   string
		chosen []model.SeatSelection
		want   error
	}{
		{"empty", vip, "", nil, ErrMalformedCode},
		{"letter only", vip, "A", nil, ErrMalformedCode},
		{"digits only", vip, "12", nil, ErrMalformedCode},
		{"zero column", vip, "A0", nil, ErrMalformedCode},
		{"inner space", reg, "B 2", nil, ErrMalformedCode},
		{"trailing junk", reg, "B2x", nil, ErrMalformedCode},
		{"row out of bounds", reg, "E1", nil, ErrNoSuchSeat},
		{"column out of bounds", vip, "A7", nil, ErrNoSuchSeat},
		{"longest row label", reg, "ZZZZZZ1", nil, ErrNoSuchSeat},
		{"overlong row label", reg, strings.Repeat("Z", 14) + "1", nil, ErrMalformedCode},
		{"overlong mixed label", reg, strings.Repeat("MQ", 9) + "3", nil, ErrMalformedCode},
		{"regular seat for vip", vip, "B1", nil, ErrWrongClass},
		{"vip seat for regular", reg, "A1", nil, ErrWrongClass},
		{"sold vip", vip, "A3", nil, ErrSeatTaken},
		{"sold regular", reg, "c3", nil, ErrSeatTaken},
		{"duplicate", vip, "a1", chosenVIP, ErrDuplicateSeat},
	}
	all := []error{ErrMalformedCode, ErrNoSuchSeat, ErrWrongClass, ErrSeatTaken, ErrDuplicateSeat}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.Validate(tc.req, tc.code, tc.chosen)
			require.Error(t, err)
			for _, other := range all {
				assert.Equal(t, other == tc.want, errors.Is(err, other), "reason %v", other)
			}
		})
	}
}

func TestValidateAccepts(t *testing.T) {
	e, _ := newEngine()
	sel, err := e.Validate(Request{Quantity: 1, Class: model.ClassRegular, Showtime: 1}, " d06 ", nil)
	require.NoError(t, err)
	assert.Equal(t, model.SeatRef{Row: 3, Col: 5}, sel.SeatRef)
	assert.Equal(t, "D", sel.RowLabel)
	assert.Equal(t, model.Cents(45000), sel.Price)
}

type scriptedCodes struct {
	codes    []string
	rejected []error
	accepted []string
}

func (s *scriptedCodes) SeatCode(ordinal, total int) (string, error) {
	if len(s.codes) == 0 {
		return "", errors.New("input closed")
	}
	c := s.codes[0]
	s.codes = s.codes[1:]
	return c, nil
}

func (s *scriptedCodes) Reject(ordinal int, code string, reason error) {
	s.rejected = append(s.rejected, reason)
}

func (s *scriptedCodes) Accept(ordinal int, seat model.SeatSelection) {
	s.accepted = append(s.accepted, seat.Code())
}

func TestManualSelectRepromptsUntilQuantity(t *testing.T) {
	e, inv := newEngine()
	require.NoError(t, inv.Commit(2, []model.SeatRef{{Row: 1, Col: 0}}))

	src := &scriptedCodes{codes: []string{"zz", "A1", "B1", "B2", "b2", "F9", "C4"}}
	got, err := e.ManualSelect(Request{Quantity: 2, Class: model.ClassRegular, Showtime: 2}, src)
	require.NoError(t, err)

	assert.Equal(t, []string{"B2", "C4"}, model.Codes(got))
	assert.Equal(t, []string{"B2", "C4"}, src.accepted)
	require.Len(t, src.rejected, 5)
	assert.ErrorIs(t, src.rejected[0], ErrMalformedCode)
	assert.ErrorIs(t, src.rejected[1], ErrWrongClass)
	assert.ErrorIs(t, src.rejected[2], ErrSeatTaken)
	assert.ErrorIs(t, src.rejected[3], ErrDuplicateSeat)
	assert.ErrorIs(t, src.rejected[4], ErrNoSuchSeat)
	assert.Empty(t, src.codes)
	// selection never mutates inventory
	assert.Equal(t, 1, inv.CountSold())
}

func TestManualSelectStopsOnSourceError(t *testing.T) {
	e, _ := newEngine()
	src := &scriptedCodes{codes: []string{"A1"}}
	got, err := e.ManualSelect(Request{Quantity: 2, Class: model.ClassVIP, Showtime: 0}, src)
	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestParseSeatCode(t *testing.T) {
	ref, err := ParseSeatCode("A03")
	require.NoError(t, err)
	assert.Equal(t, model.SeatRef{Row: 0, Col: 2}, ref)

	ref, err = ParseSeatCode("aa10")
	require.NoError(t, err)
	assert.Equal(t, model.SeatRef{Row: 26, Col: 9}, ref)

	for _, bad := range []string{"", " ", "-1", "A-1", "1A", "A1.5", "A99999999999999999999", strings.Repeat("Z", 14) + "1", strings.Repeat("B", 20) + "2"} {
		_, err := ParseSeatCode(bad)
		assert.ErrorIs(t, err, ErrMalformedCode, bad)
	}
}
