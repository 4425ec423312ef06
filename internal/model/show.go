package model

// Showtime represents one of the fixed daily screenings.  Each showtime has
// its own copy of the hall's seating chart in the inventory matrix, so a
// seat sold for the matinee is still free for the evening show.
//
// Index is the 0-based position in the schedule and the first coordinate of
// every seat of the showtime in the inventory matrix.
type Showtime struct {
	Index int    // schedule position
	Label string // start time as printed on tickets, e.g. "10:30 AM"
	Slot  string // menu slot name, e.g. "Matinee"
}

// String renders the showtime as it appears in the selection menu.
func (s Showtime) String() string {
	return s.Label + " (" + s.Slot + ")"
}

// MovieTitle is the feature playing in every showtime.
const MovieTitle = "THE WICKED GOOD"

// DefaultShowtimes returns the four screenings of the day.  The returned
// slice is freshly allocated and may be modified by the caller.
func DefaultShowtimes() []Showtime {
	return []Showtime{
		{Index: 0, Label: "10:30 AM", Slot: "Matinee"},
		{Index: 1, Label: "01:15 PM", Slot: "Afternoon"},
		{Index: 2, Label: "04:45 PM", Slot: "Prime"},
		{Index: 3, Label: "08:00 PM", Slot: "Evening"},
	}
}

// Default hall dimensions: 4 rows (A-D) by 6 seats.
const (
	DefaultRows = 4
	DefaultCols = 6
)
