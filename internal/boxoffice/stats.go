package boxoffice

import "github.com/iliyamo/cinema-box-office/internal/model"

// ShowtimeStats summarises seat sales for one showtime.
type ShowtimeStats struct {
	Showtime         model.Showtime
	Sold             int
	Capacity         int
	VIPAvailable     int
	RegularAvailable int
}

// Stats summarises the day so far.  Revenue is the sales log total; it is
// zero with RevenueErr set when the log cannot be reconciled.
type Stats struct {
	Sold       int
	Capacity   int
	Showtimes  []ShowtimeStats
	Revenue    model.Cents
	RevenueErr error
	Pending    int
}

// Stats reads the current seat and revenue figures.
func (o *Office) Stats() Stats {
	s := Stats{
		Sold:     o.inv.CountSold(),
		Capacity: o.inv.Capacity(),
		Pending:  len(o.pending),
	}
	for _, st := range o.showtimes {
		s.Showtimes = append(s.Showtimes, ShowtimeStats{
			Showtime:         st,
			Sold:             o.inv.CountSoldIn(st.Index),
			Capacity:         o.inv.CapacityPerShowtime(),
			VIPAvailable:     o.engine.Available(model.ClassVIP, st.Index),
			RegularAvailable: o.engine.Available(model.ClassRegular, st.Index),
		})
	}
	s.Revenue, s.RevenueErr = o.ledger.Revenue()
	return s
}
