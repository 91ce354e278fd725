package history

import "time"

type HistoryControllerOption func(*_HistoryController)

// WithLocation sets the time zone that decides which calendar day a shipment belongs to.
func WithLocation(loc *time.Location) HistoryControllerOption {
	return func(c *_HistoryController) {
		if loc != nil {
			c.location = loc
		}
	}
}
