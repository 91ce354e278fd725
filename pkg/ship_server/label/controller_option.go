package label

import "time"

type LabelControllerOption func(*_LabelController)

// WithAccountNumber sets the shipper's carrier account used on every label request.
func WithAccountNumber(accountNumber string) LabelControllerOption {
	return func(c *_LabelController) {
		c.accountNumber = accountNumber
	}
}

// WithLocation sets the time zone used to default the ship date to "today".
func WithLocation(loc *time.Location) LabelControllerOption {
	return func(c *_LabelController) {
		if loc != nil {
			c.location = loc
		}
	}
}
