package model

import (
	"encoding/json"
	"time"
)

// Date is a calendar day (YYYY-MM-DD) with no time-of-day. The day is held at UTC midnight.
type Date struct {
	timeVal time.Time
}

func (dt Date) IsZero() bool {
	return dt.timeVal.IsZero()
}

func (dt Date) String() string {
	if dt.IsZero() {
		return ""
	}
	return dt.timeVal.Format(time.DateOnly)
}

func (dt Date) GetTime() time.Time {
	return dt.timeVal
}

func (dt Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(dt.String())
}

func (dt *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*dt = Date{}
		return nil
	}

	newDt, err := NewDateFromString(s)
	if err != nil {
		return err
	}
	*dt = newDt
	return nil
}

func NewDateFromString(t string) (Date, error) {
	ts, err := time.ParseInLocation(time.DateOnly, t, time.UTC)
	if err != nil {
		return Date{}, err
	}
	return Date{
		timeVal: ts,
	}, nil
}

func NewDateFromStringNoError(t string) Date {
	d, err := NewDateFromString(t)
	if err != nil {
		panic(err)
	}
	return d
}

// DateIn returns the calendar day that t falls on in loc.
func DateIn(t time.Time, loc *time.Location) Date {
	y, m, d := t.In(loc).Date()
	return Date{timeVal: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}
