package domain

import (
	"time"

	"github.com/google/uuid"
)

// StaffLog is a single time-clock entry. An entry with a nil TimeOut is
// "open"; at most one open entry may exist per name at a time.
type StaffLog struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	TimeIn  string    `json:"time_in"`
	TimeOut *string   `json:"time_out"`
}

// IsOpen reports whether the entry has not been clocked out yet.
func (l StaffLog) IsOpen() bool {
	return l.TimeOut == nil
}

// Hours returns the elapsed fractional hours between TimeIn and TimeOut.
// Open entries, unparseable timestamps, and negative durations yield 0;
// worked hours never go negative.
func (l StaffLog) Hours() float64 {
	if l.TimeOut == nil {
		return 0
	}
	in, err := time.Parse(TimestampLayout, l.TimeIn)
	if err != nil {
		return 0
	}
	out, err := time.Parse(TimestampLayout, *l.TimeOut)
	if err != nil {
		return 0
	}
	hours := out.Sub(in).Hours()
	if hours < 0 {
		return 0
	}
	return hours
}

// PayrollEntry is a derived pay record appended when a shift closes with
// positive hours.
type PayrollEntry struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Amount float64   `json:"amount"`
	Date   string    `json:"date"`
}
