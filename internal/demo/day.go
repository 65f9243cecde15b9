package demo

import "fmt"

// DayOfWeek is an enumerated day, Monday first.
type DayOfWeek int

const (
	Monday DayOfWeek = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// Days lists every DayOfWeek in declaration order.
var Days = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var dayNames = [...]string{"", "MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY", "SUNDAY"}

// Valid reports whether d is a declared day.
func (d DayOfWeek) Valid() bool {
	return d >= Monday && d <= Sunday
}

func (d DayOfWeek) String() string {
	if !d.Valid() {
		return fmt.Sprintf("DayOfWeek(%d)", int(d))
	}
	return dayNames[d]
}

// ParseDay returns the day with the given constant name, e.g. "MONDAY".
func ParseDay(name string) (DayOfWeek, error) {
	for _, d := range Days {
		if dayNames[d] == name {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown day of week %q", name)
}
