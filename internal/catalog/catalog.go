package catalog

import "time"

// DateLayout is the wire format for booking dates.
const DateLayout = "2006-01-02"

// Times is the fixed daily schedule of the court. A booking is only valid
// for one of these values.
var Times = []string{
	"09:00", "10:30", "12:00", "14:30", "16:00",
	"17:30", "18:30", "20:00", "21:30", "23:00",
}

func ValidTime(t string) bool {
	for _, known := range Times {
		if t == known {
			return true
		}
	}

	return false
}

func ValidDate(d string) bool {
	_, err := time.Parse(DateLayout, d)
	return err == nil
}
