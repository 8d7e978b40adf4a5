package view

import "time"

// Countdown is the time left until the event starts
type Countdown struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
	Started bool
}

// CountdownTo computes the countdown from now to target. Once target has
// passed every unit is zero and Started is set.
func CountdownTo(target, now time.Time) Countdown {
	left := target.Sub(now)
	if left <= 0 {
		return Countdown{Started: true}
	}

	total := int(left / time.Second)
	return Countdown{
		Days:    total / 86400,
		Hours:   total % 86400 / 3600,
		Minutes: total % 3600 / 60,
		Seconds: total % 60,
	}
}
