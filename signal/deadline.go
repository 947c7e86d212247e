package signal

import (
	"math"
	"strings"
	"time"
)

// DeadlineLayout is the accepted deadline format.
const DeadlineLayout = "2006-01-02"

// DaysUntil returns the number of calendar days from now's date to the
// deadline date, both taken in UTC. ok is false when the deadline does not parse.
func DaysUntil(deadline string, now time.Time) (days int, ok bool) {
	d, err := time.Parse(DeadlineLayout, strings.TrimSpace(deadline))
	if err != nil {
		return 0, false
	}
	y, m, dd := now.UTC().Date()
	today := time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
	return int(d.Sub(today).Hours() / 24), true
}

// DeadlineDecay scores deadline urgency. An unparsable deadline yields
// fallback; a deadline today or in the past yields 0; otherwise the score is
// exp(-days/horizonDays), approaching 0 for far-future deadlines.
func DeadlineDecay(deadline string, now time.Time, horizonDays, fallback float64) float64 {
	days, ok := DaysUntil(deadline, now)
	if !ok {
		return fallback
	}
	if days <= 0 {
		return 0
	}
	return math.Exp(-float64(days) / horizonDays)
}
