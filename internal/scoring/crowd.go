package scoring

import "time"

// EstimateCrowd returns a busyness estimate purely from the venue-local
// wall clock: day of week and hour of day. There is no live occupancy
// feed, so this is a static heuristic, not a measurement.
//
// The weekend-and-peak branch must stay ahead of weekend-or-peak: a
// Saturday at 13:00 is "busy", not "moderate".
func EstimateCrowd(t time.Time) CrowdLevel {
	hour := t.Hour()
	weekday := t.Weekday()
	weekend := weekday == time.Saturday || weekday == time.Sunday
	peak := hour >= 11 && hour <= 16

	switch {
	case weekend && peak:
		return CrowdBusy
	case weekend || peak:
		return CrowdModerate
	case hour < 10 || hour > 18:
		return CrowdQuiet
	default:
		return CrowdModerate
	}
}
