package sessions

import "math"

// AveragePace returns minutes per km rounded to two decimals. It is nil unless the
// distance is positive and the duration is known.
func AveragePace(distanceKm, durationMin *float64) *float64 {
	if distanceKm == nil || durationMin == nil || *distanceKm <= 0 {
		return nil
	}
	pace := math.Round(*durationMin / *distanceKm * 100) / 100
	return &pace
}
