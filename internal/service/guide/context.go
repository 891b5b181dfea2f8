package guide

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/streetwise-app/backend/internal/model/chat"
	"github.com/streetwise-app/backend/internal/model/weather"
)

// BuildContextString composes the situational preamble sent ahead of the
// user's query: time-of-day bucket, clock time, weather when available, the
// resolved location, and an optional strict radius clause. Deterministic
// given its inputs.
func BuildContextString(snap *weather.Snapshot, userCtx chat.UserContext, city string, radiusMiles float64, now time.Time) string {
	timeOfDay := timeBucket(now.Hour())
	timeString := now.Format("3:04 PM")

	place := city
	if place == "" {
		place = "your area"
	}
	locString := fmt.Sprintf("Location: %s (%.4f, %.4f)", place, userCtx.Latitude, userCtx.Longitude)

	parts := []string{fmt.Sprintf("Current context: %s (%s)", timeOfDay, timeString)}
	if snap != nil {
		parts = append(parts,
			fmt.Sprintf("%d°F", int(math.Round(snap.TempF))),
			snap.Description,
			locString,
		)
	} else {
		parts = append(parts, locString)
	}

	if radiusMiles != 0 {
		unit := "mile"
		if radiusMiles != 1 {
			unit = "miles"
		}
		radius := strconv.FormatFloat(radiusMiles, 'f', -1, 64)
		parts = append(parts, fmt.Sprintf("Strictly limit results to within %s %s", radius, unit))
	}

	return strings.Join(parts, ", ")
}

func timeBucket(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "morning"
	case hour >= 12 && hour < 17:
		return "afternoon"
	case hour >= 17 && hour < 21:
		return "evening"
	default:
		return "night"
	}
}
