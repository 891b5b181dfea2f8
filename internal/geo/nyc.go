// Package geo resolves coordinates to NYC neighborhood names via a small
// centroid table, so prompts can say "SoHo" instead of "New York".
package geo

import "math"

// Neighborhood is an approximate centroid for a named NYC neighborhood.
type Neighborhood struct {
	Name    string
	Lat     float64
	Lon     float64
	Borough string
}

var nycNeighborhoods = []Neighborhood{
	{Name: "SoHo", Lat: 40.7233, Lon: -74.0030, Borough: "Manhattan"},
	{Name: "West Village", Lat: 40.7358, Lon: -74.0036, Borough: "Manhattan"},
	{Name: "Tribeca", Lat: 40.7163, Lon: -74.0086, Borough: "Manhattan"},
	{Name: "Financial District", Lat: 40.7074, Lon: -74.0113, Borough: "Manhattan"},
	{Name: "Chinatown", Lat: 40.7158, Lon: -73.9970, Borough: "Manhattan"},
	{Name: "Lower East Side", Lat: 40.7150, Lon: -73.9843, Borough: "Manhattan"},
	{Name: "East Village", Lat: 40.7265, Lon: -73.9815, Borough: "Manhattan"},
	{Name: "Nolita", Lat: 40.7229, Lon: -73.9960, Borough: "Manhattan"},
	{Name: "Chelsea", Lat: 40.7465, Lon: -74.0014, Borough: "Manhattan"},
	{Name: "Meatpacking District", Lat: 40.7405, Lon: -74.0060, Borough: "Manhattan"},
	{Name: "Hell's Kitchen", Lat: 40.7638, Lon: -73.9918, Borough: "Manhattan"},
	{Name: "Midtown", Lat: 40.7549, Lon: -73.9840, Borough: "Manhattan"},
	{Name: "Upper West Side", Lat: 40.7870, Lon: -73.9754, Borough: "Manhattan"},
	{Name: "Upper East Side", Lat: 40.7736, Lon: -73.9566, Borough: "Manhattan"},
	{Name: "Hudson Yards", Lat: 40.7538, Lon: -74.0022, Borough: "Manhattan"},
	{Name: "Williamsburg", Lat: 40.7178, Lon: -73.9576, Borough: "Brooklyn"},
	{Name: "DUMBO", Lat: 40.7031, Lon: -73.9888, Borough: "Brooklyn"},
	{Name: "Greenpoint", Lat: 40.7288, Lon: -73.9520, Borough: "Brooklyn"},
	{Name: "Bushwick", Lat: 40.6958, Lon: -73.9171, Borough: "Brooklyn"},
	{Name: "Brooklyn Heights", Lat: 40.6960, Lon: -73.9933, Borough: "Brooklyn"},
}

const earthRadiusKm = 6371

// acceptance radius for a neighborhood hit, in km
const matchThresholdKm = 1.5

func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := degToRad(lat2 - lat1)
	dLon := degToRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(degToRad(lat1))*math.Cos(degToRad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

func degToRad(deg float64) float64 {
	return deg * (math.Pi / 180)
}

// NYCNeighborhood returns the nearest neighborhood name for the coordinates,
// or "" when nothing lies within the acceptance radius.
func NYCNeighborhood(lat, lon float64) string {
	var closest *Neighborhood
	minDist := math.Inf(1)

	for i := range nycNeighborhoods {
		n := &nycNeighborhoods[i]
		if dist := haversineKm(lat, lon, n.Lat, n.Lon); dist < minDist {
			minDist = dist
			closest = n
		}
	}

	if closest != nil && minDist < matchThresholdKm {
		return closest.Name
	}
	return ""
}
