package domain

import "fmt"

// Coords is a latitude/longitude pair in degrees.
type Coords struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (c Coords) String() string {
	return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lng)
}
