// Package routing estimates a route between two addresses: geocode both
// ends, then derive distance, duration and fare from the coordinates.
package routing

import (
	"context"
	"math"
)

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Estimate struct {
	DistanceKm  float64
	DurationMin int
	Fare        float64
	Pickup      Coordinates
	Dropoff     Coordinates
}

// Estimator is the route-estimate collaborator consumed by the ride service.
type Estimator interface {
	Estimate(ctx context.Context, pickupAddress, dropoffAddress string) (*Estimate, error)
}

// Geocoder resolves a free-form address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (Coordinates, error)
}

const (
	avgSpeedKmh   = 40.0
	baseFare      = 5.0
	farePerKm     = 2.0
	earthRadiusKm = 6371.0
)

type routeEstimator struct {
	geocoder Geocoder
}

func NewEstimator(g Geocoder) Estimator {
	return &routeEstimator{geocoder: g}
}

func (e *routeEstimator) Estimate(ctx context.Context, pickupAddress, dropoffAddress string) (*Estimate, error) {
	from, err := e.geocoder.Geocode(ctx, pickupAddress)
	if err != nil {
		return nil, err
	}
	to, err := e.geocoder.Geocode(ctx, dropoffAddress)
	if err != nil {
		return nil, err
	}

	distance := haversineKm(from, to)
	duration := int(math.Round(distance / avgSpeedKmh * 60))
	fare := baseFare + distance*farePerKm

	return &Estimate{
		DistanceKm:  round2(distance),
		DurationMin: duration,
		Fare:        round2(fare),
		Pickup:      from,
		Dropoff:     to,
	}, nil
}

func haversineKm(a, b Coordinates) float64 {
	dLat := rad(b.Lat - a.Lat)
	dLng := rad(b.Lng - a.Lng)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(a.Lat))*math.Cos(rad(b.Lat))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

func rad(deg float64) float64 { return deg * math.Pi / 180 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }
