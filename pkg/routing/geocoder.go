package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

var ErrAddressNotFound = errors.New("address not found")

// NominatimGeocoder resolves addresses against a Nominatim-style search
// endpoint. Lookups are bounded by the client timeout and fail closed.
type NominatimGeocoder struct {
	BaseURL string
	Client  *http.Client
}

func NewNominatimGeocoder(baseURL string, timeout time.Duration) *NominatimGeocoder {
	return &NominatimGeocoder{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
	}
}

func (g *NominatimGeocoder) Geocode(ctx context.Context, address string) (Coordinates, error) {
	u := fmt.Sprintf("%s?format=json&q=%s", g.BaseURL, url.QueryEscape(address))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Coordinates{}, err
	}

	res, err := g.Client.Do(req)
	if err != nil {
		return Coordinates{}, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return Coordinates{}, fmt.Errorf("geocoder returned status %d", res.StatusCode)
	}

	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(res.Body).Decode(&results); err != nil {
		return Coordinates{}, err
	}
	if len(results) == 0 {
		return Coordinates{}, ErrAddressNotFound
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return Coordinates{}, err
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return Coordinates{}, err
	}
	return Coordinates{Lat: lat, Lng: lng}, nil
}

// StaticGeocoder maps an address to a stable synthetic coordinate without
// any network call. The same address always yields the same point, so
// estimates are deterministic.
type StaticGeocoder struct{}

func (StaticGeocoder) Geocode(_ context.Context, address string) (Coordinates, error) {
	if address == "" {
		return Coordinates{}, ErrAddressNotFound
	}
	h := fnv.New64a()
	h.Write([]byte(address))
	sum := h.Sum64()

	// spread addresses over roughly a city-sized bounding box
	lat := 12.90 + float64(sum%1000)/1000*0.25
	lng := 77.50 + float64((sum/1000)%1000)/1000*0.25
	return Coordinates{Lat: lat, Lng: lng}, nil
}
