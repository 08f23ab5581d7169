package airbnb

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/voyagetools/voyage-mcp/internal/domain"
)

//go:embed gazetteer.yaml
var gazetteerYAML []byte

// defaultCoordinates anchors searches whose location nothing could resolve.
var defaultCoordinates = domain.Coordinates{Lat: 40.7128, Lon: -74.0060}

// genericNeighborhoods serves cities the gazetteer does not know.
var genericNeighborhoods = []string{
	"Downtown",
	"Old Town",
	"City Center",
	"Riverside",
	"Arts District",
	"Waterfront",
	"University Quarter",
	"Market District",
}

// City is one gazetteer entry.
type City struct {
	Name          string   `yaml:"name"`
	Country       string   `yaml:"country"`
	Lat           float64  `yaml:"lat"`
	Lon           float64  `yaml:"lon"`
	Neighborhoods []string `yaml:"neighborhoods"`
}

// LoadGazetteer parses the embedded city data.
func LoadGazetteer() ([]City, error) {
	var g struct {
		Cities []City `yaml:"cities"`
	}
	if err := yaml.Unmarshal(gazetteerYAML, &g); err != nil {
		return nil, fmt.Errorf("failed to parse embedded gazetteer: %w", err)
	}
	return g.Cities, nil
}

// Geocoder resolves free-form place text to coordinates. The openweather
// client satisfies it; a nil Geocoder disables the live tier.
type Geocoder interface {
	Geocode(ctx context.Context, query string, limit int) ([]domain.PlaceCandidate, error)
}

// ResolvedPlace is where a search is anchored.
type ResolvedPlace struct {
	City          string
	Country       string
	Coordinates   domain.Coordinates
	Neighborhoods []string
}

// Resolver turns a location string into coordinates and a neighborhood list.
// Resolution never fails: the live geocoder is tried first when configured,
// then the embedded gazetteer, then a fixed default.
type Resolver struct {
	geocoder Geocoder
	cities   []City
	logger   *slog.Logger
}

// NewResolver creates a Resolver over the given gazetteer. geocoder may be
// nil when no geocoding credential is configured.
func NewResolver(geocoder Geocoder, cities []City, logger *slog.Logger) *Resolver {
	return &Resolver{
		geocoder: geocoder,
		cities:   cities,
		logger:   logger.With("component", "geo_resolver"),
	}
}

// Resolve anchors a location string. It always returns a usable place.
func (r *Resolver) Resolve(ctx context.Context, location string) ResolvedPlace {
	if r.geocoder != nil {
		places, err := r.geocoder.Geocode(ctx, location, 1)
		switch {
		case err != nil:
			r.logger.Debug("Live geocoding failed, falling back.",
				slog.String("location", location), slog.Any("error", err))
		case len(places) > 0:
			p := places[0]
			r.logger.Debug("Location resolved by live geocoder.",
				slog.String("location", location), slog.String("name", p.Name))
			return ResolvedPlace{
				City:          p.Name,
				Country:       p.Country,
				Coordinates:   domain.Coordinates{Lat: p.Lat, Lon: p.Lon},
				Neighborhoods: r.neighborhoodsFor(p.Name),
			}
		}
	}

	if city, ok := r.lookupCity(location); ok {
		r.logger.Debug("Location resolved by gazetteer.",
			slog.String("location", location), slog.String("city", city.Name))
		return ResolvedPlace{
			City:          city.Name,
			Country:       city.Country,
			Coordinates:   domain.Coordinates{Lat: city.Lat, Lon: city.Lon},
			Neighborhoods: city.Neighborhoods,
		}
	}

	r.logger.Debug("Location unresolved, using default anchor.", slog.String("location", location))
	return defaultPlace(location)
}

// lookupCity matches the city token of a location string ("Paris, France"
// matches on "Paris") against the gazetteer, case-insensitively.
func (r *Resolver) lookupCity(location string) (City, bool) {
	token := strings.ToLower(strings.TrimSpace(strings.SplitN(location, ",", 2)[0]))
	if token == "" {
		return City{}, false
	}
	for _, c := range r.cities {
		if strings.ToLower(c.Name) == token {
			return c, true
		}
	}
	return City{}, false
}

// neighborhoodsFor returns the gazetteer list for a known city, else the
// generic fallback.
func (r *Resolver) neighborhoodsFor(cityName string) []string {
	for _, c := range r.cities {
		if strings.EqualFold(c.Name, cityName) {
			return c.Neighborhoods
		}
	}
	return genericNeighborhoods
}

// defaultPlace keeps the caller's location text as the display name but
// anchors everything else on fixed coordinates.
func defaultPlace(location string) ResolvedPlace {
	city := strings.TrimSpace(strings.SplitN(location, ",", 2)[0])
	if city == "" {
		city = "New York"
	}
	return ResolvedPlace{
		City:          city,
		Coordinates:   defaultCoordinates,
		Neighborhoods: genericNeighborhoods,
	}
}
