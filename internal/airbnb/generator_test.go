package airbnb

import (
	"log/slog"
	"math"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagetools/voyage-mcp/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func testPlace() ResolvedPlace {
	return ResolvedPlace{
		City:          "Paris",
		Country:       "France",
		Coordinates:   domain.Coordinates{Lat: 48.8566, Lon: 2.3522},
		Neighborhoods: []string{"Le Marais", "Montmartre", "Belleville"},
	}
}

func TestDeriveListing_Deterministic(t *testing.T) {
	assert := assert.New(t)

	for _, seed := range []int64{1, 42, 48213, 99999} {
		a := deriveListing(seed)
		b := deriveListing(seed)
		assert.Equal(a, b, "seed %d must derive identical listings", seed)
	}
}

func TestDeriveListing_Invariants(t *testing.T) {
	assert := assert.New(t)

	oneDecimal := func(v float64) bool {
		return math.Abs(v*10-math.Round(v*10)) < 1e-9
	}

	for seed := int64(1); seed <= 250; seed++ {
		d := deriveListing(seed)

		assert.GreaterOrEqual(d.Bedrooms, 1)
		assert.LessOrEqual(d.Bedrooms, 4)
		assert.GreaterOrEqual(d.Bathrooms, 1)
		assert.LessOrEqual(d.Bathrooms, 3)
		assert.GreaterOrEqual(d.Beds, d.Bedrooms)
		assert.Equal(d.Bedrooms*2, d.MaxGuests, "capacity is two guests per bedroom")

		assert.GreaterOrEqual(d.PricePerNight, 50)
		assert.LessOrEqual(d.PricePerNight, 499)
		assert.GreaterOrEqual(d.MinNights, 1)
		assert.LessOrEqual(d.MinNights, 7)
		assert.GreaterOrEqual(d.ResponseRate, 80)
		assert.LessOrEqual(d.ResponseRate, 100)

		for _, score := range []float64{
			d.Ratings.Overall,
			d.Ratings.Accuracy,
			d.Ratings.CheckIn,
			d.Ratings.Cleanliness,
			d.Ratings.Communication,
			d.Ratings.Location,
			d.Ratings.Value,
		} {
			assert.GreaterOrEqual(score, 1.0)
			assert.LessOrEqual(score, 5.0)
			assert.True(oneDecimal(score), "score %v must have one decimal", score)
		}
		assert.GreaterOrEqual(d.Ratings.ReviewCount, 5)

		assert.Contains(propertyTypes, d.PropertyType)
		assert.NotEmpty(d.Title)
	}
}

func TestParseListingSeed(t *testing.T) {
	tests := []struct {
		id   string
		want int64
	}{
		{"listing_48213_2", 48213},
		{"listing_7_0", 7},
		{"listing_00042_1", 42},
		{"listing_abc", 1},
		{"listing_abc_3", 1},
		{"listing", 1},
		{"", 1},
		{"anything_99", 99},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, parseListingSeed(tt.id))
		})
	}
}

func TestGenerator_Listings(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	cities, err := LoadGazetteer()
	require.NoError(err)
	g := NewGenerator(cities, testLogger())
	place := testPlace()

	t.Run("unfiltered search returns the whole batch", func(t *testing.T) {
		listings := g.Listings(place, SearchQuery{Guests: 1, PropertyType: domain.PropertyAny})

		assert.GreaterOrEqual(len(listings), 5)
		assert.LessOrEqual(len(listings), 12)

		seen := make(map[string]bool)
		for _, l := range listings {
			assert.False(seen[l.ID], "listing IDs must be unique within a response")
			seen[l.ID] = true

			assert.Equal("Paris", l.City)
			assert.Contains(place.Neighborhoods, l.Neighborhood)
			assert.Equal(deriveListing(parseListingSeed(l.ID)).PricePerNight, l.PricePerNight,
				"price must re-derive from the ID seed")
			assert.Equal("USD", l.Currency)
			assert.GreaterOrEqual(len(l.Amenities), 6)
			assert.LessOrEqual(len(l.Amenities), 13)
			assert.Zero(l.Nights)
			assert.Zero(l.TotalPrice)
		}
	})

	t.Run("stay dates price the whole stay", func(t *testing.T) {
		listings := g.Listings(place, SearchQuery{Guests: 1, PropertyType: domain.PropertyAny, Nights: 3})

		require.NotEmpty(listings)
		for _, l := range listings {
			assert.Equal(3, l.Nights)
			assert.Equal(l.PricePerNight*3, l.TotalPrice)
		}
	})

	t.Run("filters drop non-matching candidates", func(t *testing.T) {
		listings := g.Listings(place, SearchQuery{
			Guests:       2,
			PropertyType: domain.PropertyApartment,
			MinPrice:     100,
			HasMinPrice:  true,
			MaxPrice:     300,
			HasMaxPrice:  true,
			InstantBook:  true,
		})

		for _, l := range listings {
			assert.Equal(domain.PropertyApartment, l.PropertyType)
			assert.GreaterOrEqual(l.MaxGuests, 2)
			assert.GreaterOrEqual(l.PricePerNight, 100)
			assert.LessOrEqual(l.PricePerNight, 300)
			assert.True(l.InstantBook)
		}
	})

	t.Run("impossible capacity yields zero results", func(t *testing.T) {
		listings := g.Listings(place, SearchQuery{Guests: 16, PropertyType: domain.PropertyAny})
		assert.Empty(listings)
	})
}

func TestGenerator_Details(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	cities, err := LoadGazetteer()
	require.NoError(err)
	g := NewGenerator(cities, testLogger())

	t.Run("derived fields are stable across lookups", func(t *testing.T) {
		a := g.Details("listing_48213_2")
		b := g.Details("listing_48213_2")

		assert.Equal(a.ID, b.ID)
		assert.Equal(a.Title, b.Title)
		assert.Equal(a.City, b.City)
		assert.Equal(a.PropertyType, b.PropertyType)
		assert.Equal(a.Bedrooms, b.Bedrooms)
		assert.Equal(a.Bathrooms, b.Bathrooms)
		assert.Equal(a.Beds, b.Beds)
		assert.Equal(a.MaxGuests, b.MaxGuests)
		assert.Equal(a.PricePerNight, b.PricePerNight)
		assert.Equal(a.MinNights, b.MinNights)
		assert.Equal(a.InstantBook, b.InstantBook)
		assert.Equal(a.Ratings, b.Ratings)
		assert.Equal(a.Host.Superhost, b.Host.Superhost)
		assert.Equal(a.Host.ResponseRate, b.Host.ResponseRate)
	})

	t.Run("malformed IDs fall back to the default seed", func(t *testing.T) {
		malformed := g.Details("not-a-real-id")
		reference := g.Details("listing_1_0")

		assert.Equal(reference.PricePerNight, malformed.PricePerNight)
		assert.Equal(reference.Bedrooms, malformed.Bedrooms)
		assert.Equal(reference.Ratings, malformed.Ratings)
		assert.Equal(reference.City, malformed.City)
	})

	t.Run("details carry a description and photos", func(t *testing.T) {
		l := g.Details("listing_555_0")

		assert.Equal("USD", l.Currency)
		assert.NotEmpty(l.Description)
		assert.Contains(l.Description, l.Neighborhood)
		assert.GreaterOrEqual(len(l.ImageURLs), 3)
		assert.LessOrEqual(len(l.ImageURLs), 7)
		for _, u := range l.ImageURLs {
			assert.Contains(u, "listing_555_0")
		}
	})
}

func TestGenerator_Neighborhoods(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	g := NewGenerator(nil, testLogger())
	place := testPlace()

	hoods := g.Neighborhoods(place, 2)
	require.Len(hoods, 2)
	assert.Equal("Le Marais", hoods[0].Name)
	assert.Equal("Montmartre", hoods[1].Name)

	for _, n := range hoods {
		assert.Equal("Paris", n.City)
		assert.NotEmpty(n.Description)
		assert.GreaterOrEqual(n.AvgPrice, 80)
		assert.LessOrEqual(n.AvgPrice, 299)
		assert.GreaterOrEqual(n.ListingCount, 120)
		assert.Len(n.Highlights, 3)
		assert.InDelta(place.Coordinates.Lat, n.Coordinates.Lat, 0.021)
		assert.InDelta(place.Coordinates.Lon, n.Coordinates.Lon, 0.021)
	}

	// Limit clamps to the available names.
	hoods = g.Neighborhoods(place, 20)
	assert.Len(hoods, 3)
}

func TestMatches(t *testing.T) {
	base := domain.Listing{
		MaxGuests:     4,
		PricePerNight: 150,
		PropertyType:  domain.PropertyApartment,
		InstantBook:   false,
	}

	tests := []struct {
		name  string
		query SearchQuery
		want  bool
	}{
		{"no filters", SearchQuery{Guests: 2}, true},
		{"capacity too small", SearchQuery{Guests: 5}, false},
		{"price below minimum", SearchQuery{Guests: 2, MinPrice: 200, HasMinPrice: true}, false},
		{"price above maximum", SearchQuery{Guests: 2, MaxPrice: 100, HasMaxPrice: true}, false},
		{"price inside window", SearchQuery{Guests: 2, MinPrice: 100, HasMinPrice: true, MaxPrice: 200, HasMaxPrice: true}, true},
		{"any property type matches", SearchQuery{Guests: 2, PropertyType: domain.PropertyAny}, true},
		{"matching property type", SearchQuery{Guests: 2, PropertyType: domain.PropertyApartment}, true},
		{"mismatched property type", SearchQuery{Guests: 2, PropertyType: domain.PropertyHouse}, false},
		{"instant book required but unavailable", SearchQuery{Guests: 2, InstantBook: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matches(base, tt.query))
		})
	}
}
