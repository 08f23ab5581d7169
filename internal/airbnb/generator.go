package airbnb

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strconv"
	"strings"

	"github.com/voyagetools/voyage-mcp/internal/domain"
)

// defaultCurrency is the pricing currency of every synthetic listing.
const defaultCurrency = "USD"

// Vocabularies for synthetic listings.
var (
	propertyTypes = []domain.PropertyType{
		domain.PropertyApartment,
		domain.PropertyHouse,
		domain.PropertyUnique,
		domain.PropertyHotel,
	}

	titleAdjectives = []string{
		"Cozy", "Sunny", "Modern", "Charming", "Spacious",
		"Stylish", "Quiet", "Bright", "Rustic", "Elegant",
	}

	titleNouns = map[domain.PropertyType][]string{
		domain.PropertyApartment: {"Apartment", "Loft", "Studio", "Flat"},
		domain.PropertyHouse:     {"House", "Cottage", "Villa", "Townhouse"},
		domain.PropertyUnique:    {"Treehouse", "Houseboat", "Tiny House", "Cabin", "Dome"},
		domain.PropertyHotel:     {"Hotel Suite", "Boutique Room", "Guest Suite", "Aparthotel"},
	}

	amenityPool = []string{
		"WiFi", "Kitchen", "Washer", "Dryer", "Air conditioning",
		"Heating", "Dedicated workspace", "TV", "Hair dryer", "Iron",
		"Pool", "Hot tub", "Free parking", "EV charger", "Crib",
		"Gym", "BBQ grill", "Breakfast", "Smoke alarm", "First aid kit",
	}

	hostNames = []string{
		"Sofia", "Liam", "Emma", "Noah", "Olivia", "Lucas", "Mia", "Hugo",
		"Ava", "Mateo", "Inès", "Leo", "Clara", "Daniel", "Yuki", "Marco",
	}

	highlightPool = []string{
		"nightlife", "local food scene", "walkable streets", "street art",
		"independent cafes", "riverside walks", "vintage shopping",
		"live music", "family friendly", "historic architecture",
		"markets", "parks and green space",
	}
)

// derivedListing holds every field that must be reproducible from a listing
// seed alone, so that a search result and a later detail lookup agree.
type derivedListing struct {
	PropertyType  domain.PropertyType
	Title         string
	Bedrooms      int
	Bathrooms     int
	Beds          int
	MaxGuests     int
	PricePerNight int
	MinNights     int
	InstantBook   bool
	Superhost     bool
	ResponseRate  int
	Ratings       domain.ListingRatings
}

// deriveListing expands a seed into the stable part of a listing. The draw
// order is part of the contract: changing it changes every derived record,
// so new draws must only be appended.
func deriveListing(seed int64) derivedListing {
	rng := rand.New(rand.NewSource(seed))

	d := derivedListing{}
	d.PropertyType = propertyTypes[rng.Intn(len(propertyTypes))]
	d.Bedrooms = 1 + rng.Intn(4)
	d.Bathrooms = 1 + rng.Intn(3)
	d.Beds = d.Bedrooms + rng.Intn(3)
	d.MaxGuests = d.Bedrooms * 2
	d.PricePerNight = 50 + rng.Intn(450)
	d.MinNights = 1 + rng.Intn(7)
	d.InstantBook = rng.Intn(2) == 0
	d.Superhost = rng.Intn(4) == 0
	d.ResponseRate = 80 + rng.Intn(21)
	d.Ratings = deriveRatings(rng)

	nouns := titleNouns[d.PropertyType]
	d.Title = titleAdjectives[rng.Intn(len(titleAdjectives))] + " " + nouns[rng.Intn(len(nouns))]
	return d
}

// deriveRatings draws the per-category scores. Generated scores sit in the
// 4.0 to 5.0 band marketplaces skew towards; one decimal each.
func deriveRatings(rng *rand.Rand) domain.ListingRatings {
	score := func() float64 { return math.Round((4.0+rng.Float64())*10) / 10 }

	r := domain.ListingRatings{
		Accuracy:      score(),
		CheckIn:       score(),
		Cleanliness:   score(),
		Communication: score(),
		Location:      score(),
		Value:         score(),
		ReviewCount:   5 + rng.Intn(500),
	}
	sum := r.Accuracy + r.CheckIn + r.Cleanliness + r.Communication + r.Location + r.Value
	r.Overall = math.Round(sum/6*10) / 10
	return r
}

// parseListingSeed extracts the numeric segment of IDs shaped like
// "listing_48213_2". IDs without a parseable segment fall back to seed 1 so
// any lookup still produces a stable record.
func parseListingSeed(id string) int64 {
	parts := strings.Split(id, "_")
	if len(parts) < 2 {
		return 1
	}
	seed, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 1
	}
	return seed
}

// SearchQuery carries the filters of one listing search.
type SearchQuery struct {
	Guests       int
	MinPrice     float64
	MaxPrice     float64
	HasMinPrice  bool
	HasMaxPrice  bool
	PropertyType domain.PropertyType
	InstantBook  bool // require instant booking
	Nights       int  // stay length, 0 when dates are absent or unusable
}

// Generator produces synthetic listings and neighborhood summaries. Seeded
// fields come from each listing's own PRNG; ambient fields (amenities, host,
// photos, exact coordinates) draw from the shared global source.
type Generator struct {
	cities []City
	logger *slog.Logger
}

// NewGenerator creates a Generator over the gazetteer.
func NewGenerator(cities []City, logger *slog.Logger) *Generator {
	return &Generator{
		cities: cities,
		logger: logger.With("component", "listing_generator"),
	}
}

// Listings generates a candidate batch for the place and filters it.
// Candidates failing a filter are dropped, never replaced, so result counts
// vary between calls and can legitimately reach zero.
func (g *Generator) Listings(place ResolvedPlace, q SearchQuery) []domain.Listing {
	count := 5 + rand.Intn(8)
	out := make([]domain.Listing, 0, count)

	for i := 0; i < count; i++ {
		seed := int64(10000 + rand.Intn(90000))
		id := fmt.Sprintf("listing_%d_%d", seed, i)

		l := g.build(id, seed, place)
		if q.Nights > 0 {
			l.Nights = q.Nights
			l.TotalPrice = l.PricePerNight * q.Nights
		}
		if !matches(l, q) {
			continue
		}
		out = append(out, l)
	}

	g.logger.Debug("Generated listing batch.",
		slog.Int("candidates", count),
		slog.Int("matches", len(out)))
	return out
}

// Details rebuilds the listing for an ID. Seed-derived fields reproduce the
// values any search that returned this ID showed; ambient fields re-draw on
// every call.
func (g *Generator) Details(id string) domain.Listing {
	seed := parseListingSeed(id)
	place := g.placeForSeed(seed)

	l := g.build(id, seed, place)
	l.Description = describeListing(l)
	return l
}

// Neighborhoods summarizes up to limit areas of the place, in gazetteer
// order.
func (g *Generator) Neighborhoods(place ResolvedPlace, limit int) []domain.Neighborhood {
	names := place.Neighborhoods
	if limit > len(names) {
		limit = len(names)
	}

	out := make([]domain.Neighborhood, 0, limit)
	for _, name := range names[:limit] {
		out = append(out, domain.Neighborhood{
			Name:         name,
			City:         place.City,
			Description:  fmt.Sprintf("%s is one of the most searched areas to stay in %s.", name, place.City),
			Coordinates:  jitter(place.Coordinates, 0.02),
			AvgPrice:     80 + rand.Intn(220),
			ListingCount: 120 + rand.Intn(1000),
			Highlights:   drawSubset(highlightPool, 3, 3),
		})
	}
	return out
}

// build assembles one listing: derived fields from the seed, ambient fields
// from the global source.
func (g *Generator) build(id string, seed int64, place ResolvedPlace) domain.Listing {
	d := deriveListing(seed)

	neighborhoods := place.Neighborhoods
	if len(neighborhoods) == 0 {
		neighborhoods = genericNeighborhoods
	}

	return domain.Listing{
		ID:            id,
		Title:         d.Title,
		City:          place.City,
		Neighborhood:  neighborhoods[rand.Intn(len(neighborhoods))],
		Coordinates:   jitter(place.Coordinates, 0.05),
		PropertyType:  d.PropertyType,
		Bedrooms:      d.Bedrooms,
		Bathrooms:     d.Bathrooms,
		Beds:          d.Beds,
		MaxGuests:     d.MaxGuests,
		PricePerNight: d.PricePerNight,
		Currency:      defaultCurrency,
		MinNights:     d.MinNights,
		InstantBook:   d.InstantBook,
		Ratings:       d.Ratings,
		Host: domain.ListingHost{
			Name:         hostNames[rand.Intn(len(hostNames))],
			Superhost:    d.Superhost,
			ResponseRate: d.ResponseRate,
		},
		Amenities: drawSubset(amenityPool, 6, 13),
		ImageURLs: imageURLs(id),
	}
}

// placeForSeed picks a stable gazetteer city for a detail lookup, so the
// same listing ID always reports the same city.
func (g *Generator) placeForSeed(seed int64) ResolvedPlace {
	if len(g.cities) == 0 {
		return defaultPlace("")
	}
	idx := int(seed % int64(len(g.cities)))
	if idx < 0 {
		idx += len(g.cities)
	}
	c := g.cities[idx]
	return ResolvedPlace{
		City:          c.Name,
		Country:       c.Country,
		Coordinates:   domain.Coordinates{Lat: c.Lat, Lon: c.Lon},
		Neighborhoods: c.Neighborhoods,
	}
}

// matches applies the search filters to one candidate.
func matches(l domain.Listing, q SearchQuery) bool {
	if l.MaxGuests < q.Guests {
		return false
	}
	price := float64(l.PricePerNight)
	if q.HasMinPrice && price < q.MinPrice {
		return false
	}
	if q.HasMaxPrice && price > q.MaxPrice {
		return false
	}
	if q.PropertyType != "" && q.PropertyType != domain.PropertyAny && l.PropertyType != q.PropertyType {
		return false
	}
	if q.InstantBook && !l.InstantBook {
		return false
	}
	return true
}

// drawSubset picks between lo and hi entries from pool, preserving pool
// order.
func drawSubset(pool []string, lo, hi int) []string {
	n := lo
	if hi > lo {
		n += rand.Intn(hi - lo + 1)
	}
	if n > len(pool) {
		n = len(pool)
	}

	picked := rand.Perm(len(pool))[:n]
	members := make(map[int]bool, n)
	for _, i := range picked {
		members[i] = true
	}

	out := make([]string, 0, n)
	for i, v := range pool {
		if members[i] {
			out = append(out, v)
		}
	}
	return out
}

// jitter displaces a point by up to +/- d degrees on each axis.
func jitter(c domain.Coordinates, d float64) domain.Coordinates {
	return domain.Coordinates{
		Lat: c.Lat + (rand.Float64()*2-1)*d,
		Lon: c.Lon + (rand.Float64()*2-1)*d,
	}
}

// imageURLs builds 3 to 7 stable-looking placeholder photo links.
func imageURLs(id string) []string {
	n := 3 + rand.Intn(5)
	urls := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		urls = append(urls, fmt.Sprintf("https://picsum.photos/seed/%s-%d/800/600", id, i))
	}
	return urls
}

// describeListing assembles the long-form description of a detail view.
func describeListing(l domain.Listing) string {
	var b strings.Builder
	fmt.Fprintf(&b, "This %s in %s sleeps up to %d guests across %d bedroom(s) with %d bed(s) and %d bathroom(s). ",
		l.PropertyType, l.Neighborhood, l.MaxGuests, l.Bedrooms, l.Beds, l.Bathrooms)
	fmt.Fprintf(&b, "Guests rate it %.1f overall across %d reviews. ", l.Ratings.Overall, l.Ratings.ReviewCount)
	fmt.Fprintf(&b, "Minimum stay is %d night(s).", l.MinNights)
	return b.String()
}
