package domain

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64
	Lon float64
}

// PropertyType classifies a listing for search filtering.
type PropertyType string

const (
	PropertyAny       PropertyType = "any"
	PropertyApartment PropertyType = "apartment"
	PropertyHouse     PropertyType = "house"
	PropertyUnique    PropertyType = "unique"
	PropertyHotel     PropertyType = "hotel"
)

// ListingRatings holds the per-category review scores, each on a 1.0 to 5.0
// scale with one decimal.
type ListingRatings struct {
	Overall       float64
	Accuracy      float64
	CheckIn       float64
	Cleanliness   float64
	Communication float64
	Location      float64
	Value         float64
	ReviewCount   int
}

// ListingHost describes the host block of a listing.
type ListingHost struct {
	Name         string
	Superhost    bool
	ResponseRate int // percent
}

// Listing is one accommodation listing.
type Listing struct {
	ID            string
	Title         string
	City          string
	Neighborhood  string
	Coordinates   Coordinates
	PropertyType  PropertyType
	Bedrooms      int
	Bathrooms     int
	Beds          int
	MaxGuests     int
	PricePerNight int    // whole currency units per night
	Currency      string // ISO 4217 code, e.g. "USD"
	Nights        int    // stay length the search was priced for, 0 when unknown
	TotalPrice    int    // Nights x PricePerNight, 0 when Nights is 0
	MinNights     int
	InstantBook   bool
	Ratings       ListingRatings
	Host          ListingHost
	Amenities     []string
	ImageURLs     []string
	Description   string
}

// Neighborhood summarizes one area for accommodation discovery.
type Neighborhood struct {
	Name         string
	City         string
	Description  string
	Coordinates  Coordinates
	AvgPrice     int // average nightly price, whole currency units
	ListingCount int
	Highlights   []string
}
