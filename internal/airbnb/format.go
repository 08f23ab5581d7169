package airbnb

import (
	"fmt"
	"strings"

	"github.com/voyagetools/voyage-mcp/internal/domain"
)

func formatListings(place ResolvedPlace, q SearchQuery, listings []domain.Listing) string {
	if len(listings) == 0 {
		return fmt.Sprintf("No listings found in %s matching your filters. Try adjusting the dates, guest count or price range.", place.City)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d place(s) to stay in %s:", len(listings), place.City)
	for i, l := range listings {
		fmt.Fprintf(&b, "\n\n%d. %s in %s\n", i+1, l.Title, l.Neighborhood)
		fmt.Fprintf(&b, "   ID: %s\n", l.ID)
		fmt.Fprintf(&b, "   Type: %s | %d bedroom(s) | %d bathroom(s) | sleeps %d\n",
			l.PropertyType, l.Bedrooms, l.Bathrooms, l.MaxGuests)
		sym := currencySymbol(l.Currency)
		if l.Nights > 0 {
			fmt.Fprintf(&b, "   Price: %s%d/night (%s%d total for %d night(s))\n", sym, l.PricePerNight, sym, l.TotalPrice, l.Nights)
		} else {
			fmt.Fprintf(&b, "   Price: %s%d/night\n", sym, l.PricePerNight)
		}
		fmt.Fprintf(&b, "   Rating: %.1f (%d reviews)", l.Ratings.Overall, l.Ratings.ReviewCount)
		if flags := listingFlags(l); flags != "" {
			fmt.Fprintf(&b, "\n   %s", flags)
		}
	}
	return b.String()
}

func listingFlags(l domain.Listing) string {
	var flags []string
	if l.Host.Superhost {
		flags = append(flags, "Superhost")
	}
	if l.InstantBook {
		flags = append(flags, "Instant Book")
	}
	return strings.Join(flags, " | ")
}

func formatListingDetails(l domain.Listing) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s in %s, %s\n", l.Title, l.Neighborhood, l.City)
	fmt.Fprintf(&b, "ID: %s\n", l.ID)
	fmt.Fprintf(&b, "Property type: %s\n", l.PropertyType)
	fmt.Fprintf(&b, "Sleeps %d | %d bedroom(s) | %d bed(s) | %d bathroom(s)\n",
		l.MaxGuests, l.Bedrooms, l.Beds, l.Bathrooms)
	fmt.Fprintf(&b, "Price: %s%d per night\n", currencySymbol(l.Currency), l.PricePerNight)
	fmt.Fprintf(&b, "Minimum stay: %d night(s)\n", l.MinNights)
	if l.InstantBook {
		b.WriteString("Instant Book: available\n")
	} else {
		b.WriteString("Instant Book: not available\n")
	}

	fmt.Fprintf(&b, "\nRating: %.1f overall (%d reviews)\n", l.Ratings.Overall, l.Ratings.ReviewCount)
	fmt.Fprintf(&b, "  Accuracy: %.1f\n", l.Ratings.Accuracy)
	fmt.Fprintf(&b, "  Check-in: %.1f\n", l.Ratings.CheckIn)
	fmt.Fprintf(&b, "  Cleanliness: %.1f\n", l.Ratings.Cleanliness)
	fmt.Fprintf(&b, "  Communication: %.1f\n", l.Ratings.Communication)
	fmt.Fprintf(&b, "  Location: %.1f\n", l.Ratings.Location)
	fmt.Fprintf(&b, "  Value: %.1f\n", l.Ratings.Value)

	fmt.Fprintf(&b, "\nHost: %s", l.Host.Name)
	if l.Host.Superhost {
		b.WriteString(" (Superhost)")
	}
	fmt.Fprintf(&b, "\nResponse rate: %d%%\n", l.Host.ResponseRate)

	fmt.Fprintf(&b, "\nAmenities: %s\n", strings.Join(l.Amenities, ", "))

	fmt.Fprintf(&b, "\nPhotos (%d):\n", len(l.ImageURLs))
	for _, u := range l.ImageURLs {
		fmt.Fprintf(&b, "  %s\n", u)
	}

	fmt.Fprintf(&b, "\nAbout this space:\n%s", l.Description)
	return b.String()
}

// currencySymbol returns the display prefix for a price in the given
// currency. Listings price in USD today; unknown codes render as "<code> ".
func currencySymbol(code string) string {
	if code == "" || code == "USD" {
		return "$"
	}
	return code + " "
}

func formatNeighborhoods(place ResolvedPlace, hoods []domain.Neighborhood) string {
	if len(hoods) == 0 {
		return fmt.Sprintf("No neighborhood data available for %s.", place.City)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Top %d neighborhood(s) in %s:", len(hoods), place.City)
	for i, n := range hoods {
		fmt.Fprintf(&b, "\n\n%d. %s\n", i+1, n.Name)
		fmt.Fprintf(&b, "   %s\n", n.Description)
		fmt.Fprintf(&b, "   Average price: $%d/night across ~%d listings\n", n.AvgPrice, n.ListingCount)
		fmt.Fprintf(&b, "   Known for: %s\n", strings.Join(n.Highlights, ", "))
		fmt.Fprintf(&b, "   Coordinates: %.4f, %.4f", n.Coordinates.Lat, n.Coordinates.Lon)
	}
	return b.String()
}
