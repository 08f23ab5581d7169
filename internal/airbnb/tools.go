package airbnb

import "github.com/voyagetools/voyage-mcp/internal/domain"

var searchListingsSpec = domain.ToolSpec{
	Name:        "search_airbnb_listings",
	Description: "Search for accommodation listings in a location, with optional stay dates and filters.",
	Fields: []domain.FieldSpec{
		{
			Name:        "location",
			Type:        domain.FieldTypeString,
			Description: "City or area to search in, e.g. 'Paris' or 'Brooklyn, New York'",
			Required:    true,
		},
		{
			Name:        "check_in",
			Type:        domain.FieldTypeString,
			Description: "Check-in date (YYYY-MM-DD)",
			Format:      domain.FormatDate,
		},
		{
			Name:        "check_out",
			Type:        domain.FieldTypeString,
			Description: "Check-out date (YYYY-MM-DD)",
			Format:      domain.FormatDate,
		},
		{
			Name:        "guests",
			Type:        domain.FieldTypeNumber,
			Description: "Number of guests (1-16)",
			Integer:     true,
			Min:         domain.Bound(1),
			Max:         domain.Bound(16),
			Default:     2,
		},
		{
			Name:        "price_min",
			Type:        domain.FieldTypeNumber,
			Description: "Minimum nightly price in USD",
			Min:         domain.Bound(0),
		},
		{
			Name:        "price_max",
			Type:        domain.FieldTypeNumber,
			Description: "Maximum nightly price in USD",
			Min:         domain.Bound(0),
		},
		{
			Name:        "property_type",
			Type:        domain.FieldTypeString,
			Description: "Property type filter",
			Enum:        []string{"any", "apartment", "house", "unique", "hotel"},
			Default:     "any",
		},
		{
			Name:        "instant_book",
			Type:        domain.FieldTypeBoolean,
			Description: "Only show listings that can be booked instantly",
			Default:     false,
		},
	},
}

var listingDetailsSpec = domain.ToolSpec{
	Name:        "get_listing_details",
	Description: "Get the full details of a listing by its ID, including ratings, amenities and host information.",
	Fields: []domain.FieldSpec{
		{
			Name:        "listing_id",
			Type:        domain.FieldTypeString,
			Description: "Listing ID as returned by search_airbnb_listings, e.g. 'listing_48213_2'",
			Required:    true,
		},
	},
}

var searchNeighborhoodsSpec = domain.ToolSpec{
	Name:        "search_neighborhoods",
	Description: "Discover neighborhoods worth staying in for a location, with typical prices and highlights.",
	Fields: []domain.FieldSpec{
		{
			Name:        "location",
			Type:        domain.FieldTypeString,
			Description: "City to look up neighborhoods for, e.g. 'Berlin'",
			Required:    true,
		},
		{
			Name:        "limit",
			Type:        domain.FieldTypeNumber,
			Description: "Maximum number of neighborhoods (1-20)",
			Integer:     true,
			Min:         domain.Bound(1),
			Max:         domain.Bound(20),
			Default:     10,
		},
	},
}
