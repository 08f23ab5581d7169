// Package airbnb implements the tool handlers of the accommodation MCP
// server. All listing data is synthetic: search results are generated per
// call, while the fields that identify a listing re-derive from its ID so
// detail lookups stay consistent with earlier search output.
package airbnb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/voyagetools/voyage-mcp/internal/domain"
	"github.com/voyagetools/voyage-mcp/internal/usecase"
)

// Service implements the accommodation tool handlers.
type Service struct {
	resolver *Resolver
	gen      *Generator
	logger   *slog.Logger
}

// NewService creates the accommodation service.
func NewService(resolver *Resolver, gen *Generator, logger *slog.Logger) *Service {
	return &Service{
		resolver: resolver,
		gen:      gen,
		logger:   logger.With("component", "airbnb_service"),
	}
}

// Register adds the accommodation tools to the dispatcher.
func (s *Service) Register(d *usecase.Dispatcher) error {
	regs := []usecase.Registration{
		{Spec: searchListingsSpec, Handler: s.handleSearchListings},
		{Spec: listingDetailsSpec, Handler: s.handleListingDetails},
		{Spec: searchNeighborhoodsSpec, Handler: s.handleSearchNeighborhoods},
	}
	for _, reg := range regs {
		if err := d.Register(reg); err != nil {
			return fmt.Errorf("failed to register accommodation tools: %w", err)
		}
	}
	return nil
}

func (s *Service) handleSearchListings(ctx context.Context, args domain.Args) (string, error) {
	location := args.String("location")
	place := s.resolver.Resolve(ctx, location)

	q := SearchQuery{
		Guests:       args.Int("guests"),
		PropertyType: domain.PropertyType(args.String("property_type")),
		InstantBook:  args.Bool("instant_book"),
		Nights:       stayNights(args.String("check_in"), args.String("check_out")),
	}
	if args.Has("price_min") {
		q.MinPrice = args.Number("price_min")
		q.HasMinPrice = true
	}
	if args.Has("price_max") {
		q.MaxPrice = args.Number("price_max")
		q.HasMaxPrice = true
	}

	listings := s.gen.Listings(place, q)
	s.logger.Info("Listing search complete.",
		slog.String("location", location),
		slog.String("city", place.City),
		slog.Int("results", len(listings)))
	return formatListings(place, q, listings), nil
}

func (s *Service) handleListingDetails(ctx context.Context, args domain.Args) (string, error) {
	id := args.String("listing_id")

	listing := s.gen.Details(id)
	s.logger.Info("Listing details generated.",
		slog.String("listing_id", id),
		slog.String("city", listing.City))
	return formatListingDetails(listing), nil
}

func (s *Service) handleSearchNeighborhoods(ctx context.Context, args domain.Args) (string, error) {
	location := args.String("location")
	limit := args.Int("limit")

	place := s.resolver.Resolve(ctx, location)
	hoods := s.gen.Neighborhoods(place, limit)
	s.logger.Info("Neighborhood search complete.",
		slog.String("location", location),
		slog.String("city", place.City),
		slog.Int("results", len(hoods)))
	return formatNeighborhoods(place, hoods), nil
}

// stayNights returns the whole-night span between two YYYY-MM-DD dates, or 0
// when either date is absent or the range is not positive. Dates arrive
// format-checked; their ordering is deliberately not rejected, a reversed
// range simply prices no stay.
func stayNights(checkIn, checkOut string) int {
	if checkIn == "" || checkOut == "" {
		return 0
	}
	in, err := time.Parse("2006-01-02", checkIn)
	if err != nil {
		return 0
	}
	out, err := time.Parse("2006-01-02", checkOut)
	if err != nil {
		return 0
	}
	nights := int(out.Sub(in).Hours() / 24)
	if nights < 0 {
		return 0
	}
	return nights
}
