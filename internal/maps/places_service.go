// README: Google Places wrapper used to ground itineraries in real attractions.
package maps

import (
	"context"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"
)

// MinRating drops poorly reviewed places from itinerary context.
const MinRating = 4.0

// Place represents a simplified location result.
type Place struct {
	Name             string
	Address          string
	Rating           float32
	PlaceID          string
	UserRatingsTotal int
}

// textSearcher is the subset of *maps.Client used here.
type textSearcher interface {
	TextSearch(ctx context.Context, r *maps.TextSearchRequest) (maps.PlacesSearchResponse, error)
}

// PlacesService handles interactions with Google Places API.
type PlacesService struct {
	client textSearcher
}

// NewPlacesService creates a new PlacesService with the given API Key.
func NewPlacesService(apiKey string) (*PlacesService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesService{client: client}, nil
}

// FindAttractions returns up to limit well-rated tourist attractions for a
// destination such as "Paris, France", in API order.
func (s *PlacesService) FindAttractions(ctx context.Context, destination string, limit int) ([]Place, error) {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return nil, nil
	}

	resp, err := s.client.TextSearch(ctx, &maps.TextSearchRequest{
		Query:    "top tourist attractions in " + destination,
		Type:     maps.PlaceTypeTouristAttraction,
		Language: "en",
	})
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}

	var results []Place
	seen := make(map[string]struct{})
	for _, r := range resp.Results {
		if r.Rating < MinRating {
			continue
		}
		if _, dup := seen[r.PlaceID]; dup {
			continue
		}
		seen[r.PlaceID] = struct{}{}
		results = append(results, Place{
			Name:             r.Name,
			Address:          r.FormattedAddress,
			Rating:           r.Rating,
			PlaceID:          r.PlaceID,
			UserRatingsTotal: r.UserRatingsTotal,
		})
		if limit > 0 && len(results) >= limit {
			break
		}
	}
	return results, nil
}
