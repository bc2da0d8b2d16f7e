package venues

import (
	"cmp"
	"slices"

	"github.com/FACorreiaa/go-venues/internal/app/models"
)

// Sort keys accepted by SortVenues.
const (
	SortByDistance = "distance"
	SortByRating   = "rating"
)

// SortVenues orders records in place. Distance sorts nearest first; rating
// sorts highest first with unrated venues last. Unknown keys leave the order
// untouched and report false.
func SortVenues(records []models.VenueRecord, by string) bool {
	switch by {
	case SortByDistance:
		slices.SortStableFunc(records, func(a, b models.VenueRecord) int {
			return cmp.Compare(a.DistanceMeters, b.DistanceMeters)
		})
	case SortByRating:
		slices.SortStableFunc(records, func(a, b models.VenueRecord) int {
			switch {
			case a.Rating == nil && b.Rating == nil:
				return 0
			case a.Rating == nil:
				return 1
			case b.Rating == nil:
				return -1
			}
			return cmp.Compare(*b.Rating, *a.Rating)
		})
	default:
		return false
	}
	return true
}

// Filter narrows a result set for display.
type Filter struct {
	OpenNowOnly bool
	MinRating   *float64
}

// Apply returns the records that pass the filter. The result is never nil.
func (f Filter) Apply(records []models.VenueRecord) []models.VenueRecord {
	out := make([]models.VenueRecord, 0, len(records))
	for _, r := range records {
		if f.OpenNowOnly && !r.IsOpenNow() {
			continue
		}
		if f.MinRating != nil && (r.Rating == nil || *r.Rating < *f.MinRating) {
			continue
		}
		out = append(out, r)
	}
	return out
}
