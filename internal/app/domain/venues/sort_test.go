package venues

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FACorreiaa/go-venues/internal/app/models"
)

func ids(records []models.VenueRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestSortVenues(t *testing.T) {
	t.Run("by distance", func(t *testing.T) {
		records := sampleRecords()
		assert.True(t, SortVenues(records, SortByDistance))
		assert.Equal(t, []string{"near", "mid", "far"}, ids(records))
	})

	t.Run("by rating puts unrated last", func(t *testing.T) {
		records := append(sampleRecords(), models.VenueRecord{ID: "zero", Rating: ptr(0.0)})
		assert.True(t, SortVenues(records, SortByRating))
		assert.Equal(t, []string{"mid", "far", "zero", "near"}, ids(records))
	})

	t.Run("unknown key leaves order", func(t *testing.T) {
		records := sampleRecords()
		assert.False(t, SortVenues(records, "name"))
		assert.Equal(t, []string{"far", "near", "mid"}, ids(records))
	})
}

func TestFilterApply(t *testing.T) {
	assert.Equal(t, []string{"far", "near", "mid"}, ids(Filter{}.Apply(sampleRecords())))
	assert.Equal(t, []string{"far"}, ids(Filter{OpenNowOnly: true}.Apply(sampleRecords())))
	assert.Equal(t, []string{"far", "mid"}, ids(Filter{MinRating: ptr(3.5)}.Apply(sampleRecords())))

	out := Filter{MinRating: ptr(5.0)}.Apply(sampleRecords())
	assert.NotNil(t, out)
	assert.Empty(t, out)
}
