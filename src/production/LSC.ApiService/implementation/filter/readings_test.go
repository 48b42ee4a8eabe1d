package filter

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lscmodels "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Models"
)

var t0 = time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)

func sample() []lscmodels.Reading {
	return []lscmodels.Reading{
		{ID: "r1", Time: t0.Add(2 * time.Hour), Temperature: 38.0, Activity: 1.0, Welfare: "Good"},
		{ID: "r2", Time: t0, Temperature: 39.5, Activity: 1.0, Welfare: "Heat stress"},
		{ID: "r3", Time: t0.Add(time.Hour), Temperature: 38.0, Activity: 0.2, Welfare: "good"},
		{ID: "r4", Time: t0.Add(3 * time.Hour), Temperature: 37.1, Activity: 2.4, Welfare: "Moderate"},
	}
}

func readingIDs(readings []lscmodels.Reading) []string {
	out := make([]string, 0, len(readings))
	for _, r := range readings {
		out = append(out, r.ID)
	}
	return out
}

func TestSortReadings_ByTime(t *testing.T) {
	asc := SortReadings(sample(), ReadingCriteria{SortBy: SortByTime, Order: Ascending})
	assert.Equal(t, []string{"r2", "r3", "r1", "r4"}, readingIDs(asc))

	desc := SortReadings(sample(), ReadingCriteria{SortBy: SortByTime, Order: Descending})
	assert.Equal(t, []string{"r4", "r1", "r3", "r2"}, readingIDs(desc))
}

func TestSortReadings_TimeComparesInstantsNotStrings(t *testing.T) {
	// same instant in different zones, and a later instant with a "smaller" wall clock
	later := t0.Add(time.Hour).In(time.FixedZone("W", -10*3600))
	readings := []lscmodels.Reading{{ID: "late", Time: later}, {ID: "early", Time: t0}}
	got := SortReadings(readings, ReadingCriteria{SortBy: SortByTime, Order: Ascending})
	assert.Equal(t, []string{"early", "late"}, readingIDs(got))
}

func TestSortReadings_StableOnTies(t *testing.T) {
	asc := SortReadings(sample(), ReadingCriteria{SortBy: SortByTemperature, Order: Ascending})
	assert.Equal(t, []string{"r4", "r1", "r3", "r2"}, readingIDs(asc))

	desc := SortReadings(sample(), ReadingCriteria{SortBy: SortByTemperature, Order: Descending})
	assert.Equal(t, []string{"r2", "r1", "r3", "r4"}, readingIDs(desc))

	byActivity := SortReadings(sample(), ReadingCriteria{SortBy: SortByActivity, Order: Descending})
	assert.Equal(t, []string{"r4", "r1", "r2", "r3"}, readingIDs(byActivity))
}

func TestSortReadings_DescThenAscReversed(t *testing.T) {
	original := sample()
	desc := SortReadings(original, ReadingCriteria{SortBy: SortByTime, Order: Descending})
	asc := SortReadings(desc, ReadingCriteria{SortBy: SortByTime, Order: Ascending})
	slices.Reverse(asc)
	assert.Equal(t, desc, asc)
}

func TestSortReadings_WelfareFilter(t *testing.T) {
	got := SortReadings(sample(), ReadingCriteria{SortBy: SortByTime, Order: Ascending, Welfare: "GOOD"})
	assert.Equal(t, []string{"r3", "r1"}, readingIDs(got))

	assert.Empty(t, SortReadings(sample(), ReadingCriteria{Welfare: "sick"}))
}

func TestSortReadings_DoesNotMutateInput(t *testing.T) {
	input := sample()
	_ = SortReadings(input, ReadingCriteria{SortBy: SortByTemperature, Order: Ascending})
	assert.Equal(t, sample(), input)
}

func TestParseSortOptions(t *testing.T) {
	key, err := ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, SortByTime, key)

	key, err = ParseSortKey("Temperature")
	require.NoError(t, err)
	assert.Equal(t, SortByTemperature, key)

	_, err = ParseSortKey("humidity")
	assert.Error(t, err)

	order, err := ParseSortOrder("")
	require.NoError(t, err)
	assert.Equal(t, Descending, order)

	order, err = ParseSortOrder("ASC")
	require.NoError(t, err)
	assert.Equal(t, Ascending, order)

	_, err = ParseSortOrder("up")
	assert.Error(t, err)
}
