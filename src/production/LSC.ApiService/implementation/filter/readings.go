package filter

import (
	"cmp"
	"slices"
	"strings"

	lscmodels "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Models"
)

// SortReadings applies the welfare pre-filter and returns a stably sorted copy.
// Readings with equal keys keep their input order in both directions.
func SortReadings(readings []lscmodels.Reading, criteria ReadingCriteria) []lscmodels.Reading {
	welfare := strings.ToLower(strings.TrimSpace(criteria.Welfare))

	out := make([]lscmodels.Reading, 0, len(readings))
	for _, r := range readings {
		if welfare != "" && !strings.Contains(strings.ToLower(r.Welfare), welfare) {
			continue
		}
		out = append(out, r)
	}

	compare := comparator(criteria.SortBy)
	if criteria.Order == Ascending {
		slices.SortStableFunc(out, compare)
	} else {
		slices.SortStableFunc(out, func(a, b lscmodels.Reading) int { return compare(b, a) })
	}
	return out
}

func comparator(key SortKey) func(a, b lscmodels.Reading) int {
	switch key {
	case SortByTemperature:
		return func(a, b lscmodels.Reading) int { return cmp.Compare(a.Temperature, b.Temperature) }
	case SortByActivity:
		return func(a, b lscmodels.Reading) int { return cmp.Compare(a.Activity, b.Activity) }
	default:
		return func(a, b lscmodels.Reading) int { return a.Time.Compare(b.Time) }
	}
}
