package filter

import (
	"fmt"
	"strings"

	api_models "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Models/api"
)

// ActiveFilter restricts devices by liveness
type ActiveFilter int

const (
	ActiveUnset ActiveFilter = iota
	ActiveOnly
	InactiveOnly
)

// ParseActiveFilter accepts "", "all", "true"/"active" and "false"/"inactive"
func ParseActiveFilter(value string) (ActiveFilter, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "all":
		return ActiveUnset, nil
	case "true", "active":
		return ActiveOnly, nil
	case "false", "inactive":
		return InactiveOnly, nil
	default:
		return ActiveUnset, invalid("invalid active filter %q (expected true or false)", value)
	}
}

func (f ActiveFilter) matches(active bool) bool {
	switch f {
	case ActiveOnly:
		return active
	case InactiveOnly:
		return !active
	default:
		return true
	}
}

// SortKey is the reading field used for ordering
type SortKey string

const (
	SortByTime        SortKey = "time"
	SortByTemperature SortKey = "temperature"
	SortByActivity    SortKey = "activity"
)

// ParseSortKey defaults to time
func ParseSortKey(value string) (SortKey, error) {
	switch key := SortKey(strings.ToLower(strings.TrimSpace(value))); key {
	case "":
		return SortByTime, nil
	case SortByTime, SortByTemperature, SortByActivity:
		return key, nil
	default:
		return "", invalid("invalid sort key %q (expected time, temperature or activity)", value)
	}
}

// SortOrder is asc or desc
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// ParseSortOrder defaults to desc, newest first
func ParseSortOrder(value string) (SortOrder, error) {
	switch order := SortOrder(strings.ToLower(strings.TrimSpace(value))); order {
	case "":
		return Descending, nil
	case Ascending, Descending:
		return order, nil
	default:
		return "", invalid("invalid sort order %q (expected asc or desc)", value)
	}
}

func invalid(format string, args ...any) error {
	return api_models.ValidationFailure(fmt.Sprintf(format, args...))
}

// DeviceCriteria is the dashboard search. Both predicates must hold.
type DeviceCriteria struct {
	Search string
	Active ActiveFilter
}

// ReadingCriteria filters readings by welfare substring, then sorts them
type ReadingCriteria struct {
	SortBy  SortKey
	Order   SortOrder
	Welfare string
}
