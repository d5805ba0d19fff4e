package resolver

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"shootscout/models"
)

// SortBy selects the ranking comparator.
type SortBy string

const (
	SortByDistance     SortBy = "distance"
	SortByAvailability SortBy = "availability"
	SortByName         SortBy = "name"
)

// RankOptions control filtering and ordering of a resolved photographer list.
type RankOptions struct {
	Query        string
	SortBy       SortBy
	ShowAll      bool
	TimeSelected bool // a shoot time was chosen, so availability outranks distance
}

// Rank filters and orders an enriched photographer list. Comparators are total:
// name is the universal final tie-break, so equal-key photographers keep a
// deterministic order across repeated calls.
func Rank(list []models.Photographer, avail models.AvailabilityMap, opts RankOptions) []models.Photographer {
	out := make([]models.Photographer, 0, len(list))

	query := strings.ToLower(strings.TrimSpace(opts.Query))
	haveAvailability := len(avail) > 0

	for _, p := range list {
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		if !opts.ShowAll && haveAvailability && !isAvailable(p, avail) {
			continue
		}
		out = append(out, p)
	}

	coll := collate.New(language.English, collate.IgnoreCase)
	byName := func(a, b models.Photographer) int {
		return coll.CompareString(a.Name, b.Name)
	}

	var less func(a, b models.Photographer) bool
	switch opts.SortBy {
	case SortByAvailability:
		less = func(a, b models.Photographer) bool {
			if aAvail, bAvail := isAvailable(a, avail), isAvailable(b, avail); aAvail != bAvail {
				return aAvail
			}
			if c := compareDistance(a.Distance, b.Distance); c != 0 {
				return c < 0
			}
			return byName(a, b) < 0
		}
	case SortByName:
		less = func(a, b models.Photographer) bool {
			return byName(a, b) < 0
		}
	default: // distance
		less = func(a, b models.Photographer) bool {
			if opts.TimeSelected {
				if aAvail, bAvail := isAvailable(a, avail), isAvailable(b, avail); aAvail != bAvail {
					return aAvail
				}
			}
			if c := compareDistance(a.Distance, b.Distance); c != 0 {
				return c < 0
			}
			return byName(a, b) < 0
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// matchesQuery does a case-insensitive substring match against name, city, and state.
func matchesQuery(p models.Photographer, query string) bool {
	for _, field := range []string{p.Name, p.Origin.City, p.Origin.State} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// isAvailable prefers the merger's availability map, then the per-time flag, then
// the presence of net open slots.
func isAvailable(p models.Photographer, avail models.AvailabilityMap) bool {
	if info, ok := avail.Get(p.ID); ok {
		if p.IsAvailableAtTime != nil {
			return info.IsAvailable && *p.IsAvailableAtTime
		}
		return info.IsAvailable
	}
	if p.IsAvailableAtTime != nil {
		return *p.IsAvailableAtTime
	}
	return len(p.NetAvailableSlots) > 0
}

// compareDistance orders ascending with unknown distances last.
func compareDistance(a, b *float64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	default:
		return 0
	}
}
