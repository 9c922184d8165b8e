package geo

import (
	"strings"

	"github.com/FACorreiaa/loci-itinerary/internal/app/models"
)

// minFragmentLen keeps very short inputs ("a", "la") from matching a long
// city name by accident.
const minFragmentLen = 3

// Matcher is one stage of name resolution.
type Matcher func(name string) (models.Location, bool)

// Resolver turns free-text city names into coordinates using a lookup table
// and an ordered chain of matchers.
type Resolver struct {
	entries  []models.Location
	index    map[string]int
	matchers []Matcher
}

// NewResolver builds a resolver over the given table. A nil table uses the
// built-in city list.
func NewResolver(table []models.Location) *Resolver {
	if table == nil {
		table = defaultCities
	}
	r := &Resolver{
		entries: table,
		index:   make(map[string]int, len(table)),
	}
	for i, loc := range table {
		key := normalize(loc.Name)
		if _, dup := r.index[key]; !dup {
			r.index[key] = i
		}
	}
	r.matchers = []Matcher{r.MatchExact, r.MatchSubstring, r.MatchCommaStripped}
	return r
}

// Resolve runs the matchers in order and returns the first hit. An unknown
// name is an error, never a zero coordinate.
func (r *Resolver) Resolve(name string) (models.Location, error) {
	if strings.TrimSpace(name) == "" {
		return models.Location{}, &models.LocationError{Name: name}
	}
	for _, m := range r.matchers {
		if loc, ok := m(name); ok {
			return loc, nil
		}
	}
	return models.Location{}, &models.LocationError{Name: name}
}

// MatchExact is a dictionary lookup on the trimmed, lower-cased name.
func (r *Resolver) MatchExact(name string) (models.Location, bool) {
	i, ok := r.index[normalize(name)]
	if !ok {
		return models.Location{}, false
	}
	return r.entries[i], true
}

// MatchSubstring matches in either direction, case-insensitively. A table
// name found inside the input wins over the input found inside a table
// name; among those the longest table name wins, so "Venice, Italy" does
// not resolve to "Nice".
func (r *Resolver) MatchSubstring(name string) (models.Location, bool) {
	query := normalize(name)
	if query == "" {
		return models.Location{}, false
	}

	best := -1
	for i, loc := range r.entries {
		key := normalize(loc.Name)
		if strings.Contains(query, key) && (best == -1 || len(key) > len(normalize(r.entries[best].Name))) {
			best = i
		}
	}
	if best >= 0 {
		return r.entries[best], true
	}

	if len(query) < minFragmentLen {
		return models.Location{}, false
	}
	for _, loc := range r.entries {
		if strings.Contains(normalize(loc.Name), query) {
			return loc, true
		}
	}
	return models.Location{}, false
}

// MatchCommaStripped drops everything from the first comma, so
// "City, Country" and "City" resolve alike.
func (r *Resolver) MatchCommaStripped(name string) (models.Location, bool) {
	i := strings.Index(name, ",")
	if i < 0 {
		return models.Location{}, false
	}
	stripped := strings.TrimSpace(name[:i])
	if stripped == "" {
		return models.Location{}, false
	}
	if loc, ok := r.MatchExact(stripped); ok {
		return loc, true
	}
	return r.MatchSubstring(stripped)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
