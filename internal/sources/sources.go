// Package sources holds the static region-to-feed registry and the country
// tables used for filtered briefings.
package sources

import (
	"strings"

	"github.com/TobiSchelling/worldnews/internal/feed"
)

// Region is one registry entry: a region identifier and its ordered sources.
type Region struct {
	ID      string
	Sources []feed.Source
}

// Registry maps region identifiers to their ordered feed sources.
type Registry struct {
	regions map[string][]feed.Source
	order   []string
}

// NewRegistry builds a registry preserving the given region order.
func NewRegistry(regions []Region) *Registry {
	r := &Registry{regions: make(map[string][]feed.Source, len(regions))}
	for _, region := range regions {
		if _, exists := r.regions[region.ID]; exists {
			continue
		}
		r.regions[region.ID] = region.Sources
		r.order = append(r.order, region.ID)
	}
	return r
}

// Lookup returns the sources for a region.
func (r *Registry) Lookup(id string) ([]feed.Source, bool) {
	srcs, ok := r.regions[strings.ToLower(id)]
	return srcs, ok
}

// Has reports whether the region is known.
func (r *Registry) Has(id string) bool {
	_, ok := r.regions[strings.ToLower(id)]
	return ok
}

// IDs returns the region identifiers in registry order.
func (r *Registry) IDs() []string {
	return r.order
}

// SourceNames returns the display names of a region's sources.
func (r *Registry) SourceNames(id string) []string {
	srcs, ok := r.Lookup(id)
	if !ok {
		return nil
	}
	names := make([]string, len(srcs))
	for i, s := range srcs {
		names[i] = s.Name
	}
	return names
}

// Label turns a region identifier into its display form, e.g.
// "north_america" -> "North America".
func Label(id string) string {
	words := strings.Split(strings.ReplaceAll(id, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// countryAliases maps a country's display name to the lower-cased terms that
// count as a mention of it. Countries not listed here match on their own
// lower-cased name only.
var countryAliases = map[string][]string{
	"United States":  {"united states", "us", "usa", "america"},
	"UK":             {"uk", "britain", "england", "scotland"},
	"UAE":            {"uae", "united arab emirates"},
	"Czech Republic": {"czech republic", "czech"},
}

// AliasTerms returns the search terms for a country filter.
func AliasTerms(country string) []string {
	if terms, ok := countryAliases[country]; ok {
		return terms
	}
	return []string{strings.ToLower(country)}
}

// countriesByRegion lists, per region, the countries offered for filtering.
var countriesByRegion = map[string][]string{
	"africa": {"Nigeria", "South Africa", "Kenya", "Egypt", "Ethiopia", "Ghana",
		"Tanzania", "Uganda", "Morocco", "Algeria", "Sudan", "Libya", "Tunisia",
		"Senegal", "Cameroon", "Congo", "Somalia", "Zimbabwe", "Mozambique",
		"Angola", "Mali", "Niger", "Rwanda", "Ivory Coast", "Madagascar"},
	"asia": {"China", "India", "Japan", "South Korea", "North Korea", "Indonesia",
		"Pakistan", "Bangladesh", "Philippines", "Vietnam", "Thailand", "Myanmar",
		"Malaysia", "Taiwan", "Iran", "Iraq", "Syria", "Saudi Arabia", "Israel",
		"Palestine", "Turkey", "Afghanistan", "Yemen", "Lebanon", "Jordan", "UAE",
		"Qatar", "Kuwait", "Oman", "Nepal", "Sri Lanka", "Cambodia", "Laos",
		"Mongolia", "Uzbekistan", "Kazakhstan", "Singapore", "Hong Kong"},
	"europe": {"Ukraine", "Russia", "France", "Germany", "UK", "Spain", "Italy",
		"Poland", "Netherlands", "Belgium", "Sweden", "Norway", "Denmark",
		"Finland", "Greece", "Portugal", "Ireland", "Austria", "Switzerland",
		"Czech Republic", "Romania", "Hungary", "Serbia", "Croatia", "Bulgaria",
		"Slovakia", "Lithuania", "Latvia", "Estonia", "Moldova", "Belarus",
		"Georgia", "Albania", "Kosovo", "Bosnia", "Montenegro", "Iceland",
		"Luxembourg", "Malta", "Cyprus"},
	"north_america": {"United States", "Canada", "Mexico", "Cuba", "Haiti",
		"Jamaica", "Dominican Republic", "Guatemala", "Honduras", "El Salvador",
		"Nicaragua", "Costa Rica", "Panama", "Puerto Rico", "Trinidad",
		"Bahamas", "Barbados"},
	"south_america": {"Brazil", "Argentina", "Colombia", "Chile", "Peru",
		"Venezuela", "Ecuador", "Bolivia", "Paraguay", "Uruguay", "Guyana",
		"Suriname"},
	"oceania": {"Australia", "New Zealand", "Fiji", "Papua New Guinea", "Samoa",
		"Tonga", "Solomon Islands", "Vanuatu"},
	"antarctica": {"Antarctica"},
}

// Countries returns the filterable countries for a region.
func Countries(region string) []string {
	return countriesByRegion[strings.ToLower(region)]
}
