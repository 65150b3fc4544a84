// internal/service/neighborhood/gazetteer.go

package neighborhood

import (
	"strings"

	"dicilo/internal/domain/geo"
	"dicilo/internal/domain/neighborhood"
)

// DefaultCity is the fallback city when resolution fails or no context is
// given.
const DefaultCity = "Hamburg"

// rootCities are the two launch cities. Input matching one of these routes
// to a city view rather than a district view.
var rootCities = []string{"Hamburg", "Berlin"}

// Gazetteer is the static in-memory district index for the root cities.
// It seeds the sub-area list before any dynamic records exist.
type Gazetteer struct {
	// entries keyed by lowercased name. Each city also has a self entry,
	// which is excluded from its own district list.
	entries map[string]neighborhood.Neighborhood
}

// NewGazetteer builds the static gazetteer.
func NewGazetteer() *Gazetteer {
	g := &Gazetteer{
		entries: make(map[string]neighborhood.Neighborhood),
	}

	g.addCity("Hamburg", 53.5511, 9.9937)
	g.add("Altona", "Hamburg", 53.5497, 9.9357)
	g.add("Eimsbüttel", "Hamburg", 53.5765, 9.9536)
	g.add("St. Pauli", "Hamburg", 53.5497, 9.9603)
	g.add("Ottensen", "Hamburg", 53.5542, 9.9201)
	g.add("Winterhude", "Hamburg", 53.5931, 10.0004)
	g.add("Eppendorf", "Hamburg", 53.5915, 9.9824)
	g.add("Barmbek", "Hamburg", 53.5870, 10.0446)
	g.add("Wandsbek", "Hamburg", 53.5720, 10.0707)
	g.add("St. Georg", "Hamburg", 53.5554, 10.0128)
	g.add("Blankenese", "Hamburg", 53.5580, 9.8109)
	g.add("Harburg", "Hamburg", 53.4609, 9.9834)
	g.add("Bergedorf", "Hamburg", 53.4844, 10.2281)

	g.addCity("Berlin", 52.5200, 13.4050)
	g.add("Mitte", "Berlin", 52.5200, 13.4046)
	g.add("Kreuzberg", "Berlin", 52.4986, 13.3915)
	g.add("Neukölln", "Berlin", 52.4811, 13.4354)
	g.add("Prenzlauer Berg", "Berlin", 52.5429, 13.4243)
	g.add("Charlottenburg", "Berlin", 52.5163, 13.3041)
	g.add("Friedrichshain", "Berlin", 52.5159, 13.4543)
	g.add("Schöneberg", "Berlin", 52.4822, 13.3550)
	g.add("Wedding", "Berlin", 52.5500, 13.3550)
	g.add("Moabit", "Berlin", 52.5300, 13.3420)
	g.add("Spandau", "Berlin", 52.5511, 13.1999)

	return g
}

func (g *Gazetteer) addCity(name string, lat, lng float64) {
	g.entries[strings.ToLower(name)] = neighborhood.Neighborhood{
		ID:         name,
		Name:       name,
		City:       name,
		Location:   &geo.Coordinates{Lat: lat, Lng: lng},
		Provenance: neighborhood.ProvenanceSystem,
	}
}

func (g *Gazetteer) add(name, city string, lat, lng float64) {
	g.entries[strings.ToLower(name)] = neighborhood.Neighborhood{
		ID:         name,
		Name:       name,
		City:       city,
		Location:   &geo.Coordinates{Lat: lat, Lng: lng},
		Provenance: neighborhood.ProvenanceSystem,
	}
}

// IsRootCity reports whether the name matches one of the launch cities.
func (g *Gazetteer) IsRootCity(name string) bool {
	for _, c := range rootCities {
		if strings.EqualFold(c, name) {
			return true
		}
	}
	return false
}

// CanonicalCity returns the canonical spelling for a root city name.
func (g *Gazetteer) CanonicalCity(name string) string {
	for _, c := range rootCities {
		if strings.EqualFold(c, name) {
			return c
		}
	}
	return name
}

// Lookup finds a static entry by name or id, case-insensitively.
func (g *Gazetteer) Lookup(nameOrID string) (neighborhood.Neighborhood, bool) {
	e, ok := g.entries[strings.ToLower(strings.TrimSpace(nameOrID))]
	return e, ok
}

// Districts returns the static district entries for a city, excluding the
// city's own self entry.
func (g *Gazetteer) Districts(city string) []neighborhood.Neighborhood {
	var districts []neighborhood.Neighborhood
	for _, e := range g.entries {
		if !strings.EqualFold(e.City, city) {
			continue
		}
		if strings.EqualFold(e.Name, e.City) {
			continue
		}
		districts = append(districts, e)
	}
	return districts
}
