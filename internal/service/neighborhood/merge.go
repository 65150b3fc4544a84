// internal/service/neighborhood/merge.go

package neighborhood

import (
	"sort"
	"strings"

	"dicilo/internal/adapter/storage"
	"dicilo/internal/domain/neighborhood"
)

// flattenSystem turns the country/city/district hierarchy into flat district
// records. The district name doubles as the record ID, matching the original
// collection layout.
func flattenSystem(countries []storage.SystemCountry) []neighborhood.Neighborhood {
	var records []neighborhood.Neighborhood
	for _, country := range countries {
		for _, city := range country.Cities {
			for _, district := range city.Districts {
				records = append(records, neighborhood.Neighborhood{
					ID:         district,
					Name:       district,
					City:       city.Name,
					Country:    country.Country,
					Provenance: neighborhood.ProvenanceSystem,
				})
			}
		}
	}
	return records
}

// mergeRecords combines the two collection snapshots into one list keyed by
// lowercased name. User records override system records on collision. The
// result is sorted by name so merging identical snapshots is idempotent.
func mergeRecords(system, user []neighborhood.Neighborhood) []neighborhood.Neighborhood {
	byName := make(map[string]neighborhood.Neighborhood, len(system)+len(user))

	for _, r := range system {
		byName[strings.ToLower(r.Name)] = r
	}
	for _, r := range user {
		byName[strings.ToLower(r.Name)] = r
	}

	merged := make([]neighborhood.Neighborhood, 0, len(byName))
	for _, r := range byName {
		merged = append(merged, r)
	}

	sort.Slice(merged, func(i, j int) bool {
		return strings.ToLower(merged[i].Name) < strings.ToLower(merged[j].Name)
	})

	return merged
}
