// Package groundwater serves the central groundwater assessment table. The
// primary backing is a hierarchical JSON file keyed state > district >
// location; a Postgres repository is available for deployments that load the
// table into a database.
package groundwater

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/bhavyaa-1001/Drop2Smart/internal/domain"
)

// record mirrors one location entry in the assessment JSON.
type record struct {
	AnnualReplenishableGW float64 `json:"Annual_Replenishable_GW"`
	NetAvailability       float64 `json:"Net_Availability"`
	TotalDraft            float64 `json:"Total_Draft"`
	StagePercent          float64 `json:"Stage_Percent"`
	Category              string  `json:"Category"`
}

// SearchResult identifies one matching location.
type SearchResult struct {
	State        string  `json:"state"`
	District     string  `json:"district"`
	Location     string  `json:"location"`
	Category     string  `json:"category"`
	StagePercent float64 `json:"stage_percent"`
}

// NearbyLocation is another location in the same district.
type NearbyLocation struct {
	Location        string  `json:"location"`
	Category        string  `json:"category"`
	StagePercent    float64 `json:"stage_percent"`
	NetAvailability float64 `json:"net_availability"`
}

// Store is an immutable in-memory view of the assessment table. It is safe
// for concurrent reads.
type Store struct {
	data map[string]map[string]map[string]record
}

// NewStoreFromFile loads the assessment JSON. A missing file yields an empty
// store so the service can run without groundwater coverage.
func NewStoreFromFile(path string, logger *slog.Logger) (*Store, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		logger.Warn("groundwater data file not found, serving empty table", "path", path)
		return &Store{data: map[string]map[string]map[string]record{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading groundwater data: %w", err)
	}

	var data map[string]map[string]map[string]record
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decoding groundwater data: %w", err)
	}
	logger.Info("groundwater data loaded", "path", path, "states", len(data))
	return &Store{data: data}, nil
}

// Location resolves one location case-insensitively. The returned record
// carries the canonical names from the table, not the query spelling.
func (s *Store) Location(state, district, location string) (domain.GroundwaterRecord, bool) {
	stName, stData, ok := findKeyFold(s.data, state)
	if !ok {
		return domain.GroundwaterRecord{}, false
	}
	diName, diData, ok := findKeyFold(stData, district)
	if !ok {
		return domain.GroundwaterRecord{}, false
	}
	locName, rec, ok := findKeyFold(diData, location)
	if !ok {
		return domain.GroundwaterRecord{}, false
	}
	return toDomain(rec, stName, diName, locName), true
}

// Search returns every location whose state, district, or location name
// contains the query, case-insensitively.
func (s *Store) Search(query string) []SearchResult {
	q := strings.ToLower(query)
	var results []SearchResult
	for state, stData := range s.data {
		for district, diData := range stData {
			for location, rec := range diData {
				if strings.Contains(strings.ToLower(state), q) ||
					strings.Contains(strings.ToLower(district), q) ||
					strings.Contains(strings.ToLower(location), q) {
					results = append(results, SearchResult{
						State:        state,
						District:     district,
						Location:     location,
						Category:     categoryOrUnknown(rec.Category),
						StagePercent: rec.StagePercent,
					})
				}
			}
		}
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].State != results[j].State {
			return results[i].State < results[j].State
		}
		if results[i].District != results[j].District {
			return results[i].District < results[j].District
		}
		return results[i].Location < results[j].Location
	})
	return results
}

// Nearby lists the other locations in the same district, stressed ones
// first. An empty categoryFilter matches every category.
func (s *Store) Nearby(state, district, location, categoryFilter string) []NearbyLocation {
	_, stData, ok := findKeyFold(s.data, state)
	if !ok {
		return nil
	}
	_, diData, ok := findKeyFold(stData, district)
	if !ok {
		return nil
	}

	var out []NearbyLocation
	for name, rec := range diData {
		if strings.EqualFold(name, location) {
			continue
		}
		if categoryFilter != "" && !strings.EqualFold(rec.Category, categoryFilter) {
			continue
		}
		out = append(out, NearbyLocation{
			Location:        name,
			Category:        categoryOrUnknown(rec.Category),
			StagePercent:    rec.StagePercent,
			NetAvailability: rec.NetAvailability,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StagePercent != out[j].StagePercent {
			return out[i].StagePercent > out[j].StagePercent
		}
		return out[i].Location < out[j].Location
	})
	return out
}

// States lists every state in the table, sorted.
func (s *Store) States() []string {
	out := make([]string, 0, len(s.data))
	for st := range s.data {
		out = append(out, st)
	}
	sort.Strings(out)
	return out
}

// Districts lists the districts of a state, sorted.
func (s *Store) Districts(state string) []string {
	_, stData, ok := findKeyFold(s.data, state)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(stData))
	for di := range stData {
		out = append(out, di)
	}
	sort.Strings(out)
	return out
}

// Locations lists the locations of a district, sorted.
func (s *Store) Locations(state, district string) []string {
	_, stData, ok := findKeyFold(s.data, state)
	if !ok {
		return nil
	}
	_, diData, ok := findKeyFold(stData, district)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(diData))
	for loc := range diData {
		out = append(out, loc)
	}
	sort.Strings(out)
	return out
}

// CategoryStats counts locations per assessment category. Categories outside
// the standard set count as Unknown.
func (s *Store) CategoryStats() map[string]int {
	stats := map[string]int{
		domain.GWCategorySafe:         0,
		domain.GWCategorySemiCritical: 0,
		domain.GWCategoryCritical:     0,
		domain.GWCategoryOverExploit:  0,
		domain.GWCategoryUnknown:      0,
	}
	for _, stData := range s.data {
		for _, diData := range stData {
			for _, rec := range diData {
				if _, known := stats[rec.Category]; known {
					stats[rec.Category]++
				} else {
					stats[domain.GWCategoryUnknown]++
				}
			}
		}
	}
	return stats
}

func findKeyFold[V any](m map[string]V, key string) (string, V, bool) {
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return k, v, true
		}
	}
	var zero V
	return "", zero, false
}

func categoryOrUnknown(c string) string {
	if c == "" {
		return domain.GWCategoryUnknown
	}
	return c
}

func toDomain(rec record, state, district, location string) domain.GroundwaterRecord {
	return domain.GroundwaterRecord{
		AnnualReplenishableGW: rec.AnnualReplenishableGW,
		NetAvailability:       rec.NetAvailability,
		TotalDraft:            rec.TotalDraft,
		StagePercent:          rec.StagePercent,
		Category:              categoryOrUnknown(rec.Category),
		Location:              location,
		District:              district,
		State:                 state,
	}
}
