package timezones

import (
	"sort"
	"strings"
)

// Search returns zones containing query, case-insensitively. Zones starting
// with the query come first; ties sort by name. A limit of zero is unlimited.
func Search(zones []string, query string, limit int, mode EmptySearchMode) []string {
	query = normalizeQuery(query)
	if query == "" {
		if mode != EmptySearchTop {
			return nil
		}
		if limit > 0 && len(zones) > limit {
			return append([]string{}, zones[:limit]...)
		}
		return append([]string{}, zones...)
	}

	q := strings.ToLower(query)
	matches := make([]matchedZone, 0, 32)
	for _, zone := range zones {
		lowerZone := strings.ToLower(zone)
		if !strings.Contains(lowerZone, q) {
			continue
		}
		matches = append(matches, matchedZone{
			name:     zone,
			isPrefix: strings.HasPrefix(lowerZone, q),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].isPrefix != matches[j].isPrefix {
			return matches[i].isPrefix
		}
		return matches[i].name < matches[j].name
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]string, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.name)
	}
	return out
}

// normalizeQuery lets visitors type labels ("New York") as well as
// identifiers ("New_York").
func normalizeQuery(query string) string {
	return strings.ReplaceAll(strings.TrimSpace(query), " ", "_")
}

// Label returns the display label of a zone identifier.
func Label(zone string) string {
	return strings.ReplaceAll(zone, "_", " ")
}

type matchedZone struct {
	name     string
	isPrefix bool
}
