package timezones

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

//go:embed data/iana_timezones.txt
var dataFS embed.FS

const defaultListPath = "data/iana_timezones.txt"

var loadDefault = sync.OnceValues(func() ([]string, error) {
	f, err := dataFS.Open(defaultListPath)
	if err != nil {
		return nil, fmt.Errorf("timezones: open embedded list: %w", err)
	}
	defer func() { _ = f.Close() }()
	return LoadZones(f)
})

// DefaultZones returns a copy of the embedded zone list.
func DefaultZones() ([]string, error) {
	zones, err := loadDefault()
	if err != nil {
		return nil, err
	}
	return append([]string{}, zones...), nil
}

// LoadZones reads one zone per line, skipping blanks, comments and duplicates.
// The result is sorted.
func LoadZones(r io.Reader) ([]string, error) {
	if r == nil {
		return nil, fmt.Errorf("timezones: missing reader")
	}

	scanner := bufio.NewScanner(r)
	zones := make([]string, 0, 512)
	seen := map[string]struct{}{}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		zones = append(zones, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("timezones: read list: %w", err)
	}

	sort.Strings(zones)
	return zones, nil
}
