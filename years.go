package forecast

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// maxYearSpan bounds the ranges accepted by ParseYears.
const maxYearSpan = 200

// ParseYears parses a list of years such as "2025-2030", "2025,2027" or
// "2024,2026-2028". The result is sorted and free of duplicates. An empty string
// yields no years.
func ParseYears(s string) ([]int, error) {
	var years []int
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		from, to, isRange := strings.Cut(item, "-")
		first, err := strconv.Atoi(strings.TrimSpace(from))
		if err != nil {
			return nil, fmt.Errorf("invalid year %q: %w", item, err)
		}
		last := first
		if isRange {
			last, err = strconv.Atoi(strings.TrimSpace(to))
			if err != nil {
				return nil, fmt.Errorf("invalid year range %q: %w", item, err)
			}
		}
		if last < first {
			return nil, fmt.Errorf("invalid year range %q: %d is before %d", item, last, first)
		}
		if last-first > maxYearSpan {
			return nil, fmt.Errorf("invalid year range %q: spans more than %d years", item, maxYearSpan)
		}
		for y := first; y <= last; y++ {
			years = append(years, y)
		}
	}
	slices.Sort(years)
	return slices.Compact(years), nil
}
