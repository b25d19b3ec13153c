package analytics

import (
	"slices"
	"strings"

	"github.com/google/uuid"
)

const unknownCountry = "unknown"

// Summarize groups already-fetched clicks by day, country and link.
// Plain derived-value computation over rows the caller supplies; there is no
// pipeline or storage behind it.
func Summarize(clicks []Click) Summary {
	summary := Summary{
		ByDay:     make(map[string]int64),
		ByCountry: make(map[string]int64),
		ByLink:    make(map[uuid.UUID]int64),
	}

	for _, click := range clicks {
		summary.Total++
		summary.ByDay[click.OccurredAt.UTC().Format("2006-01-02")]++

		country := strings.ToUpper(strings.TrimSpace(click.Country))
		if country == "" {
			country = unknownCountry
		}
		summary.ByCountry[country]++

		summary.ByLink[click.LinkID]++
	}

	return summary
}

// TopCountries returns up to n countries ranked by click count,
// ties broken alphabetically for stable output.
func (s Summary) TopCountries(n int) []CountryCount {
	ranked := make([]CountryCount, 0, len(s.ByCountry))
	for country, count := range s.ByCountry {
		ranked = append(ranked, CountryCount{Country: country, Count: count})
	}

	slices.SortFunc(ranked, func(a, b CountryCount) int {
		if a.Count != b.Count {
			return int(b.Count - a.Count)
		}
		return strings.Compare(a.Country, b.Country)
	})

	if n >= 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// Days returns the summarized days in chronological order.
func (s Summary) Days() []string {
	days := make([]string, 0, len(s.ByDay))
	for day := range s.ByDay {
		days = append(days, day)
	}
	slices.Sort(days)
	return days
}
