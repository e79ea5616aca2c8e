package screeningsrv

import (
	"math"
	"sort"

	"github.com/Abraxas-365/sift/screening"
)

// Ranking and aggregation are pure functions over the result collection.
// They never mutate a result, only reorder or summarize copies.

// SortByScore returns a new slice ordered by overall score descending.
// Equal scores keep their original relative order.
func SortByScore(results []screening.Result) []screening.Result {
	sorted := make([]screening.Result, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OverallMatchScore > sorted[j].OverallMatchScore
	})
	return sorted
}

// Distribution counts results per recommendation. Every valid recommendation
// appears as a key, including zero counts.
func Distribution(results []screening.Result) map[screening.Recommendation]int {
	dist := make(map[screening.Recommendation]int, len(screening.Recommendations))
	for _, r := range screening.Recommendations {
		dist[r] = 0
	}
	for _, res := range results {
		dist[res.Recommendation]++
	}
	return dist
}

// AverageScore returns the mean overall score rounded to two decimals, or 0
// for an empty collection.
func AverageScore(results []screening.Result) float64 {
	if len(results) == 0 {
		return 0
	}
	sum := 0
	for _, res := range results {
		sum += res.OverallMatchScore
	}
	avg := float64(sum) / float64(len(results))
	return math.Round(avg*100) / 100
}

// Summarize aggregates a completed batch outcome.
func Summarize(outcome *screening.BatchOutcome) screening.RunSummary {
	return screening.RunSummary{
		Total:        len(outcome.Results) + len(outcome.Manifest),
		Succeeded:    len(outcome.Results),
		Failed:       len(outcome.Manifest),
		AverageScore: AverageScore(outcome.Results),
		Distribution: Distribution(outcome.Results),
	}
}
