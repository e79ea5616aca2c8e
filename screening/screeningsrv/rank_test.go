package screeningsrv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abraxas-365/sift/screening"
)

func TestSortByScoreDescendingAndStable(t *testing.T) {
	results := []screening.Result{
		{CandidateName: "Bob", OverallMatchScore: 70},
		{CandidateName: "Alice", OverallMatchScore: 90},
		{CandidateName: "Carol", OverallMatchScore: 70},
	}

	sorted := SortByScore(results)

	require.Len(t, sorted, 3)
	assert.Equal(t, "Alice", sorted[0].CandidateName)
	// Ties keep their original relative order.
	assert.Equal(t, "Bob", sorted[1].CandidateName)
	assert.Equal(t, "Carol", sorted[2].CandidateName)

	// The input slice is never mutated.
	assert.Equal(t, "Bob", results[0].CandidateName)
}

func TestDistributionIncludesZeroCounts(t *testing.T) {
	results := []screening.Result{
		{Recommendation: screening.RecommendationStrongMatch},
		{Recommendation: screening.RecommendationStrongMatch},
		{Recommendation: screening.RecommendationNotAMatch},
	}

	dist := Distribution(results)

	assert.Equal(t, 2, dist[screening.RecommendationStrongMatch])
	assert.Equal(t, 0, dist[screening.RecommendationPotentialMatch])
	assert.Equal(t, 0, dist[screening.RecommendationWeakMatch])
	assert.Equal(t, 1, dist[screening.RecommendationNotAMatch])
	assert.Len(t, dist, 4)
}

func TestAverageScore(t *testing.T) {
	assert.Zero(t, AverageScore(nil))

	results := []screening.Result{
		{OverallMatchScore: 80},
		{OverallMatchScore: 71},
	}
	assert.InDelta(t, 75.5, AverageScore(results), 0.001)

	thirds := []screening.Result{
		{OverallMatchScore: 1},
		{OverallMatchScore: 1},
		{OverallMatchScore: 0},
	}
	assert.InDelta(t, 0.67, AverageScore(thirds), 0.001)
}

func TestSummarize(t *testing.T) {
	outcome := &screening.BatchOutcome{
		Results: []screening.Result{
			{OverallMatchScore: 90, Recommendation: screening.RecommendationStrongMatch},
			{OverallMatchScore: 50, Recommendation: screening.RecommendationWeakMatch},
		},
		Manifest: []screening.ItemFailure{
			{FileName: "broken.docx", Reason: "extraction failed"},
		},
	}

	summary := Summarize(outcome)

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	assert.InDelta(t, 70.0, summary.AverageScore, 0.001)
	assert.Equal(t, 1, summary.Distribution[screening.RecommendationStrongMatch])
}
