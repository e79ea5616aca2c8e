package screener

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abraxas-365/sift/pkg/errx"
	"github.com/Abraxas-365/sift/screening"
)

const validResponse = `{
  "candidateName": "Jane Doe",
  "location": "Lima, Peru",
  "totalExperience": "8 years",
  "currentRole": "Senior Backend Engineer",
  "email": "jane@example.com",
  "contactNumber": "+51 999 999 999",
  "resumeText": "Jane Doe. Senior Backend Engineer with Go and Kubernetes.",
  "overallMatchScore": 87,
  "candidateSummary": "Strong backend engineer.",
  "skillsAnalysis": [
    {"skill": "Go", "score": 90, "reasoning": "Years of production Go", "evidence": "Senior Backend Engineer with Go"},
    {"skill": "Terraform", "score": 40, "reasoning": "No project detail", "evidence": "Listed in skills section only"}
  ],
  "strengths": ["Go", "Kubernetes"],
  "weaknesses": ["No Terraform depth"],
  "recommendation": "Strong Match",
  "suitableRoles": ["Backend Engineer"],
  "technicalSkills": ["Go", "Kubernetes"],
  "functionalSkills": ["Mentoring"]
}`

func TestParseResultValid(t *testing.T) {
	result, err := parseResult(screening.ProviderOpenAI, validResponse)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", result.CandidateName)
	assert.Equal(t, 87, result.OverallMatchScore)
	assert.Equal(t, screening.RecommendationStrongMatch, result.Recommendation)
	require.Len(t, result.SkillsAnalysis, 2)
	assert.Equal(t, screening.EvidenceSkillsListOnly, result.SkillsAnalysis[1].Evidence)
}

func TestParseResultCodeFenced(t *testing.T) {
	fenced := "```json\n" + validResponse + "\n```"
	result, err := parseResult(screening.ProviderGemini, fenced)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", result.CandidateName)
}

func TestParseResultEmptyResponse(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\t"} {
		_, err := parseResult(screening.ProviderOpenAI, raw)
		assert.True(t, errx.IsCode(err, screening.CodeEmptyResponse), "raw %q", raw)
	}
}

func TestParseResultMalformedJSON(t *testing.T) {
	_, err := parseResult(screening.ProviderOpenAI, `{"candidateName": `)
	assert.True(t, errx.IsCode(err, screening.CodeMalformedResponse))
}

func TestParseResultUnknownRecommendationRejected(t *testing.T) {
	raw := `{"candidateName": "X", "overallMatchScore": 50, "recommendation": "Maybe"}`
	_, err := parseResult(screening.ProviderGemini, raw)
	assert.True(t, errx.IsCode(err, screening.CodeMalformedResponse))
}

func TestParseResultClampsScores(t *testing.T) {
	raw := `{
  "candidateName": "X",
  "overallMatchScore": 140,
  "skillsAnalysis": [{"skill": "Go", "score": -10, "reasoning": "", "evidence": "No evidence found"}],
  "recommendation": "Weak Match"
}`
	result, err := parseResult(screening.ProviderOpenAI, raw)
	require.NoError(t, err)
	assert.Equal(t, 100, result.OverallMatchScore)
	assert.Equal(t, 0, result.SkillsAnalysis[0].Score)
}

func TestMissingCredentialSurfacesBeforeAnyCall(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	prepared := screening.PreparedContext{Instruction: "screen this"}

	_, err := NewOpenAI().Screen(t.Context(), prepared, "")
	assert.True(t, errx.IsCode(err, screening.CodeMissingCredential))

	_, err = NewGemini().Screen(t.Context(), prepared, "")
	assert.True(t, errx.IsCode(err, screening.CodeMissingCredential))
}

func TestNewSelectsByKind(t *testing.T) {
	p, err := New(screening.ProviderOpenAI)
	require.NoError(t, err)
	assert.Equal(t, screening.ProviderOpenAI, p.Kind())
	assert.False(t, p.Capabilities().InlineDocuments)

	p, err = New(screening.ProviderGemini)
	require.NoError(t, err)
	assert.Equal(t, screening.ProviderGemini, p.Kind())
	assert.True(t, p.Capabilities().SchemaConstrained)

	_, err = New(screening.ProviderKind("anthropic"))
	assert.True(t, errx.IsCode(err, screening.CodeUnknownProvider))
}
