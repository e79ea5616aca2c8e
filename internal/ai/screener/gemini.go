package screener

import (
	"context"
	"os"
	"sync"

	"google.golang.org/genai"

	"github.com/Abraxas-365/sift/screening"
)

const geminiKeyEnv = "GEMINI_API_KEY"

// GeminiScreener screens resumes through the Gemini API. The backend ingests
// PDF bytes inline and enforces the declared response schema, so required
// fields cannot be omitted structurally.
type GeminiScreener struct {
	apiKey string

	mu     sync.Mutex
	client *genai.Client
}

// NewGemini creates the adapter. The credential is read from the environment
// but its absence only surfaces on the first Screen call.
func NewGemini() *GeminiScreener {
	return &GeminiScreener{apiKey: os.Getenv(geminiKeyEnv)}
}

func (s *GeminiScreener) Kind() screening.ProviderKind {
	return screening.ProviderGemini
}

func (s *GeminiScreener) Capabilities() screening.CapabilityProfile {
	return screening.CapabilityProfile{
		InlineDocuments:   true,
		SchemaConstrained: true,
	}
}

func (s *GeminiScreener) ensureClient(ctx context.Context) (*genai.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client != nil {
		return s.client, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  s.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, screening.ErrProviderCallFailed(screening.ProviderGemini, err)
	}
	s.client = client
	return client, nil
}

// Screen performs exactly one round trip against the backend.
func (s *GeminiScreener) Screen(ctx context.Context, prepared screening.PreparedContext, model string) (*screening.Result, error) {
	if s.apiKey == "" {
		return nil, screening.ErrMissingCredential(screening.ProviderGemini, geminiKeyEnv)
	}
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	client, err := s.ensureClient(ctx)
	if err != nil {
		return nil, err
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	parts := []*genai.Part{
		{Text: prepared.Instruction + "\n\n" + scoringRubric},
	}
	for _, doc := range prepared.Documents {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				MIMEType: string(doc.MediaType),
				Data:     doc.Data,
			},
		})
	}

	resp, err := client.Models.GenerateContent(
		ctx,
		model,
		[]*genai.Content{{Role: genai.RoleUser, Parts: parts}},
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{{Text: systemInstruction}},
			},
			CandidateCount:   1,
			Temperature:      genai.Ptr[float32](0.1),
			ResponseMIMEType: "application/json",
			ResponseSchema:   resultSchema,
		},
	)
	if err != nil {
		return nil, screening.ErrProviderCallFailed(screening.ProviderGemini, err)
	}

	return parseResult(screening.ProviderGemini, resp.Text())
}

// resultSchema declares the canonical result shape, including the closed
// recommendation enumeration, so the backend cannot omit required fields.
var resultSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"candidateName":     {Type: genai.TypeString},
		"location":          {Type: genai.TypeString},
		"totalExperience":   {Type: genai.TypeString},
		"currentRole":       {Type: genai.TypeString},
		"email":             {Type: genai.TypeString},
		"contactNumber":     {Type: genai.TypeString},
		"resumeText":        {Type: genai.TypeString},
		"overallMatchScore": {Type: genai.TypeInteger},
		"candidateSummary":  {Type: genai.TypeString},
		"skillsAnalysis": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"skill":     {Type: genai.TypeString},
					"score":     {Type: genai.TypeInteger},
					"reasoning": {Type: genai.TypeString},
					"evidence":  {Type: genai.TypeString},
				},
				Required: []string{"skill", "score", "reasoning", "evidence"},
			},
		},
		"strengths":  {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"weaknesses": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"recommendation": {
			Type: genai.TypeString,
			Enum: []string{
				string(screening.RecommendationStrongMatch),
				string(screening.RecommendationPotentialMatch),
				string(screening.RecommendationWeakMatch),
				string(screening.RecommendationNotAMatch),
			},
		},
		"suitableRoles":    {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"technicalSkills":  {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"functionalSkills": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
	},
	Required: []string{
		"candidateName",
		"resumeText",
		"overallMatchScore",
		"candidateSummary",
		"skillsAnalysis",
		"recommendation",
	},
}
