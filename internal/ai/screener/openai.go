package screener

import (
	"context"
	"os"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared/constant"

	"github.com/Abraxas-365/sift/screening"
)

const openAIKeyEnv = "OPENAI_API_KEY"

// OpenAIScreener screens resumes through the OpenAI chat completions API.
// The backend has no native document ingestion and no schema-constrained
// generation, so the JSON shape travels inside the instruction text and the
// response is fully validated after parsing.
type OpenAIScreener struct {
	apiKey string
	client openai.Client
}

// NewOpenAI creates the adapter. The client is constructed up front; the
// credential is read from the environment but its absence only surfaces on
// the first Screen call.
func NewOpenAI() *OpenAIScreener {
	apiKey := os.Getenv(openAIKeyEnv)
	return &OpenAIScreener{
		apiKey: apiKey,
		client: openai.NewClient(option.WithAPIKey(apiKey)),
	}
}

func (s *OpenAIScreener) Kind() screening.ProviderKind {
	return screening.ProviderOpenAI
}

func (s *OpenAIScreener) Capabilities() screening.CapabilityProfile {
	return screening.CapabilityProfile{
		InlineDocuments:   false,
		SchemaConstrained: false,
	}
}

// Screen performs exactly one round trip against the backend.
func (s *OpenAIScreener) Screen(ctx context.Context, prepared screening.PreparedContext, model string) (*screening.Result, error) {
	if s.apiKey == "" {
		return nil, screening.ErrMissingCredential(screening.ProviderOpenAI, openAIKeyEnv)
	}
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	if model == "" {
		model = DefaultOpenAIModel
	}

	// The context builder never emits inline documents for this capability
	// profile, so the instruction text is the whole payload.
	userPrompt := prepared.Instruction + "\n\n" + scoringRubric + "\n\n" + resultShape

	completion, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemInstruction),
			openai.UserMessage(userPrompt),
		},
		Model: model,
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{
				Type: constant.JSONObject("json_object"),
			},
		},
		Temperature: openai.Float(0.1),
		MaxTokens:   openai.Int(4000),
	})
	if err != nil {
		return nil, screening.ErrProviderCallFailed(screening.ProviderOpenAI, err)
	}
	if len(completion.Choices) == 0 {
		return nil, screening.ErrEmptyResponse(screening.ProviderOpenAI)
	}

	return parseResult(screening.ProviderOpenAI, completion.Choices[0].Message.Content)
}
