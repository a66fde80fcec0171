package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"distribution-service/internal/apperror"
	"distribution-service/pkg/config"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/openai/openai-go/shared/constant"
)

// OpenAIGenerator asks an OpenAI model for structured insights
type OpenAIGenerator struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	schema  map[string]any
}

// NewOpenAIGenerator builds a generator from AI settings
func NewOpenAIGenerator(cfg config.AIConfig) (*OpenAIGenerator, error) {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	client := openai.NewClient(opts...)

	schema, err := insightsSchema()
	if err != nil {
		return nil, err
	}
	return &OpenAIGenerator{client: &client, model: cfg.Model, timeout: cfg.Timeout, schema: schema}, nil
}

// New picks the OpenAI generator when an API key is set and Disabled otherwise
func New(cfg config.AIConfig) (Generator, error) {
	if cfg.APIKey == "" {
		return Disabled{}, nil
	}
	return NewOpenAIGenerator(cfg)
}

func (g *OpenAIGenerator) Generate(ctx context.Context, summary Summary) (*Insights, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(g.model),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(BuildPrompt(summary)),
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Type:        constant.JSONSchema("json_schema"),
					Name:        "business_insights",
					Strict:      param.NewOpt(true),
					Schema:      g.schema,
					Description: param.NewOpt("Risk, cash flow and inventory insights for a potato distributor"),
				},
			},
		},
	}

	resp, err := g.client.Responses.New(ctx, params)
	if err != nil {
		return nil, &apperror.IntegrationFailure{Service: "openai", Err: fmt.Errorf("responses error: %w", err)}
	}

	out, err := parseInsights(resp.OutputText())
	if err != nil {
		return nil, &apperror.IntegrationFailure{Service: "openai", Err: err}
	}
	return out, nil
}

// insightsSchema reflects the JSON schema of Insights for strict structured output
func insightsSchema() (map[string]any, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	raw, err := json.Marshal(reflector.Reflect(&Insights{}))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	var schema map[string]any
	if err := json.Unmarshal(raw, &schema); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema to map: %w", err)
	}
	return schema, nil
}
