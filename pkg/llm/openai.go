package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/openai/openai-go/shared/constant"
)

// OpenAIGenerator calls the OpenAI Responses API.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

// NewOpenAIGenerator creates a generator for the given model.
func NewOpenAIGenerator(model, apiKey string) (*OpenAIGenerator, error) {
	if apiKey == "" {
		return nil, errors.New("openai: API key is required")
	}
	if model == "" {
		model = string(shared.ChatModelGPT4o)
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIGenerator{client: &client, model: model}, nil
}

func (g *OpenAIGenerator) Complete(ctx context.Context, prompt string, opts map[string]any) (string, error) {
	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(g.model),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(prompt),
		},
	}

	if schema, ok := opts[OptSchema].(map[string]any); ok {
		name, _ := opts[OptSchemaName].(string)
		if name == "" {
			name = "structured_answer"
		}
		params.Text = responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Type:   constant.JSONSchema("json_schema"),
					Name:   name,
					Strict: param.NewOpt(true),
					Schema: schema,
				},
			},
		}
	}
	if maxTokens, ok := opts[OptMaxTokens].(int); ok && maxTokens > 0 {
		params.MaxOutputTokens = param.NewOpt(int64(maxTokens))
	}
	if temperature, ok := opts[OptTemperature].(float64); ok {
		params.Temperature = param.NewOpt(temperature)
	}

	resp, err := g.client.Responses.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai responses error: %w", err)
	}

	content := resp.OutputText()
	if content == "" {
		return "", errors.New("openai: empty response content")
	}
	return content, nil
}

func (g *OpenAIGenerator) Model() string {
	return g.model
}
