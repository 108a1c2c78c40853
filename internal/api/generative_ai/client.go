package generativeAI

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.0-flash"

// ContentGenerator is the single completion call the trip services depend on.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error)
}

var _ ContentGenerator = (*AIClient)(nil)

type AIClient struct {
	client *genai.Client
	model  string
}

// NewAIClient builds a Gemini client. An empty apiKey is an error so the
// caller can decide to run without language model features.
func NewAIClient(ctx context.Context, apiKey, model string) (*AIClient, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "NewAIClient")
	defer span.End()

	if strings.TrimSpace(apiKey) == "" {
		err := fmt.Errorf("gemini API key is not set")
		span.RecordError(err)
		span.SetStatus(codes.Error, "API key not set")
		return nil, err
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create Gemini client")
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	span.SetStatus(codes.Ok, "AI client created")
	return &AIClient{client: client, model: model}, nil
}

func (ai *AIClient) Model() string {
	return ai.model
}

func (ai *AIClient) GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "GenerateContent", trace.WithAttributes(
		attribute.Int("prompt.length", len(prompt)),
		attribute.String("model", ai.model),
	))
	defer span.End()

	result, err := ai.client.Models.GenerateContent(ctx, ai.model, genai.Text(prompt), config)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to generate content")
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := result.Text()
	if text == "" {
		err := fmt.Errorf("empty completion from model %s", ai.model)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Empty response")
		return "", err
	}

	span.SetAttributes(attribute.Int("response.length", len(text)))
	span.SetStatus(codes.Ok, "Content generated")
	return text, nil
}

// NewConfig builds a completion config with a system instruction.
func NewConfig(systemInstruction string, temperature float32, maxTokens int32) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
		Temperature:       genai.Ptr(temperature),
		MaxOutputTokens:   maxTokens,
	}
}

// CleanJSONResponse strips markdown code fences and any prose around the
// outermost JSON object of a model reply.
func CleanJSONResponse(response string) string {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	response = strings.TrimSpace(response)

	first := strings.Index(response, "{")
	last := strings.LastIndex(response, "}")
	if first == -1 || last <= first {
		return response
	}
	return strings.TrimSpace(response[first : last+1])
}
