package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"

	"notion-recipe-assistant/internal/models"
)

// OpenAIClient is the generation backend: structured records against a JSON
// schema, and cover images.
type OpenAIClient struct {
	client     *openai.Client
	model      string
	imageModel string
}

// NewOpenAIClient creates an OpenAI client from the environment.
func NewOpenAIClient() (*OpenAIClient, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required: %w", ErrConfiguration)
	}

	return &OpenAIClient{
		client:     openai.NewClient(apiKey),
		model:      "gpt-5-mini",
		imageModel: "gpt-image-1",
	}, nil
}

// NewOpenAIClientWithConfig creates a client with custom models.
func NewOpenAIClientWithConfig(apiKey, model, imageModel string) *OpenAIClient {
	return &OpenAIClient{
		client:     openai.NewClient(apiKey),
		model:      model,
		imageModel: imageModel,
	}
}

// generateStructured runs one chat completion with a strict JSON-schema
// response format and unmarshals the result into out. No result is fatal
// for the request; nothing is retried.
func (o *OpenAIClient) generateStructured(ctx context.Context, input, instructions, schemaName string, schema jsonschema.Definition, out interface{}) error {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: instructions},
			{Role: openai.ChatMessageRoleUser, Content: input},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   schemaName,
				Schema: &schema,
				Strict: true,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("openai request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return fmt.Errorf("no response choices from OpenAI: %w", ErrGeneration)
	}

	content := cleanJSONResponse(resp.Choices[0].Message.Content)
	if content == "" {
		return fmt.Errorf("no parsed data returned: %w", ErrGeneration)
	}
	if err := json.Unmarshal([]byte(content), out); err != nil {
		return fmt.Errorf("failed to parse generation response JSON: %w", err)
	}
	return nil
}

// GenerateRecipe generates a recipe for the given input and instructions.
func (o *OpenAIClient) GenerateRecipe(ctx context.Context, input, instructions string) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := o.generateStructured(ctx, input, instructions, "recipe", RecipeSchema(), &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// GenerateTip generates a Spanish tip for the given input and instructions.
func (o *OpenAIClient) GenerateTip(ctx context.Context, input, instructions string) (*models.Tip, error) {
	var tip models.Tip
	if err := o.generateStructured(ctx, input, instructions, "tip", TipSchema(), &tip); err != nil {
		return nil, err
	}
	return &tip, nil
}

// GenerateImage generates a 1024x1024 PNG for the prompt.
func (o *OpenAIClient) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	resp, err := o.client.CreateImage(ctx, openai.ImageRequest{
		Model:  o.imageModel,
		Prompt: prompt,
		Size:   openai.CreateImageSize1024x1024,
	})
	if err != nil {
		return nil, fmt.Errorf("image request failed: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return nil, fmt.Errorf("no image data returned: %w", ErrGeneration)
	}

	data, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image data: %w", err)
	}
	return data, nil
}

// cleanJSONResponse removes markdown code fences some models wrap around
// JSON output.
func cleanJSONResponse(response string) string {
	cleaned := strings.TrimSpace(response)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}
