package vertex

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"

	"searchai/internal/services"
)

const defaultLocation = "us-central1"

// Config captures the Vertex AI project settings.
type Config struct {
	ProjectID string
	Location  string
	Model     string
}

// Client generates text with Gemini models hosted on Vertex AI.
type Client struct {
	cfg    Config
	client *genai.Client
}

// NewClient dials Vertex AI using application default credentials.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	cfg.ProjectID = strings.TrimSpace(cfg.ProjectID)
	cfg.Location = strings.TrimSpace(cfg.Location)
	cfg.Model = strings.TrimSpace(cfg.Model)
	if cfg.ProjectID == "" {
		return nil, errors.New("vertex: project id required")
	}
	if cfg.Location == "" {
		cfg.Location = defaultLocation
	}
	if cfg.Model == "" {
		return nil, errors.New("vertex: model required")
	}
	client, err := genai.NewClient(ctx, cfg.ProjectID, cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("vertex: new client: %w", err)
	}
	return &Client{cfg: cfg, client: client}, nil
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Model returns the configured model identifier.
func (c *Client) Model() string { return c.cfg.Model }

// Complete sends one GenerateContent request.
func (c *Client) Complete(ctx context.Context, req services.CompletionRequest) (string, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return "", errors.New("vertex complete: prompt required")
	}
	name := c.cfg.Model
	if m := strings.TrimSpace(req.Model); m != "" {
		name = m
	}
	model := c.client.GenerativeModel(name)
	configureModel(model, req)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("vertex complete: %w", err)
	}
	return responseText(resp)
}

func configureModel(model *genai.GenerativeModel, req services.CompletionRequest) {
	if system := strings.TrimSpace(req.System); system != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(system)},
		}
	}
	model.GenerationConfig = generationConfig(req)
}

func generationConfig(req services.CompletionRequest) genai.GenerationConfig {
	params := req.Params
	cfg := genai.GenerationConfig{
		Temperature: genai.Ptr(float32(params.Temperature)),
	}
	if params.TopP > 0 {
		cfg.TopP = genai.Ptr(float32(params.TopP))
	}
	if params.TopK > 0 {
		cfg.TopK = genai.Ptr(int32(params.TopK))
	}
	if params.MaxOutputTokens > 0 {
		cfg.MaxOutputTokens = genai.Ptr(int32(params.MaxOutputTokens))
	}
	return cfg
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("vertex complete: no candidates")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("vertex complete: empty content (finish_reason=%s)", candidate.FinishReason)
	}
	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", fmt.Errorf("vertex complete: no text parts (finish_reason=%s)", candidate.FinishReason)
	}
	return text, nil
}
