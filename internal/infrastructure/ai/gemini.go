package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	genai "google.golang.org/genai"

	"github.com/doeshing/apidocgen/internal/domain"
	"github.com/doeshing/apidocgen/internal/ports"
)

// geminiProvider calls Google Gemini through the official genai client.
type geminiProvider struct {
	cli    *genai.Client
	model  domain.ModelDefinition
	logger ports.Logger
}

func newGeminiProvider(ctx context.Context, model domain.ModelDefinition, logger ports.Logger) (ports.Provider, error) {
	cfg := &genai.ClientConfig{
		APIKey:  getAPIKey(model),
		Backend: genai.BackendGeminiAPI,
	}
	cli, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, &domain.ConfigError{Field: fmt.Sprintf("models[%s]", model.Name), Err: err}
	}
	return &geminiProvider{cli: cli, model: model, logger: logger}, nil
}

func (g *geminiProvider) Name() string { return string(domain.ProviderKindGemini) }

func (g *geminiProvider) Model() domain.ModelDefinition { return g.model }

func (g *geminiProvider) Generate(ctx context.Context, prompt string) (string, error) {
	started := time.Now()
	temperature := float32(domain.SamplingTemperature)
	config := &genai.GenerateContentConfig{Temperature: &temperature}
	if g.model.MaxTokens > 0 {
		config.MaxOutputTokens = int32(g.model.MaxTokens)
	}
	if system := strings.TrimSpace(g.model.SystemPrompt); system != "" {
		config.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: system}}}
	}

	resp, err := g.cli.Models.GenerateContent(ctx, g.model.ModelID,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		config,
	)
	if err != nil {
		return "", providerError(g.model, g.Name(), 0, err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", providerError(g.model, g.Name(), 0, errors.New("empty response"))
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	text := strings.TrimSpace(b.String())
	if g.logger != nil {
		g.logger.Debug("provider call completed", map[string]interface{}{
			"provider": g.Name(),
			"model":    g.model.ModelID,
			"duration": time.Since(started).String(),
			"chars":    len(text),
		})
	}
	return text, nil
}

var _ ports.Provider = (*geminiProvider)(nil)
