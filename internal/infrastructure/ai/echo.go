package ai

import (
	"context"

	"github.com/doeshing/apidocgen/internal/domain"
	"github.com/doeshing/apidocgen/internal/ports"
)

// echoProvider returns the prompt unchanged. It needs no credentials, which makes
// it useful for dry runs of the generation pipeline.
type echoProvider struct {
	model domain.ModelDefinition
}

func newEchoProvider(model domain.ModelDefinition) ports.Provider {
	return &echoProvider{model: model}
}

func (p *echoProvider) Name() string {
	return string(domain.ProviderKindEcho)
}

func (p *echoProvider) Model() domain.ModelDefinition {
	return p.model
}

func (p *echoProvider) Generate(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", providerError(p.model, p.Name(), 0, err)
	}
	return prompt, nil
}
