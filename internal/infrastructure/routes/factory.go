package routes

import (
	"fmt"
	"strings"

	"github.com/doeshing/apidocgen/internal/domain"
	"github.com/doeshing/apidocgen/internal/ports"
)

// Factory opens route manifests with the adapter matching their framework.
type Factory struct {
	appAttr string
}

// NewFactory creates a Factory reading the application stored under appAttr.
func NewFactory(appAttr string) *Factory {
	if appAttr == "" {
		appAttr = domain.DefaultAppAttr
	}
	return &Factory{appAttr: appAttr}
}

// Open loads the manifest and returns its adapter. An explicit framework wins over
// the manifest's own declaration.
func (f *Factory) Open(manifestPath string, framework domain.Framework) (ports.RouteSource, error) {
	manifest, err := LoadManifest(manifestPath)
	if err != nil {
		return nil, err
	}
	return f.ForManifest(manifest, framework)
}

// ForManifest returns the adapter for an already loaded manifest.
func (f *Factory) ForManifest(manifest *Manifest, framework domain.Framework) (ports.RouteSource, error) {
	if framework == "" {
		framework = domain.Framework(strings.ToLower(strings.TrimSpace(manifest.Framework)))
	}
	switch framework {
	case domain.FrameworkFastAPI, "":
		return NewFastAPIAdapter(manifest, f.appAttr), nil
	case domain.FrameworkFlask:
		return NewFlaskAdapter(manifest, f.appAttr), nil
	default:
		return nil, &domain.ConfigError{Field: "framework", Err: fmt.Errorf("%w: %q", domain.ErrUnsupportedFramework, framework)}
	}
}

var _ ports.RouteSourceFactory = (*Factory)(nil)
