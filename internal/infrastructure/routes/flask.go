package routes

import (
	"context"
	"fmt"

	"github.com/doeshing/apidocgen/internal/domain"
	"github.com/doeshing/apidocgen/internal/ports"
)

// implicitMethods are added to every Flask rule by the framework itself.
var implicitMethods = map[string]struct{}{"HEAD": {}, "OPTIONS": {}}

// FlaskAdapter reads the url_map of a Flask-shaped manifest.
type FlaskAdapter struct {
	manifest *Manifest
	appAttr  string
}

// NewFlaskAdapter creates an adapter over the application stored under appAttr.
func NewFlaskAdapter(manifest *Manifest, appAttr string) *FlaskAdapter {
	return &FlaskAdapter{manifest: manifest, appAttr: appAttr}
}

func (a *FlaskAdapter) Framework() domain.Framework {
	return domain.FrameworkFlask
}

func (a *FlaskAdapter) Extract(ctx context.Context) ([]domain.EndpointRecord, error) {
	app, ok := a.manifest.App(a.appAttr)
	if !ok {
		return []domain.EndpointRecord{}, nil
	}

	records := make([]domain.EndpointRecord, 0, len(app.URLMap))
	for _, rule := range app.URLMap {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record := domain.NewEndpointRecord(rule.Endpoint, rule.Rule, explicitMethods(rule.Methods), rule.Arguments)
		if len(record.Methods) == 0 {
			continue
		}
		record.SourceCode = domain.StringPtr(rule.Source)
		record.Docstring = domain.StringPtr(rule.Doc)
		if err := record.Validate(); err != nil {
			return nil, fmt.Errorf("rule %s: %w", rule.Rule, err)
		}
		records = append(records, record)
	}
	return records, nil
}

func explicitMethods(methods []string) []string {
	normalized := domain.NormalizeMethods(methods)
	out := normalized[:0]
	for _, method := range normalized {
		if _, skip := implicitMethods[method]; skip {
			continue
		}
		out = append(out, method)
	}
	return out
}

// SourcePath returns the API source file declared by the manifest.
func (a *FlaskAdapter) SourcePath() string {
	return a.manifest.SourcePath()
}

// BaseName returns the source file name without extension.
func (a *FlaskAdapter) BaseName() string {
	return a.manifest.BaseName()
}

var _ ports.RouteSource = (*FlaskAdapter)(nil)
