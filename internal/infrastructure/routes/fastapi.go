package routes

import (
	"context"
	"fmt"

	"github.com/doeshing/apidocgen/internal/domain"
	"github.com/doeshing/apidocgen/internal/ports"
)

const kindAPIRoute = "api_route"

// FastAPIAdapter reads the routes list of a FastAPI-shaped manifest.
// Only api_route entries are endpoints; mounts, static and websocket routes are skipped.
type FastAPIAdapter struct {
	manifest *Manifest
	appAttr  string
}

// NewFastAPIAdapter creates an adapter over the application stored under appAttr.
func NewFastAPIAdapter(manifest *Manifest, appAttr string) *FastAPIAdapter {
	return &FastAPIAdapter{manifest: manifest, appAttr: appAttr}
}

func (a *FastAPIAdapter) Framework() domain.Framework {
	return domain.FrameworkFastAPI
}

func (a *FastAPIAdapter) Extract(ctx context.Context) ([]domain.EndpointRecord, error) {
	app, ok := a.manifest.App(a.appAttr)
	if !ok {
		return []domain.EndpointRecord{}, nil
	}

	records := make([]domain.EndpointRecord, 0, len(app.Routes))
	for i, route := range app.Routes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if route.Kind != "" && route.Kind != kindAPIRoute {
			continue
		}
		name := route.Name
		if name == "" {
			name = domain.UnnamedAPI
		}
		record := domain.NewEndpointRecord(name, route.Path, route.Methods, route.Params)
		record.SourceCode = domain.StringPtr(route.Source)
		record.Docstring = domain.StringPtr(route.Doc)
		if err := record.Validate(); err != nil {
			return nil, fmt.Errorf("route %d: %w", i, err)
		}
		records = append(records, record)
	}
	return records, nil
}

// SourcePath returns the API source file declared by the manifest.
func (a *FastAPIAdapter) SourcePath() string {
	return a.manifest.SourcePath()
}

// BaseName returns the source file name without extension.
func (a *FastAPIAdapter) BaseName() string {
	return a.manifest.BaseName()
}

var _ ports.RouteSource = (*FastAPIAdapter)(nil)
