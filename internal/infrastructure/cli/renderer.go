package cli

import (
	"fmt"
	"io"

	"github.com/doeshing/apidocgen/internal/application/generate"
)

// RenderGeneration prints where the documentation went and what it covers.
func RenderGeneration(out io.Writer, result generate.Result) {
	fmt.Fprintf(out, "Mode: %s\n", result.Mode.Label())
	if result.Fallback {
		fmt.Fprintln(out, "Warning: prompt version not found, the fallback prompt was used")
	}
	if len(result.Results) > 0 || result.Skipped > 0 {
		fmt.Fprintf(out, "Endpoints documented: %d\n", len(result.Results))
		for _, r := range result.Results {
			fmt.Fprintf(out, "  %-8s %s\n", r.Endpoint.MethodsString(), r.Endpoint.Path)
		}
	}
	if result.Skipped > 0 {
		fmt.Fprintf(out, "Endpoints skipped: %d\n", result.Skipped)
	}
	fmt.Fprintf(out, "Documentation saved to %s\n", result.Path)
}
