package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/doeshing/apidocgen/internal/app"
	"github.com/doeshing/apidocgen/internal/domain"
)

// NewRoutesCommand creates the routes command
func NewRoutesCommand(container *app.Container) *cobra.Command {
	var (
		apiFile   string
		framework string
	)

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List endpoints extracted from a route manifest",
		RunE: func(cmd *cobra.Command, args []string) error {
			if apiFile == "" {
				return fmt.Errorf(ErrAPIFileRequired)
			}
			source, err := container.Routes.Open(apiFile, domain.Framework(framework))
			if err != nil {
				return err
			}
			endpoints, err := source.Extract(cmd.Context())
			if err != nil {
				return err
			}
			listRoutes(cmd.OutOrStdout(), source.Framework(), endpoints)
			return nil
		},
	}

	cmd.Flags().StringVar(&apiFile, "api-file", "", "Route manifest exported from the API source")
	cmd.Flags().StringVar(&framework, "framework", "", "fastapi or flask (default from manifest)")
	return cmd
}

// listRoutes prints one row per endpoint
func listRoutes(out io.Writer, framework domain.Framework, endpoints []domain.EndpointRecord) {
	if len(endpoints) == 0 {
		fmt.Fprintln(out, MsgNoRoutes)
		return
	}
	fmt.Fprintf(out, "Framework: %s\n", framework)
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "METHODS\tPATH\tNAME\tPARAMETERS")
	for _, e := range endpoints {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.MethodsString(), e.Path, e.Name, e.ParametersString())
	}
	tw.Flush()
}
