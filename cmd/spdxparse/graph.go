package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gospdx/gospdx"
	"github.com/gospdx/gospdx/internal/graph"
	"github.com/gospdx/gospdx/spdx"
)

func (c *cli) graphCmd() *cobra.Command {
	var (
		relTypes []string
		strict   bool
	)
	cmd := &cobra.Command{
		Use:   "graph FILE",
		Short: "Analyze a document's relationship graph",
		Long: `Build the graph of a document's relationships and print its cycles and a
dependency order (targets before the elements that relate to them).
--type restricts the edges to the named relationship types.`,
		Example: `  spdxparse graph sbom.spdx.json
  spdxparse graph --type DEPENDS_ON --type CONTAINS --strict sbom.rdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options()
			if err != nil {
				return err
			}
			doc, err := gospdx.ReadFile(args[0], opts...)
			if err != nil {
				return err
			}

			types := make([]spdx.RelationshipType, 0, len(relTypes))
			for _, t := range relTypes {
				types = append(types, spdx.RelationshipType(strings.ToUpper(t)))
			}
			g := graph.FromDocument(doc, types...)

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%d elements\n", g.Len())

			cycles := g.FindCycles()
			if len(cycles) > 0 {
				fmt.Fprintln(w, "\nCycles:")
				for _, cyc := range cycles {
					fmt.Fprintf(w, "  %s\n", strings.Join(cyc, " -> "))
				}
			}

			order, cyclic := g.DependencyOrder()
			fmt.Fprintln(w, "\nDependency order:")
			for i, id := range order {
				fmt.Fprintf(w, "  %3d. %s\n", i+1, id)
			}
			if len(cyclic) > 0 {
				fmt.Fprintf(w, "\nUnordered (on or behind a cycle): %s\n", strings.Join(cyclic, ", "))
			}

			if strict && len(cycles) > 0 {
				return &codeError{code: exitStrictViolation, err: fmt.Errorf("%d relationship cycles", len(cycles))}
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&relTypes, "type", nil, "relationship types to follow (default all)")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit 2 when the graph has cycles")
	return cmd
}
