package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gospdx/gospdx"
	"github.com/gospdx/gospdx/cmd/internal/cliutil"
)

func (c *cli) parseCmd() *cobra.Command {
	var (
		jsonOutput bool
		outputFile string
		strict     bool
	)
	cmd := &cobra.Command{
		Use:   "parse FILE...",
		Short: "Read SPDX documents and summarize them",
		Long: `Read one or more SPDX documents. The format is chosen by extension:
.rdf/.xml (RDF/XML), .json, .yaml/.yml and .spdx/.tv (tag-value).

Exit status is 1 when any document cannot be read, and 2 in strict mode
when a document carries error diagnostics.`,
		Example: `  spdxparse parse sbom.spdx.json
  spdxparse parse --json -o out.json a.rdf b.spdx
  spdxparse parse -v --strict sbom.spdx`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options()
			if err != nil {
				return err
			}
			results, err := gospdx.LoadAll(cmd.Context(), gospdx.File(args...), opts...)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if outputFile != "" {
				f, done, err := cliutil.GetOutput(outputFile)
				if err != nil {
					return err
				}
				defer done()
				w = f
			}

			if jsonOutput {
				if err := writeResultsJSON(w, results); err != nil {
					return err
				}
			} else {
				for i, r := range results {
					if i > 0 {
						fmt.Fprintln(w)
					}
					printResult(w, r)
				}
			}
			return resultStatus(results, strict)
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "write documents as JSON")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit 2 when a document has error diagnostics")
	return cmd
}

func writeResultsJSON(w io.Writer, results []gospdx.Result) error {
	docs := make([]DocumentJSON, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			docs = append(docs, DocumentJSON{
				Path:   r.Path,
				Format: gospdx.FormatOf(r.Path).String(),
				Error:  r.Err.Error(),
			})
			continue
		}
		docs = append(docs, documentJSON(r.Path, r.Document))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(docs)
}

func printResult(w io.Writer, r gospdx.Result) {
	if r.Err != nil {
		cliutil.FprintError(w, "%v", r.Err)
		return
	}
	doc := r.Document
	fmt.Fprintf(w, "%s (%s)\n", r.Path, gospdx.FormatOf(r.Path))
	fmt.Fprintf(w, "  document:  %s (%s)\n", doc.Name, doc.ID)
	fmt.Fprintf(w, "  namespace: %s\n", doc.Namespace)
	if doc.SpecVersion != "" {
		fmt.Fprintf(w, "  version:   %s\n", doc.SpecVersion)
	}
	fmt.Fprintf(w, "  %d packages, %d files, %d snippets, %d relationships\n",
		len(doc.Packages), len(doc.Files), len(doc.Snippets), len(relationshipsJSON(doc)))
	for _, p := range doc.Packages {
		line := "  package " + p.Name
		if p.Version != "" {
			line += " " + p.Version
		}
		if p.LicenseConcluded != nil {
			line += ": " + p.LicenseConcluded.String()
		}
		fmt.Fprintln(w, line)
	}

	if len(doc.Diagnostics) > 0 {
		fmt.Fprintln(w, "  Diagnostics:")
		for _, d := range doc.Diagnostics {
			cliutil.PrintDiagnostic(w, d)
		}
	}
}

// resultStatus maps a batch outcome to the command's exit code.
func resultStatus(results []gospdx.Result, strict bool) error {
	var failed, severe int
	for _, r := range results {
		if r.Err != nil {
			failed++
			continue
		}
		for _, d := range r.Document.Diagnostics {
			if d.Severity.AtLeast(gospdx.SeverityError) {
				severe++
			}
		}
	}
	switch {
	case failed > 0:
		return &codeError{code: exitError, err: fmt.Errorf("%d of %d documents could not be read", failed, len(results))}
	case strict && severe > 0:
		return &codeError{code: exitStrictViolation, err: fmt.Errorf("%d error diagnostics", severe)}
	}
	return nil
}
