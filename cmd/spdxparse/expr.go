package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gospdx/gospdx"
	"github.com/gospdx/gospdx/expr"
)

func (c *cli) exprCmd() *cobra.Command {
	var showTree bool
	cmd := &cobra.Command{
		Use:   "expr EXPRESSION",
		Short: "Parse a license expression",
		Long: `Parse a license expression and print its canonical form, the license
ids it references and the license object it builds. Arguments are joined
with spaces, so the expression need not be quoted.`,
		Example: `  spdxparse expr "MIT OR (Apache-2.0 WITH LLVM-exception)"
  spdxparse expr --tree GPL-2.0-or-later AND LicenseRef-Custom`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options()
			if err != nil {
				return err
			}
			text := strings.Join(args, " ")
			e, err := gospdx.ParseExpression(text, opts...)
			if err != nil {
				return err
			}
			lic, err := gospdx.ParseLicense(text, opts...)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "expression: %s\n", e)
			fmt.Fprintf(w, "license:    %s\n", lic)
			fmt.Fprintf(w, "licenses:   %s\n", strings.Join(expr.LicenseIDs(e), ", "))
			if ex := expr.ExceptionIDs(e); len(ex) > 0 {
				fmt.Fprintf(w, "exceptions: %s\n", strings.Join(ex, ", "))
			}
			if showTree {
				fmt.Fprintln(w, "tree:")
				printTree(w, e, 1)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showTree, "tree", false, "print the syntax tree")
	return cmd
}

func printTree(w io.Writer, e expr.Expression, depth int) {
	indent := strings.Repeat("  ", depth)
	switch n := e.(type) {
	case *expr.SimpleLicense:
		suffix := ""
		if n.OrLater {
			suffix = " (or later)"
		}
		fmt.Fprintf(w, "%slicense %s%s\n", indent, n.ID, suffix)
	case *expr.LicenseReference:
		fmt.Fprintf(w, "%sref %s\n", indent, n.Ref)
	case *expr.With:
		fmt.Fprintf(w, "%swith %s\n", indent, n.ExceptionID)
		printTree(w, n.Expr, depth+1)
	case *expr.And:
		fmt.Fprintf(w, "%sand\n", indent)
		printTree(w, n.Left, depth+1)
		printTree(w, n.Right, depth+1)
	case *expr.Or:
		fmt.Fprintf(w, "%sor\n", indent)
		printTree(w, n.Left, depth+1)
		printTree(w, n.Right, depth+1)
	case *expr.Scoped:
		fmt.Fprintf(w, "%sscope\n", indent)
		printTree(w, n.Inner, depth+1)
	}
}
