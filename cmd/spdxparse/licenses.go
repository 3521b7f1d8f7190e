package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gospdx/gospdx"
	"github.com/gospdx/gospdx/cmd/internal/cliutil"
)

func (c *cli) licensesCmd() *cobra.Command {
	var (
		exceptions bool
		paths      bool
	)
	cmd := &cobra.Command{
		Use:   "licenses [FILTER]",
		Short: "List the licenses known to the parser",
		Long: `List the license list in use: the one named by --license-list, else the
first license-list-data directory on the search path, else the built-in
table. FILTER keeps ids containing it, ignoring case.`,
		Example: `  spdxparse licenses gpl
  spdxparse licenses --exceptions
  spdxparse licenses --paths`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if paths {
				found := gospdx.LicenseListSearchPaths()
				if len(found) == 0 {
					fmt.Fprintln(cmd.ErrOrStderr(), "no license list directories found")
				}
				for _, p := range found {
					fmt.Fprintln(w, p)
				}
				return nil
			}

			list, err := c.licenseList()
			if err != nil {
				return err
			}
			var filter string
			if len(args) == 1 {
				filter = strings.ToLower(args[0])
			}
			match := func(id string) bool {
				return filter == "" || strings.Contains(strings.ToLower(id), filter)
			}

			if exceptions {
				t := cliutil.NewTable(w, "ID", "DEPRECATED", "NAME")
				for _, e := range list.Exceptions() {
					if match(e.ID) {
						t.AddRow(e.ID, yesNo(e.Deprecated), e.Name)
					}
				}
				t.Render()
				return nil
			}

			fmt.Fprintf(w, "License list version %s\n\n", list.Version)
			t := cliutil.NewTable(w, "ID", "OSI", "DEPRECATED", "NAME")
			for _, l := range list.Licenses() {
				if match(l.ID) {
					t.AddRow(l.ID, yesNo(l.OSIApproved), yesNo(l.Deprecated), l.Name)
				}
			}
			t.Render()
			return nil
		},
	}
	cmd.Flags().BoolVar(&exceptions, "exceptions", false, "list exceptions instead of licenses")
	cmd.Flags().BoolVar(&paths, "paths", false, "show the license list search path")
	return cmd
}

func (c *cli) licenseList() (*gospdx.LicenseList, error) {
	if dir := c.settings.LicenseListDir; dir != "" {
		return gospdx.LoadLicenseList(dir)
	}
	return gospdx.DiscoverLicenseList(gospdx.WithLogger(c.setupLogger())), nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "-"
}
