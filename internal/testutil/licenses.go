// Package testutil provides fixtures and a fixed license table for tests.
package testutil

import (
	"strings"

	"github.com/gospdx/gospdx/spdx"
)

// LicenseTable is a small in-memory license and exception list.
// Lookups ignore case, as SPDX identifiers do.
type LicenseTable struct {
	licenses   map[string]spdx.AnyLicense
	exceptions map[string]string
}

// MITText is the license text carried by the MIT entry.
const MITText = "Permission is hereby granted, free of charge, to any person obtaining a copy..."

// Licenses returns a table with a handful of common licenses and
// exceptions. MIT carries full text; the others carry partial metadata.
// GPL-2.0-with-autoconf-exception is a deprecated listed id whose name
// contains "with".
func Licenses() *LicenseTable {
	t := &LicenseTable{
		licenses:   make(map[string]spdx.AnyLicense),
		exceptions: make(map[string]string),
	}
	t.licenses["mit"] = &spdx.License{
		SimpleLicensingInfo: spdx.SimpleLicensingInfo{
			ID:      "MIT",
			Name:    "MIT License",
			SeeAlso: []string{"https://opensource.org/licenses/MIT"},
		},
		Text:        MITText,
		OSIApproved: true,
		FSFLibre:    true,
	}
	for _, l := range []struct {
		id, name   string
		osi, depr bool
	}{
		{"Apache-2.0", "Apache License 2.0", true, false},
		{"GPL-2.0", "GNU General Public License v2.0 only", true, true},
		{"GPL-2.0-only", "GNU General Public License v2.0 only", true, false},
		{"GPL-2.0-or-later", "GNU General Public License v2.0 or later", true, false},
		{"GPL-3.0", "GNU General Public License v3.0 only", true, true},
		{"LGPL-2.1", "GNU Lesser General Public License v2.1 only", true, true},
		{"BSD-2-Clause", "BSD 2-Clause \"Simplified\" License", true, false},
		{"BSD-3-Clause", "BSD 3-Clause \"New\" or \"Revised\" License", true, false},
		{"MPL-2.0", "Mozilla Public License 2.0", true, false},
		{"CC0-1.0", "Creative Commons Zero v1.0 Universal", false, false},
		{"ISC", "ISC License", true, false},
		{"EPL-1.0", "Eclipse Public License 1.0", true, false},
		{"GPL-2.0-with-autoconf-exception", "GNU General Public License v2.0 w/Autoconf exception", false, true},
	} {
		t.licenses[strings.ToLower(l.id)] = &spdx.ListedLicenseInfo{
			SimpleLicensingInfo: spdx.SimpleLicensingInfo{ID: l.id, Name: l.name},
			OSIApproved:         l.osi,
			Deprecated:          l.depr,
		}
	}
	for _, id := range []string{
		"Autoconf-exception-2.0",
		"Classpath-exception-2.0",
		"LLVM-exception",
		"Bison-exception-2.2",
	} {
		t.exceptions[strings.ToLower(id)] = id
	}
	return t
}

// IsLicenseID reports whether id is a listed license.
func (t *LicenseTable) IsLicenseID(id string) bool {
	_, ok := t.licenses[strings.ToLower(id)]
	return ok
}

// IsExceptionID reports whether id is a listed exception.
func (t *LicenseTable) IsExceptionID(id string) bool {
	_, ok := t.exceptions[strings.ToLower(id)]
	return ok
}

// Find returns the listed license for id.
func (t *LicenseTable) Find(id string) (spdx.AnyLicense, bool) {
	l, ok := t.licenses[strings.ToLower(id)]
	return l, ok
}
