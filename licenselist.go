package gospdx

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/gospdx/gospdx/spdx"
)

// LicenseList is a table of SPDX license and exception identifiers.
// Identifiers match without regard to case. A LicenseList is read-only
// after loading and safe for concurrent use.
type LicenseList struct {
	// Version is the license list version, e.g. "3.21".
	Version string

	licenses   map[string]*spdx.ListedLicenseInfo
	exceptions map[string]*Exception
}

// Exception is a listed license exception.
type Exception struct {
	ID         string
	Name       string
	Deprecated bool
	SeeAlso    []string
}

func newLicenseList(version string) *LicenseList {
	return &LicenseList{
		Version:    version,
		licenses:   make(map[string]*spdx.ListedLicenseInfo),
		exceptions: make(map[string]*Exception),
	}
}

func (l *LicenseList) addLicense(info *spdx.ListedLicenseInfo) {
	if info.ID == "" {
		return
	}
	l.licenses[strings.ToLower(info.ID)] = info
}

func (l *LicenseList) addException(e *Exception) {
	if e.ID == "" {
		return
	}
	l.exceptions[strings.ToLower(e.ID)] = e
}

// IsLicenseID reports whether id is a listed license.
func (l *LicenseList) IsLicenseID(id string) bool {
	_, ok := l.licenses[strings.ToLower(id)]
	return ok
}

// IsExceptionID reports whether id is a listed exception.
func (l *LicenseList) IsExceptionID(id string) bool {
	_, ok := l.exceptions[strings.ToLower(id)]
	return ok
}

// FindLicenseByID returns the listed license for id.
func (l *LicenseList) FindLicenseByID(id string) (AnyLicense, bool) {
	info, ok := l.licenses[strings.ToLower(id)]
	if !ok {
		return nil, false
	}
	return info, true
}

// FindException returns the listed exception for id.
func (l *LicenseList) FindException(id string) (*Exception, bool) {
	e, ok := l.exceptions[strings.ToLower(id)]
	return e, ok
}

// Licenses returns the listed licenses sorted by id.
func (l *LicenseList) Licenses() []*spdx.ListedLicenseInfo {
	out := make([]*spdx.ListedLicenseInfo, 0, len(l.licenses))
	for _, info := range l.licenses {
		out = append(out, info)
	}
	slices.SortFunc(out, func(a, b *spdx.ListedLicenseInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// Exceptions returns the listed exceptions sorted by id.
func (l *LicenseList) Exceptions() []*Exception {
	out := make([]*Exception, 0, len(l.exceptions))
	for _, e := range l.exceptions {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b *Exception) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// Published license-list-data JSON layout.
type jsonLicenses struct {
	Version  string `json:"licenseListVersion"`
	Licenses []struct {
		ID          string   `json:"licenseId"`
		Name        string   `json:"name"`
		OSIApproved bool     `json:"isOsiApproved"`
		FSFLibre    bool     `json:"isFsfLibre"`
		Deprecated  bool     `json:"isDeprecatedLicenseId"`
		SeeAlso     []string `json:"seeAlso"`
	} `json:"licenses"`
}

type jsonExceptions struct {
	Version    string `json:"licenseListVersion"`
	Exceptions []struct {
		ID         string   `json:"licenseExceptionId"`
		Name       string   `json:"name"`
		Deprecated bool     `json:"isDeprecatedLicenseId"`
		SeeAlso    []string `json:"seeAlso"`
	} `json:"exceptions"`
}

// LoadLicenseList reads licenses.json and exceptions.json from dir, in the
// layout of the published license-list-data repository. dir may be the
// repository root or its json/ directory. exceptions.json is optional.
func LoadLicenseList(dir string) (*LicenseList, error) {
	if _, err := os.Stat(filepath.Join(dir, "licenses.json")); errors.Is(err, os.ErrNotExist) {
		if _, err := os.Stat(filepath.Join(dir, "json", "licenses.json")); err == nil {
			dir = filepath.Join(dir, "json")
		}
	}

	var lic jsonLicenses
	if err := decodeJSONFile(filepath.Join(dir, "licenses.json"), &lic); err != nil {
		return nil, err
	}
	list := newLicenseList(lic.Version)
	for _, l := range lic.Licenses {
		list.addLicense(&spdx.ListedLicenseInfo{
			SimpleLicensingInfo: spdx.SimpleLicensingInfo{ID: l.ID, Name: l.Name, SeeAlso: l.SeeAlso},
			OSIApproved:         l.OSIApproved,
			FSFLibre:            l.FSFLibre,
			Deprecated:          l.Deprecated,
		})
	}

	var exc jsonExceptions
	err := decodeJSONFile(filepath.Join(dir, "exceptions.json"), &exc)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		for _, e := range exc.Exceptions {
			list.addException(&Exception{ID: e.ID, Name: e.Name, Deprecated: e.Deprecated, SeeAlso: e.SeeAlso})
		}
	}
	return list, nil
}

func decodeJSONFile(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck // read-only file
	if err := json.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

// yamlLicenseList is the curated YAML table format.
type yamlLicenseList struct {
	Version  string `yaml:"version"`
	Licenses []struct {
		ID          string   `yaml:"id"`
		Name        string   `yaml:"name"`
		OSIApproved bool     `yaml:"osiApproved"`
		FSFLibre    bool     `yaml:"fsfLibre"`
		Deprecated  bool     `yaml:"deprecated"`
		SeeAlso     []string `yaml:"seeAlso"`
	} `yaml:"licenses"`
	Exceptions []struct {
		ID         string   `yaml:"id"`
		Name       string   `yaml:"name"`
		Deprecated bool     `yaml:"deprecated"`
		SeeAlso    []string `yaml:"seeAlso"`
	} `yaml:"exceptions"`
}

// LoadLicenseListYAML reads a curated license table:
//
//	version: "3.21"
//	licenses:
//	  - id: MIT
//	    name: MIT License
//	    osiApproved: true
//	exceptions:
//	  - id: LLVM-exception
//	    name: LLVM Exception
func LoadLicenseListYAML(r io.Reader) (*LicenseList, error) {
	var y yamlLicenseList
	if err := yaml.NewDecoder(r).Decode(&y); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding license list: %w", err)
	}
	list := newLicenseList(y.Version)
	for _, l := range y.Licenses {
		list.addLicense(&spdx.ListedLicenseInfo{
			SimpleLicensingInfo: spdx.SimpleLicensingInfo{ID: l.ID, Name: l.Name, SeeAlso: l.SeeAlso},
			OSIApproved:         l.OSIApproved,
			FSFLibre:            l.FSFLibre,
			Deprecated:          l.Deprecated,
		})
	}
	for _, e := range y.Exceptions {
		list.addException(&Exception{ID: e.ID, Name: e.Name, Deprecated: e.Deprecated, SeeAlso: e.SeeAlso})
	}
	return list, nil
}

//go:embed data/licenses.yaml
var defaultLicensesYAML string

// DefaultLicenseList returns the built-in table of commonly used license
// and exception identifiers. It is a subset of the published list; load
// the full list with LoadLicenseList or DiscoverLicenseList.
var DefaultLicenseList = sync.OnceValue(func() *LicenseList {
	list, err := LoadLicenseListYAML(strings.NewReader(defaultLicensesYAML))
	if err != nil {
		panic("gospdx: built-in license list: " + err.Error())
	}
	return list
})
