package gospdx

import (
	"bufio"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gospdx/gospdx/internal/types"
)

// EnvLicenseListData names the environment variable that adjusts the
// license list search path. A leading colon appends to the defaults, a
// trailing colon prepends, and anything else replaces them.
const EnvLicenseListData = "SPDX_LICENSE_LIST_DATA"

const licenseListDirective = "licenselistdir"

type editMode int

const (
	editReplace editMode = iota
	editAppend
	editPrepend
)

// pathEdit is one adjustment to the license list search path, taken from
// a config file line or the environment.
type pathEdit struct {
	mode editMode
	dirs []string
}

func (e pathEdit) apply(path []string) []string {
	switch e.mode {
	case editAppend:
		return append(slices.Clip(path), e.dirs...)
	case editPrepend:
		return append(slices.Clone(e.dirs), path...)
	default:
		return slices.Clone(e.dirs)
	}
}

// DiscoverLicenseList loads the first published license list found on the
// search path (see LicenseListSearchPaths). When none is found it returns
// DefaultLicenseList.
func DiscoverLicenseList(opts ...Option) *LicenseList {
	cfg := newConfig(opts)
	logger := types.Logger{L: cfg.logger}
	for _, dir := range licenseListPath(logger) {
		list, err := LoadLicenseList(dir)
		if err != nil {
			logger.Log(slog.LevelDebug, "skipping license list directory",
				slog.String("path", dir), slog.Any("error", err))
			continue
		}
		logger.Log(slog.LevelInfo, "license list loaded",
			slog.String("path", dir),
			slog.String("version", list.Version),
			slog.Int("licenses", len(list.licenses)))
		return list
	}
	logger.Log(slog.LevelDebug, "no license list on search path, using built-in table")
	return DefaultLicenseList()
}

// LicenseListSearchPaths returns the existing directories DiscoverLicenseList
// would try, in order: the defaults adjusted by /etc/spdx.conf,
// ~/.spdx/config and $SPDX_LICENSE_LIST_DATA.
func LicenseListSearchPaths() []string {
	return licenseListPath(types.Logger{})
}

func licenseListPath(logger types.Logger) []string {
	home, _ := os.UserHomeDir()

	path := []string{
		"/usr/share/spdx/license-list-data",
		"/usr/local/share/spdx/license-list-data",
	}
	configs := []string{"/etc/spdx.conf"}
	if home != "" {
		path = slices.Insert(path, 0, filepath.Join(home, ".spdx", "license-list-data"))
		configs = append(configs, filepath.Join(home, ".spdx", "config"))
	}

	for _, cf := range configs {
		edits, err := readConfigEdits(cf)
		if err != nil {
			if !os.IsNotExist(err) {
				logger.Log(slog.LevelDebug, "cannot read spdx config",
					slog.String("path", cf), slog.Any("error", err))
			}
			continue
		}
		for _, e := range edits {
			path = e.apply(path)
		}
	}
	if v := os.Getenv(EnvLicenseListData); v != "" {
		path = parseEnvValue(v).apply(path)
	}
	return existingDirs(path)
}

// parseDirective reads a licenselistdir line from an spdx config file. The
// edit mode may be given as a sign on the directive ("+licenselistdir /p")
// or on the value ("licenselistdir -/p").
func parseDirective(line string) (pathEdit, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 || strings.HasPrefix(fields[0], "#") {
		return pathEdit{}, false
	}
	name, value := fields[0], fields[1]

	mode, name := signMode(name)
	if name != licenseListDirective {
		return pathEdit{}, false
	}
	if mode == editReplace {
		mode, value = signMode(value)
	}
	return pathEdit{mode: mode, dirs: splitDirs(value)}, true
}

func signMode(s string) (editMode, string) {
	if rest, ok := strings.CutPrefix(s, "+"); ok {
		return editAppend, rest
	}
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		return editPrepend, rest
	}
	return editReplace, s
}

// parseEnvValue reads $SPDX_LICENSE_LIST_DATA.
func parseEnvValue(v string) pathEdit {
	if rest, ok := strings.CutPrefix(v, ":"); ok {
		return pathEdit{mode: editAppend, dirs: splitDirs(rest)}
	}
	if rest, ok := strings.CutSuffix(v, ":"); ok {
		return pathEdit{mode: editPrepend, dirs: splitDirs(rest)}
	}
	return pathEdit{mode: editReplace, dirs: splitDirs(v)}
}

func readConfigEdits(path string) ([]pathEdit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck // read-only

	var edits []pathEdit
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if e, ok := parseDirective(sc.Text()); ok {
			edits = append(edits, e)
		}
	}
	return edits, sc.Err()
}

func splitDirs(s string) []string {
	return slices.DeleteFunc(strings.Split(s, ":"), func(d string) bool { return d == "" })
}

// existingDirs drops duplicates and entries that are not directories,
// keeping the first occurrence of each.
func existingDirs(path []string) []string {
	var out []string
	for _, p := range path {
		if slices.Contains(out, p) {
			continue
		}
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			out = append(out, p)
		}
	}
	return out
}
