package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gospdx/gospdx"
)

// settings is the merged configuration from the config file, the
// environment and the command line, in increasing precedence.
type settings struct {
	LicenseListDir         string   `mapstructure:"license_list_dir"`
	AllowUnknownLicenses   bool     `mapstructure:"allow_unknown_licenses"`
	AllowUnknownExceptions bool     `mapstructure:"allow_unknown_exceptions"`
	Verbose                int      `mapstructure:"verbose"`
	MinSeverity            string   `mapstructure:"min_severity"`
	Ignore                 []string `mapstructure:"ignore"`
}

// flagKeys maps persistent flag names to their config keys.
var flagKeys = map[string]string{
	"license-list":             "license_list_dir",
	"allow-unknown-licenses":   "allow_unknown_licenses",
	"allow-unknown-exceptions": "allow_unknown_exceptions",
	"verbose":                  "verbose",
	"min-severity":             "min_severity",
	"ignore":                   "ignore",
}

func (c *cli) loadSettings(cmd *cobra.Command) error {
	v := viper.New()
	v.SetDefault("min_severity", "warning")

	if c.configFile != "" {
		v.SetConfigFile(c.configFile)
	} else {
		v.SetConfigName(".spdxparse")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	v.SetEnvPrefix("SPDXPARSE")
	v.AutomaticEnv()

	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("binding flag %s: %w", name, err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config file: %w", err)
		}
	}

	var s settings
	if err := v.Unmarshal(&s); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	c.settings = s
	return nil
}

func (s settings) diagnosticConfig() (gospdx.DiagnosticConfig, error) {
	cfg := gospdx.DiagnosticConfig{MinSeverity: gospdx.SeverityWarning, Ignore: s.Ignore}
	if s.MinSeverity == "" {
		return cfg, nil
	}
	sev, err := gospdx.ParseSeverity(s.MinSeverity)
	if err != nil {
		return cfg, err
	}
	cfg.MinSeverity = sev
	return cfg, nil
}
