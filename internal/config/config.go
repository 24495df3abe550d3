// Package config resolves the capability flags and inspector settings for a
// run from built-in profiles, an optional profile file and PARSIFAL_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"

	"parsifal/formval"
)

const (
	ProfileStandards = "standards"
	ProfileLegacy    = "legacy"

	DefaultSelector = "input, select, textarea, button, option"
	DefaultTimeout  = 25 * time.Second

	envPrefix = "PARSIFAL"
)

// ErrUnknownProfile is returned for a profile name with no built-in flags.
var ErrUnknownProfile = errors.New("config: unknown profile")

var profiles = map[string]formval.Flags{
	ProfileStandards: formval.Standards(),
	ProfileLegacy:    formval.Legacy(),
}

// Config is the effective configuration of one run.
type Config struct {
	Profile  string        `mapstructure:"profile"`
	Flags    formval.Flags `mapstructure:"flags"`
	Probe    bool          `mapstructure:"probe"`
	Selector string        `mapstructure:"selector"`
	Timeout  time.Duration `mapstructure:"timeout"`
	LogLevel string        `mapstructure:"log_level"`
}

// LoadOptions selects the sources Load reads. Empty fields fall back to the
// file, then the environment, then defaults.
type LoadOptions struct {
	Path    string
	Profile string
}

// Profiles lists the built-in profile names.
func Profiles() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ProfileFlags returns the flags of a built-in profile.
func ProfileFlags(name string) (formval.Flags, error) {
	f, ok := profiles[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return formval.Flags{}, fmt.Errorf("%w %q (known: %s)", ErrUnknownProfile, name, strings.Join(Profiles(), ", "))
	}
	return f, nil
}

// Load builds the Config. Flag values missing from every source come from
// the selected profile.
func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.Path != "" {
		if _, err := os.Stat(opts.Path); err != nil {
			return nil, fmt.Errorf("load config %s: %w", opts.Path, err)
		}
		v.SetConfigFile(opts.Path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("load config %s: %w", opts.Path, err)
		}
	}

	profile := opts.Profile
	if profile == "" {
		profile = v.GetString("profile")
	}
	if profile == "" {
		profile = ProfileStandards
	}
	base, err := ProfileFlags(profile)
	if err != nil {
		return nil, err
	}

	v.SetDefault("profile", profile)
	v.SetDefault("flags.on", base.On)
	v.SetDefault("flags.disabled", base.Disabled)
	v.SetDefault("flags.attributes", base.Attributes)
	v.SetDefault("flags.xml", base.XML)
	v.SetDefault("flags.html", base.HTML)
	v.SetDefault("probe", false)
	v.SetDefault("selector", DefaultSelector)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("log_level", "info")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if opts.Profile != "" {
		cfg.Profile = strings.ToLower(strings.TrimSpace(opts.Profile))
	}
	if strings.TrimSpace(cfg.Selector) == "" {
		cfg.Selector = DefaultSelector
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &cfg, nil
}
