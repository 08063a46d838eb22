// SPDX-License-Identifier: MIT

package correlate

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Usage is printed when the positional arguments are wrong.
const Usage = "usage: correlategm <n_components> <NMF_GM_path> <atlas_tractography_path> <save_directory>"

// Args are the four required positional arguments.
//   - NComponents is kept verbatim: it names the output files even when it
//     is not an integer.
type Args struct {
	NComponents string
	NMFPath     string
	AtlasPath   string
	SaveDir     string
}

// ParseArgs maps os.Args[1:] onto Args.
func ParseArgs(argv []string) (Args, error) {
	if len(argv) != 4 {
		return Args{}, fmt.Errorf("got %d arguments, want 4: %w", len(argv), ErrUsage)
	}
	for i, a := range argv {
		if strings.TrimSpace(a) == "" {
			return Args{}, fmt.Errorf("argument %d is empty: %w", i+1, ErrUsage)
		}
	}
	return Args{NComponents: argv[0], NMFPath: argv[1], AtlasPath: argv[2], SaveDir: argv[3]}, nil
}

// Config holds the optional tuning read from the environment.
type Config struct {
	Verbosity   int     `env:"CORRELATEGM_VERBOSITY"    envDefault:"1"`
	LogFile     string  `env:"CORRELATEGM_LOG_FILE"`
	WidthInches float64 `env:"CORRELATEGM_WIDTH_INCHES" envDefault:"10"`
	DPI         int     `env:"CORRELATEGM_DPI"          envDefault:"100"`
	XLabel      string  `env:"CORRELATEGM_XLABEL"       envDefault:"Atlas component"`
	YLabel      string  `env:"CORRELATEGM_YLABEL"       envDefault:"NMF component"`
	Summary     bool    `env:"CORRELATEGM_SUMMARY"      envDefault:"true"`
}

// ParseEnv loads Config from the process environment.
func ParseEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// ParseEnvFrom loads Config from an explicit variable set instead of the
// process environment.
func ParseEnvFrom(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects values the renderer cannot use.
func (c Config) Validate() error {
	if !(c.WidthInches > 0) {
		return fmt.Errorf("CORRELATEGM_WIDTH_INCHES=%v: %w", c.WidthInches, ErrInvalidConfig)
	}
	if c.DPI <= 0 {
		return fmt.Errorf("CORRELATEGM_DPI=%d: %w", c.DPI, ErrInvalidConfig)
	}
	return nil
}
