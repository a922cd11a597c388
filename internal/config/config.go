// Package config provides the wslpath configuration model, its defaults and
// the typed accessors the CLI builds converters from.
package config

import (
	"time"

	"github.com/docker/go-units"

	"github.com/sungur/wslpath/internal/codec"
	"github.com/sungur/wslpath/internal/convert"
	"github.com/sungur/wslpath/internal/paths"
)

// --- Config ---

// Config represents the wslpath configuration model.
// All fields are optional (zero value = not set). CLI flags take precedence.
type Config struct {
	// Separators
	PathSep      string `yaml:"pathSep,omitempty" validate:"omitempty,pathsep"`           // "\" or "/"
	ReadLineSep  string `yaml:"readLineSep,omitempty" validate:"omitempty,linesep"`       // null, LF or CRLF
	WriteLineSep string `yaml:"writeLineSep,omitempty" validate:"omitempty,linesep"`      // null, LF or CRLF

	// Root resolution
	Mounts        string `yaml:"mounts,omitempty" validate:"omitempty,oneof=fixed table"`
	AutomountRoot string `yaml:"automountRoot,omitempty" validate:"omitempty,startswith=/"`
	RootLoop      *bool  `yaml:"rootLoop,omitempty"` // pointer to distinguish unset from false
	Canonicalize  *bool  `yaml:"canonicalize,omitempty"`

	// Streaming
	BlockSize string `yaml:"blockSize,omitempty" validate:"omitempty,size"` // e.g. 64KiB
	MaxBlocks int    `yaml:"maxBlocks,omitempty" validate:"gte=0"`
	MinBlocks int    `yaml:"minBlocks,omitempty" validate:"gte=0"`

	// Host queries
	QueryTimeout string `yaml:"queryTimeout,omitempty" validate:"omitempty,duration"`
}

// --- Defaults ---

const (
	// DefaultPathSep is the Windows path separator.
	DefaultPathSep = `\`
	// DefaultLineSep separates paths on input and output.
	DefaultLineSep = "LF"
	// DefaultMounts is the drive mount strategy.
	DefaultMounts = string(paths.MountsFixed)
	// DefaultQueryTimeout bounds each Windows command invocation.
	DefaultQueryTimeout = 10 * time.Second
)

// EnvConfigPath names the variable that points at an explicit config file.
const EnvConfigPath = "WSLPATH_CONFIG"

// --- Accessors ---

// Separator returns the configured Windows path separator.
func (c Config) Separator() codec.Separator {
	sep, _ := codec.ParseSeparator(orDefault(c.PathSep, DefaultPathSep))
	return sep
}

// ReadSep returns the separator of input path lists.
func (c Config) ReadSep() convert.LineSep {
	sep, _ := convert.ParseLineSep(orDefault(c.ReadLineSep, DefaultLineSep))
	return sep
}

// WriteSep returns the separator of output path lists.
func (c Config) WriteSep() convert.LineSep {
	sep, _ := convert.ParseLineSep(orDefault(c.WriteLineSep, DefaultLineSep))
	return sep
}

// MountStrategy returns the drive mount strategy.
func (c Config) MountStrategy() paths.MountStrategy {
	return paths.MountStrategy(orDefault(c.Mounts, DefaultMounts))
}

// RootLoopEnabled reports whether root-loop detection runs. Default: true.
func (c Config) RootLoopEnabled() bool {
	return boolPtrDefault(c.RootLoop, true)
}

// CanonicalizeEnabled reports whether WSL paths are cleaned before
// conversion. Default: true.
func (c Config) CanonicalizeEnabled() bool {
	return boolPtrDefault(c.Canonicalize, true)
}

// StreamOptions returns the read sizing for file input. Unset fields keep
// the convert package defaults.
func (c Config) StreamOptions() convert.StreamOptions {
	opts := convert.StreamOptions{MaxBlocks: c.MaxBlocks, MinBlocks: c.MinBlocks}
	if c.BlockSize != "" {
		if n, err := units.RAMInBytes(c.BlockSize); err == nil && n > 0 {
			opts.BlockSize = int(n)
		}
	}
	return opts
}

// Timeout returns the host query timeout.
func (c Config) Timeout() time.Duration {
	if c.QueryTimeout != "" {
		if d, err := time.ParseDuration(c.QueryTimeout); err == nil && d > 0 {
			return d
		}
	}
	return DefaultQueryTimeout
}

// boolPtrDefault dereferences a *bool, returning defaultVal if nil.
func boolPtrDefault(ptr *bool, defaultVal bool) bool {
	if ptr == nil {
		return defaultVal
	}
	return *ptr
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
