package cli

import (
	"fmt"
	"time"

	"github.com/docker/go-units"
	"github.com/spf13/pflag"

	"github.com/sungur/wslpath/internal/codec"
	"github.com/sungur/wslpath/internal/config"
	"github.com/sungur/wslpath/internal/convert"
	"github.com/sungur/wslpath/internal/paths"
)

// direction selects the namespace paths are converted into.
type direction int

const (
	toWSL direction = iota
	toWindows
)

func (d direction) String() string {
	if d == toWindows {
		return "windows"
	}
	return "wsl"
}

// convertOptions is the merged result of config file and flags.
type convertOptions struct {
	pathSep      codec.Separator
	readSep      convert.LineSep
	writeSep     convert.LineSep
	fromFiles    bool
	stream       convert.StreamOptions
	resolve      paths.ResolveOptions
	canonicalize bool
	timeout      time.Duration
}

// addConvertFlags registers the flags shared by wsl and win.
func addConvertFlags(f *pflag.FlagSet) {
	pathSep := codec.Backward
	readSep, writeSep := convert.LF, convert.LF
	f.Var(&pathSep, "path-sep", `Windows path separator: \ or /`)
	f.Var(&readSep, "read-line-sep", "Separator of input path lists: null, LF or CRLF")
	f.Var(&writeSep, "write-line-sep", "Separator of output paths: null, LF or CRLF")
	f.Bool("from-files", false, "Treat arguments as files holding path lists (none or - reads stdin)")
	f.String("mounts", config.DefaultMounts, "Drive mount strategy: fixed or table (live drvfs mounts)")
	f.String("automount-root", paths.DefaultAutomountRoot, "Directory holding drive mounts for --mounts fixed")
	f.String("block-size", units.BytesSize(float64(convert.DefaultBlockSize)), "Read block size for path list files (e.g. 64KiB)")
	f.Int("max-blocks", convert.DefaultMaxBlocks, "Blocks per read from regular files")
	f.Int("min-blocks", convert.DefaultMinBlocks, "Blocks per read from pipes and devices")
}

// resolveOptions merges fileConfig with the flags in f. Flags explicitly
// set by the user win; otherwise config values apply.
func resolveOptions(f *pflag.FlagSet, fileConfig config.Config, dir direction) (convertOptions, error) {
	opts := convertOptions{
		pathSep:  resolveSeparator(f, "path-sep", fileConfig.Separator()),
		readSep:  resolveLineSep(f, "read-line-sep", fileConfig.ReadSep()),
		writeSep: resolveLineSep(f, "write-line-sep", fileConfig.WriteSep()),
		timeout:  fileConfig.Timeout(),
	}
	opts.fromFiles, _ = f.GetBool("from-files")

	stream := fileConfig.StreamOptions()
	if f.Changed("block-size") {
		v, _ := f.GetString("block-size")
		n, err := units.RAMInBytes(v)
		if err != nil || n <= 0 {
			return opts, fmt.Errorf("invalid --block-size %q", v)
		}
		stream.BlockSize = int(n)
	}
	if stream.BlockSize <= 0 {
		stream.BlockSize = convert.DefaultBlockSize
	}
	stream.MaxBlocks = resolveIntFlag(f, "max-blocks", stream.MaxBlocks)
	stream.MinBlocks = resolveIntFlag(f, "min-blocks", stream.MinBlocks)
	if stream.MaxBlocks <= 0 || stream.MinBlocks <= 0 {
		return opts, fmt.Errorf("--max-blocks and --min-blocks must be positive")
	}
	opts.stream = stream

	mounts := paths.MountStrategy(resolveStringFlag(f, "mounts", string(fileConfig.MountStrategy())))
	if mounts != paths.MountsFixed && mounts != paths.MountsTable {
		return opts, fmt.Errorf("invalid --mounts %q (use fixed or table)", mounts)
	}
	opts.resolve = paths.ResolveOptions{
		Mounts:        mounts,
		AutomountRoot: resolveStringFlag(f, "automount-root", fileConfig.AutomountRoot),
	}

	switch dir {
	case toWSL:
		noRootLoop, _ := f.GetBool("no-root-loop")
		opts.resolve.RootLoop = !noRootLoop && fileConfig.RootLoopEnabled()
	case toWindows:
		noCanonicalize, _ := f.GetBool("no-canonicalize")
		opts.canonicalize = !noCanonicalize && fileConfig.CanonicalizeEnabled()
	}
	return opts, nil
}

// resolveStringFlag returns the CLI flag value if explicitly set by the user,
// otherwise the config file value if non-empty, otherwise the flag default.
func resolveStringFlag(f *pflag.FlagSet, name string, configValue string) string {
	if f.Changed(name) {
		val, _ := f.GetString(name)
		return val
	}
	if configValue != "" {
		return configValue
	}
	val, _ := f.GetString(name)
	return val
}

// resolveIntFlag is resolveStringFlag for counts; a config value of 0 is unset.
func resolveIntFlag(f *pflag.FlagSet, name string, configValue int) int {
	if !f.Changed(name) && configValue > 0 {
		return configValue
	}
	val, _ := f.GetInt(name)
	return val
}

func resolveSeparator(f *pflag.FlagSet, name string, configValue codec.Separator) codec.Separator {
	if fl := f.Lookup(name); fl != nil && fl.Changed {
		return *fl.Value.(*codec.Separator)
	}
	return configValue
}

func resolveLineSep(f *pflag.FlagSet, name string, configValue convert.LineSep) convert.LineSep {
	if fl := f.Lookup(name); fl != nil && fl.Changed {
		return *fl.Value.(*convert.LineSep)
	}
	return configValue
}
