package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"

	"github.com/sungur/wslpath/internal/config"
	"github.com/sungur/wslpath/internal/convert"
	"github.com/sungur/wslpath/internal/log"
	"github.com/sungur/wslpath/internal/paths"
	"github.com/sungur/wslpath/internal/platform"
)

// stdinName is the file argument that selects standard input.
const stdinName = "-"

// exitError ends the process with a specific status.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string {
	return e.msg
}

// newHost builds the host that root resolution queries.
var newHost = func(timeout time.Duration) paths.Host {
	return &platform.WSL{Timeout: timeout}
}

// runConvert is the shared RunE of the wsl and win commands.
func runConvert(cmd *cobra.Command, args []string, dir direction) error {
	configPath, _ := cmd.Flags().GetString("config")
	fileConfig, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	opts, err := resolveOptions(cmd.Flags(), fileConfig, dir)
	if err != nil {
		return err
	}

	conv, err := newConverter(cmd.Context(), dir, opts)
	if err != nil {
		return err
	}
	return convertInputs(cmd.OutOrStdout(), cmd.InOrStdin(), conv, opts, args)
}

// newConverter resolves the root context once and builds the converter
// for dir.
func newConverter(ctx context.Context, dir direction, opts convertOptions) (paths.Converter, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	root, err := paths.Resolve(ctx, newHost(opts.timeout), opts.resolve)
	if errors.Is(err, paths.ErrNotWSL) {
		return nil, fmt.Errorf("%w: %s is not set (host: %s)", err, platform.DistroEnv, platform.HostOSName())
	}
	if err != nil {
		return nil, err
	}
	log.Debugf("Resolved %s: %d drive mounts (%s), root loop %q",
		root.UNC, len(root.Mounts), opts.resolve.Mounts, root.RootLoop)

	switch dir {
	case toWindows:
		return &paths.ToWindows{Root: root, Separator: opts.pathSep, Canonicalize: opts.canonicalize}, nil
	default:
		return &paths.ToWSL{Root: root, Separator: opts.pathSep}, nil
	}
}

// convertInputs converts the arguments, or the path lists they name with
// --from-files, writing results to stdout and failures to the log.
//
// Without arguments the path list is read from stdin.
func convertInputs(stdout io.Writer, stdin io.Reader, conv paths.Converter, opts convertOptions, args []string) error {
	out := bufio.NewWriter(stdout)
	var failedPaths, failedSources int

	if !opts.fromFiles && len(args) > 0 {
		// arguments cannot contain NUL, so it delimits them unambiguously
		bulk := convert.NewBulk(conv, convert.Null, opts.writeSep)
		res := bulk.Convert(joinArgs(args))
		if _, err := out.Write(res.Output); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		if err := out.Flush(); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		reportErrors("args", res.Errors)
		failedPaths = len(res.Errors)
	} else {
		names := args
		if len(names) == 0 {
			names = []string{stdinName}
		}
		log.Debugf("Reading path lists in %s blocks", units.BytesSize(float64(opts.stream.ReadSize(0))))
		for _, name := range names {
			bulk := convert.NewBulk(conv, opts.readSep, opts.writeSep)
			n, err := convertSource(out, stdin, name, bulk, opts.stream)
			failedPaths += n
			if err != nil {
				log.Errorf("%s: %v", sourceLabel(name), err)
				failedSources++
			}
		}
	}

	if err := out.Flush(); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	switch {
	case failedSources > 0:
		return &exitError{code: 1, msg: fmt.Sprintf("%d input(s) could not be read", failedSources)}
	case failedPaths > 0:
		return &exitError{code: 2, msg: fmt.Sprintf("%d path(s) could not be converted", failedPaths)}
	}
	return nil
}

// convertSource streams one path list. It returns the number of paths that
// failed and the error that stopped the stream, if any.
func convertSource(out *bufio.Writer, stdin io.Reader, name string, bulk *convert.Bulk, opts convert.StreamOptions) (int, error) {
	s, err := openSource(stdin, name, bulk, opts)
	if err != nil {
		return 0, err
	}
	defer s.Close()

	var failures []*convert.PathError
	var streamErr error
	for res, err := range s.All() {
		if err != nil {
			streamErr = err
			break
		}
		if _, err := out.Write(res.Output); err != nil {
			return len(failures), fmt.Errorf("writing output: %w", err)
		}
		failures = append(failures, res.Errors...)
	}
	if streamErr == nil {
		// an unterminated last path is still a path
		tail := s.ConvertTail()
		if _, err := out.Write(tail.Output); err != nil {
			return len(failures), fmt.Errorf("writing output: %w", err)
		}
		failures = append(failures, tail.Errors...)
	}

	if err := out.Flush(); err != nil {
		return len(failures), fmt.Errorf("writing output: %w", err)
	}
	reportErrors(sourceLabel(name), failures)
	return len(failures), streamErr
}

func openSource(stdin io.Reader, name string, bulk *convert.Bulk, opts convert.StreamOptions) (*convert.Stream, error) {
	if name != stdinName {
		return convert.Open(name, bulk, opts)
	}
	if f, ok := stdin.(*os.File); ok {
		return convert.FromFile(f, bulk, opts)
	}
	return convert.NewStream(stdin, -1, bulk, opts), nil
}

func sourceLabel(name string) string {
	if name == stdinName {
		return "stdin"
	}
	return name
}

// reportErrors writes one diagnostic line per failed path under source.
func reportErrors(source string, errs []*convert.PathError) {
	if len(errs) == 0 {
		return
	}
	lines := make([]string, 0, len(errs))
	for _, pe := range errs {
		lines = append(lines, fmt.Sprintf("%d: %q: %v", pe.Index, pe.Path, pe.Err))
	}
	log.Diagnostic(source, lines)
}

// joinArgs terminates every argument with NUL.
func joinArgs(args []string) []byte {
	n := 0
	for _, a := range args {
		n += len(a) + 1
	}
	buf := make([]byte, 0, n)
	for _, a := range args {
		buf = append(buf, a...)
		buf = append(buf, 0)
	}
	return buf
}
