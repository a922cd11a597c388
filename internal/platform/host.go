package platform

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"time"

	"github.com/sungur/wslpath/internal/paths"
)

// DistroEnv names the variable WSL sets to the distribution name.
const DistroEnv = "WSL_DISTRO_NAME"

// DefaultInterpreter is the Windows command interpreter reached through
// WSL interop.
const DefaultInterpreter = "cmd.exe"

// DefaultQueryTimeout bounds each Windows command invocation.
const DefaultQueryTimeout = 10 * time.Second

// ErrEnvUnset is returned by WindowsEnv for a variable that is not set.
var ErrEnvUnset = errors.New("variable not set")

// envNamePattern matches the variable names WindowsEnv will pass to the
// interpreter. Anything else could be interpreted by cmd.exe.
var envNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_()]*$`)

// WSL is the live host. The zero value is ready to use.
type WSL struct {
	// Interpreter overrides DefaultInterpreter.
	Interpreter string
	// Timeout overrides DefaultQueryTimeout.
	Timeout time.Duration
}

var _ paths.Host = (*WSL)(nil)

// DistroName returns the WSL distribution name.
func (w *WSL) DistroName() (string, bool) {
	name, ok := os.LookupEnv(DistroEnv)
	return name, ok && name != ""
}

// WindowsEnv reads a Windows environment variable by running
// `cmd.exe /c echo %NAME%`. The trailing CR-LF is trimmed.
func (w *WSL) WindowsEnv(ctx context.Context, name string) ([]byte, error) {
	if !envNamePattern.MatchString(name) {
		return nil, fmt.Errorf("invalid variable name %q", name)
	}
	interp := w.Interpreter
	if interp == "" {
		interp = DefaultInterpreter
	}
	if !CommandExists(interp) {
		return nil, fmt.Errorf("%s not found in PATH (is Windows interop enabled?)", interp)
	}
	timeout := w.Timeout
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ref := "%" + name + "%"
	cmd := exec.CommandContext(ctx, interp, "/c", "echo", ref)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", interp, err)
	}
	return parseEcho(out, ref)
}

// parseEcho trims the interpreter's line ending. cmd.exe echoes an unset
// %NAME% back verbatim.
func parseEcho(out []byte, ref string) ([]byte, error) {
	out = bytes.TrimSuffix(out, []byte("\r\n"))
	out = bytes.TrimSuffix(out, []byte("\n"))
	if string(out) == ref {
		return nil, ErrEnvUnset
	}
	return out, nil
}

// DrvfsMounts lists the mounted Windows drives.
func (w *WSL) DrvfsMounts(ctx context.Context) ([]paths.Mount, error) {
	return drvfsMounts(ctx)
}

// ReadDir returns the entry names of dir.
func (w *WSL) ReadDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

// Identity returns the device and inode of path, following symlinks.
func (w *WSL) Identity(path string) (paths.Identity, error) {
	return identity(path)
}
