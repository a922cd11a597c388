package paths

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
)

// Prefixes of the network path that reaches a distribution's root from
// Windows. wsl.localhost replaced wsl$ in newer Windows builds; both work.
const (
	uncPrefix      = "//wsl$/"
	uncAliasPrefix = "//wsl.localhost/"
)

// primaryDrive holds the Windows user profiles and the Store package that
// contains the distribution's root filesystem.
const primaryDrive = 'c'

// MountStrategy selects how drive letters map to WSL mount points.
type MountStrategy string

const (
	// MountsFixed maps every drive letter X to <automount root>x.
	MountsFixed MountStrategy = "fixed"
	// MountsTable reads the drvfs entries of the live mount table.
	MountsTable MountStrategy = "table"
)

// DefaultAutomountRoot is WSL's default [automount] root.
const DefaultAutomountRoot = "/mnt/"

// Identity is the filesystem identity of a path.
type Identity struct {
	Dev uint64
	Ino uint64
}

// Mount is one drvfs mount-table entry.
type Mount struct {
	// Path is the WSL mount point, e.g. /mnt/c.
	Path string
	// Windows is the mounted Windows path, e.g. C:\.
	Windows string
}

// Host answers the queries Resolve needs. platform.WSL is the real
// implementation.
type Host interface {
	// DistroName returns the WSL distribution name.
	DistroName() (string, bool)
	// WindowsEnv returns the value of a Windows environment variable.
	WindowsEnv(ctx context.Context, name string) ([]byte, error)
	// DrvfsMounts lists mounted Windows drives.
	DrvfsMounts(ctx context.Context) ([]Mount, error)
	// ReadDir lists the entry names of a directory.
	ReadDir(dir string) ([]string, error)
	// Identity returns the device and inode of path.
	Identity(path string) (Identity, error)
}

// DriveMount maps a lower-case drive letter to its WSL mount point.
type DriveMount struct {
	Letter byte
	Path   []byte
}

// Root is the resolved context shared by every conversion. It is never
// modified after Resolve returns.
type Root struct {
	// UNC is the network root of the distribution, e.g. //wsl$/Ubuntu.
	UNC []byte
	// UNCAliases are other network roots accepted on input.
	UNCAliases [][]byte
	// Mounts lists the mounted drives.
	Mounts []DriveMount
	// RootLoop is the path, relative to the RootLoopDrive mount, at which
	// the distribution's own root reappears. Empty when detection is off.
	RootLoop      []byte
	RootLoopDrive byte
}

// ResolveOptions configures Resolve.
type ResolveOptions struct {
	Mounts        MountStrategy
	AutomountRoot string
	RootLoop      bool
}

// NewRoot builds a Root for distro using the fixed mount convention under
// automountRoot. It performs no host queries.
func NewRoot(distro, automountRoot string) *Root {
	return &Root{
		UNC:        []byte(uncPrefix + distro),
		UNCAliases: [][]byte{[]byte(uncAliasPrefix + distro)},
		Mounts:     FixedMounts(automountRoot),
	}
}

// FixedMounts returns the mounts of all 26 drive letters under
// automountRoot.
func FixedMounts(automountRoot string) []DriveMount {
	if automountRoot == "" {
		automountRoot = DefaultAutomountRoot
	}
	base := strings.TrimRight(automountRoot, "/") + "/"
	mounts := make([]DriveMount, 0, 26)
	for letter := byte('a'); letter <= 'z'; letter++ {
		mounts = append(mounts, DriveMount{Letter: letter, Path: []byte(base + string(letter))})
	}
	return mounts
}

// Resolve queries host once and builds the Root.
func Resolve(ctx context.Context, host Host, opts ResolveOptions) (*Root, error) {
	distro, ok := host.DistroName()
	if !ok || distro == "" {
		return nil, ErrNotWSL
	}
	root := NewRoot(distro, opts.AutomountRoot)

	switch opts.Mounts {
	case MountsFixed, "":
	case MountsTable:
		mounts, err := host.DrvfsMounts(ctx)
		if err != nil {
			return nil, &MountError{Err: err}
		}
		root.Mounts = tableMounts(mounts)
	default:
		return nil, fmt.Errorf("unknown mount strategy %q", opts.Mounts)
	}

	if opts.RootLoop {
		loop, err := findRootLoop(ctx, host, root)
		if err != nil {
			return nil, err
		}
		root.RootLoop = loop
		root.RootLoopDrive = primaryDrive
	}
	return root, nil
}

// Mount returns the mount point of a drive letter.
func (r *Root) Mount(letter byte) ([]byte, bool) {
	letter = toLower(letter)
	for _, m := range r.Mounts {
		if m.Letter == letter {
			return m.Path, true
		}
	}
	return nil, false
}

// driveOf finds the mount that contains the WSL path p. rest is the part of
// p after the mount point and its separator.
func (r *Root) driveOf(p []byte) (letter byte, rest []byte, ok bool) {
	best := -1
	for i, m := range r.Mounts {
		if !bytes.HasPrefix(p, m.Path) || !atBoundary(p, len(m.Path), '/') {
			continue
		}
		if best < 0 || len(m.Path) > len(r.Mounts[best].Path) {
			best = i
		}
	}
	if best < 0 {
		return 0, nil, false
	}
	m := r.Mounts[best]
	rest = p[len(m.Path):]
	if len(rest) > 0 {
		rest = rest[1:]
	}
	return m.Letter, rest, true
}

// tableMounts keeps the entries whose Windows side is a drive root.
func tableMounts(mounts []Mount) []DriveMount {
	var out []DriveMount
	for _, m := range mounts {
		w := m.Windows
		if len(w) < 2 || !isASCIILetter(w[0]) || w[1] != ':' {
			continue
		}
		if rest := strings.Trim(w[2:], `\/`); rest != "" {
			continue
		}
		mp := strings.TrimRight(m.Path, "/")
		if mp == "" {
			continue
		}
		out = append(out, DriveMount{Letter: toLower(w[0]), Path: []byte(mp)})
	}
	return out
}

// findRootLoop searches the current Windows user's Store packages for the
// directory that is the distribution's own root.
func findRootLoop(ctx context.Context, host Host, root *Root) ([]byte, error) {
	mount, ok := root.Mount(primaryDrive)
	if !ok {
		return nil, fmt.Errorf("%w: drive %c is not mounted", ErrRootLoopNotFound, toUpper(primaryDrive))
	}
	self, err := host.Identity("/")
	if err != nil {
		return nil, fmt.Errorf("stat /: %w", err)
	}

	user, err := host.WindowsEnv(ctx, "USERNAME")
	if err != nil {
		return nil, &EnvQueryError{Var: "USERNAME", Err: err}
	}
	user = bytes.TrimSuffix(user, []byte("\r\n"))
	if len(user) == 0 {
		return nil, &EnvQueryError{Var: "USERNAME", Err: errors.New("empty value")}
	}

	rel := path.Join("Users", string(user), "AppData/Local/Packages")
	packages := path.Join(string(mount), rel)
	entries, err := host.ReadDir(packages)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrRootLoopNotFound, packages, err)
	}
	for _, name := range entries {
		candidate := path.Join(rel, name, "LocalState/rootfs")
		id, err := host.Identity(path.Join(string(mount), candidate))
		if err != nil {
			continue
		}
		if id == self {
			return []byte(candidate), nil
		}
	}
	return nil, ErrRootLoopNotFound
}
