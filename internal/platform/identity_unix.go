//go:build unix

package platform

import (
	"golang.org/x/sys/unix"

	"github.com/sungur/wslpath/internal/paths"
)

func identity(path string) (paths.Identity, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return paths.Identity{}, err
	}
	return paths.Identity{Dev: uint64(st.Dev), Ino: uint64(st.Ino)}, nil
}
