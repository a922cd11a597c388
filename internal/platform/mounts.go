package platform

import (
	"context"
	"strings"

	"github.com/shirou/gopsutil/v3/disk"

	"github.com/sungur/wslpath/internal/paths"
)

// drvfsMounts reads the mount table and keeps the Windows drive mounts.
// WSL1 mounts drives as drvfs; WSL2 mounts them over 9p with aname=drvfs.
func drvfsMounts(ctx context.Context) ([]paths.Mount, error) {
	parts, err := disk.PartitionsWithContext(ctx, true)
	if err != nil {
		return nil, err
	}
	var mounts []paths.Mount
	for _, p := range parts {
		if m, ok := drvfsMount(p); ok {
			mounts = append(mounts, m)
		}
	}
	return mounts, nil
}

func drvfsMount(p disk.PartitionStat) (paths.Mount, bool) {
	switch p.Fstype {
	case "drvfs":
		return paths.Mount{Path: p.Mountpoint, Windows: p.Device}, true
	case "9p":
		for _, opt := range p.Opts {
			if !strings.HasPrefix(opt, "aname=drvfs") {
				continue
			}
			// aname=drvfs;path=C:\;uid=1000;...
			for _, field := range strings.Split(opt, ";") {
				if win, ok := strings.CutPrefix(field, "path="); ok {
					return paths.Mount{Path: p.Mountpoint, Windows: win}, true
				}
			}
			return paths.Mount{Path: p.Mountpoint, Windows: p.Device}, true
		}
	}
	return paths.Mount{}, false
}
