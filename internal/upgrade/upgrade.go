// Package upgrade replaces the running wslpath binary with the latest
// GitHub release.
package upgrade

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/creativeprojects/go-selfupdate"
)

const slug = "sungur/wslpath"

// devVersion marks unreleased builds; any release is offered to them.
const devVersion = "dev"

// ErrNoRelease is returned by Apply for a Release not found by Latest.
var ErrNoRelease = errors.New("no release to apply")

// Release is a published wslpath version newer than the running one.
type Release struct {
	Version string
	Notes   string
	asset   *selfupdate.Release
}

func updater() (*selfupdate.Updater, error) {
	source, err := selfupdate.NewGitHubSource(selfupdate.GitHubConfig{})
	if err != nil {
		return nil, fmt.Errorf("github source: %w", err)
	}
	u, err := selfupdate.NewUpdater(selfupdate.Config{Source: source})
	if err != nil {
		return nil, fmt.Errorf("updater: %w", err)
	}
	return u, nil
}

// Latest returns the newest release if it supersedes current, or nil when
// current is up to date.
func Latest(ctx context.Context, current string) (*Release, error) {
	u, err := updater()
	if err != nil {
		return nil, err
	}
	rel, found, err := u.DetectLatest(ctx, selfupdate.ParseSlug(slug))
	if err != nil {
		return nil, fmt.Errorf("detecting latest release: %w", err)
	}
	if !found || (!isDevBuild(current) && !rel.GreaterThan(current)) {
		return nil, nil
	}
	return &Release{Version: rel.Version(), Notes: rel.ReleaseNotes, asset: rel}, nil
}

// Apply downloads rel and replaces the running executable with it.
func Apply(ctx context.Context, rel *Release) error {
	if rel == nil || rel.asset == nil {
		return ErrNoRelease
	}
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locating executable: %w", err)
	}
	u, err := updater()
	if err != nil {
		return err
	}
	if err := u.UpdateTo(ctx, rel.asset, exe); err != nil {
		return fmt.Errorf("replacing %s: %w", exe, err)
	}
	return nil
}

func isDevBuild(version string) bool {
	return version == "" || version == devVersion
}

// VersionString describes the build: version, short commit, build date and
// platform.
func VersionString(version, commit, date string) string {
	var b strings.Builder
	b.WriteString("wslpath ")
	b.WriteString(version)
	if commit != "" {
		fmt.Fprintf(&b, " (%.7s)", commit)
	}
	if date != "" {
		b.WriteString(" built " + date)
	}
	b.WriteString(" " + runtime.GOOS + "/" + runtime.GOARCH)
	return b.String()
}
