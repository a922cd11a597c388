// Package platform detects the host environment and answers the host
// queries path resolution needs: the distribution name, Windows environment
// variables, drvfs mounts and filesystem identity.
package platform

import (
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"
)

// HostPlatform represents the detected host operating system environment.
type HostPlatform string

const (
	// WindowsWSL is Windows Subsystem for Linux.
	WindowsWSL HostPlatform = "windows-wsl"
	// WindowsNative is native Windows.
	WindowsNative HostPlatform = "windows-native"
	// MacOS is macOS.
	MacOS HostPlatform = "macos"
	// Linux is native Linux.
	Linux HostPlatform = "linux"
)

var (
	detectedPlatform HostPlatform
	detectOnce       sync.Once
)

// DetectHost returns the current host platform, caching the result.
//
// Detection logic:
//   - runtime.GOOS == "windows" -> WindowsNative
//   - runtime.GOOS == "darwin"  -> MacOS
//   - runtime.GOOS == "linux" + /proc/version contains "microsoft" -> WindowsWSL
//   - runtime.GOOS == "linux" (fallback) -> Linux
func DetectHost() HostPlatform {
	detectOnce.Do(func() {
		detectedPlatform = detect(runtime.GOOS, isWSL)
	})
	return detectedPlatform
}

func detect(goos string, wsl func() bool) HostPlatform {
	switch goos {
	case "windows":
		return WindowsNative
	case "darwin":
		return MacOS
	case "linux":
		if wsl() {
			return WindowsWSL
		}
		return Linux
	default:
		// Unknown OS, assume Linux-like behavior
		return Linux
	}
}

// isWSL checks if running inside WSL by reading /proc/version.
func isWSL() bool {
	// Check /proc/version for "microsoft" (covers WSL1 and WSL2)
	data, err := os.ReadFile("/proc/version")
	if err == nil && strings.Contains(strings.ToLower(string(data)), "microsoft") {
		return true
	}
	// Fallback: check WSL-specific environment variables
	return os.Getenv(DistroEnv) != "" || os.Getenv("WSLENV") != ""
}

// HostOSName returns a human-readable OS name string.
func HostOSName() string {
	switch DetectHost() {
	case WindowsNative:
		return "Windows"
	case WindowsWSL:
		return "Windows (WSL)"
	case MacOS:
		return "macOS"
	case Linux:
		return "Linux"
	default:
		return "Unknown"
	}
}

// CommandExists checks whether a command is available in the system PATH.
func CommandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
