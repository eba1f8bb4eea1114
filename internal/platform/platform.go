package platform

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Platform identifies a host operating system family a task can target.
type Platform string

const (
	Windows Platform = "windows"
	MacOS   Platform = "macos"
	Linux   Platform = "linux"
)

// ErrUnknown is returned by Parse for identifiers outside the supported set.
var ErrUnknown = errors.New("unknown platform")

// Supported lists the platforms a task may declare, in display order.
var Supported = []Platform{Windows, MacOS, Linux}

// Parse maps a case-insensitive identifier onto a supported platform.
func Parse(s string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "windows":
		return Windows, nil
	case "macos":
		return MacOS, nil
	case "linux":
		return Linux, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknown, s)
	}
}

// FromGOOS translates a Go GOOS value. Hosts outside the supported set
// come back as a Platform that is not Known.
func FromGOOS(goos string) Platform {
	switch goos {
	case "windows":
		return Windows
	case "darwin":
		return MacOS
	case "linux":
		return Linux
	default:
		return Platform(goos)
	}
}

// Host returns the platform of the running process.
func Host() Platform {
	return FromGOOS(runtime.GOOS)
}

// Known reports whether p is one of the supported platforms.
func (p Platform) Known() bool {
	switch p {
	case Windows, MacOS, Linux:
		return true
	default:
		return false
	}
}

func (p Platform) String() string {
	return string(p)
}
