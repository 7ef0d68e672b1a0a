// Package platform reports which operating system archive tools run on.
package platform

import "runtime"

const windows = "windows"

// Detector reports which operating system archive operations run on.
type Detector interface {
	IsWindows() bool
	Name() string
}

type fixed string

// Current returns a Detector for the running process.
func Current() Detector {
	return fixed(runtime.GOOS)
}

// Fixed returns a Detector that always reports goos, regardless of the host.
func Fixed(goos string) Detector {
	return fixed(goos)
}

func (f fixed) IsWindows() bool {
	return string(f) == windows
}

func (f fixed) Name() string {
	return string(f)
}
