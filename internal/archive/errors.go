package archive

import (
	"errors"
	"fmt"
)

// ErrNoSources is returned when an archive-creation call is given no input paths.
var ErrNoSources = errors.New("no source paths given, unable to create archive")

// SourceNotFoundError is returned when an input path handed to an
// archive-creation operation does not exist. Path is the first missing path in
// input order.
type SourceNotFoundError struct {
	Path string
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("the given source path was not found (%s), unable to create archive", e.Path)
}

// UnsupportedPlatformError is returned when an operation has no native tool
// on the current platform.
type UnsupportedPlatformError struct {
	Operation string
	Platform  string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("%s is not supported on %s machines", e.Operation, e.Platform)
}

// ExitStatusError reports an archiver that exited non-zero. It is only
// returned when exit status checking is enabled.
type ExitStatusError struct {
	Command  string
	ExitCode int
}

func (e *ExitStatusError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Command, e.ExitCode)
}
