// Package archive creates and extracts archives by handing work to the
// platform's archiver tools (7-Zip, tar) or to a single decompression call.
package archive

import (
	"context"
	"os"

	"github.com/infracollect/arcwrap/internal/fsutil"
	"github.com/infracollect/arcwrap/internal/platform"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Archiver runs archive operations against a filesystem and platform.
// It holds no state between calls.
type Archiver struct {
	fs              afero.Fs
	platform        platform.Detector
	runner          CommandRunner
	logger          *zap.Logger
	checkExitStatus bool
}

type Option func(*Archiver)

// WithFs sets the filesystem used for source checks and extraction.
func WithFs(fs afero.Fs) Option {
	return func(a *Archiver) { a.fs = fs }
}

func WithPlatform(d platform.Detector) Option {
	return func(a *Archiver) { a.platform = d }
}

func WithRunner(r CommandRunner) Option {
	return func(a *Archiver) { a.runner = r }
}

func WithLogger(logger *zap.Logger) Option {
	return func(a *Archiver) { a.logger = logger }
}

// WithExitStatusCheck makes a non-zero archiver exit an *ExitStatusError.
// By default the exit status is only logged.
func WithExitStatusCheck(check bool) Option {
	return func(a *Archiver) { a.checkExitStatus = check }
}

// New returns an Archiver for the host OS filesystem and platform whose
// archiver processes share this process's stdout and stderr.
func New(opts ...Option) *Archiver {
	a := &Archiver{
		fs:       afero.NewOsFs(),
		platform: platform.Current(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.runner == nil {
		a.runner = NewExecRunner(a.logger.Named("exec"), os.Stdout, os.Stderr)
	}
	return a
}

// CreateSevenZip adds inputPaths, in order, to the 7z archive at
// archiveOutPath. An empty command selects the platform default. Every input
// must exist; the first missing one is returned as *SourceNotFoundError and
// no process is started. An empty inputPaths is rejected with ErrNoSources
// rather than running 7z without inputs, which would archive the working
// directory.
func (a *Archiver) CreateSevenZip(ctx context.Context, inputPaths []string, archiveOutPath, command string) error {
	if err := a.checkSources(inputPaths); err != nil {
		return err
	}

	command = ResolveSevenZipCommand(a.platform, command)
	return a.invoke(ctx, SevenZipArgs(command, archiveOutPath, inputPaths))
}

// CreateTar writes inputPaths, in order, to an uncompressed tar archive at
// archiveOutPath using the native tar tool. It fails with
// *UnsupportedPlatformError on Windows.
func (a *Archiver) CreateTar(ctx context.Context, inputPaths []string, archiveOutPath string) error {
	if err := a.checkSources(inputPaths); err != nil {
		return err
	}

	if a.platform.IsWindows() {
		return &UnsupportedPlatformError{Operation: "tar archive creation", Platform: a.platform.Name()}
	}

	return a.invoke(ctx, TarArgs(archiveOutPath, inputPaths))
}

func (a *Archiver) checkSources(inputPaths []string) error {
	if len(inputPaths) == 0 {
		return ErrNoSources
	}
	if missing, ok := fsutil.FirstMissing(a.fs, inputPaths); ok {
		return &SourceNotFoundError{Path: missing}
	}
	return nil
}

func (a *Archiver) invoke(ctx context.Context, program []string) error {
	exitCode, err := a.runner.Run(ctx, program)
	if err != nil {
		return err
	}

	if exitCode != 0 {
		if a.checkExitStatus {
			return &ExitStatusError{Command: program[0], ExitCode: exitCode}
		}
		a.logger.Warn("archiver exited with non-zero status",
			zap.String("command", program[0]),
			zap.Int("exit_code", exitCode),
		)
	}

	return nil
}
