package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"

	"go.uber.org/zap"
)

// CommandRunner runs an external program to completion. program[0] is the
// executable, the rest are its arguments. A program that starts and exits
// non-zero is not an error; its exit code is returned instead.
type CommandRunner interface {
	Run(ctx context.Context, program []string) (exitCode int, err error)
}

// ExecRunner runs programs with os/exec, wiring their output to the given writers.
type ExecRunner struct {
	logger *zap.Logger
	stdout io.Writer
	stderr io.Writer
}

// NewExecRunner returns a runner whose children write to stdout and stderr.
// Nil writers send the child's output to the null device.
func NewExecRunner(logger *zap.Logger, stdout, stderr io.Writer) *ExecRunner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExecRunner{logger: logger, stdout: stdout, stderr: stderr}
}

func (r *ExecRunner) Run(ctx context.Context, program []string) (int, error) {
	if len(program) == 0 {
		return -1, fmt.Errorf("program is required")
	}

	cmd := exec.CommandContext(ctx, program[0], program[1:]...)
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	r.logger.Debug("invoking archiver", zap.Strings("program", program))
	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)
	exitCode := -1
	if cmd.ProcessState != nil {
		exitCode = cmd.ProcessState.ExitCode()
	}
	r.logger.Debug("archiver finished",
		zap.String("command", program[0]),
		zap.Int("exit_code", exitCode),
		zap.Duration("duration", duration),
	)

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return exitCode, fmt.Errorf("%s interrupted: %w", program[0], ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitCode, nil
		}
		return exitCode, fmt.Errorf("failed to run %s: %w", program[0], err)
	}

	return exitCode, nil
}
