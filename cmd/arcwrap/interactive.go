package main

import (
	"context"
	"os"

	"github.com/infracollect/arcwrap/internal/archive"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zapio"
	"golang.org/x/term"
)

type interactiveCtxKeyType struct{}

var interactiveCtxKey = interactiveCtxKeyType{}

func isInteractiveEnvironment() bool {
	if os.Getenv("CI") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func withInteractive(ctx context.Context, interactive bool) context.Context {
	return context.WithValue(ctx, interactiveCtxKey, interactive)
}

func isInteractive(ctx context.Context) bool {
	interactive, ok := ctx.Value(interactiveCtxKey).(bool)
	if !ok {
		return false
	}
	return interactive
}

// newCommandRunner returns the runner for archiver processes. In a terminal
// the archiver writes straight to it; otherwise its stdout becomes debug log
// lines and its stderr, the only place it reports failures, warn log lines. The returned func flushes any partial line and must be called once
// the runner is done.
func newCommandRunner(ctx context.Context, logger *zap.Logger) (archive.CommandRunner, func()) {
	if isInteractive(ctx) {
		return archive.NewExecRunner(logger, os.Stdout, os.Stderr), func() {}
	}

	stdout := &zapio.Writer{Log: logger.With(zap.String("stream", "stdout")), Level: zapcore.DebugLevel}
	stderr := &zapio.Writer{Log: logger.With(zap.String("stream", "stderr")), Level: zapcore.WarnLevel}
	return archive.NewExecRunner(logger, stdout, stderr), func() {
		_ = stdout.Close()
		_ = stderr.Close()
	}
}
