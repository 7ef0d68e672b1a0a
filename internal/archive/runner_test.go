package archive

import (
	"bytes"
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("skipping on Windows")
	}
}

func TestExecRunner_Success(t *testing.T) {
	skipOnWindows(t)

	var stdout bytes.Buffer
	r := NewExecRunner(zap.NewNop(), &stdout, nil)

	code, err := r.Run(t.Context(), []string{"sh", "-c", "printf '%s' archived"})
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "archived", stdout.String())
}

func TestExecRunner_NonZeroExit(t *testing.T) {
	skipOnWindows(t)

	var stderr bytes.Buffer
	r := NewExecRunner(zap.NewNop(), nil, &stderr)

	code, err := r.Run(t.Context(), []string{"sh", "-c", "echo 'bad archive' >&2; exit 3"})
	require.NoError(t, err)
	assert.Equal(t, 3, code)
	assert.Contains(t, stderr.String(), "bad archive")
}

func TestExecRunner_CommandNotFound(t *testing.T) {
	r := NewExecRunner(nil, nil, nil)

	_, err := r.Run(t.Context(), []string{"nonexistent-archiver-xyz"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to run nonexistent-archiver-xyz")
}

func TestExecRunner_EmptyProgram(t *testing.T) {
	r := NewExecRunner(nil, nil, nil)

	_, err := r.Run(t.Context(), nil)
	assert.ErrorContains(t, err, "program is required")
}

func TestExecRunner_Cancelled(t *testing.T) {
	skipOnWindows(t)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	r := NewExecRunner(nil, nil, nil)
	_, err := r.Run(ctx, []string{"sh", "-c", "sleep 10"})
	require.ErrorIs(t, err, context.Canceled)
}

func TestArchiver_CreateTarWithExecRunner(t *testing.T) {
	skipOnWindows(t)

	dir := t.TempDir()
	// GNU tar lists members on stdout, bsdtar on stderr.
	var output bytes.Buffer
	a := New(WithRunner(NewExecRunner(zap.NewNop(), &output, &output)))

	// tar resolves relative inputs against the test's working directory.
	err := a.CreateTar(t.Context(), Paths("runner_test.go"), dir+"/out.tar")
	if err != nil {
		t.Skipf("tar not available: %v", err)
	}
	assert.FileExists(t, dir+"/out.tar")
	assert.Contains(t, output.String(), "runner_test.go")
}
