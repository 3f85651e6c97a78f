package engine

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clarkzinzow/tinysh/core/logger"
)

func newTestEngine() (*Engine, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	e := &Engine{
		Stdin:  strings.NewReader(""),
		Stdout: stdout,
		Stderr: stderr,
	}
	return e, stdout, stderr
}

func TestDispatchEmpty(t *testing.T) {
	e, stdout, stderr := newTestEngine()

	status := e.Dispatch(nil)

	assert.True(t, status.Ok())
	assert.Empty(t, stdout.String())
	assert.Empty(t, stderr.String())
}

func TestDispatchSimple(t *testing.T) {
	e, stdout, _ := newTestEngine()

	status := e.Dispatch([]string{"echo", "hi"})

	assert.True(t, status.Ok())
	assert.Equal(t, "hi\n", stdout.String())
}

func TestDispatchNotFound(t *testing.T) {
	e, _, stderr := newTestEngine()

	status := e.Dispatch([]string{"definitely-not-a-real-command"})

	assert.Equal(t, Failure(127), status)
	assert.Contains(t, stderr.String(), "definitely-not-a-real-command: command not found")
}

func TestDispatchFailureExitCode(t *testing.T) {
	e, _, _ := newTestEngine()

	status := e.Dispatch([]string{"sh", "-c", "exit 3"})

	assert.Equal(t, Failure(3), status)
}

func TestDispatchKilledByInterrupt(t *testing.T) {
	e, _, _ := newTestEngine()

	status := e.Dispatch([]string{"sh", "-c", "kill -INT $$"})

	assert.Equal(t, KindKilled, status.Kind)
	assert.True(t, status.Interrupted())
}

func TestDispatchPipe(t *testing.T) {
	e, stdout, _ := newTestEngine()

	status := e.Dispatch([]string{"echo", "hi", "|", "wc", "-w"})

	assert.True(t, status.Ok())
	assert.Equal(t, "1", strings.TrimSpace(stdout.String()))
}

func TestDispatchThreeStagePipeline(t *testing.T) {
	e, stdout, _ := newTestEngine()

	status := e.Dispatch([]string{"echo", "a", "b", "c", "|", "wc", "-w", "|", "wc", "-l"})

	assert.True(t, status.Ok())
	assert.Equal(t, "1", strings.TrimSpace(stdout.String()))
}

func TestDispatchPipeHeadFailureStillRunsTail(t *testing.T) {
	e, stdout, _ := newTestEngine()

	status := e.Dispatch([]string{"definitely-not-a-real-command", "|", "wc", "-l"})

	// The consumer still runs against an empty pipe; its status wins.
	assert.True(t, status.Ok())
	assert.Equal(t, "0", strings.TrimSpace(stdout.String()))
}

func TestDispatchOverwriteThenAppend(t *testing.T) {
	e, _, _ := newTestEngine()
	target := filepath.Join(t.TempDir(), "t.txt")

	status := e.Dispatch([]string{"echo", "hi", ">", target})
	require.True(t, status.Ok())
	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "hi\n", string(content))

	// A second overwrite truncates the prior content.
	status = e.Dispatch([]string{"echo", "replaced", ">", target})
	require.True(t, status.Ok())
	content, err = os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "replaced\n", string(content))

	status = e.Dispatch([]string{"echo", "bye", ">>", target})
	require.True(t, status.Ok())
	content, err = os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "replaced\nbye\n", string(content))
}

func TestDispatchRedirectIgnoresExtraTailTokens(t *testing.T) {
	e, _, _ := newTestEngine()
	target := filepath.Join(t.TempDir(), "t.txt")

	status := e.Dispatch([]string{"echo", "hi", ">", target, "ignored", "tokens"})

	assert.True(t, status.Ok())
	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "hi\n", string(content))
}

func TestDispatchPipeThenRedirect(t *testing.T) {
	e, stdout, _ := newTestEngine()
	target := filepath.Join(t.TempDir(), "t.txt")

	status := e.Dispatch([]string{"echo", "hi", "|", "wc", "-w", ">", target})

	assert.True(t, status.Ok())
	assert.Empty(t, stdout.String())
	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "1", strings.TrimSpace(string(content)))
}

func TestDispatchMissingRedirectTarget(t *testing.T) {
	e, _, stderr := newTestEngine()

	status := e.Dispatch([]string{"echo", "hi", ">"})

	assert.Equal(t, Failure(2), status)
	assert.Contains(t, stderr.String(), "missing redirect target")
}

func TestDispatchMissingPipeConsumer(t *testing.T) {
	e, _, stderr := newTestEngine()

	status := e.Dispatch([]string{"echo", "hi", "|"})

	assert.Equal(t, Failure(2), status)
	assert.Contains(t, stderr.String(), "missing pipe consumer")
}

func TestDispatchLeadingOperator(t *testing.T) {
	e, _, stderr := newTestEngine()

	status := e.Dispatch([]string{"|", "wc"})

	assert.Equal(t, Failure(2), status)
	assert.Contains(t, stderr.String(), "syntax error")
}

func TestNarration(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	g := goldie.New(t,
		goldie.WithFixtureDir(filepath.Join(wd, "testdata", "golden")),
		goldie.WithDiffEngine(goldie.ColoredDiff),
	)

	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	narration := &bytes.Buffer{}
	log := logger.New(narration)
	logger.SetVerbose(log, true)

	e, _, _ := newTestEngine()
	e.Log = log

	status := e.Dispatch([]string{"echo", "hi", ">", "out.txt"})
	require.True(t, status.Ok())

	g.Assert(t, "redirect_narration", narration.Bytes())
}
