// Package engine turns a tokenized command into running processes: it
// recognizes redirection and pipe operators, spawns one process per
// pipeline stage, wires standard streams through files and pipes, and
// collects exit status back to the interactive loop.
package engine

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/clarkzinzow/tinysh/core/pipeline"
)

// Engine dispatches parsed command lines. The zero IO fields default to
// the process's own standard streams; SearchPath is read-only after
// startup and empty means "use the inherited environment search path".
type Engine struct {
	SearchPath []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Log *logrus.Logger
}

// New returns an engine narrating to log and using the default streams.
func New(log *logrus.Logger) *Engine {
	return &Engine{Log: log}
}

// discard backs log() for engines built without a logger.
var discard = func() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}()

func (e *Engine) log() *logrus.Logger {
	if e.Log != nil {
		return e.Log
	}
	return discard
}

func (e *Engine) stdin() io.Reader {
	if e.Stdin != nil {
		return e.Stdin
	}
	return os.Stdin
}

func (e *Engine) stdout() io.Writer {
	if e.Stdout != nil {
		return e.Stdout
	}
	return os.Stdout
}

func (e *Engine) stderr() io.Writer {
	if e.Stderr != nil {
		return e.Stderr
	}
	return os.Stderr
}

// Dispatch runs one parsed command line and blocks until every stage has
// terminated. It never returns control before the whole pipeline is done,
// and a failing pipeline never takes the caller down with it.
func (e *Engine) Dispatch(argv []string) Status {
	if len(argv) == 0 {
		return Success()
	}

	if pipeline.Classify(argv) == pipeline.OpNone {
		return e.runStage(argv, e.stdin(), e.stdout())
	}

	return e.runChain(pipeline.Parse(argv))
}

// runChain executes a flat stage list. Adjacent pipe stages are connected
// by one os.Pipe each; the head of a pipe runs to completion before the
// tail starts consuming. A redirection consumes exactly one target token
// and ends the chain; anything after the target is ignored.
func (e *Engine) runChain(stages []pipeline.Stage) Status {
	var stdin io.Reader = e.stdin()

	// Read end of the previous pipe, if any. It must be closed on every
	// exit path so no later stage inherits a dangling descriptor.
	var prevRead *os.File
	defer func() {
		if prevRead != nil {
			prevRead.Close()
		}
	}()

	for i := 0; i < len(stages); i++ {
		st := stages[i]
		if len(st.Argv) == 0 {
			fmt.Fprintf(e.stderr(), "tinysh: syntax error near %q\n", st.Op.String())
			return Failure(2)
		}

		switch st.Op {
		case pipeline.OpNone:
			return e.runStage(st.Argv, stdin, e.stdout())

		case pipeline.OpPipe:
			if i+1 >= len(stages) || len(stages[i+1].Argv) == 0 {
				fmt.Fprintln(e.stderr(), "tinysh: syntax error: missing pipe consumer")
				return Failure(2)
			}

			pr, pw, err := os.Pipe()
			if err != nil {
				fmt.Fprintf(e.stderr(), "tinysh: pipe: %v\n", err)
				return Failure(1)
			}
			e.log().WithFields(logrus.Fields{
				"head": st.Argv[0],
				"tail": stages[i+1].Argv[0],
			}).Info("creating pipe")

			status := e.runStage(st.Argv, stdin, pw)
			pw.Close()
			if prevRead != nil {
				prevRead.Close()
			}
			prevRead = pr
			stdin = pr
			e.log().WithField("command", st.Argv[0]).Info("rewiring standard input to pipe read end")

			if status.Interrupted() {
				return status
			}

		case pipeline.OpOverwrite, pipeline.OpAppend:
			if i+1 >= len(stages) || len(stages[i+1].Argv) == 0 {
				fmt.Fprintln(e.stderr(), "tinysh: syntax error: missing redirect target")
				return Failure(2)
			}

			// The first tail token is the destination; any tokens or
			// operators after it are ignored.
			target := stages[i+1].Argv[0]
			mode := "overwrite"
			flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
			if st.Op == pipeline.OpAppend {
				mode = "append"
				flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
			}

			fd, err := os.OpenFile(target, flags, 0666)
			if err != nil {
				fmt.Fprintf(e.stderr(), "tinysh: %s: %v\n", target, err)
				return Failure(1)
			}
			e.log().WithFields(logrus.Fields{
				"file": target,
				"mode": mode,
			}).Info("redirecting standard output")

			status := e.runStage(st.Argv, stdin, fd)
			if err := fd.Close(); err != nil {
				fmt.Fprintf(e.stderr(), "tinysh: %s: %v\n", target, err)
				return Failure(1)
			}
			return status
		}
	}
	return Success()
}

// runStage resolves and spawns one stage process and waits for it to
// terminate. Resolution failures are reported quietly; anything else gets
// diagnostic detail.
func (e *Engine) runStage(argv []string, stdin io.Reader, stdout io.Writer) Status {
	path, err := Resolve(argv[0], e.SearchPath)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			fmt.Fprintf(e.stderr(), "tinysh: %s: command not found\n", argv[0])
		} else {
			fmt.Fprintf(e.stderr(), "tinysh: %s: %v\n", argv[0], err)
		}
		return Failure(127)
	}

	cmd := &exec.Cmd{
		Path:   path,
		Args:   argv,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: e.stderr(),
	}

	e.log().WithField("command", argv[0]).Info("spawning process")
	if err := cmd.Start(); err != nil {
		fmt.Fprintf(e.stderr(), "tinysh: %s: %v\n", argv[0], err)
		return Failure(126)
	}
	e.log().WithField("pid", cmd.Process.Pid).Debug("started")

	status := e.wait(cmd)
	e.log().WithFields(logrus.Fields{
		"command": argv[0],
		"status":  status.String(),
	}).Info("process finished")
	return status
}

func (e *Engine) wait(cmd *exec.Cmd) Status {
	err := cmd.Wait()
	if err == nil {
		return Success()
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		fmt.Fprintf(e.stderr(), "tinysh: wait: %v\n", err)
		return Failure(1)
	}

	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return Killed(ws.Signal())
	}
	return Failure(exitErr.ExitCode())
}
