// Package core drives the interactive read/dispatch loop of the shell.
package core

import (
	"fmt"
	"io"
	"os"

	"github.com/abiosoft/readline"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/clarkzinzow/tinysh/core/builtin"
	"github.com/clarkzinzow/tinysh/core/config"
	"github.com/clarkzinzow/tinysh/core/engine"
	"github.com/clarkzinzow/tinysh/core/logger"
	"github.com/clarkzinzow/tinysh/core/token"
)

var (
	colorSuccess = color.New(color.FgGreen)
	colorFailure = color.New(color.FgRed, color.Bold)
)

// Shell owns one interactive session: it reads a line, fully resolves and
// waits on the resulting pipeline, then reads the next line. There is no
// background execution.
type Shell struct {
	cfg     *config.Configuration
	eng     *engine.Engine
	log     *logrus.Logger
	rl      *readline.Instance
	out     io.Writer
	errOut  io.Writer
	verbose bool
}

// NewShell builds a session from the startup configuration. An empty
// search path means executables are resolved via the inherited PATH.
func NewShell(cfg *config.Configuration, searchPath []string) (*Shell, error) {
	rl, err := readline.New(cfg.Prompt)
	if err != nil {
		return nil, err
	}

	log := logger.New(rl)
	logger.SetVerbose(log, cfg.Verbose)

	eng := engine.New(log)
	eng.SearchPath = searchPath

	return &Shell{
		cfg:     cfg,
		eng:     eng,
		log:     log,
		rl:      rl,
		out:     rl,
		errOut:  rl,
		verbose: cfg.Verbose,
	}, nil
}

// Run reads and evaluates lines until exit or end of input.
func (s *Shell) Run() error {
	defer s.rl.Close()

	if len(s.eng.SearchPath) == 0 {
		fmt.Fprintln(s.out, "Using the path defined by your environment.")
	} else {
		fmt.Fprintln(s.out, "Using the path defined in the provided path file.")
	}

	for {
		line, err := s.rl.Readline()
		switch {
		case err == io.EOF:
			// Ctrl-D: standard procedure is a clean exit.
			if s.verbose {
				fmt.Fprintln(s.out, "Encountered EOF. Exiting now...")
			}
			return nil

		case err == readline.ErrInterrupt:
			continue

		case err != nil:
			return err
		}

		if s.eval(line) {
			return nil
		}
	}
}

// eval processes one input line. It reports true when the session should
// end.
func (s *Shell) eval(line string) (quit bool) {
	argv := token.Fields(line, token.Delimiters)
	if len(argv) == 0 {
		return false
	}

	switch argv[0] {
	case "exit":
		fmt.Fprintln(s.out, "Exiting now. Thanks for using tinysh!")
		return true

	case "verbose":
		s.setVerbose(true)
		return false

	case "brief":
		s.setVerbose(false)
		return false
	}

	var status engine.Status
	if fn, ok := builtin.Builtins[argv[0]]; ok {
		if code := fn(s.hostOS(argv)); code == 0 {
			status = engine.Success()
		} else {
			status = engine.Failure(code)
		}
	} else {
		status = s.eng.Dispatch(argv)
	}

	s.report(status)
	return false
}

func (s *Shell) setVerbose(verbose bool) {
	s.verbose = verbose
	logger.SetVerbose(s.log, verbose)
	if verbose {
		fmt.Fprintln(s.out, "Running in verbose mode.")
	}
}

// report surfaces the pipeline's termination state. Interruption by the
// user is always reported; the success/failure summary only appears in
// verbose mode.
func (s *Shell) report(status engine.Status) {
	if status.Interrupted() {
		fmt.Fprintln(s.out, "Process executing a command was killed by the user.")
	}

	if !s.verbose {
		return
	}
	if status.Ok() {
		colorSuccess.Fprintln(s.out, "Previous command was successful.")
	} else {
		colorFailure.Fprintln(s.out, "Previous command failed.")
	}
}

func (s *Shell) hostOS(argv []string) builtin.OS {
	return &hostOS{argv: argv, stdout: s.out, stderr: s.errOut}
}

// hostOS exposes the real process environment to builtins.
type hostOS struct {
	argv   []string
	stdout io.Writer
	stderr io.Writer
}

var _ builtin.OS = (*hostOS)(nil)

func (h *hostOS) Args() []string { return h.argv }

func (h *hostOS) Stdout() io.Writer { return h.stdout }

func (h *hostOS) Stderr() io.Writer { return h.stderr }

func (h *hostOS) Getenv(key string) string { return os.Getenv(key) }

func (h *hostOS) Getwd() (string, error) { return os.Getwd() }

func (h *hostOS) Chdir(dir string) error { return os.Chdir(dir) }
