// Package builtin implements the shell's builtin commands on a small
// getopt-based command framework.
package builtin

import (
	"fmt"
	"io"

	getopt "github.com/pborman/getopt/v2"
)

// OS is the slice of the process environment a builtin may touch. The
// shell passes a live implementation; tests substitute a fake.
type OS interface {
	// Args holds the command line, including the command name as Args[0].
	Args() []string
	Stdout() io.Writer
	Stderr() io.Writer
	Getenv(key string) string
	Getwd() (string, error)
	Chdir(dir string) error
}

// Func is the entry point of a builtin command, returning its exit code.
type Func func(vos OS) int

// Builtins maps command names to implementations. The interactive loop
// consults it before dispatching to the execution engine.
var Builtins = map[string]Func{
	"cd":  Cd,
	"pwd": Pwd,
}

// SimpleCommand handles flag parsing and help for a builtin.
type SimpleCommand struct {
	// Use holds a one line usage string.
	Use string
	// Short holds a one line description of the command.
	Short string
	// ShowHelp sets whether help is displayed or not.
	// If this is non-nil when Run() is called, then the default help flag
	// isn't added.
	ShowHelp *bool

	flags *getopt.Set
}

// Flags gets the command's flag set.
func (s *SimpleCommand) Flags() *getopt.Set {
	if s.flags == nil {
		s.flags = getopt.New()
	}

	return s.flags
}

// PrintHelp writes help for the command to the given writer.
func (s *SimpleCommand) PrintHelp(w io.Writer) {
	fmt.Fprint(w, "usage: ")
	fmt.Fprintln(w, s.Use)
	fmt.Fprintln(w, s.Short)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	s.Flags().PrintOptions(w)
}

// Run the command, if flag parsing was successful call the callback.
func (s *SimpleCommand) Run(vos OS, callback func() int) int {
	opts := s.Flags()

	// Add help flag if not overridden.
	if s.ShowHelp == nil {
		s.ShowHelp = opts.BoolLong("help", 'h', "show this help and exit")
	}

	if err := opts.Getopt(vos.Args(), nil); err != nil {
		fmt.Fprintf(vos.Stderr(), "error: %s\n\n", err)

		s.PrintHelp(vos.Stdout())
		return 1
	}

	if *s.ShowHelp {
		s.PrintHelp(vos.Stdout())
		return 0
	}

	return callback()
}
