package engine

import (
	"fmt"
	"syscall"
)

// Kind classifies how a dispatched pipeline terminated.
type Kind int

const (
	// KindSuccess is a zero exit code.
	KindSuccess Kind = iota
	// KindFailure is a non-zero exit code or a setup failure.
	KindFailure
	// KindKilled means the stage was terminated by a signal.
	KindKilled
)

// Status is the decoded termination state of a dispatched pipeline. It is
// the only channel by which failures inside stage processes reach the
// interactive loop.
type Status struct {
	Kind   Kind
	Code   int            // exit code, meaningful for KindFailure
	Signal syscall.Signal // terminating signal, meaningful for KindKilled
}

// Success is the status of a stage that exited zero.
func Success() Status {
	return Status{Kind: KindSuccess}
}

// Failure is the status of a stage that exited non-zero, or that failed
// before its image could be started.
func Failure(code int) Status {
	return Status{Kind: KindFailure, Code: code}
}

// Killed is the status of a stage terminated by sig.
func Killed(sig syscall.Signal) Status {
	return Status{Kind: KindKilled, Signal: sig}
}

// Ok reports whether the pipeline succeeded.
func (s Status) Ok() bool {
	return s.Kind == KindSuccess
}

// Interrupted reports whether the foreground stage was ended by an
// interactive interrupt or quit signal, which the loop surfaces
// distinctly from an ordinary failure.
func (s Status) Interrupted() bool {
	return s.Kind == KindKilled && (s.Signal == syscall.SIGINT || s.Signal == syscall.SIGQUIT)
}

func (s Status) String() string {
	switch s.Kind {
	case KindSuccess:
		return "success"
	case KindKilled:
		return fmt.Sprintf("killed (%v)", s.Signal)
	default:
		return fmt.Sprintf("failure (%d)", s.Code)
	}
}
