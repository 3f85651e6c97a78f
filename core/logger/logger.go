// Package logger configures the shell's narration logger. In verbose mode
// the engine narrates process creation and descriptor handling at info
// level; brief mode raises the threshold so only warnings get through.
package logger

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/sirupsen/logrus"
)

// New returns a logger writing to out, starting in brief mode.
func New(out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(logrus.WarnLevel)
	log.SetFormatter(&Formatter{})
	return log
}

// SetVerbose switches narration on or off at runtime.
func SetVerbose(log *logrus.Logger, verbose bool) {
	if verbose {
		log.SetLevel(logrus.InfoLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}
}

// Formatter renders narration without timestamps or level tags so verbose
// output reads as shell commentary rather than a log stream. Fields are
// appended in sorted order to keep output stable.
type Formatter struct{}

var _ logrus.Formatter = (*Formatter)(nil)

// Format implements logrus.Formatter.
func (f *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&buf, " %s=%v", k, entry.Data[k])
	}

	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
