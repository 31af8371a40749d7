package engine

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"weave/internal/source"
)

// Logger is the collaborator render calls report through. Error and
// ErrorAt are for failures the user must see; Warning for degraded but
// successful renders; Info for progress chatter.
type Logger interface {
	Error(msg string)
	ErrorAt(loc source.Loc, err error)
	Warning(msg string)
	Info(msg string)
}

var (
	errorLabel   = color.New(color.FgRed, color.Bold).SprintFunc()
	warningLabel = color.New(color.FgYellow, color.Bold).SprintFunc()
	infoLabel    = color.New(color.FgCyan).SprintFunc()
)

// ConsoleLogger writes labeled lines to a terminal. Info is suppressed
// when Quiet is set; errors always print.
type ConsoleLogger struct {
	Out   io.Writer
	Err   io.Writer
	Quiet bool
}

func (l *ConsoleLogger) Error(msg string) {
	fmt.Fprintf(l.errw(), "%s %s\n", errorLabel("error:"), msg)
}

func (l *ConsoleLogger) ErrorAt(loc source.Loc, err error) {
	fmt.Fprintf(l.errw(), "%s %s: %v\n", errorLabel("error:"), loc, err)
}

func (l *ConsoleLogger) Warning(msg string) {
	fmt.Fprintf(l.errw(), "%s %s\n", warningLabel("warning:"), msg)
}

func (l *ConsoleLogger) Info(msg string) {
	if l.Quiet {
		return
	}
	fmt.Fprintf(l.outw(), "%s %s\n", infoLabel("info:"), msg)
}

func (l *ConsoleLogger) outw() io.Writer {
	if l.Out != nil {
		return l.Out
	}
	return io.Discard
}

func (l *ConsoleLogger) errw() io.Writer {
	if l.Err != nil {
		return l.Err
	}
	return io.Discard
}

// CaptureLogger records every call. Test helper.
type CaptureLogger struct {
	Errors   []string
	Warnings []string
	Infos    []string
}

func (l *CaptureLogger) Error(msg string) {
	l.Errors = append(l.Errors, msg)
}

func (l *CaptureLogger) ErrorAt(loc source.Loc, err error) {
	l.Errors = append(l.Errors, fmt.Sprintf("%s: %v", loc, err))
}

func (l *CaptureLogger) Warning(msg string) {
	l.Warnings = append(l.Warnings, msg)
}

func (l *CaptureLogger) Info(msg string) {
	l.Infos = append(l.Infos, msg)
}

// nopLogger drops everything. Used when the caller passes no logger.
type nopLogger struct{}

func (nopLogger) Error(string) {}

func (nopLogger) ErrorAt(source.Loc, error) {}

func (nopLogger) Warning(string) {}

func (nopLogger) Info(string) {}
