// Package errext attaches process exit codes to errors, so the command line
// front end can pick the right code for whatever error bubbled up to it.
package errext

import "errors"

// ExitCode is a process exit code.
type ExitCode uint8

// Exit codes used by the mosaic command.
const (
	// SyntaxErrors means at least one input had lexical or syntax errors.
	SyntaxErrors ExitCode = 1
	// InvalidInput means an input could not be read.
	InvalidInput ExitCode = 2
	// InvalidConfig means the configuration file, environment or flags were
	// rejected.
	InvalidConfig ExitCode = 3
	// Generic is used for errors that carry no code of their own.
	Generic ExitCode = 255
)

// HasExitCode is an error with an attached exit code.
type HasExitCode interface {
	error
	ExitCode() ExitCode
}

// WithExitCodeIfNone attaches code to err unless err already carries one.
// A nil err stays nil.
func WithExitCodeIfNone(err error, code ExitCode) error {
	if err == nil {
		return nil
	}
	var ecerr HasExitCode
	if errors.As(err, &ecerr) {
		return err
	}
	return withExitCode{err, code}
}

// Code returns the exit code attached to err, or Generic.
func Code(err error) ExitCode {
	var ecerr HasExitCode
	if errors.As(err, &ecerr) {
		return ecerr.ExitCode()
	}
	return Generic
}

type withExitCode struct {
	error
	exitCode ExitCode
}

func (wh withExitCode) Unwrap() error {
	return wh.error
}

func (wh withExitCode) ExitCode() ExitCode {
	return wh.exitCode
}

var _ HasExitCode = withExitCode{}

// Silent marks an error that has already been reported to the user, so the
// top level should only exit with its code and not print it again.
func Silent(err error) error {
	if err == nil {
		return nil
	}
	return silent{err}
}

// IsSilent reports whether err was wrapped with Silent.
func IsSilent(err error) bool {
	var s silent
	return errors.As(err, &s)
}

type silent struct {
	error
}

func (s silent) Unwrap() error {
	return s.error
}
