package ast

import (
	"fmt"
	"sort"
)

// Located pairs an error value with the 1-based source position at which it
// was detected. Lexical and syntax errors share this shape so every
// diagnostic can be reported the same way.
type Located[E error] struct {
	Value  E
	Line   int
	Column int
}

// Locate wraps value with a position.
func Locate[E error](value E, line, column int) Located[E] {
	return Located[E]{Value: value, Line: line, Column: column}
}

// Widen converts a Located of a concrete error type into a Located[error],
// keeping the position.
func Widen[E error](l Located[E]) Located[error] {
	return Located[error]{Value: l.Value, Line: l.Line, Column: l.Column}
}

func (l Located[E]) Error() string {
	return fmt.Sprintf("%d:%d: %v", l.Line, l.Column, l.Value)
}

func (l Located[E]) Unwrap() error {
	return l.Value
}

// ErrorList is the accumulated list of diagnostics of a failed parse.
// A nil or empty list is never returned as an error.
type ErrorList []Located[error]

// Len returns the number of diagnostics.
func (l ErrorList) Len() int { return len(l) }

// Sort orders the list by position. The sort is stable so diagnostics at the
// same position keep their detection order.
func (l ErrorList) Sort() {
	sort.SliceStable(l, func(i, j int) bool {
		if l[i].Line != l[j].Line {
			return l[i].Line < l[j].Line
		}
		return l[i].Column < l[j].Column
	})
}

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", l[0].Error(), len(l)-1)
}

// Unwrap exposes every located diagnostic to errors.Is and errors.As.
func (l ErrorList) Unwrap() []error {
	errs := make([]error, len(l))
	for i, e := range l {
		errs[i] = e
	}
	return errs
}
