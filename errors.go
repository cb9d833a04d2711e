// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package taxonomy

import "fmt"

// A Kind identifies the cause of an Error.
type Kind int

// Recognized error kinds.
const (
	ErrUnknownID Kind = iota
	ErrDuplicateID
	ErrInvalidFormat
	ErrCycle
	ErrEmptyTree
	ErrMissingRoot
	ErrMultipleRoots
)

func (k Kind) String() string {
	switch k {
	case ErrUnknownID:
		return "unknown id"
	case ErrDuplicateID:
		return "duplicate id"
	case ErrInvalidFormat:
		return "invalid format"
	case ErrCycle:
		return "cycle"
	case ErrEmptyTree:
		return "empty tree"
	case ErrMissingRoot:
		return "missing root"
	case ErrMultipleRoots:
		return "multiple roots"
	default:
		return "unknown error"
	}
}

// An Error is the single error kind produced by this package,
// parameterized by its Kind and an optional underlying cause.
type Error struct {
	Kind Kind
	ID   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.ID != "":
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.ID, e.Msg)
	case e.ID != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.ID)
	case e.Msg != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same Kind (and,
// if target carries an ID, the same ID), so callers can match with
// errors.Is(err, &Error{Kind: ErrUnknownID}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.ID != "" && t.ID != e.ID {
		return false
	}
	return t.Kind == e.Kind
}

func errUnknownID(id string) error {
	return &Error{Kind: ErrUnknownID, ID: id}
}

func errDuplicateID(id string) error {
	return &Error{Kind: ErrDuplicateID, ID: id}
}

func errInvalidFormat(msg string) error {
	return &Error{Kind: ErrInvalidFormat, Msg: msg}
}

func errCycle(id string) error {
	return &Error{Kind: ErrCycle, ID: id, Msg: "reparent would create a cycle"}
}

func errEmptyTree() error {
	return &Error{Kind: ErrEmptyTree, Msg: "taxonomy has no root"}
}

func errMissingRoot() error {
	return &Error{Kind: ErrMissingRoot, Msg: "no candidate root"}
}

func errMultipleRoots() error {
	return &Error{Kind: ErrMultipleRoots, Msg: "more than one candidate root"}
}
