package main

import "fmt"

/* AssemblerError carries one of the error kinds spec.md §7 names, tagged
   with the source position. Parse/semantic errors accumulate into a []error per
   the pipeline's recovery policy instead of aborting translation. */
type AssemblerError struct {
	Kind string
	Pos  Position
	Msg  string
}

func (e *AssemblerError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%s at %s", e.Kind, e.Pos)
	}
	return fmt.Sprintf("%s at %s: %s", e.Kind, e.Pos, e.Msg)
}

func errAt(kind string, pos Position, format string, args ...any) error {
	return &AssemblerError{Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
