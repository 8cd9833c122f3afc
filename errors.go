package regen

import "fmt"

// StructuralError reports a Pattern tree the engine cannot enumerate:
// either a node type it does not recognize, or a backreference to a group
// number with no corresponding capturing group. It is always surfaced
// before any value is yielded; a tree that starts producing values will
// never fail mid-stream.
type StructuralError struct {
	msg string
}

func (e *StructuralError) Error() string { return "regen: " + e.msg }

func structuralErrorf(format string, args ...any) *StructuralError {
	return &StructuralError{msg: fmt.Sprintf(format, args...)}
}
