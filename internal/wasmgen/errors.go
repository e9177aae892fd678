package wasmgen

import (
	"fmt"

	"wcc/internal/ast"
)

type DiagKind int

const (
	// DiagInvalidLValue marks a request for the address of a node that is
	// not addressable.
	DiagInvalidLValue DiagKind = iota
	// DiagUnsupported marks an expression or statement the backend does
	// not lower (indirect calls, general goto, variable-length arrays).
	DiagUnsupported
)

// CompileError is a fatal diagnostic. Translation of the current unit stops
// at the first one; no partial module is produced.
type CompileError struct {
	Kind DiagKind
	Span ast.Span
	Msg  string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Span.Start.Line, e.Span.Start.Col, e.Msg)
}

func errInvalidLValue(n *ast.Node) error {
	return &CompileError{Kind: DiagInvalidLValue, Span: n.Span, Msg: "not an lvalue"}
}

func errUnsupported(span ast.Span, format string, args ...interface{}) error {
	return &CompileError{Kind: DiagUnsupported, Span: span, Msg: fmt.Sprintf(format, args...)}
}
