package mcpserver

import (
	"errors"
	"fmt"

	"github.com/jra3/orgmind/internal/orgerr"
)

// JSON-RPC 2.0 reserved error codes (https://www.jsonrpc.org/specification#error_object).
const (
	codeInvalidParams = -32602
	codeInternalError = -32603
)

// argumentError is raised by the MCP layer itself -- a tool argument that
// never reaches a core call (an unrecognised "mode", an unparsable
// "priority" letter) -- as distinct from a core *orgerr.Error. Both map to
// InvalidParams, but argumentError has no Kind of its own.
type argumentError struct{ msg string }

func (e *argumentError) Error() string { return e.msg }

func newArgumentError(format string, a ...any) error {
	return &argumentError{msg: fmt.Sprintf(format, a...)}
}

// protocolError pairs a client-facing error with the JSON-RPC code spec.md
// §4.7 assigns it, so transports that inspect Code (or just Error()) see a
// faithful rendering either way.
type protocolError struct {
	code int
	err  error
}

func (e *protocolError) Error() string { return e.err.Error() }
func (e *protocolError) Unwrap() error { return e.err }
func (e *protocolError) Code() int     { return e.code }

// isInvalidParams reports whether kind is one of the two core Kinds spec.md
// §4.7/§7 singles out as InvalidParams rather than InternalError.
func isInvalidParams(kind orgerr.Kind) bool {
	switch kind {
	case orgerr.InvalidDirectory, orgerr.InvalidAgendaViewType:
		return true
	default:
		return false
	}
}

// mapToolError wraps err with the protocol code the tool/resource surface
// should report: InvalidParams for argumentError and the two core Kinds
// named above, InternalError for everything else. nil passes through.
func mapToolError(err error) error {
	if err == nil {
		return nil
	}
	code := codeInternalError

	var argErr *argumentError
	if errors.As(err, &argErr) {
		code = codeInvalidParams
	} else if kind, ok := orgerr.KindOf(err); ok && isInvalidParams(kind) {
		code = codeInvalidParams
	}
	return &protocolError{code: code, err: err}
}
