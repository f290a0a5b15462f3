// Package errs defines the typed error kinds the reactor and its
// collaborators return, plus a handful of logging helpers in the style
// the rest of this module uses for errors it chooses not to propagate.
package errs

import (
	"fmt"
	"log/slog"
	"runtime"
	"strconv"
)

// GraphCode enumerates the failure modes a LayoutGraph mutation can report.
type GraphCode int

const (
	// NotAGroupNode is returned when an operation that requires a
	// Group(Row)/Group(Col) node is given a Window node instead.
	NotAGroupNode GraphCode = iota
	// NodeNotFound is returned when a GraphNodeId does not name any node.
	NodeNotFound
)

func (c GraphCode) String() string {
	switch c {
	case NotAGroupNode:
		return "not a group node"
	case NodeNotFound:
		return "node not found"
	default:
		return "unknown graph error"
	}
}

// GraphError is returned from LayoutGraph mutations. It is never fatal;
// callers surface it to scripts as a nil/false result.
type GraphError struct {
	Code GraphCode
	ID   int
}

func (e *GraphError) Error() string {
	return fmt.Sprintf("graph: %s (id=%d)", e.Code, e.ID)
}

// Is reports whether target names the same GraphCode, letting callers
// write errors.Is(err, errs.NodeNotFound) without unwrapping by hand.
func (e *GraphError) Is(target error) bool {
	code, ok := target.(GraphCode)
	return ok && e.Code == code
}

// Error satisfies the error interface for bare GraphCode values so that
// errors.Is(err, errs.NodeNotFound) type-checks.
func (c GraphCode) Error() string { return c.String() }

// NewGraphError constructs a GraphError for the given node id.
func NewGraphError(code GraphCode, id int) error {
	return &GraphError{Code: code, ID: id}
}

// WorkspaceCode enumerates Workspace-level failures.
type WorkspaceCode int

const (
	// WindowNodeNotFound is returned when an operation names a window
	// that has no corresponding node in the workspace's graph.
	WindowNodeNotFound WorkspaceCode = iota
)

func (c WorkspaceCode) String() string { return "window node not found" }
func (c WorkspaceCode) Error() string  { return c.String() }

// WorkspaceError is surfaced as a no-op when reacting to focus events.
type WorkspaceError struct {
	Code     WorkspaceCode
	WindowID uint64
}

func (e *WorkspaceError) Error() string {
	return fmt.Sprintf("workspace: %s (window=%d)", e.Code, e.WindowID)
}

func (e *WorkspaceError) Is(target error) bool {
	code, ok := target.(WorkspaceCode)
	return ok && e.Code == code
}

// NewWorkspaceError constructs a WorkspaceError.
func NewWorkspaceError(code WorkspaceCode, windowID uint64) error {
	return &WorkspaceError{Code: code, WindowID: windowID}
}

// ClientCode enumerates the IPC client's user-visible error taxonomy.
type ClientCode int

const (
	// IO covers dial/read/write/timeout failures.
	IO ClientCode = iota
	// InvalidResponse covers frames that don't parse as a known response.
	InvalidResponse
	// LuaExecutionFailed wraps the server's "Err:<message>" response body.
	LuaExecutionFailed
)

// ClientError is returned only from the IPC client, never from the server.
type ClientError struct {
	Code    ClientCode
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	switch e.Code {
	case IO:
		return fmt.Sprintf("ipc client: io: %v", e.Cause)
	case InvalidResponse:
		return fmt.Sprintf("ipc client: invalid response: %s", e.Message)
	case LuaExecutionFailed:
		return fmt.Sprintf("ipc client: execution failed: %s", e.Message)
	default:
		return "ipc client: unknown error"
	}
}

func (e *ClientError) Unwrap() error { return e.Cause }

// NewClientError constructs a ClientError.
func NewClientError(code ClientCode, message string, cause error) error {
	return &ClientError{Code: code, Message: message, Cause: cause}
}

// RuntimeError wraps whatever the embedded scripting interpreter surfaces.
// It is always logged, never fatal: the action that triggered it completes
// with a failed result handed to its callback.
type RuntimeError struct {
	Cause error
}

func (e *RuntimeError) Error() string { return fmt.Sprintf("runtime: %v", e.Cause) }
func (e *RuntimeError) Unwrap() error { return e.Cause }

// NewRuntimeError wraps cause as a RuntimeError. Returns nil if cause is nil.
func NewRuntimeError(cause error) error {
	if cause == nil {
		return nil
	}
	return &RuntimeError{Cause: cause}
}

// PlatformError wraps an I/O failure from a hook or a window call. These
// are logged; the reactor continues regardless.
type PlatformError struct {
	Op    string
	Cause error
}

func (e *PlatformError) Error() string { return fmt.Sprintf("platform: %s: %v", e.Op, e.Cause) }
func (e *PlatformError) Unwrap() error { return e.Cause }

// NewPlatformError wraps cause as a PlatformError tagged with the
// operation that failed (e.g. "reposition", "remove_decorations").
func NewPlatformError(op string, cause error) error {
	if cause == nil {
		return nil
	}
	return &PlatformError{Op: op, Cause: cause}
}

// Log logs err at error level, tagged with the caller's location, and
// returns it unchanged. Intended usage:
//
//	return errs.Log(doSomething())
func Log(err error) error {
	if err != nil {
		slog.Error(err.Error() + " | " + CallerInfo())
	}
	return err
}

// Log1 logs a non-nil error the same way as Log and returns v regardless.
func Log1[T any](v T, err error) T {
	if err != nil {
		slog.Error(err.Error() + " | " + CallerInfo())
	}
	return v
}

// Log2 is Log1 for functions returning two values and an error.
func Log2[T1, T2 any](v1 T1, v2 T2, err error) (T1, T2) {
	if err != nil {
		slog.Error(err.Error() + " | " + CallerInfo())
	}
	return v1, v2
}

// Must1 panics if err is non-nil, otherwise returns v. Reserved for
// invariants the caller has already checked hold (e.g. a node id it just
// inserted itself); never used on user input or platform I/O.
func Must1[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// CallerInfo returns the function name and source location of whichever
// function called the function that called CallerInfo -- i.e. the caller
// of Log/Log1/Log2.
func CallerInfo() string {
	pc, file, line, _ := runtime.Caller(2)
	fn := runtime.FuncForPC(pc)
	name := "unknown"
	if fn != nil {
		name = fn.Name()
	}
	return name + " " + file + ":" + strconv.Itoa(line)
}
