package db

import "errors"

// ErrNotConnected signals an operation attempted before a successful Connect.
var ErrNotConnected = errors.New("db: not connected")

// Op constants name store operations for error context.
const (
	OpConnect = "connect"
	OpQuery   = "query"
	OpExec    = "exec"
	OpBegin   = "begin"
	OpCommit  = "commit"
	OpPing    = "ping"
	OpScan    = "scan"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
