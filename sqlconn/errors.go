package sqlconn

import "errors"

// Sentinel errors for sqlconn.
// These errors can be checked using errors.Is().
var (
	// ErrNoRows is returned when a query expected to return a row returns none.
	ErrNoRows = errors.New("sqlconn: no rows in result set")

	// ErrTxClosed is returned when a committed or rolled back transaction is used again.
	ErrTxClosed = errors.New("sqlconn: transaction already closed")

	// ErrNamedParameters is returned when a statement carries parameters and the driver has no
	// named parameter support.
	ErrNamedParameters = errors.New("sqlconn: driver does not support named parameters")

	// ErrNotAPointer is returned when a scan destination is not a non-nil pointer.
	ErrNotAPointer = errors.New("sqlconn: destination must be a non-nil pointer")

	// ErrNotASlice is returned when a multi-row scan destination is not a pointer to a slice.
	ErrNotASlice = errors.New("sqlconn: destination must be a pointer to a slice")

	// ErrNotAStruct is returned when a row scan destination is not a struct.
	ErrNotAStruct = errors.New("sqlconn: destination element must be a struct")
)

// QueryError wraps a build or driver error with the statement it came from.
type QueryError struct {
	Op    string // "build", "exec", "query", "scan", "begin", ...
	Query string
	Args  []any
	Err   error
}

func (e *QueryError) Error() string {
	return "sqlconn: " + e.Op + ": " + e.Err.Error()
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// wrapError wraps err with op unless it is nil.
func wrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &QueryError{Op: op, Err: err}
}
