package fileops

import (
	"errors"
	"fmt"
	"io/fs"
)

// Kind classifies a failed operation for display and logging.
type Kind int

const (
	KindUnknown Kind = iota
	KindPermissionDenied
	KindNotFound
	KindFilesystem
	KindUnsupportedFormat
	KindInvalidInput
)

func (k Kind) String() string {
	switch k {
	case KindPermissionDenied:
		return "permission denied"
	case KindNotFound:
		return "not found"
	case KindFilesystem:
		return "filesystem error"
	case KindUnsupportedFormat:
		return "unsupported format"
	case KindInvalidInput:
		return "invalid input"
	default:
		return "unknown error"
	}
}

var (
	ErrUnsupportedFormat = errors.New("unsupported archive format")
	ErrExists            = errors.New("destination already exists")
	ErrInvalidName       = errors.New("invalid name")
	ErrNotDirectory      = errors.New("not a directory")
)

// OpError records the operation and path that failed.
type OpError struct {
	Op   string
	Path string
	Kind Kind
	Err  error
}

func (e *OpError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// Is matches another *OpError by kind, so errors.Is(err, &OpError{Kind: KindNotFound}) works.
func (e *OpError) Is(target error) bool {
	t, ok := target.(*OpError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Op == "" && t.Path == "" && t.Err == nil
}

// Wrap returns nil for a nil err, otherwise an *OpError classified from err.
func Wrap(op, path string, err error) error {
	if err == nil {
		return nil
	}
	var existing *OpError
	if errors.As(err, &existing) {
		return err
	}
	return &OpError{Op: op, Path: path, Kind: Classify(err), Err: err}
}

// Classify maps an error to its Kind.
func Classify(err error) Kind {
	var opErr *OpError
	switch {
	case err == nil:
		return KindUnknown
	case errors.As(err, &opErr):
		return opErr.Kind
	case errors.Is(err, fs.ErrPermission):
		return KindPermissionDenied
	case errors.Is(err, fs.ErrNotExist):
		return KindNotFound
	case errors.Is(err, ErrUnsupportedFormat):
		return KindUnsupportedFormat
	case errors.Is(err, ErrInvalidName), errors.Is(err, ErrNotDirectory):
		return KindInvalidInput
	default:
		return KindFilesystem
	}
}

// FormatError produces the status-line text for a failed operation.
// The op and path already appear in op, so only the cause is shown.
func FormatError(op string, err error) string {
	var opErr *OpError
	if errors.As(err, &opErr) {
		err = opErr.Err
	}
	return fmt.Sprintf("Error %s: %v", op, err)
}
