// Package rerr defines the error taxonomy shared across the pipeline.
//
// Each kind is a sentinel that callers match with errors.Is. Wrap
// formats any underlying cause into the message text; the resulting
// error's chain holds only the kind, not the cause.
package rerr

import (
	"errors"
	"fmt"
)

// Kind identifies which layer of the pipeline raised an error and what a
// caller is expected to do about it.
type Kind error

var (
	// Config marks an invalid or missing descriptor field. The subsystem
	// it describes (a style, a TMS, a pyramid) is unavailable.
	Config Kind = errors.New("config error")

	// Storage marks a transport or permission failure after retries.
	// Nearby operators may substitute nodata depending on policy.
	Storage Kind = errors.New("storage error")

	// Projection marks an unknown CRS or a numerically invalid
	// reprojection. Fatal for the request.
	Projection Kind = errors.New("projection error")

	// Format marks a truncated slab header, bad magic, or unsupported
	// compression. Fatal for the request.
	Format Kind = errors.New("format error")

	// Consistency marks incompatible dimensions, non-integer decimation
	// ratios, or incongruent merge inputs. Fatal for the request.
	Consistency Kind = errors.New("consistency error")

	// Encoder marks a compressor failure. Fatal for the request.
	Encoder Kind = errors.New("encoder error")
)

// Wrap returns an error whose message is format applied to args and for
// which errors.Is(err, kind) succeeds. Errors passed in args are only
// formatted into the message; errors.Is and errors.As do not reach them.
func Wrap(kind Kind, format string, args ...any) error {
	return &wrapped{kind: kind, msg: fmt.Sprintf(format, args...)}
}

type wrapped struct {
	kind Kind
	msg  string
}

func (w *wrapped) Error() string { return w.msg }
func (w *wrapped) Unwrap() error { return w.kind }
