package pipeline

import "fmt"

// Per-file failure taxonomy. All three are caught at the per-image
// boundary and recorded as "this file skipped"; none of them aborts a
// running batch. Nothing is retried.

// DecodeError means the input bytes could not be interpreted as an
// image.
type DecodeError struct {
	Name string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Name, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// BufferError means a pixel buffer could not be allocated or filled for
// the file, which is fatal for that file's processing.
type BufferError struct {
	Name string
	Err  error
}

func (e *BufferError) Error() string {
	return fmt.Sprintf("buffer %s: %v", e.Name, e.Err)
}

func (e *BufferError) Unwrap() error { return e.Err }

// EncodeError means output serialization failed.
type EncodeError struct {
	Name string
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %s: %v", e.Name, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }
